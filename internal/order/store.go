// internal/order/store.go
package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bookshop/internal/apperr"
)

// postgresStore implements Store on top of Postgres.
type postgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewStore creates a Postgres-backed order store.
func NewStore(db *sql.DB) Store {
	return &postgresStore{
		db:     db,
		tracer: otel.Tracer("bookshop/order"),
	}
}

func (s *postgresStore) CustomerIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT id FROM customers WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, apperr.New(apperr.CodeNotFound, "customer profile not found")
		}
		return uuid.Nil, fmt.Errorf("failed to resolve customer: %w", err)
	}
	return id, nil
}

func (s *postgresStore) CartLines(ctx context.Context, cartID uuid.UUID) ([]CartLine, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, cartID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check cart: %w", err)
	}
	if !exists {
		return nil, apperr.New(apperr.CodeNotFound, "cart not found")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT book_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart lines: %w", err)
	}
	defer rows.Close()

	var lines []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.BookID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ExecTx runs fn inside one transaction; the whole order placement
// commits or rolls back as a unit.
func (s *postgresStore) ExecTx(ctx context.Context, fn func(Tx) error) error {
	ctx, span := s.tracer.Start(ctx, "order.place_tx")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&postgresTx{tx: tx, span: span}); err != nil {
		span.RecordError(err)
		return err
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// postgresTx is the transactional write surface behind ExecTx.
type postgresTx struct {
	tx   *sql.Tx
	span trace.Span
}

func (t *postgresTx) InsertOrder(ctx context.Context, o *Order) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, payment_status, placed_at)
		VALUES ($1, $2, $3, $4)
	`, o.ID, o.CustomerID, o.PaymentStatus, o.PlacedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	t.span.SetAttributes(attribute.String("order.id", o.ID.String()))
	return nil
}

func (t *postgresTx) BookPrice(ctx context.Context, bookID uuid.UUID) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := t.tx.QueryRowContext(ctx, `SELECT price FROM books WHERE id = $1`, bookID).Scan(&price)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, apperr.Newf(apperr.CodeConflict, "book %s no longer exists", bookID)
		}
		return decimal.Zero, fmt.Errorf("failed to read book price: %w", err)
	}
	return price, nil
}

func (t *postgresTx) InsertOrderItem(ctx context.Context, orderID uuid.UUID, item *OrderItem) error {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, book_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, (SELECT title FROM books WHERE id = $2)
	`, orderID, item.BookID, item.Quantity, item.Price).Scan(&item.ID, &item.Title)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return apperr.Newf(apperr.CodeConflict, "book %s no longer exists", item.BookID)
		}
		return fmt.Errorf("failed to insert order item: %w", err)
	}
	t.span.AddEvent("order.item_added", trace.WithAttributes(
		attribute.String("book.id", item.BookID.String()),
		attribute.Int("quantity", item.Quantity),
	))
	return nil
}

func (t *postgresTx) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

const orderQuery = `SELECT id, customer_id, payment_status, placed_at FROM orders`

func (s *postgresStore) OrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o := &Order{}
	err := s.db.QueryRowContext(ctx, orderQuery+` WHERE id = $1`, id).
		Scan(&o.ID, &o.CustomerID, &o.PaymentStatus, &o.PlacedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := s.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	o.TotalPrice = o.Total()
	return o, nil
}

func (s *postgresStore) Orders(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]*Order, error) {
	query := orderQuery
	args := []interface{}{}
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += fmt.Sprintf(` ORDER BY placed_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.PaymentStatus, &o.PlacedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.TotalPrice = o.Total()
	}
	return orders, nil
}

// attachItems loads the items for every order in one query.
func (s *postgresStore) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[uuid.UUID]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID.String()
		byID[o.ID] = o
		o.Items = []*OrderItem{}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.id, oi.book_id, b.title, oi.quantity, oi.price
		FROM order_items oi
		JOIN books b ON b.id = oi.book_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		item := &OrderItem{}
		if err := rows.Scan(&orderID, &item.ID, &item.BookID, &item.Title, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (s *postgresStore) SetPaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "order not found")
	}
	return nil
}

func (s *postgresStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "order not found")
	}
	return nil
}
