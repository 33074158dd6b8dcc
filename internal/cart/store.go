// internal/cart/store.go
package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bookshop/internal/apperr"
)

// postgresStore implements Store on top of Postgres.
type postgresStore struct {
	db *sql.DB
}

// NewStore creates a Postgres-backed cart store.
func NewStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) InsertCart(ctx context.Context, c *Cart) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO carts (id, created_at) VALUES ($1, $2)`, c.ID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert cart: %w", err)
	}
	return nil
}

func (s *postgresStore) CartByID(ctx context.Context, id uuid.UUID) (*Cart, error) {
	c := &Cart{}
	err := s.db.QueryRowContext(ctx, `SELECT id, created_at FROM carts WHERE id = $1`, id).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "cart not found")
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return c, nil
}

func (s *postgresStore) ItemsForCart(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error) {
	query := `
		SELECT ci.id, ci.book_id, b.title, b.price, ci.quantity
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`
	rows, err := s.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		item := &CartItem{}
		if err := rows.Scan(&item.ID, &item.BookID, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *postgresStore) BookExists(ctx context.Context, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

// UpsertItem merges the quantity into an existing (cart, book) line
// or creates one, in a single statement so concurrent adds of the
// same book cannot race. Joining the upserted row back to books in
// the same statement keeps the returned line consistent with the
// write.
func (s *postgresStore) UpsertItem(ctx context.Context, cartID, bookID uuid.UUID, quantity int) (*CartItem, error) {
	query := `
		WITH upserted AS (
			INSERT INTO cart_items (cart_id, book_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, book_id)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
			RETURNING id, book_id, quantity
		)
		SELECT u.id, u.book_id, b.title, b.price, u.quantity
		FROM upserted u
		JOIN books b ON b.id = u.book_id
	`
	item := &CartItem{}
	err := s.db.QueryRowContext(ctx, query, cartID, bookID, quantity).
		Scan(&item.ID, &item.BookID, &item.Title, &item.UnitPrice, &item.Quantity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "cart_items_cart_id_fkey" {
				return nil, apperr.New(apperr.CodeNotFound, "cart not found")
			}
			return nil, apperr.New(apperr.CodeNotFound, "book not found")
		}
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return item, nil
}

func (s *postgresStore) SetItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*CartItem, error) {
	query := `
		UPDATE cart_items ci
		SET quantity = $1
		FROM books b
		WHERE ci.id = $2 AND ci.cart_id = $3 AND b.id = ci.book_id
		RETURNING ci.id, ci.book_id, b.title, b.price, ci.quantity
	`
	item := &CartItem{}
	err := s.db.QueryRowContext(ctx, query, quantity, itemID, cartID).
		Scan(&item.ID, &item.BookID, &item.Title, &item.UnitPrice, &item.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "cart item not found")
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, nil
}

func (s *postgresStore) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *postgresStore) DeleteCart(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "cart not found")
	}
	return nil
}
