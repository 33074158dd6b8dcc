// internal/customer/store.go
package customer

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

// NewStore creates a Postgres-backed customer store.
func NewStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) InsertCustomer(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (id, user_id, phone, birth_date, membership)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, c.ID, c.UserID, c.Phone, c.BirthDate, c.Membership)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return apperr.New(apperr.CodeConflict, "customer profile already exists for this user")
			case "23503":
				return apperr.New(apperr.CodeNotFound, "user not found")
			}
		}
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

const customerQuery = `
	SELECT id, user_id, phone, birth_date, membership
	FROM customers
`

func scanCustomer(row *sql.Row) (*Customer, error) {
	c := &Customer{}
	err := row.Scan(&c.ID, &c.UserID, &c.Phone, &c.BirthDate, &c.Membership)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "customer not found")
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (s *postgresStore) CustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return scanCustomer(s.db.QueryRowContext(ctx, customerQuery+` WHERE id = $1`, id))
}

func (s *postgresStore) CustomerByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error) {
	return scanCustomer(s.db.QueryRowContext(ctx, customerQuery+` WHERE user_id = $1`, userID))
}

func (s *postgresStore) UpdateCustomer(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers
		SET phone = $1, birth_date = $2, membership = $3
		WHERE id = $4
	`
	res, err := s.db.ExecContext(ctx, query, c.Phone, c.BirthDate, c.Membership, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "customer not found")
	}
	return nil
}

func (s *postgresStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "customer not found")
	}
	return nil
}

func (s *postgresStore) Customers(ctx context.Context, limit, offset int) ([]*Customer, error) {
	rows, err := s.db.QueryContext(ctx, customerQuery+` ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c := &Customer{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Phone, &c.BirthDate, &c.Membership); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
