// internal/auth/store.go
package auth

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

// NewStore creates a Postgres-backed user store.
func NewStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) InsertUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, salt, is_staff, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Salt, user.IsStaff, user.DateJoined)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperr.New(apperr.CodeConflict, "username or email already taken")
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *postgresStore) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userQuery+` WHERE id = $1`, id))
}

func (s *postgresStore) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userQuery+` WHERE username = $1`, username))
}

const userQuery = `
	SELECT id, username, email, password_hash, salt, is_staff, date_joined
	FROM users
`

func (s *postgresStore) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Salt,
		&user.IsStaff,
		&user.DateJoined,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *postgresStore) Users(ctx context.Context, limit, offset int) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx, userQuery+` ORDER BY date_joined LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Salt, &user.IsStaff, &user.DateJoined); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
