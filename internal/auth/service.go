// internal/auth/service.go
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the access layer.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*User, error)
}

// Store defines the persistence operations the service depends on.
type Store interface {
	InsertUser(ctx context.Context, user *User) error
	UserByID(ctx context.Context, id uuid.UUID) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	Users(ctx context.Context, limit, offset int) ([]*User, error)
}
