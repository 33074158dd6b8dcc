// internal/customer/service.go
package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UpdateParams carries the mutable customer fields; nil means leave
// unchanged.
type UpdateParams struct {
	Phone      *string
	BirthDate  *time.Time
	Membership *string
}

// Service defines the interface for the customer directory.
type Service interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, phone string, birthDate *time.Time) (*Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, params UpdateParams) (*Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context, limit, offset int) ([]*Customer, error)
}

// Store defines the persistence operations the service depends on.
type Store interface {
	InsertCustomer(ctx context.Context, c *Customer) error
	CustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	CustomerByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	Customers(ctx context.Context, limit, offset int) ([]*Customer, error)
}
