// internal/customer/implementation.go
package customer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookshop/internal/apperr"
)

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new customer directory service instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// CreateProfile creates the shop profile for a user. Every profile
// starts at the bronze tier; tier upgrades are a staff operation.
func (s *service) CreateProfile(ctx context.Context, userID uuid.UUID, phone string, birthDate *time.Time) (*Customer, error) {
	c := &Customer{
		ID:         uuid.New(),
		UserID:     userID,
		Phone:      phone,
		BirthDate:  birthDate,
		Membership: MembershipBronze,
	}
	if err := s.store.InsertCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCustomer retrieves a customer by ID.
func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.store.CustomerByID(ctx, id)
}

// GetByUser retrieves the customer profile linked to a user.
func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*Customer, error) {
	return s.store.CustomerByUserID(ctx, userID)
}

// UpdateCustomer applies the given field updates.
func (s *service) UpdateCustomer(ctx context.Context, id uuid.UUID, params UpdateParams) (*Customer, error) {
	c, err := s.store.CustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Phone != nil {
		c.Phone = *params.Phone
	}
	if params.BirthDate != nil {
		c.BirthDate = params.BirthDate
	}
	if params.Membership != nil {
		if !ValidMembership(*params.Membership) {
			return nil, apperr.Newf(apperr.CodeInvalid, "unknown membership tier %q", *params.Membership)
		}
		c.Membership = *params.Membership
	}

	if err := s.store.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCustomer removes a customer profile.
func (s *service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCustomer(ctx, id)
}

// ListCustomers returns a page of customers.
func (s *service) ListCustomers(ctx context.Context, limit, offset int) ([]*Customer, error) {
	return s.store.Customers(ctx, limit, offset)
}
