// internal/order/implementation.go
package order

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

// NewService creates a new order workflow service instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// PlaceOrder converts a cart into an immutable order. The order row,
// every order item with its price snapshot, and the cart deletion are
// committed as one transaction; any failure rolls the whole thing
// back and leaves the cart untouched.
func (s *service) PlaceOrder(ctx context.Context, userID, cartID uuid.UUID) (*Order, error) {
	customerID, err := s.store.CustomerIDForUser(ctx, userID)
	if err != nil {
		if apperr.Code(err) == apperr.CodeNotFound {
			return nil, apperr.New(apperr.CodeForbidden, "a customer profile is required to place orders")
		}
		return nil, err
	}

	lines, err := s.store.CartLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperr.New(apperr.CodeInvalid, "cart is empty")
	}

	o := &Order{
		ID:            uuid.New(),
		CustomerID:    customerID,
		PaymentStatus: PaymentPending,
		PlacedAt:      time.Now().UTC(),
	}

	items := make([]*OrderItem, 0, len(lines))
	err = s.store.ExecTx(ctx, func(tx Tx) error {
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		for _, line := range lines {
			// The price snapshot: read inside the transaction so the
			// captured value is the book's price at placement time.
			price, err := tx.BookPrice(ctx, line.BookID)
			if err != nil {
				return err
			}
			item := &OrderItem{BookID: line.BookID, Quantity: line.Quantity, Price: price}
			if err := tx.InsertOrderItem(ctx, o.ID, item); err != nil {
				return err
			}
			items = append(items, item)
		}
		return tx.DeleteCart(ctx, cartID)
	})
	if err != nil {
		return nil, err
	}

	o.Items = items
	o.TotalPrice = o.Total()
	return o, nil
}

// GetOrder returns one order; non-staff callers only see their own.
func (s *service) GetOrder(ctx context.Context, userID uuid.UUID, isStaff bool, orderID uuid.UUID) (*Order, error) {
	o, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isStaff {
		customerID, err := s.store.CustomerIDForUser(ctx, userID)
		if err != nil || customerID != o.CustomerID {
			return nil, apperr.New(apperr.CodeForbidden, "not your order")
		}
	}
	return o, nil
}

// ListOrders returns every order for staff, or the caller's own
// orders otherwise. A caller without a customer profile has none.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, isStaff bool, limit, offset int) ([]*Order, error) {
	if isStaff {
		return s.store.Orders(ctx, nil, limit, offset)
	}

	customerID, err := s.store.CustomerIDForUser(ctx, userID)
	if err != nil {
		if apperr.Code(err) == apperr.CodeNotFound {
			return []*Order{}, nil
		}
		return nil, err
	}
	return s.store.Orders(ctx, &customerID, limit, offset)
}

// UpdatePaymentStatus sets the payment status; any of the three
// named statuses is accepted from any other.
func (s *service) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status string) (*Order, error) {
	if !ValidPaymentStatus(status) {
		return nil, apperr.Newf(apperr.CodeInvalid, "unknown payment status %q", status)
	}
	if err := s.store.SetPaymentStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return s.store.OrderByID(ctx, orderID)
}

// DeleteOrder removes an order and its items.
func (s *service) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.store.DeleteOrder(ctx, orderID)
}
