// internal/order/service.go
package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines the interface for the order workflow. Read
// operations are authorization-scoped: staff principals see every
// order, others only their own.
type Service interface {
	PlaceOrder(ctx context.Context, userID, cartID uuid.UUID) (*Order, error)
	GetOrder(ctx context.Context, userID uuid.UUID, isStaff bool, orderID uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, isStaff bool, limit, offset int) ([]*Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status string) (*Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}

// Tx is the set of writes available inside the order-placement
// transaction. Implementations commit only if every call succeeds.
type Tx interface {
	InsertOrder(ctx context.Context, o *Order) error
	BookPrice(ctx context.Context, bookID uuid.UUID) (decimal.Decimal, error)
	InsertOrderItem(ctx context.Context, orderID uuid.UUID, item *OrderItem) error
	DeleteCart(ctx context.Context, cartID uuid.UUID) error
}

// Store defines the persistence operations the service depends on.
type Store interface {
	CustomerIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	CartLines(ctx context.Context, cartID uuid.UUID) ([]CartLine, error)
	ExecTx(ctx context.Context, fn func(Tx) error) error
	OrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Orders(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]*Order, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
