// internal/order/domain.go
package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses. No transition graph is enforced beyond enum
// membership.
const (
	PaymentPending  = "pending"
	PaymentComplete = "complete"
	PaymentFailed   = "failed"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

// Order is an immutable record of a placed order; only the payment
// status may change afterwards.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	PaymentStatus string          `json:"payment_status"`
	PlacedAt      time.Time       `json:"placed_at"`
	Items         []*OrderItem    `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// OrderItem is one line of an order. Price is the book's price
// captured at order time; later book price changes never touch it.
type OrderItem struct {
	ID       int64           `json:"id"`
	BookID   uuid.UUID       `json:"book_id"`
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CartLine is the view of a cart line the workflow consumes.
type CartLine struct {
	BookID   uuid.UUID
	Quantity int
}

// Total sums quantity × captured price across the order's items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
