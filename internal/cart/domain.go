// internal/cart/domain.go
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a guest shopping cart addressed by an opaque identifier.
// TotalPrice is derived from current book prices on every read, never
// stored.
type Cart struct {
	ID         uuid.UUID       `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []*CartItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartItem is one line of a cart. A book appears at most once per
// cart; re-adding it merges quantities.
type CartItem struct {
	ID         int64           `json:"id"`
	BookID     uuid.UUID       `json:"book_id"`
	Title      string          `json:"title"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
