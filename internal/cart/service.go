// internal/cart/service.go
package cart

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the cart store.
type Service interface {
	CreateCart(ctx context.Context) (*Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*Cart, error)
	AddItem(ctx context.Context, cartID, bookID uuid.UUID, quantity int) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
	DeleteCart(ctx context.Context, id uuid.UUID) error
}

// Store defines the persistence operations the service depends on.
// UpsertItem must merge quantities atomically when the (cart, book)
// line already exists.
type Store interface {
	InsertCart(ctx context.Context, c *Cart) error
	CartByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	ItemsForCart(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error)
	BookExists(ctx context.Context, bookID uuid.UUID) (bool, error)
	UpsertItem(ctx context.Context, cartID, bookID uuid.UUID, quantity int) (*CartItem, error)
	SetItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*CartItem, error)
	DeleteItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
	DeleteCart(ctx context.Context, id uuid.UUID) error
}
