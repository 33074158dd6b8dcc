// internal/cart/implementation.go
package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookshop/internal/apperr"
)

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new cart service instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// CreateCart allocates a new empty cart.
func (s *service) CreateCart(ctx context.Context) (*Cart, error) {
	c := &Cart{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		Items:      []*CartItem{},
		TotalPrice: decimal.Zero,
	}
	if err := s.store.InsertCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCart loads a cart with its items and recomputes every total from
// the books' current prices.
func (s *service) GetCart(ctx context.Context, id uuid.UUID) (*Cart, error) {
	c, err := s.store.CartByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ItemsForCart(ctx, id)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.TotalPrice)
	}

	c.Items = items
	if c.Items == nil {
		c.Items = []*CartItem{}
	}
	c.TotalPrice = total
	return c, nil
}

// AddItem adds a book to the cart, merging quantities when the book
// is already in it.
func (s *service) AddItem(ctx context.Context, cartID, bookID uuid.UUID, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.CodeInvalid, "quantity must be at least 1")
	}

	exists, err := s.store.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.CodeNotFound, "book not found")
	}

	item, err := s.store.UpsertItem(ctx, cartID, bookID, quantity)
	if err != nil {
		return nil, err
	}
	item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return item, nil
}

// UpdateItemQuantity replaces a line's quantity.
func (s *service) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.CodeInvalid, "quantity must be at least 1")
	}

	item, err := s.store.SetItemQuantity(ctx, cartID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return item, nil
}

// RemoveItem deletes one line from the cart.
func (s *service) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return s.store.DeleteItem(ctx, cartID, itemID)
}

// DeleteCart removes the cart and all its items. Deleting a cart
// that no longer exists reports NotFound.
func (s *service) DeleteCart(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCart(ctx, id)
}
