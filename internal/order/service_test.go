// internal/order/service_test.go
package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop/internal/apperr"
)

type fakeBook struct {
	title string
	price decimal.Decimal
}

// fakeStore keeps orders in memory and stages transactional writes so
// a failed ExecTx leaves no trace.
type fakeStore struct {
	customersByUser map[uuid.UUID]uuid.UUID
	carts           map[uuid.UUID][]CartLine
	books           map[uuid.UUID]fakeBook
	orders          map[uuid.UUID]*Order
	nextItemID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customersByUser: make(map[uuid.UUID]uuid.UUID),
		carts:           make(map[uuid.UUID][]CartLine),
		books:           make(map[uuid.UUID]fakeBook),
		orders:          make(map[uuid.UUID]*Order),
	}
}

func (f *fakeStore) addCustomer(userID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.customersByUser[userID] = id
	return id
}

func (f *fakeStore) addBook(title string, price decimal.Decimal) uuid.UUID {
	id := uuid.New()
	f.books[id] = fakeBook{title: title, price: price}
	return id
}

func (f *fakeStore) addCart(lines ...CartLine) uuid.UUID {
	id := uuid.New()
	f.carts[id] = lines
	return id
}

func (f *fakeStore) CustomerIDForUser(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, ok := f.customersByUser[userID]
	if !ok {
		return uuid.Nil, apperr.New(apperr.CodeNotFound, "customer profile not found")
	}
	return id, nil
}

func (f *fakeStore) CartLines(_ context.Context, cartID uuid.UUID) ([]CartLine, error) {
	lines, ok := f.carts[cartID]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "cart not found")
	}
	return lines, nil
}

// fakeTx stages writes against the parent store and applies them only
// on commit.
type fakeTx struct {
	store        *fakeStore
	order        *Order
	items        []*OrderItem
	deletedCarts []uuid.UUID
}

func (t *fakeTx) InsertOrder(_ context.Context, o *Order) error {
	cp := *o
	t.order = &cp
	return nil
}

func (t *fakeTx) BookPrice(_ context.Context, bookID uuid.UUID) (decimal.Decimal, error) {
	b, ok := t.store.books[bookID]
	if !ok {
		return decimal.Zero, apperr.Newf(apperr.CodeConflict, "book %s no longer exists", bookID)
	}
	return b.price, nil
}

func (t *fakeTx) InsertOrderItem(_ context.Context, orderID uuid.UUID, item *OrderItem) error {
	b, ok := t.store.books[item.BookID]
	if !ok {
		return apperr.Newf(apperr.CodeConflict, "book %s no longer exists", item.BookID)
	}
	t.store.nextItemID++
	item.ID = t.store.nextItemID
	item.Title = b.title
	cp := *item
	t.items = append(t.items, &cp)
	return nil
}

func (t *fakeTx) DeleteCart(_ context.Context, cartID uuid.UUID) error {
	t.deletedCarts = append(t.deletedCarts, cartID)
	return nil
}

func (f *fakeStore) ExecTx(ctx context.Context, fn func(Tx) error) error {
	tx := &fakeTx{store: f}
	if err := fn(tx); err != nil {
		return err
	}

	if tx.order != nil {
		tx.order.Items = tx.items
		tx.order.TotalPrice = tx.order.Total()
		f.orders[tx.order.ID] = tx.order
	}
	for _, cartID := range tx.deletedCarts {
		delete(f.carts, cartID)
	}
	return nil
}

func (f *fakeStore) OrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "order not found")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) Orders(_ context.Context, customerID *uuid.UUID, limit, offset int) ([]*Order, error) {
	out := []*Order{}
	for _, o := range f.orders {
		if customerID != nil && o.CustomerID != *customerID {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) SetPaymentStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return apperr.New(apperr.CodeNotFound, "order not found")
	}
	o.PaymentStatus = status
	return nil
}

func (f *fakeStore) DeleteOrder(_ context.Context, id uuid.UUID) error {
	if _, ok := f.orders[id]; !ok {
		return apperr.New(apperr.CodeNotFound, "order not found")
	}
	delete(f.orders, id)
	return nil
}

func TestPlaceOrder(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	userID := uuid.New()
	customerID := store.addCustomer(userID)
	b1 := store.addBook("First", decimal.NewFromInt(10))
	b2 := store.addBook("Second", decimal.NewFromInt(25))
	cartID := store.addCart(
		CartLine{BookID: b1, Quantity: 2},
		CartLine{BookID: b2, Quantity: 1},
	)

	o, err := svc.PlaceOrder(context.Background(), userID, cartID)
	require.NoError(t, err)
	assert.Equal(t, customerID, o.CustomerID)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	require.Len(t, o.Items, 2)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(45)), "got %s", o.TotalPrice)
	assert.WithinDuration(t, time.Now(), o.PlacedAt, time.Minute)

	// The cart is consumed.
	_, err = store.CartLines(context.Background(), cartID)
	assert.Equal(t, apperr.CodeNotFound, apperr.Code(err))
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	userID := uuid.New()
	store.addCustomer(userID)
	bookID := store.addBook("Volatile", decimal.NewFromInt(10))
	cartID := store.addCart(CartLine{BookID: bookID, Quantity: 1})

	o, err := svc.PlaceOrder(context.Background(), userID, cartID)
	require.NoError(t, err)

	// A later price change never reaches the placed order.
	store.books[bookID] = fakeBook{title: "Volatile", price: decimal.NewFromInt(99)}

	got, err := store.OrderByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(10)), "got %s", got.Items[0].Price)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(10)), "got %s", got.TotalPrice)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	userID := uuid.New()
	store.addCustomer(userID)
	cartID := store.addCart()

	_, err := svc.PlaceOrder(context.Background(), userID, cartID)
	assert.Equal(t, apperr.CodeInvalid, apperr.Code(err))
}

func TestPlaceOrderRequiresProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	bookID := store.addBook("First", decimal.NewFromInt(10))
	cartID := store.addCart(CartLine{BookID: bookID, Quantity: 1})

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), cartID)
	assert.Equal(t, apperr.CodeForbidden, apperr.Code(err))
}

func TestPlaceOrderMissingCart(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	userID := uuid.New()
	store.addCustomer(userID)

	_, err := svc.PlaceOrder(context.Background(), userID, uuid.New())
	assert.Equal(t, apperr.CodeNotFound, apperr.Code(err))
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	userID := uuid.New()
	store.addCustomer(userID)
	good := store.addBook("Still here", decimal.NewFromInt(10))
	gone := uuid.New()
	cartID := store.addCart(
		CartLine{BookID: good, Quantity: 1},
		CartLine{BookID: gone, Quantity: 1},
	)

	_, err := svc.PlaceOrder(context.Background(), userID, cartID)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.Code(err))

	// Nothing was committed: no order exists and the cart survives.
	orders, err := store.Orders(context.Background(), nil, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)

	lines, err := store.CartLines(context.Background(), cartID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestGetOrderScoping(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	owner := uuid.New()
	store.addCustomer(owner)
	bookID := store.addBook("First", decimal.NewFromInt(10))
	cartID := store.addCart(CartLine{BookID: bookID, Quantity: 1})

	o, err := svc.PlaceOrder(context.Background(), owner, cartID)
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), owner, false, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	// Another customer cannot read it, staff can.
	stranger := uuid.New()
	store.addCustomer(stranger)
	_, err = svc.GetOrder(context.Background(), stranger, false, o.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.Code(err))

	_, err = svc.GetOrder(context.Background(), stranger, true, o.ID)
	require.NoError(t, err)
}

func TestListOrdersScoping(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	alice := uuid.New()
	store.addCustomer(alice)
	bob := uuid.New()
	store.addCustomer(bob)
	bookID := store.addBook("First", decimal.NewFromInt(10))

	_, err := svc.PlaceOrder(context.Background(), alice, store.addCart(CartLine{BookID: bookID, Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(context.Background(), bob, store.addCart(CartLine{BookID: bookID, Quantity: 2}))
	require.NoError(t, err)

	own, err := svc.ListOrders(context.Background(), alice, false, 100, 0)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListOrders(context.Background(), alice, true, 100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A user without a profile has no orders rather than an error.
	none, err := svc.ListOrders(context.Background(), uuid.New(), false, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdatePaymentStatus(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	userID := uuid.New()
	store.addCustomer(userID)
	bookID := store.addBook("First", decimal.NewFromInt(10))

	o, err := svc.PlaceOrder(context.Background(), userID, store.addCart(CartLine{BookID: bookID, Quantity: 1}))
	require.NoError(t, err)

	updated, err := svc.UpdatePaymentStatus(context.Background(), o.ID, PaymentComplete)
	require.NoError(t, err)
	assert.Equal(t, PaymentComplete, updated.PaymentStatus)

	_, err = svc.UpdatePaymentStatus(context.Background(), o.ID, "paid")
	assert.Equal(t, apperr.CodeInvalid, apperr.Code(err))

	_, err = svc.UpdatePaymentStatus(context.Background(), uuid.New(), PaymentFailed)
	assert.Equal(t, apperr.CodeNotFound, apperr.Code(err))
}
