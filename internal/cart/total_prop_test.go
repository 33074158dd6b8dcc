// internal/cart/total_prop_test.go
package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// The cart total must always equal the sum of price times merged
// quantity per distinct book, whatever order items were added in.
func TestCartTotalProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := newFakeStore()
		svc := NewService(store)

		bookCount := rapid.IntRange(1, 5).Draw(t, "books")
		books := make([]uuid.UUID, bookCount)
		prices := make(map[uuid.UUID]decimal.Decimal, bookCount)
		for i := range books {
			cents := rapid.Int64Range(100, 10000).Draw(t, "price_cents")
			price := decimal.New(cents, -2)
			books[i] = store.addBook("book", price)
			prices[books[i]] = price
		}

		c, err := svc.CreateCart(context.Background())
		require.NoError(t, err)

		quantities := make(map[uuid.UUID]int64, bookCount)
		adds := rapid.IntRange(1, 20).Draw(t, "adds")
		for i := 0; i < adds; i++ {
			bookID := books[rapid.IntRange(0, bookCount-1).Draw(t, "book_idx")]
			qty := rapid.IntRange(1, 10).Draw(t, "qty")

			_, err := svc.AddItem(context.Background(), c.ID, bookID, qty)
			require.NoError(t, err)
			quantities[bookID] += int64(qty)
		}

		want := decimal.Zero
		for bookID, qty := range quantities {
			want = want.Add(prices[bookID].Mul(decimal.NewFromInt(qty)))
		}

		got, err := svc.GetCart(context.Background(), c.ID)
		require.NoError(t, err)
		require.True(t, got.TotalPrice.Equal(want), "total %s, want %s", got.TotalPrice, want)
		require.LessOrEqual(t, len(got.Items), bookCount)
	})
}
