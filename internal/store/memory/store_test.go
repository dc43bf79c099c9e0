package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/store"
)

func wish(owner string, id int64, title string, price string) domain.Wish {
	w := domain.Wish{ID: id, Title: title, Owner: owner}
	if price != "" {
		d := decimal.RequireFromString(price)
		w.Price = &d
	}
	return w
}

func ids(wishes []domain.Wish) []int64 {
	out := make([]int64, len(wishes))
	for i, w := range wishes {
		out[i] = w.ID
	}
	return out
}

func TestWishStore_CreateAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 2, "B", "")))
	require.NoError(t, s.Create(ctx, wish("alice", 1, "A", "")))

	listed, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(listed), "list preserves insertion order")
}

func TestWishStore_DuplicateID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "Book", "10.00")))
	err := s.Create(ctx, wish("alice", 1, "Again", ""))
	assert.ErrorIs(t, err, store.ErrDuplicateID)

	listed, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Book", listed[0].Title, "failed create must not replace the original")

	// The same id under a different owner is fine.
	assert.NoError(t, s.Create(ctx, wish("bob", 1, "Book", "")))
}

func TestWishStore_OwnershipIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "Book", "")))

	_, err := s.Get(ctx, "bob", 1)
	assert.ErrorIs(t, err, store.ErrWishNotFound)

	_, err = s.Update(ctx, "bob", 1, wish("bob", 1, "Stolen", ""))
	assert.ErrorIs(t, err, store.ErrWishNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "bob", 1), store.ErrWishNotFound)

	listed, err := s.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestWishStore_FailedUpdateIsNoOp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "Book", "9.99")))
	before, err := s.List(ctx, "alice")
	require.NoError(t, err)

	_, err = s.Update(ctx, "alice", 999, wish("alice", 999, "Ghost", ""))
	assert.ErrorIs(t, err, store.ErrWishNotFound)

	after, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWishStore_UpdatePreservesPosition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "A", "")))
	require.NoError(t, s.Create(ctx, wish("alice", 2, "B", "")))
	require.NoError(t, s.Create(ctx, wish("alice", 3, "C", "")))

	updated, err := s.Update(ctx, "alice", 2, wish("alice", 2, "B2", "5.00"))
	require.NoError(t, err)
	assert.Equal(t, "B2", updated.Title)

	listed, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(listed))
	assert.Equal(t, "B2", listed[1].Title)
}

func TestWishStore_PriceFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "A", "9.99")))
	require.NoError(t, s.Create(ctx, wish("alice", 2, "B", "15.00")))
	require.NoError(t, s.Create(ctx, wish("alice", 3, "C", ""))) // no price

	limit := decimal.RequireFromString("10.00")

	below, err := s.FilterPriceBelow(ctx, "alice", limit)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(below), "priceless wishes are excluded, not treated as zero")

	above, err := s.FilterPriceAbove(ctx, "alice", limit)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(above))
}

func TestWishStore_FilterCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	books := wish("alice", 1, "A", "")
	cat := "books"
	books.Category = &cat
	require.NoError(t, s.Create(ctx, books))
	require.NoError(t, s.Create(ctx, wish("alice", 2, "B", "")))

	got, err := s.FilterCategory(ctx, "alice", "books")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))

	got, err = s.FilterCategory(ctx, "alice", "games")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWishStore_SortedByPrice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "A", "20.00")))
	require.NoError(t, s.Create(ctx, wish("alice", 2, "B", ""))) // sorts as zero
	require.NoError(t, s.Create(ctx, wish("alice", 3, "C", "5.00")))
	require.NoError(t, s.Create(ctx, wish("alice", 4, "D", "5.00"))) // tie with 3

	asc, err := s.Sorted(ctx, "alice", store.SortByPrice, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(asc), "stable: tie keeps insertion order")

	desc, err := s.Sorted(ctx, "alice", store.SortByPrice, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 3, 2}, ids(desc), "descending reverses the whole ascending sequence")
}

func TestWishStore_SortedByTitle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "banana", "")))
	require.NoError(t, s.Create(ctx, wish("alice", 2, "apple", "")))

	sorted, err := s.Sorted(ctx, "alice", store.SortByTitle, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(sorted))
}

func TestWishStore_CreateMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	require.NoError(t, s.Create(ctx, wish("alice", 1, "Existing", "")))

	// CreateMany does not dedupe, by contract.
	batch := []domain.Wish{
		wish("alice", 1, "Dup", ""),
		wish("alice", 2, "New", ""),
	}
	require.NoError(t, s.CreateMany(ctx, batch))

	listed, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1, 2}, ids(listed))
}

func TestWishStore_CountAndAveragePrice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewWishStore()

	avg, err := s.AveragePrice(ctx)
	require.NoError(t, err)
	assert.True(t, avg.IsZero(), "empty store averages to zero")

	require.NoError(t, s.Create(ctx, wish("alice", 1, "A", "10.00")))
	require.NoError(t, s.Create(ctx, wish("bob", 1, "B", ""))) // counts as zero

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "count spans all owners")

	avg, err = s.AveragePrice(ctx)
	require.NoError(t, err)
	assert.True(t, avg.Equal(decimal.RequireFromString("5")), "average spans all owners, missing price as zero")
}
