package store

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phrazzld/wishlist-api/internal/domain"
)

// SortKey identifies a field wishes can be ordered by.
type SortKey string

const (
	// SortByPrice orders by price estimate, treating a missing price as zero.
	SortByPrice SortKey = "price_estimate"

	// SortByTitle orders lexicographically by title.
	SortByTitle SortKey = "title"
)

// ParseSortKey resolves a client-supplied order_by value to a SortKey.
// "price" and "price_estimate" are aliases; matching is case-insensitive
// and ignores surrounding whitespace. Returns ErrInvalidSortKey for
// anything else.
func ParseSortKey(raw string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price", "price_estimate":
		return SortByPrice, nil
	case "title":
		return SortByTitle, nil
	default:
		return "", ErrInvalidSortKey
	}
}

// WishStore defines the interface for wish persistence. All read and query
// operations are scoped to a single owner; Count and AveragePrice aggregate
// across owners for the metrics summary.
//
// Implementations must serialize mutations: the duplicate-id check in Create
// is atomic with the insert, CreateMany appends the whole batch or nothing,
// and no partial view of an in-flight mutation is ever observable.
type WishStore interface {
	// List returns the owner's wishes in insertion order.
	List(ctx context.Context, owner string) ([]domain.Wish, error)

	// FilterPriceBelow returns the owner's wishes with a price estimate
	// strictly below limit. Wishes without a price are excluded.
	FilterPriceBelow(ctx context.Context, owner string, limit decimal.Decimal) ([]domain.Wish, error)

	// FilterPriceAbove returns the owner's wishes with a price estimate
	// strictly above limit. Wishes without a price are excluded.
	FilterPriceAbove(ctx context.Context, owner string, limit decimal.Decimal) ([]domain.Wish, error)

	// FilterCategory returns the owner's wishes whose category equals name.
	FilterCategory(ctx context.Context, owner string, name string) ([]domain.Wish, error)

	// Sorted returns the owner's wishes ordered by key. The ascending sort is
	// stable (ties keep insertion order, missing price sorts as zero, missing
	// title as the empty string); descending is the reverse of the complete
	// ascending sequence.
	Sorted(ctx context.Context, owner string, key SortKey, ascending bool) ([]domain.Wish, error)

	// Create appends a wish. Returns ErrDuplicateID if the owner already has
	// a wish with the same id; the check and the insert are one atomic step.
	Create(ctx context.Context, wish domain.Wish) error

	// CreateMany appends a pre-validated batch in order, atomically. It does
	// not check for duplicate ids, either against the store or within the
	// batch.
	CreateMany(ctx context.Context, wishes []domain.Wish) error

	// Get returns the owner's wish with the given id, or ErrWishNotFound.
	Get(ctx context.Context, owner string, id int64) (domain.Wish, error)

	// Update replaces the owner's wish with the given id, preserving its
	// position in insertion order. Returns the stored result, or
	// ErrWishNotFound without mutating anything.
	Update(ctx context.Context, owner string, id int64, wish domain.Wish) (domain.Wish, error)

	// Delete removes the owner's wish with the given id, or returns
	// ErrWishNotFound.
	Delete(ctx context.Context, owner string, id int64) error

	// Count returns the total number of wishes across all owners.
	Count(ctx context.Context) (int, error)

	// AveragePrice returns the mean price estimate across all owners,
	// treating a missing price as zero. Returns zero for an empty store.
	AveragePrice(ctx context.Context) (decimal.Decimal, error)
}
