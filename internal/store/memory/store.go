// Package memory provides the in-memory WishStore implementation. It owns
// the only mutable view of the wish collection for the process lifetime and
// serializes every operation through a single mutex, so check-then-act
// sequences like the duplicate-id check stay atomic.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// WishStore is a mutex-guarded, insertion-ordered wish collection.
type WishStore struct {
	mu     sync.RWMutex
	wishes []domain.Wish
}

// NewWishStore creates an empty in-memory wish store.
func NewWishStore() *WishStore {
	return &WishStore{}
}

// Ensure WishStore implements store.WishStore.
var _ store.WishStore = (*WishStore)(nil)

// List implements store.WishStore.List.
func (s *WishStore) List(ctx context.Context, owner string) ([]domain.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(owner, func(domain.Wish) bool { return true }), nil
}

// FilterPriceBelow implements store.WishStore.FilterPriceBelow.
func (s *WishStore) FilterPriceBelow(
	ctx context.Context,
	owner string,
	limit decimal.Decimal,
) ([]domain.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(owner, func(w domain.Wish) bool {
		return w.Price != nil && w.Price.LessThan(limit)
	}), nil
}

// FilterPriceAbove implements store.WishStore.FilterPriceAbove.
func (s *WishStore) FilterPriceAbove(
	ctx context.Context,
	owner string,
	limit decimal.Decimal,
) ([]domain.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(owner, func(w domain.Wish) bool {
		return w.Price != nil && w.Price.GreaterThan(limit)
	}), nil
}

// FilterCategory implements store.WishStore.FilterCategory.
func (s *WishStore) FilterCategory(
	ctx context.Context,
	owner string,
	name string,
) ([]domain.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(owner, func(w domain.Wish) bool {
		return w.Category != nil && *w.Category == name
	}), nil
}

// Sorted implements store.WishStore.Sorted.
func (s *WishStore) Sorted(
	ctx context.Context,
	owner string,
	key store.SortKey,
	ascending bool,
) ([]domain.Wish, error) {
	s.mu.RLock()
	items := s.collect(owner, func(domain.Wish) bool { return true })
	s.mu.RUnlock()

	switch key {
	case store.SortByPrice:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PriceOrZero().LessThan(items[j].PriceOrZero())
		})
	case store.SortByTitle:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Title < items[j].Title
		})
	default:
		return nil, store.ErrInvalidSortKey
	}

	// Descending reverses the whole ascending sequence, ties included.
	if !ascending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items, nil
}

// Create implements store.WishStore.Create. The duplicate check and the
// append happen under the same lock.
func (s *WishStore) Create(ctx context.Context, wish domain.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wishes {
		if s.wishes[i].Owner == wish.Owner && s.wishes[i].ID == wish.ID {
			return store.ErrDuplicateID
		}
	}
	s.wishes = append(s.wishes, wish)
	return nil
}

// CreateMany implements store.WishStore.CreateMany.
func (s *WishStore) CreateMany(ctx context.Context, wishes []domain.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishes = append(s.wishes, wishes...)
	return nil
}

// Get implements store.WishStore.Get.
func (s *WishStore) Get(ctx context.Context, owner string, id int64) (domain.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.wishes {
		if s.wishes[i].Owner == owner && s.wishes[i].ID == id {
			return s.wishes[i], nil
		}
	}
	return domain.Wish{}, store.ErrWishNotFound
}

// Update implements store.WishStore.Update. A failed lookup mutates nothing.
func (s *WishStore) Update(
	ctx context.Context,
	owner string,
	id int64,
	wish domain.Wish,
) (domain.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wishes {
		if s.wishes[i].Owner == owner && s.wishes[i].ID == id {
			wish.Owner = owner
			s.wishes[i] = wish
			return wish, nil
		}
	}
	return domain.Wish{}, store.ErrWishNotFound
}

// Delete implements store.WishStore.Delete.
func (s *WishStore) Delete(ctx context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wishes {
		if s.wishes[i].Owner == owner && s.wishes[i].ID == id {
			s.wishes = append(s.wishes[:i], s.wishes[i+1:]...)
			return nil
		}
	}
	return store.ErrWishNotFound
}

// Count implements store.WishStore.Count.
func (s *WishStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wishes), nil
}

// AveragePrice implements store.WishStore.AveragePrice.
func (s *WishStore) AveragePrice(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.wishes) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for i := range s.wishes {
		sum = sum.Add(s.wishes[i].PriceOrZero())
	}
	return sum.Div(decimal.NewFromInt(int64(len(s.wishes)))), nil
}

// collect copies the owner's matching wishes in insertion order. Callers must
// hold at least the read lock.
func (s *WishStore) collect(owner string, keep func(domain.Wish) bool) []domain.Wish {
	out := make([]domain.Wish, 0)
	for i := range s.wishes {
		if s.wishes[i].Owner == owner && keep(s.wishes[i]) {
			out = append(out, s.wishes[i])
		}
	}
	return out
}
