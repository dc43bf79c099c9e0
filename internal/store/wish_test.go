package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]SortKey{
		"price":           SortByPrice,
		"price_estimate":  SortByPrice,
		"PRICE":           SortByPrice,
		" price_estimate": SortByPrice,
		"title":           SortByTitle,
		"Title":           SortByTitle,
	} {
		key, err := ParseSortKey(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, key, raw)
	}

	for _, raw := range []string{"", "owner", "id", "price-estimate"} {
		_, err := ParseSortKey(raw)
		assert.ErrorIs(t, err, ErrInvalidSortKey, raw)
	}
}
