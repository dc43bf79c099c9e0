package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/safejson"
	"github.com/phrazzld/wishlist-api/internal/store"
	"github.com/phrazzld/wishlist-api/internal/store/memory"
)

func newService() (*WishService, *memory.WishStore) {
	st := memory.NewWishStore()
	return NewWishService(st, nil), st
}

func TestCreateFromBody(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService()

	wish, err := svc.CreateFromBody(ctx, "alice", []byte(`{"id": 1, "title": "Book", "price_estimate": 9.99}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), wish.ID)
	assert.Equal(t, "alice", wish.Owner)
	require.NotNil(t, wish.Price)
	assert.Equal(t, "9.99", wish.Price.String())

	stored, err := st.Get(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, wish, stored)
}

func TestCreateFromBody_OwnerForced(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService()

	// A owner field in the body is tolerated but overridden.
	wish, err := svc.CreateFromBody(ctx, "alice", []byte(`{"id": 1, "title": "Book", "owner": "mallory"}`))
	require.NoError(t, err)
	assert.Equal(t, "alice", wish.Owner)

	_, err = st.Get(ctx, "mallory", 1)
	assert.ErrorIs(t, err, store.ErrWishNotFound)
}

func TestCreateFromBody_Duplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.CreateFromBody(ctx, "alice", []byte(`{"id": 1, "title": "Book"}`))
	require.NoError(t, err)
	_, err = svc.CreateFromBody(ctx, "alice", []byte(`{"id": 1, "title": "Again"}`))
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestCreateFromBody_InvalidSchema(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService()

	for name, body := range map[string]string{
		"missing id":    `{"title": "Book"}`,
		"unknown field": `{"id": 1, "title": "Book", "priority": "high"}`,
		"bad price":     `{"id": 1, "title": "Book", "price_estimate": -1}`,
	} {
		_, err := svc.CreateFromBody(ctx, "alice", []byte(body))
		assert.ErrorIs(t, err, domain.ErrInvalidWish, name)
	}

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdateFromBody(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService()

	_, err := svc.CreateFromBody(ctx, "alice", []byte(`{"id": 1, "title": "Book"}`))
	require.NoError(t, err)

	updated, err := svc.UpdateFromBody(ctx, "alice", 1, []byte(`{"id": 1, "title": "Better Book", "notes": "hardcover"}`))
	require.NoError(t, err)
	assert.Equal(t, "Better Book", updated.Title)

	stored, err := st.Get(ctx, "alice", 1)
	require.NoError(t, err)
	require.NotNil(t, stored.Notes)
	assert.Equal(t, "hardcover", *stored.Notes)

	_, err = svc.UpdateFromBody(ctx, "alice", 404, []byte(`{"id": 404, "title": "Ghost"}`))
	assert.ErrorIs(t, err, store.ErrWishNotFound)
}

func TestImportBackup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService()

	body := `{"backup": [
		{"id": 1, "title": "Book", "price_estimate": "10.50"},
		{"id": 2, "title": "Game"}
	]}`
	count, err := svc.ImportBackup(ctx, "alice", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	listed, err := st.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.NotNil(t, listed[0].Price)
	assert.Equal(t, "10.5", listed[0].Price.String())
	assert.Equal(t, "alice", listed[1].Owner)
}

func TestImportBackup_Atomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService()

	// Second entry is invalid; the first must not land either.
	body := `{"backup": [
		{"id": 1, "title": "Book"},
		{"id": 2, "title": "` + strings.Repeat("x", 51) + `"}
	]}`
	_, err := svc.ImportBackup(ctx, "alice", []byte(body))
	require.ErrorIs(t, err, domain.ErrInvalidWish)

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "a failed import must not store anything")
}

func TestImportBackup_Format(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService()

	for name, body := range map[string]string{
		"missing backup": `{"records": []}`,
		"backup object":  `{"backup": {"id": 1}}`,
		"backup string":  `{"backup": "none"}`,
	} {
		_, err := svc.ImportBackup(ctx, "alice", []byte(body))
		assert.ErrorIs(t, err, ErrImportFormat, name)
	}

	_, err := svc.ImportBackup(ctx, "alice", []byte(`{"backup": [42]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidWish, "non-object entry")

	_, err = svc.ImportBackup(ctx, "alice", []byte(`not json`))
	assert.ErrorIs(t, err, safejson.ErrInvalidFormat)
}

func TestImportBackup_EntryCap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	entries := func(n int) []byte {
		var b strings.Builder
		b.WriteString(`{"backup": [`)
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, `{"id": %d, "title": "w"}`, i)
		}
		b.WriteString(`]}`)
		return []byte(b.String())
	}

	svc, st := newService()
	count, err := svc.ImportBackup(ctx, "alice", entries(MaxImportEntries))
	require.NoError(t, err, "exactly the cap is allowed")
	assert.Equal(t, MaxImportEntries, count)

	stored, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, MaxImportEntries, stored)

	svc2, st2 := newService()
	_, err = svc2.ImportBackup(ctx, "alice", entries(MaxImportEntries+1))
	require.ErrorIs(t, err, ErrImportTooLarge)

	stored, err = st2.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, stored)
}

func TestImportBackup_BodyCap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService()

	padding := strings.Repeat(" ", safejson.MaxBodyBytes)
	body := `{"backup": []}` + padding
	_, err := svc.ImportBackup(ctx, "alice", []byte(body))
	assert.ErrorIs(t, err, safejson.ErrTooLarge)
}

func TestImportBackup_KeepsDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService()

	_, err := svc.CreateFromBody(ctx, "alice", []byte(`{"id": 1, "title": "Existing"}`))
	require.NoError(t, err)

	count, err := svc.ImportBackup(ctx, "alice", []byte(`{"backup": [
		{"id": 1, "title": "Dup"},
		{"id": 1, "title": "Dup again"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stored, "imports accumulate, including duplicate ids")
}
