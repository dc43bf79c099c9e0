// Package service orchestrates the wish intake and import pipelines on top
// of the store layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/safejson"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// MaxImportEntries caps the number of records accepted in one import batch.
// Exactly MaxImportEntries is allowed.
const MaxImportEntries = 5000

// Service-level sentinel errors.
var (
	// ErrImportTooLarge indicates the import batch exceeds MaxImportEntries.
	ErrImportTooLarge = fmt.Errorf("import too large (>%d)", MaxImportEntries)

	// ErrImportFormat indicates the import document is missing a backup list.
	ErrImportFormat = errors.New("invalid import format")
)

// WishService runs untrusted request bodies through the safe-JSON intake and
// the wish schema before anything reaches the store.
type WishService struct {
	wishStore store.WishStore
	logger    *slog.Logger
}

// NewWishService creates a WishService.
func NewWishService(wishStore store.WishStore, logger *slog.Logger) *WishService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WishService{
		wishStore: wishStore,
		logger:    logger.With(slog.String("component", "wish_service")),
	}
}

// CreateFromBody parses and validates a single wish body and appends it for
// the owner. Fails with store.ErrDuplicateID if the owner already has the id.
func (s *WishService) CreateFromBody(ctx context.Context, owner string, raw []byte) (domain.Wish, error) {
	wish, err := s.parseOne(raw, owner)
	if err != nil {
		return domain.Wish{}, err
	}
	if err := s.wishStore.Create(ctx, wish); err != nil {
		return domain.Wish{}, err
	}
	return wish, nil
}

// UpdateFromBody parses and validates a single wish body and replaces the
// owner's wish with the given id. The id in the path wins over any id in the
// body for lookup purposes; the stored record carries the body's id, matching
// a full replace.
func (s *WishService) UpdateFromBody(
	ctx context.Context,
	owner string,
	id int64,
	raw []byte,
) (domain.Wish, error) {
	wish, err := s.parseOne(raw, owner)
	if err != nil {
		return domain.Wish{}, err
	}
	return s.wishStore.Update(ctx, owner, id, wish)
}

// ImportBackup validates an entire backup document and applies it atomically:
// every record is checked against the schema (with the owner forced) before a
// single one is stored. Any failure leaves the store untouched.
//
// Duplicate ids are not checked, either against existing records or within
// the batch; an import can accumulate duplicates.
func (s *WishService) ImportBackup(ctx context.Context, owner string, raw []byte) (int, error) {
	payload, err := safejson.Parse(raw)
	if err != nil {
		return 0, err
	}

	backup, ok := payload["backup"].([]any)
	if !ok {
		return 0, ErrImportFormat
	}
	if len(backup) > MaxImportEntries {
		return 0, ErrImportTooLarge
	}

	validated := make([]domain.Wish, 0, len(backup))
	for _, entry := range backup {
		obj, ok := entry.(map[string]any)
		if !ok {
			return 0, fmt.Errorf("%w: entry is not an object", domain.ErrInvalidWish)
		}
		wish, err := domain.ParseWish(obj, owner)
		if err != nil {
			return 0, err
		}
		validated = append(validated, wish)
	}

	if err := s.wishStore.CreateMany(ctx, validated); err != nil {
		return 0, err
	}

	s.logger.Info("backup restored",
		slog.String("owner", owner),
		slog.Int("count", len(validated)))
	return len(validated), nil
}

// parseOne runs a single-record body through the same intake and schema path
// the import pipeline uses.
func (s *WishService) parseOne(raw []byte, owner string) (domain.Wish, error) {
	obj, err := safejson.Parse(raw)
	if err != nil {
		return domain.Wish{}, err
	}
	return domain.ParseWish(obj, owner)
}
