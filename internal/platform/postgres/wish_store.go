// Package postgres implements the store interfaces against a PostgreSQL
// database. It is the optional durable backend; the contracts it satisfies
// are defined entirely by the store package.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// wishColumns is the scan order used by every wish query.
const wishColumns = "id, title, link, price_estimate::text, notes, category, owner"

// PostgresWishStore implements the store.WishStore interface using a
// PostgreSQL database as the storage backend. Insertion order is materialized
// by a bigserial sequence column; (owner, id) is deliberately not unique so
// imports can accumulate duplicates, and Create does its own duplicate check
// under an advisory lock.
type PostgresWishStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresWishStore creates a new PostgreSQL implementation of the
// WishStore interface. The connection is initialized and managed by the
// caller.
func NewPostgresWishStore(db *sql.DB, logger *slog.Logger) *PostgresWishStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWishStore{
		db:     db,
		logger: logger.With(slog.String("component", "wish_store")),
	}
}

// Ensure PostgresWishStore implements store.WishStore.
var _ store.WishStore = (*PostgresWishStore)(nil)

// List implements store.WishStore.List.
func (s *PostgresWishStore) List(ctx context.Context, owner string) ([]domain.Wish, error) {
	return s.query(ctx, s.db,
		"SELECT "+wishColumns+" FROM wishes WHERE owner = $1 ORDER BY seq", owner)
}

// FilterPriceBelow implements store.WishStore.FilterPriceBelow.
func (s *PostgresWishStore) FilterPriceBelow(
	ctx context.Context,
	owner string,
	limit decimal.Decimal,
) ([]domain.Wish, error) {
	return s.query(ctx, s.db,
		"SELECT "+wishColumns+" FROM wishes WHERE owner = $1 AND price_estimate IS NOT NULL AND price_estimate < $2::numeric ORDER BY seq",
		owner, limit.String())
}

// FilterPriceAbove implements store.WishStore.FilterPriceAbove.
func (s *PostgresWishStore) FilterPriceAbove(
	ctx context.Context,
	owner string,
	limit decimal.Decimal,
) ([]domain.Wish, error) {
	return s.query(ctx, s.db,
		"SELECT "+wishColumns+" FROM wishes WHERE owner = $1 AND price_estimate IS NOT NULL AND price_estimate > $2::numeric ORDER BY seq",
		owner, limit.String())
}

// FilterCategory implements store.WishStore.FilterCategory.
func (s *PostgresWishStore) FilterCategory(
	ctx context.Context,
	owner string,
	name string,
) ([]domain.Wish, error) {
	return s.query(ctx, s.db,
		"SELECT "+wishColumns+" FROM wishes WHERE owner = $1 AND category = $2 ORDER BY seq",
		owner, name)
}

// Sorted implements store.WishStore.Sorted. The seq tiebreaker keeps the
// ascending sort stable; flipping both directions for descending matches the
// reverse-the-whole-sequence contract.
func (s *PostgresWishStore) Sorted(
	ctx context.Context,
	owner string,
	key store.SortKey,
	ascending bool,
) ([]domain.Wish, error) {
	var orderExpr string
	switch key {
	case store.SortByPrice:
		orderExpr = "COALESCE(price_estimate, 0)"
	case store.SortByTitle:
		orderExpr = "title"
	default:
		return nil, store.ErrInvalidSortKey
	}

	dir := "ASC"
	if !ascending {
		dir = "DESC"
	}
	return s.query(ctx, s.db, fmt.Sprintf(
		"SELECT %s FROM wishes WHERE owner = $1 ORDER BY %s %s, seq %s",
		wishColumns, orderExpr, dir, dir), owner)
}

// Create implements store.WishStore.Create. An advisory transaction lock on
// the (owner, id) pair makes the duplicate check atomic with the insert even
// though the table carries no unique constraint.
func (s *PostgresWishStore) Create(ctx context.Context, wish domain.Wish) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		lockKey := fmt.Sprintf("%s:%d", wish.Owner, wish.ID)
		if _, err := tx.ExecContext(ctx,
			"SELECT pg_advisory_xact_lock(hashtext($1))", lockKey); err != nil {
			return fmt.Errorf("failed to take wish lock: %w", err)
		}

		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM wishes WHERE owner = $1 AND id = $2)",
			wish.Owner, wish.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check for duplicate wish: %w", err)
		}
		if exists {
			return store.ErrDuplicateID
		}

		return insertWish(ctx, tx, wish)
	})
}

// CreateMany implements store.WishStore.CreateMany. The batch is applied in
// order inside one transaction.
func (s *PostgresWishStore) CreateMany(ctx context.Context, wishes []domain.Wish) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for i := range wishes {
			if err := insertWish(ctx, tx, wishes[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get implements store.WishStore.Get. With duplicate ids possible, the
// earliest-inserted match wins, same as a linear scan.
func (s *PostgresWishStore) Get(ctx context.Context, owner string, id int64) (domain.Wish, error) {
	wishes, err := s.query(ctx, s.db,
		"SELECT "+wishColumns+" FROM wishes WHERE owner = $1 AND id = $2 ORDER BY seq LIMIT 1",
		owner, id)
	if err != nil {
		return domain.Wish{}, err
	}
	if len(wishes) == 0 {
		return domain.Wish{}, store.ErrWishNotFound
	}
	return wishes[0], nil
}

// Update implements store.WishStore.Update.
func (s *PostgresWishStore) Update(
	ctx context.Context,
	owner string,
	id int64,
	wish domain.Wish,
) (domain.Wish, error) {
	wish.Owner = owner

	res, err := s.db.ExecContext(ctx,
		`UPDATE wishes
		 SET id = $1, title = $2, link = $3, price_estimate = $4::numeric, notes = $5, category = $6
		 WHERE seq = (SELECT MIN(seq) FROM wishes WHERE owner = $7 AND id = $8)`,
		wish.ID, wish.Title, wish.Link, priceArg(wish.Price), wish.Notes, wish.Category,
		owner, id)
	if err != nil {
		return domain.Wish{}, fmt.Errorf("failed to update wish: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Wish{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.Wish{}, store.ErrWishNotFound
	}
	return wish, nil
}

// Delete implements store.WishStore.Delete.
func (s *PostgresWishStore) Delete(ctx context.Context, owner string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM wishes WHERE seq = (SELECT MIN(seq) FROM wishes WHERE owner = $1 AND id = $2)",
		owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return store.ErrWishNotFound
	}
	return nil
}

// Count implements store.WishStore.Count.
func (s *PostgresWishStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wishes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count wishes: %w", err)
	}
	return count, nil
}

// AveragePrice implements store.WishStore.AveragePrice. The average is
// computed in the database as numeric and transported as text so it never
// passes through a float.
func (s *PostgresWishStore) AveragePrice(ctx context.Context) (decimal.Decimal, error) {
	var avg string
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(COALESCE(price_estimate, 0)), 0)::text FROM wishes").Scan(&avg)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to average prices: %w", err)
	}
	price, err := decimal.NewFromString(avg)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse average price %q: %w", avg, err)
	}
	return price, nil
}

// query runs a wish SELECT and scans the rows in order. Taking a store.DBTX
// lets the same scan path serve plain reads and transactional callers.
func (s *PostgresWishStore) query(ctx context.Context, db store.DBTX, q string, args ...any) ([]domain.Wish, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishes: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	wishes := make([]domain.Wish, 0)
	for rows.Next() {
		var (
			w     domain.Wish
			price sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.Title, &w.Link, &price, &w.Notes, &w.Category, &w.Owner); err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		if price.Valid {
			d, err := decimal.NewFromString(price.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse stored price %q: %w", price.String, err)
			}
			w.Price = &d
		}
		wishes = append(wishes, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishes: %w", err)
	}
	return wishes, nil
}

func insertWish(ctx context.Context, db store.DBTX, wish domain.Wish) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO wishes (owner, id, title, link, price_estimate, notes, category)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`,
		wish.Owner, wish.ID, wish.Title, wish.Link, priceArg(wish.Price), wish.Notes, wish.Category)
	if err != nil {
		return fmt.Errorf("failed to insert wish: %w", err)
	}
	return nil
}

// priceArg renders the exact decimal for the driver, or NULL.
func priceArg(price *decimal.Decimal) any {
	if price == nil {
		return nil
	}
	return price.String()
}
