package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

// WishlistStore is the PostgreSQL implementation of domain.WishlistStore.
type WishlistStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistStore constructs a ready-to-use WishlistStore.
func NewWishlistStore(pool *pgxpool.Pool, logger zerolog.Logger) *WishlistStore {
	return &WishlistStore{pool: pool, logger: logger}
}

// ContainsSet returns the set of product ids the user has wishlisted.
// A user with no wishlist rows gets an empty set.
func (s *WishlistStore) ContainsSet(ctx context.Context, userID string) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id FROM wishlist_items WHERE user_id = $1`, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("wishlist query failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
		}
		set[productID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return set, nil
}
