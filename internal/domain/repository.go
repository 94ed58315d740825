package domain

import (
	"context"
	"time"
)

// ProductFilter narrows a paged catalog query. Categories with a single
// element behaves like an exact category match.
type ProductFilter struct {
	Brand      string
	Categories []string
	Gender     string
}

// ProductQuery is a single-pass keyword search over the catalog
type ProductQuery struct {
	Keyword  string
	Gender   string
	Category string
	Brand    string
}

// ProductStore provides read-only, stably ordered access to the scraped
// product catalog. Same offset and filters yield the same page absent
// concurrent writes. GetByID returns (nil, nil) for an unknown id.
type ProductStore interface {
	Page(ctx context.Context, filter ProductFilter, offset, limit int) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, query ProductQuery) ([]Product, error)
}

// SizeChartStore provides brand size charts keyed by unit.
// Returns (nil, nil) when the brand has no chart for that unit.
type SizeChartStore interface {
	Get(ctx context.Context, brand, unit string) (SizeChart, error)
}

// UserMeasurementStore provides user measurement profiles.
// Returns (nil, nil) when the user has no profile.
type UserMeasurementStore interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
}

// WishlistStore exposes the set of wishlisted product ids for a user.
// Read-only here; absence is treated as "not wishlisted".
type WishlistStore interface {
	ContainsSet(ctx context.Context, userID string) (map[string]struct{}, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
