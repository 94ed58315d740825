package domain

import "errors"

var (
	// ErrUserNotFound is returned when no measurement profile exists for a user
	ErrUserNotFound = errors.New("user profile not found")

	// ErrProductNotFound is returned when a product id has no catalog entry
	ErrProductNotFound = errors.New("product not found")

	// ErrNoSizeChart is returned when a brand/unit/gender/category combination
	// has no chart slice; callers skip and log, never abort the whole request
	ErrNoSizeChart = errors.New("no size chart for brand")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrStoreFailure is returned when a backing store query fails; terminal
	// for that brand's batch only, other brands' results are still returned
	ErrStoreFailure = errors.New("store query failed")
)
