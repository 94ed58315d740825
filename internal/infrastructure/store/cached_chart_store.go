// Package store provides decorators over the domain store interfaces.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

// CachedSizeChartStore wraps a SizeChartStore with a read-through cache.
// Charts change rarely, so a generous TTL keeps the matching hot path off
// the database. Cache failures degrade to the inner store, never to an
// error.
type CachedSizeChartStore struct {
	inner  domain.SizeChartStore
	cache  domain.CacheRepository
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedSizeChartStore wraps inner with cache. A non-positive ttl
// defaults to one hour.
func NewCachedSizeChartStore(inner domain.SizeChartStore, cache domain.CacheRepository, ttl time.Duration, logger zerolog.Logger) *CachedSizeChartStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedSizeChartStore{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func chartCacheKey(brand, unit string) string {
	return fmt.Sprintf("sizechart:%s:%s", brand, unit)
}

// Get returns the chart for (brand, unit), serving from the cache when
// possible. A brand with no chart is not cached; missing charts are rare
// and a stale negative entry would hide a newly scraped chart.
func (s *CachedSizeChartStore) Get(ctx context.Context, brand, unit string) (domain.SizeChart, error) {
	key := chartCacheKey(brand, unit)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		if raw, ok := cached.(string); ok {
			var chart domain.SizeChart
			if err := json.Unmarshal([]byte(raw), &chart); err == nil {
				return chart, nil
			}
		}
		// Unusable cached value, fall through to the store.
		s.logger.Warn().Str("key", key).Msg("discarding malformed cached size chart")
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("size chart cache read failed")
	}

	chart, err := s.inner.Get(ctx, brand, unit)
	if err != nil {
		return nil, err
	}
	if chart == nil {
		return nil, nil
	}

	if data, err := json.Marshal(chart); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("size chart cache write failed")
		}
	}
	return chart, nil
}
