package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

// SizeChartStore is the PostgreSQL implementation of domain.SizeChartStore.
// Charts are stored whole as jsonb, one row per (brand, unit).
type SizeChartStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSizeChartStore constructs a ready-to-use SizeChartStore.
func NewSizeChartStore(pool *pgxpool.Pool, logger zerolog.Logger) *SizeChartStore {
	return &SizeChartStore{pool: pool, logger: logger}
}

// Get returns the chart for (brand, unit), or (nil, nil) when the brand
// has no chart in that unit.
func (s *SizeChartStore) Get(ctx context.Context, brand, unit string) (domain.SizeChart, error) {
	var chartJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT chart FROM size_charts WHERE brand = $1 AND unit = $2`,
		brand, unit).Scan(&chartJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("brand", brand).Str("unit", unit).Msg("size chart query failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	var chart domain.SizeChart
	if err := json.Unmarshal(chartJSON, &chart); err != nil {
		return nil, fmt.Errorf("malformed size chart for %s/%s: %w", brand, unit, err)
	}
	return chart, nil
}
