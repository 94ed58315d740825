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

// UserMeasurementStore is the PostgreSQL implementation of
// domain.UserMeasurementStore. Measurements are stored as jsonb keyed
// by attribute name.
type UserMeasurementStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserMeasurementStore constructs a ready-to-use UserMeasurementStore.
func NewUserMeasurementStore(pool *pgxpool.Pool, logger zerolog.Logger) *UserMeasurementStore {
	return &UserMeasurementStore{pool: pool, logger: logger}
}

// Get returns the user's measurement profile, or (nil, nil) when the
// user has none.
func (s *UserMeasurementStore) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var (
		profile          domain.UserProfile
		measurementsJSON []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, gender, fit_preference, measurements
		 FROM user_measurements WHERE id = $1`,
		userID).Scan(&profile.ID, &profile.Gender, &profile.FitPreference, &measurementsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("user measurement query failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	if len(measurementsJSON) > 0 {
		if err := json.Unmarshal(measurementsJSON, &profile.Measurements); err != nil {
			return nil, fmt.Errorf("malformed measurements for user %s: %w", userID, err)
		}
	}
	return &profile, nil
}
