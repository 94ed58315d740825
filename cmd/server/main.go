package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/stylefit/backend/config"
	httpDelivery "github.com/stylefit/backend/internal/delivery/http"
	"github.com/stylefit/backend/internal/domain"
	"github.com/stylefit/backend/internal/infrastructure/cache"
	"github.com/stylefit/backend/internal/infrastructure/store"
	"github.com/stylefit/backend/internal/infrastructure/store/postgres"
	"github.com/stylefit/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Server.Environment)
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Msg("starting stylefit backend")

	ctx := context.Background()

	// Database
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	// Cache
	var cacheRepo domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisCache.Close()
		cacheRepo = redisCache
	default:
		cacheRepo = cache.NewMemoryCache()
	}

	// Stores
	products := postgres.NewProductStore(pool, logger)
	charts := store.NewCachedSizeChartStore(
		postgres.NewSizeChartStore(pool, logger),
		cacheRepo,
		cfg.Cache.ChartTTL,
		logger,
	)
	users := postgres.NewUserMeasurementStore(pool, logger)
	wishlist := postgres.NewWishlistStore(pool, logger)

	// Matching engine
	engineCfg := usecase.EngineConfig{
		SleeveStrictBrand:     cfg.Matching.SleeveStrictBrand,
		FemaleDenimChartBrand: cfg.Matching.FemaleDenimChartBrand,
		PageSize:              cfg.Matching.PageSize,
		DefaultQuota:          cfg.Matching.DefaultQuota,
		PreferredUnit:         cfg.Matching.PreferredUnit,
	}
	recommendations := usecase.NewRecommendationService(products, charts, users, wishlist, engineCfg, logger)
	search := usecase.NewSearchService(products, charts, users, wishlist, engineCfg, logger)

	logger.Info().
		Str("sleeve_strict_brand", engineCfg.SleeveStrictBrand).
		Str("female_denim_chart_brand", engineCfg.FemaleDenimChartBrand).
		Str("preferred_unit", engineCfg.PreferredUnit).
		Int("page_size", engineCfg.PageSize).
		Msg("matching engine configured")

	// HTTP delivery
	handler := httpDelivery.NewHandler(recommendations, search)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server listening")

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// newLogger builds the process logger: human-readable console output in
// development, JSON elsewhere.
func newLogger(environment string) zerolog.Logger {
	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
