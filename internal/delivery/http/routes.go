package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stylefit/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.Enabled {
		router.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/recommendations", handler.Recommend)
		v1.POST("/search", handler.Search)

		products := v1.Group("/products")
		{
			products.GET("/:id/fit", handler.ProductFit)
		}
	}

	return router
}
