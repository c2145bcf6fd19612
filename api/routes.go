package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/player-core/api/health"
	"github.com/killallgit/player-core/api/player"
	"github.com/killallgit/player-core/api/podcasts"
	"github.com/killallgit/player-core/api/search"
	"github.com/killallgit/player-core/api/types"
	"github.com/killallgit/player-core/api/version"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	// Search gets dedicated rate limiting (5 req/s, burst of 10)
	searchGroup := v1.Group("/search")
	searchGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	search.RegisterRoutes(searchGroup, deps)

	// Catalog browsing (10 req/s, burst of 20)
	podcastGroup := v1.Group("/podcasts")
	podcastGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	podcasts.RegisterRoutes(podcastGroup, deps)

	// Player transport (10 req/s, burst of 20)
	playerGroup := v1.Group("/player")
	playerGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	player.RegisterRoutes(playerGroup, deps)

	// Catalog cache invalidation; playback session records are untouched
	v1.POST("/cache/invalidate", func(c *gin.Context) {
		if err := deps.Catalog.InvalidateCatalog(); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Cache invalidation failed",
				Details: err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Catalog cache cleared",
		})
	})

	return nil
}

// NotFoundHandler returns a JSON 404 for unknown routes
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "Route not found",
		})
	}
}
