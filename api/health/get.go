package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
	"github.com/killallgit/player-core/internal/store"
)

// Get handles health check requests
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		if deps != nil && deps.Store != nil {
			response["store"] = getStoreStatus(deps.Store)
		} else {
			response["store"] = gin.H{"status": "not configured"}
		}

		if deps != nil && deps.Player != nil {
			response["player"] = gin.H{"state": deps.Player.Status().State}
		}

		c.JSON(http.StatusOK, response)
	}
}

// getStoreStatus returns the persistent store status
func getStoreStatus(s store.Store) gin.H {
	type healthChecker interface {
		HealthCheck() error
	}

	if hc, ok := s.(healthChecker); ok {
		if err := hc.HealthCheck(); err != nil {
			return gin.H{"status": "unhealthy", "error": err.Error()}
		}
	}
	return gin.H{"status": "healthy"}
}
