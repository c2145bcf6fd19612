package search

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
)

// RegisterRoutes registers search routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Post(deps))
}
