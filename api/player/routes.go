package player

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
)

// RegisterRoutes registers player transport routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("/load", PostLoad(deps))
	group.POST("/play", PostPlay(deps))
	group.POST("/pause", PostPause(deps))
	group.POST("/toggle", PostToggle(deps))
	group.POST("/seek", PostSeek(deps))
	group.POST("/skip", PostSkip(deps))
	group.GET("/status", GetStatus(deps))
}
