package podcasts

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
)

// RegisterRoutes registers podcast routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/popular", GetPopular(deps))
	group.GET("/episodes", GetEpisodes(deps))
	group.GET("/:id", GetPodcast(deps))
}
