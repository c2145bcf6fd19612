package podcasts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
)

// GetPopular returns the catalog's top-podcasts listing
func GetPopular(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 100 {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Limit must be between 1 and 100",
				})
				return
			}
			limit = parsed
		}

		podcasts, err := deps.Catalog.GetPopularPodcasts(c.Request.Context(), c.Query("genre"), limit)
		if err != nil {
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to fetch popular podcasts",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.PodcastsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Popular podcasts fetched"},
			Podcasts:     podcasts,
			Count:        len(podcasts),
		})
	}
}
