package podcasts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
	"github.com/killallgit/player-core/internal/catalog"
)

// GetEpisodes fetches and parses the episode feed named by the feed_url
// query parameter. An empty list is a valid answer; only transport failures
// are errors.
func GetEpisodes(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		feedURL := c.Query("feed_url")
		if feedURL == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "feed_url query parameter is required",
			})
			return
		}

		episodes, err := deps.Catalog.GetPodcastEpisodes(c.Request.Context(), feedURL)
		if err != nil {
			status := http.StatusBadGateway
			message := "Failed to fetch feed"
			if errors.Is(err, catalog.ErrFeedBlocked) {
				status = http.StatusForbidden
				message = "The feed publisher blocked this request"
			} else if catalog.IsFeedUnavailable(err) {
				message = "Feed is unavailable"
			}
			c.JSON(status, types.ErrorResponse{
				Status:  types.StatusError,
				Message: message,
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.EpisodesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Episodes fetched"},
			Episodes:     episodes,
			Count:        len(episodes),
		})
	}
}
