package podcasts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
	"github.com/killallgit/player-core/internal/catalog"
)

// GetPodcast looks up one podcast by catalog ID
func GetPodcast(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid podcast ID",
			})
			return
		}

		podcast, err := deps.Catalog.LookupPodcast(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNoResults) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Podcast not found",
				})
				return
			}
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Podcast lookup failed",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.SinglePodcastResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Podcast found"},
			Podcast:      podcast,
		})
	}
}
