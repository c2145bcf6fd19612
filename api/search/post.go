package search

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
)

// Post handles podcast search requests
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request format",
				Details: err.Error(),
			})
			return
		}

		if req.Query == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search query is required",
			})
			return
		}

		if req.Limit == 0 {
			req.Limit = 10
		}
		if req.Limit < 1 || req.Limit > 100 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Limit must be between 1 and 100",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		podcasts, err := deps.Catalog.SearchPodcasts(ctx, req.Query, req.Limit)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				c.JSON(http.StatusGatewayTimeout, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Search request timed out",
				})
				return
			}
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search failed",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.PodcastSearchResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Search completed"},
			Podcasts:     podcasts,
			Query:        req.Query,
			Count:        len(podcasts),
		})
	}
}
