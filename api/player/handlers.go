package player

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
	"github.com/killallgit/player-core/internal/playback"
)

// PostLoad loads an episode into the player
func PostLoad(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.LoadEpisodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		if err := deps.Player.LoadEpisode(&req.Episode, req.PodcastLabel, req.AutoPlay); err != nil {
			if errors.Is(err, playback.ErrInvalidEpisode) {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Episode is missing a title or audio URL",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load episode",
				Details: err.Error(),
			})
			return
		}

		respondWithStatus(c, deps, "Episode loaded")
	}
}

// PostPlay starts playback
func PostPlay(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Player.Play(c.Request.Context()); err != nil {
			c.JSON(http.StatusConflict, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "The media engine refused to start playback",
				Details: err.Error(),
			})
			return
		}
		respondWithStatus(c, deps, "Playback requested")
	}
}

// PostPause pauses playback
func PostPause(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Player.Pause()
		respondWithStatus(c, deps, "Paused")
	}
}

// PostToggle flips between play and pause
func PostToggle(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Player.TogglePlayPause(c.Request.Context()); err != nil {
			c.JSON(http.StatusConflict, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "The media engine refused to start playback",
				Details: err.Error(),
			})
			return
		}
		respondWithStatus(c, deps, "Toggled")
	}
}

// PostSeek moves playback to a percentage of the duration
func PostSeek(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SeekRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}
		if req.Percent < 0 || req.Percent > 100 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Percent must be between 0 and 100",
			})
			return
		}

		deps.Player.SeekPercent(req.Percent)
		respondWithStatus(c, deps, "Seeked")
	}
}

// PostSkip jumps forward or backward
func PostSkip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SkipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		switch req.Direction {
		case "back":
			deps.Player.SkipBack()
		case "forward":
			deps.Player.SkipForward()
		default:
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Direction must be \"back\" or \"forward\"",
			})
			return
		}

		respondWithStatus(c, deps, "Skipped")
	}
}

// GetStatus returns the player state snapshot
func GetStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondWithStatus(c, deps, "Player status")
	}
}

func respondWithStatus(c *gin.Context, deps *types.Dependencies, message string) {
	c.JSON(http.StatusOK, types.PlayerStatusResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: message},
		Player:       deps.Player.Status(),
	})
}
