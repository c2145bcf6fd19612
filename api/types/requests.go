package types

import "github.com/killallgit/player-core/internal/models"

// SearchRequest for podcast search
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// LoadEpisodeRequest loads an episode into the player
type LoadEpisodeRequest struct {
	Episode      models.Episode `json:"episode"`
	PodcastLabel string         `json:"podcast_label"`
	AutoPlay     bool           `json:"auto_play"`
}

// SeekRequest moves playback to a percentage of the episode duration
type SeekRequest struct {
	Percent float64 `json:"percent"`
}

// SkipRequest jumps forward or backward by the configured interval
type SkipRequest struct {
	Direction string `json:"direction" binding:"required"` // "back" or "forward"
}
