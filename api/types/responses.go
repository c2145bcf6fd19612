package types

import (
	"github.com/killallgit/player-core/internal/models"
	"github.com/killallgit/player-core/internal/playback"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for failed requests
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// PodcastSearchResponse for search endpoints
type PodcastSearchResponse struct {
	BaseResponse
	Podcasts []models.Podcast `json:"podcasts"`
	Query    string           `json:"query"`
	Count    int              `json:"count"`
}

// PodcastsResponse for generic podcast lists
type PodcastsResponse struct {
	BaseResponse
	Podcasts []models.Podcast `json:"podcasts"`
	Count    int              `json:"count"`
}

// SinglePodcastResponse for getting a single podcast
type SinglePodcastResponse struct {
	BaseResponse
	Podcast *models.Podcast `json:"podcast"`
}

// EpisodesResponse for episode lists
type EpisodesResponse struct {
	BaseResponse
	Episodes []models.Episode `json:"episodes"`
	Count    int              `json:"count"`
}

// PlayerStatusResponse for player state snapshots
type PlayerStatusResponse struct {
	BaseResponse
	Player playback.Status `json:"player"`
}
