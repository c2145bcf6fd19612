package types

import (
	"context"

	"github.com/killallgit/player-core/internal/models"
	"github.com/killallgit/player-core/internal/playback"
)

// CatalogService is the catalog surface handlers depend on.
// Implemented by internal/catalog.Client.
type CatalogService interface {
	SearchPodcasts(ctx context.Context, term string, limit int) ([]models.Podcast, error)
	LookupPodcast(ctx context.Context, id int64) (*models.Podcast, error)
	GetPopularPodcasts(ctx context.Context, genreID string, limit int) ([]models.Podcast, error)
	GetPodcastEpisodes(ctx context.Context, feedURL string) ([]models.Episode, error)
	InvalidateCatalog() error
}

// PlayerService is the playback surface handlers depend on.
// Implemented by internal/playback.Engine.
type PlayerService interface {
	LoadEpisode(episode *models.Episode, podcastLabel string, autoPlay bool) error
	Play(ctx context.Context) error
	Pause()
	TogglePlayPause(ctx context.Context) error
	SkipBack()
	SkipForward()
	SeekPercent(percent float64)
	Status() playback.Status
}
