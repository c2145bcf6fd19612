package models

import "time"

// DefaultMimeType is assumed for enclosures that don't declare a type.
const DefaultMimeType = "audio/mpeg"

// Episode represents one playable item parsed from a podcast feed.
type Episode struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	AudioURL        string    `json:"audio_url"`
	PubDate         string    `json:"pub_date"` // raw date text from the feed
	PublishedAt     time.Time `json:"published_at,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	ArtworkURL      string    `json:"artwork_url"`
	GUID            string    `json:"guid"`
	MimeType        string    `json:"mime_type"`
}

// Valid reports whether the episode carries the fields required for playback.
// Items missing a title or audio URL are dropped during feed parsing.
func (e Episode) Valid() bool {
	return e.Title != "" && e.AudioURL != ""
}

// Podcast represents a show from the catalog (search or lookup results).
type Podcast struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ArtworkURL  string `json:"artwork_url"`
	FeedURL     string `json:"feed_url"`
	ArtistName  string `json:"artist_name"`
	TrackCount  int    `json:"track_count"`
	Genre       string `json:"genre"`
	Country     string `json:"country"`
	ReleaseDate string `json:"release_date"`
}

// CurrentEpisodeRecord is the persisted "what was loaded last" session record.
// Ignored at restore time once Timestamp is 24h old.
type CurrentEpisodeRecord struct {
	Episode      Episode   `json:"episode"`
	PodcastLabel string    `json:"podcast_label"`
	Timestamp    time.Time `json:"timestamp"`
}

// PlaybackPositionRecord is the persisted resume position for one episode,
// keyed by the episode GUID.
type PlaybackPositionRecord struct {
	EpisodeGUID string    `json:"episode_guid"`
	Position    float64   `json:"position"`
	Timestamp   time.Time `json:"timestamp"`
}
