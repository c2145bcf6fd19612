// Package catalog fetches podcast search, lookup and feed data, putting a
// time-bounded cache in front of every network read.
package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/killallgit/player-core/internal/cache"
	"github.com/killallgit/player-core/internal/feed"
	"github.com/killallgit/player-core/internal/models"
)

const defaultUserAgent = "PlayerCore/1.0 (+https://github.com/killallgit/player-core)"

// Config holds configuration for the catalog client.
type Config struct {
	// Rate limiting
	RequestsPerMinute int // Default: 250
	BurstSize         int // Default: 5

	// HTTP configuration
	Timeout      time.Duration // Default: 10s
	MaxRetries   int           // Default: 3
	RetryBackoff time.Duration // Default: 1s

	UserAgent string

	// Base URLs (overridable for testing)
	BaseURL    string // Default: https://itunes.apple.com
	PopularURL string // Default: iTunes top-podcasts RSS listing

	// Cache policy per call site
	SearchTTL  time.Duration // Default: 15m
	LookupTTL  time.Duration // Default: 30m
	PopularTTL time.Duration // Default: 60m
}

// Client talks to the podcast catalog and fetches episode feeds.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cache       *cache.TTLCache
	config      Config
}

// NewClient creates a catalog client. The cache may be nil, in which case
// every read goes to the network.
func NewClient(cfg Config, ttlCache *cache.TTLCache) *Client {
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 250
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 5
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://itunes.apple.com"
	}
	if cfg.PopularURL == "" {
		cfg.PopularURL = "https://itunes.apple.com/us/rss/toppodcasts"
	}
	if cfg.SearchTTL == 0 {
		cfg.SearchTTL = 15 * time.Minute
	}
	if cfg.LookupTTL == 0 {
		cfg.LookupTTL = 30 * time.Minute
	}
	if cfg.PopularTTL == 0 {
		cfg.PopularTTL = 60 * time.Minute
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			cfg.BurstSize,
		),
		cache:  ttlCache,
		config: cfg,
	}
}

// lookupResult mirrors the catalog API's search/lookup response entries.
type lookupResult struct {
	CollectionID   int64  `json:"collectionId"`
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`
	Description    string `json:"description"`
	FeedURL        string `json:"feedUrl"`
	ArtworkURL600  string `json:"artworkUrl600"`
	ArtworkURL100  string `json:"artworkUrl100"`
	TrackCount     int    `json:"trackCount"`
	PrimaryGenre   string `json:"primaryGenreName"`
	Country        string `json:"country"`
	ReleaseDate    string `json:"releaseDate"`
}

type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

// SearchPodcasts searches the catalog by term. Results younger than the
// search TTL are served from cache without touching the network.
func (c *Client) SearchPodcasts(ctx context.Context, term string, limit int) ([]models.Podcast, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errors.New("search term cannot be empty")
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	key := cache.Key("search", term, fmt.Sprintf("%d", limit))
	var cached []models.Podcast
	if c.cache != nil && c.cache.Get(key, c.config.SearchTTL, &cached) {
		return cached, nil
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "podcast")
	params.Set("limit", fmt.Sprintf("%d", limit))

	var resp lookupResponse
	searchURL := fmt.Sprintf("%s/search?%s", c.config.BaseURL, params.Encode())
	if err := c.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("search podcasts: %w", err)
	}

	podcasts := transformResults(resp.Results)
	c.cacheSet(key, podcasts)
	return podcasts, nil
}

// LookupPodcast fetches one podcast's metadata by catalog ID.
func (c *Client) LookupPodcast(ctx context.Context, id int64) (*models.Podcast, error) {
	key := cache.Key("lookup", fmt.Sprintf("%d", id))
	var cached models.Podcast
	if c.cache != nil && c.cache.Get(key, c.config.LookupTTL, &cached) {
		return &cached, nil
	}

	var resp lookupResponse
	lookupURL := fmt.Sprintf("%s/lookup?id=%d", c.config.BaseURL, id)
	if err := c.getJSON(ctx, lookupURL, &resp); err != nil {
		return nil, fmt.Errorf("lookup podcast %d: %w", id, err)
	}
	if resp.ResultCount == 0 || len(resp.Results) == 0 {
		return nil, ErrNoResults
	}

	podcast := transformResult(resp.Results[0])
	c.cacheSet(key, podcast)
	return &podcast, nil
}

// popularEnvelope is the shape of the top-podcasts RSS JSON listing.
type popularEnvelope struct {
	Feed struct {
		Entry []struct {
			Name struct {
				Label string `json:"label"`
			} `json:"im:name"`
			Artist struct {
				Label string `json:"label"`
			} `json:"im:artist"`
			Images []struct {
				Label string `json:"label"`
			} `json:"im:image"`
			Summary struct {
				Label string `json:"label"`
			} `json:"summary"`
			Category struct {
				Attributes struct {
					Label string `json:"label"`
				} `json:"attributes"`
			} `json:"category"`
			ID struct {
				Attributes struct {
					ID string `json:"im:id"`
				} `json:"attributes"`
			} `json:"id"`
		} `json:"entry"`
	} `json:"feed"`
}

// GetPopularPodcasts returns the catalog's top-podcasts listing, optionally
// scoped to a genre ID. Popularity moves slowly, so this uses the longest TTL.
func (c *Client) GetPopularPodcasts(ctx context.Context, genreID string, limit int) ([]models.Podcast, error) {
	if limit <= 0 {
		limit = 20
	}

	key := cache.Key("popular", genreID, fmt.Sprintf("%d", limit))
	var cached []models.Podcast
	if c.cache != nil && c.cache.Get(key, c.config.PopularTTL, &cached) {
		return cached, nil
	}

	listURL := fmt.Sprintf("%s/limit=%d", c.config.PopularURL, limit)
	if genreID != "" {
		listURL += "/genre=" + url.PathEscape(genreID)
	}
	listURL += "/json"

	var envelope popularEnvelope
	if err := c.getJSON(ctx, listURL, &envelope); err != nil {
		return nil, fmt.Errorf("popular podcasts: %w", err)
	}

	podcasts := make([]models.Podcast, 0, len(envelope.Feed.Entry))
	for _, entry := range envelope.Feed.Entry {
		podcast := models.Podcast{
			Name:        entry.Name.Label,
			ArtistName:  entry.Artist.Label,
			Description: entry.Summary.Label,
			Genre:       entry.Category.Attributes.Label,
		}
		if len(entry.Images) > 0 {
			podcast.ArtworkURL = entry.Images[len(entry.Images)-1].Label
		}
		if id := entry.ID.Attributes.ID; id != "" {
			fmt.Sscanf(id, "%d", &podcast.ID)
		}
		podcasts = append(podcasts, podcast)
	}

	c.cacheSet(key, podcasts)
	return podcasts, nil
}

// GetPodcastEpisodes fetches a feed and parses it into episodes. An empty
// result distinguishes "feed had no usable episodes" from a fetch failure,
// which surfaces as ErrFeedUnavailable or ErrFetchFailed.
func (c *Client) GetPodcastEpisodes(ctx context.Context, feedURL string) ([]models.Episode, error) {
	if strings.TrimSpace(feedURL) == "" {
		return nil, errors.New("feed url cannot be empty")
	}

	key := cache.Key("episodes", feedURL)
	var cached []models.Episode
	if c.cache != nil && c.cache.Get(key, c.config.LookupTTL, &cached) {
		return cached, nil
	}

	body, err := c.fetchBody(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	episodes := feed.Parse(body)
	log.Printf("[INFO] Parsed %d episodes from %s", len(episodes), feedURL)
	c.cacheSet(key, episodes)
	return episodes, nil
}

// InvalidateCatalog clears all catalog-derived cache entries. Playback
// session keys are untouched.
func (c *Client) InvalidateCatalog() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Clear("search_", "lookup_", "episodes_", "popular_")
}

// fetchBody retrieves a feed document, translating transport failures into
// the feed-unavailable taxonomy.
func (c *Client) fetchBody(ctx context.Context, feedURL string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: %w (status %d)", ErrFeedUnavailable, ErrFeedBlocked, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}
	return string(body), nil
}

// getJSON performs a rate-limited GET with retry and gzip handling, decoding
// the response body into dest.
func (c *Client) getJSON(ctx context.Context, requestURL string, dest any) error {
	var lastErr error
	backoff := c.config.RetryBackoff

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		err := c.doRequest(ctx, requestURL, dest)
		if err == nil {
			return nil
		}

		if errors.Is(err, ErrRateLimited) || isTemporaryError(err) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				lastErr = err
				continue
			}
		}

		return err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doRequest(ctx context.Context, requestURL string, dest any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	if err := json.NewDecoder(reader).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) cacheSet(key string, value any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(key, value); err != nil {
		log.Printf("[WARN] Failed to cache %s: %v", key, err)
	}
}

func transformResults(results []lookupResult) []models.Podcast {
	podcasts := make([]models.Podcast, 0, len(results))
	for _, result := range results {
		podcasts = append(podcasts, transformResult(result))
	}
	return podcasts
}

func transformResult(result lookupResult) models.Podcast {
	name := result.CollectionName
	if name == "" {
		name = "Untitled podcast"
	}
	artwork := result.ArtworkURL600
	if artwork == "" {
		artwork = result.ArtworkURL100
	}
	return models.Podcast{
		ID:          result.CollectionID,
		Name:        name,
		Description: result.Description,
		ArtworkURL:  artwork,
		FeedURL:     result.FeedURL,
		ArtistName:  result.ArtistName,
		TrackCount:  result.TrackCount,
		Genre:       result.PrimaryGenre,
		Country:     result.Country,
		ReleaseDate: result.ReleaseDate,
	}
}

// isTemporaryError checks if an error is temporary and should be retried.
func isTemporaryError(err error) bool {
	if netErr, ok := err.(interface{ Temporary() bool }); ok {
		return netErr.Temporary()
	}
	if netErr, ok := err.(interface{ Timeout() bool }); ok {
		return netErr.Timeout()
	}
	return false
}
