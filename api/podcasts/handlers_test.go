package podcasts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/player-core/api/types"
	"github.com/killallgit/player-core/internal/catalog"
	"github.com/killallgit/player-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalog overrides only the surfaces each test exercises.
type mockCatalog struct {
	types.CatalogService
	lookupFunc   func(ctx context.Context, id int64) (*models.Podcast, error)
	popularFunc  func(ctx context.Context, genreID string, limit int) ([]models.Podcast, error)
	episodesFunc func(ctx context.Context, feedURL string) ([]models.Episode, error)
}

func (m *mockCatalog) LookupPodcast(ctx context.Context, id int64) (*models.Podcast, error) {
	return m.lookupFunc(ctx, id)
}

func (m *mockCatalog) GetPopularPodcasts(ctx context.Context, genreID string, limit int) ([]models.Podcast, error) {
	return m.popularFunc(ctx, genreID, limit)
}

func (m *mockCatalog) GetPodcastEpisodes(ctx context.Context, feedURL string) ([]models.Episode, error) {
	return m.episodesFunc(ctx, feedURL)
}

func performRequest(deps *types.Dependencies, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/podcasts"), deps)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetPodcast(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		lookupFunc     func(ctx context.Context, id int64) (*models.Podcast, error)
		expectedStatus int
	}{
		{
			name:   "found",
			target: "/api/v1/podcasts/101",
			lookupFunc: func(ctx context.Context, id int64) (*models.Podcast, error) {
				assert.Equal(t, int64(101), id)
				return &models.Podcast{ID: 101, Name: "Go Time"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "not found",
			target: "/api/v1/podcasts/999",
			lookupFunc: func(ctx context.Context, id int64) (*models.Podcast, error) {
				return nil, catalog.ErrNoResults
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			target:         "/api/v1/podcasts/not-a-number",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "upstream failure",
			target: "/api/v1/podcasts/101",
			lookupFunc: func(ctx context.Context, id int64) (*models.Podcast, error) {
				return nil, errors.New("catalog down")
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &types.Dependencies{Catalog: &mockCatalog{lookupFunc: tt.lookupFunc}}
			w := performRequest(deps, tt.target)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGetEpisodes(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		episodesFunc    func(ctx context.Context, feedURL string) ([]models.Episode, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:   "episodes fetched",
			target: "/api/v1/podcasts/episodes?feed_url=https://example.com/feed.xml",
			episodesFunc: func(ctx context.Context, feedURL string) ([]models.Episode, error) {
				assert.Equal(t, "https://example.com/feed.xml", feedURL)
				return []models.Episode{{Title: "Ep 1", AudioURL: "https://example.com/1.mp3"}}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "empty feed is still ok",
			target: "/api/v1/podcasts/episodes?feed_url=https://example.com/feed.xml",
			episodesFunc: func(ctx context.Context, feedURL string) ([]models.Episode, error) {
				return []models.Episode{}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing feed_url",
			target:         "/api/v1/podcasts/episodes",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "blocked feed",
			target: "/api/v1/podcasts/episodes?feed_url=https://example.com/feed.xml",
			episodesFunc: func(ctx context.Context, feedURL string) ([]models.Episode, error) {
				return nil, fmt.Errorf("%w: %w (status 403)", catalog.ErrFeedUnavailable, catalog.ErrFeedBlocked)
			},
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "The feed publisher blocked this request",
		},
		{
			name:   "unavailable feed",
			target: "/api/v1/podcasts/episodes?feed_url=https://example.com/feed.xml",
			episodesFunc: func(ctx context.Context, feedURL string) ([]models.Episode, error) {
				return nil, fmt.Errorf("%w: connection refused", catalog.ErrFeedUnavailable)
			},
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "Feed is unavailable",
		},
		{
			name:   "fetch failure",
			target: "/api/v1/podcasts/episodes?feed_url=https://example.com/feed.xml",
			episodesFunc: func(ctx context.Context, feedURL string) ([]models.Episode, error) {
				return nil, fmt.Errorf("%w: status 500", catalog.ErrFetchFailed)
			},
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "Failed to fetch feed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &types.Dependencies{Catalog: &mockCatalog{episodesFunc: tt.episodesFunc}}
			w := performRequest(deps, tt.target)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedMessage != "" {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedMessage, resp["message"])
			}
		})
	}
}

func TestGetPopular(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		popularFunc    func(ctx context.Context, genreID string, limit int) ([]models.Podcast, error)
		expectedStatus int
	}{
		{
			name:   "default limit",
			target: "/api/v1/podcasts/popular",
			popularFunc: func(ctx context.Context, genreID string, limit int) ([]models.Podcast, error) {
				assert.Equal(t, 20, limit)
				assert.Empty(t, genreID)
				return []models.Podcast{{Name: "Top Show"}}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "genre and limit passed through",
			target: "/api/v1/podcasts/popular?genre=1318&limit=5",
			popularFunc: func(ctx context.Context, genreID string, limit int) ([]models.Podcast, error) {
				assert.Equal(t, "1318", genreID)
				assert.Equal(t, 5, limit)
				return []models.Podcast{}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid limit",
			target:         "/api/v1/podcasts/popular?limit=9000",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "upstream failure",
			target: "/api/v1/podcasts/popular",
			popularFunc: func(ctx context.Context, genreID string, limit int) ([]models.Podcast, error) {
				return nil, errors.New("listing down")
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &types.Dependencies{Catalog: &mockCatalog{popularFunc: tt.popularFunc}}
			w := performRequest(deps, tt.target)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
