package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/player-core/internal/cache"
	"github.com/killallgit/player-core/internal/store"
)

func newTestClient(baseURL, popularURL string) *Client {
	return NewClient(Config{
		BaseURL:           baseURL,
		PopularURL:        popularURL,
		RequestsPerMinute: 6000,
		BurstSize:         100,
		RetryBackoff:      time.Millisecond,
	}, cache.New(store.NewMemoryStore()))
}

const searchBody = `{
  "resultCount": 2,
  "results": [
    {
      "collectionId": 101,
      "collectionName": "Go Time",
      "artistName": "Changelog",
      "feedUrl": "https://example.com/gotime.xml",
      "artworkUrl600": "https://example.com/gotime600.jpg",
      "trackCount": 300,
      "primaryGenreName": "Technology"
    },
    {
      "collectionId": 102,
      "collectionName": "",
      "artworkUrl100": "https://example.com/small.jpg"
    }
  ]
}`

func TestSearchPodcasts(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "go time", r.URL.Query().Get("term"))
		assert.Equal(t, "podcast", r.URL.Query().Get("media"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	podcasts, err := client.SearchPodcasts(context.Background(), "go time", 10)
	require.NoError(t, err)
	require.Len(t, podcasts, 2)
	assert.Equal(t, int64(101), podcasts[0].ID)
	assert.Equal(t, "Go Time", podcasts[0].Name)
	assert.Equal(t, "https://example.com/gotime600.jpg", podcasts[0].ArtworkURL)
	assert.Equal(t, "Untitled podcast", podcasts[1].Name, "missing name gets a placeholder")
	assert.Equal(t, "https://example.com/small.jpg", podcasts[1].ArtworkURL, "falls back to the small artwork")

	// Second identical search is served from cache.
	again, err := client.SearchPodcasts(context.Background(), "Go Time", 10)
	require.NoError(t, err)
	assert.Len(t, again, 2)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSearchPodcastsRejectsEmptyTerm(t *testing.T) {
	client := newTestClient("http://unused", "http://unused")
	_, err := client.SearchPodcasts(context.Background(), "   ", 10)
	assert.Error(t, err)
}

func TestLookupPodcast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup", r.URL.Path)
		assert.Equal(t, "101", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	podcast, err := client.LookupPodcast(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, "Go Time", podcast.Name)
	assert.Equal(t, "https://example.com/gotime.xml", podcast.FeedURL)
}

func TestLookupPodcastNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount": 0, "results": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	_, err := client.LookupPodcast(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGetPopularPodcasts(t *testing.T) {
	body := `{"feed": {"entry": [
	  {
	    "im:name": {"label": "Top Show"},
	    "im:artist": {"label": "Host"},
	    "im:image": [{"label": "https://example.com/s.jpg"}, {"label": "https://example.com/l.jpg"}],
	    "summary": {"label": "A show"},
	    "category": {"attributes": {"label": "News"}},
	    "id": {"attributes": {"im:id": "555"}}
	  }
	]}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "limit=5")
		assert.Contains(t, r.URL.Path, "/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	podcasts, err := client.GetPopularPodcasts(context.Background(), "", 5)
	require.NoError(t, err)
	require.Len(t, podcasts, 1)
	assert.Equal(t, "Top Show", podcasts[0].Name)
	assert.Equal(t, "Host", podcasts[0].ArtistName)
	assert.Equal(t, "https://example.com/l.jpg", podcasts[0].ArtworkURL, "largest image wins")
	assert.Equal(t, int64(555), podcasts[0].ID)
	assert.Equal(t, "News", podcasts[0].Genre)
}

func TestGetPodcastEpisodes(t *testing.T) {
	feedXML := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Show</title>
<item><title>Ep 1</title><enclosure url="https://example.com/1.mp3" type="audio/mpeg"/></item>
<item><title>No audio here</title></item>
</channel></rss>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	episodes, err := client.GetPodcastEpisodes(context.Background(), server.URL+"/feed.xml")
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "Ep 1", episodes[0].Title)
}

func TestGetPodcastEpisodesBlockedFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	_, err := client.GetPodcastEpisodes(context.Background(), server.URL+"/feed.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFeedBlocked)
	assert.True(t, IsFeedUnavailable(err))
}

func TestGetPodcastEpisodesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	_, err := client.GetPodcastEpisodes(context.Background(), server.URL+"/feed.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.False(t, errors.Is(err, ErrFeedBlocked))
}

func TestGetJSONRetriesOnRateLimit(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)

	podcasts, err := client.SearchPodcasts(context.Background(), "retry me", 10)
	require.NoError(t, err)
	assert.Len(t, podcasts, 2)
	assert.Equal(t, int32(2), hits.Load())
}

func TestInvalidateCatalogClearsOnlyCatalogKeys(t *testing.T) {
	kv := store.NewMemoryStore()
	ttlCache := cache.New(kv)
	client := NewClient(Config{RetryBackoff: time.Millisecond}, ttlCache)

	require.NoError(t, ttlCache.Set("search_go_10", "x"))
	require.NoError(t, ttlCache.Set("episodes_https://example.com/feed.xml", "y"))
	require.NoError(t, kv.Set("playbackPosition", []byte(`{}`)))

	require.NoError(t, client.InvalidateCatalog())

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"playbackPosition"}, keys)
}
