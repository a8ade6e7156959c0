package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/repository"
)

func newTestYouTubeService(serverURL string, cache repository.CacheRepository) *YouTubeService {
	return &YouTubeService{
		apiKey:   "test-key",
		baseURL:  serverURL,
		client:   &http.Client{Timeout: 5 * time.Second},
		cache:    cache,
		cacheTTL: time.Hour,
		now:      time.Now,
	}
}

func TestResolve(t *testing.T) {
	t.Run("maps the first search item", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("q"); got != "Artist - Song official audio" {
				t.Errorf("query = %q", got)
			}
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"dQw4w9WgXcQ"},"snippet":{"title":"Song","channelTitle":"Artist"}}]}`)
		}))
		defer server.Close()

		s := newTestYouTubeService(server.URL, newFakeCacheRepo())
		ref, err := s.Resolve(context.Background(), "Artist - Song official audio")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if ref == nil || ref.VideoID != "dQw4w9WgXcQ" {
			t.Fatalf("ref = %+v", ref)
		}
		if want := "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"; ref.Thumbnail != want {
			t.Errorf("thumbnail = %q, want %q", ref.Thumbnail, want)
		}
	})

	t.Run("zero results yields nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items":[]}`)
		}))
		defer server.Close()

		s := newTestYouTubeService(server.URL, newFakeCacheRepo())
		ref, err := s.Resolve(context.Background(), "something obscure")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if ref != nil {
			t.Errorf("ref = %+v, want nil", ref)
		}
	})

	t.Run("item without a video id is a miss", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items":[{"id":{},"snippet":{"title":"A channel result","channelTitle":"Someone"}}]}`)
		}))
		defer server.Close()

		s := newTestYouTubeService(server.URL, newFakeCacheRepo())
		ref, err := s.Resolve(context.Background(), "some query")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if ref != nil {
			t.Errorf("ref = %+v, want nil so callers keep the placeholder", ref)
		}
	})

	t.Run("missing API key skips the network", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer server.Close()

		s := newTestYouTubeService(server.URL, newFakeCacheRepo())
		s.apiKey = ""
		ref, err := s.Resolve(context.Background(), "anything")
		if err != nil || ref != nil {
			t.Errorf("ref = %+v, err = %v; want nil, nil", ref, err)
		}
		if atomic.LoadInt32(&hits) != 0 {
			t.Errorf("network was hit despite missing key")
		}
	})

	t.Run("provider error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		s := newTestYouTubeService(server.URL, newFakeCacheRepo())
		if _, err := s.Resolve(context.Background(), "anything"); err == nil {
			t.Errorf("want error on provider failure")
		}
	})
}

func trendingPayload(t *testing.T, videos []models.VideoRef) []byte {
	t.Helper()
	b, err := json.Marshal(videos)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFetchTrending(t *testing.T) {
	live := `{"items":[{"id":"liveVideo01","snippet":{"title":"Fresh Hit","channelTitle":"Channel"}}]}`

	t.Run("fresh cache skips the network", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			fmt.Fprint(w, live)
		}))
		defer server.Close()

		cached := []models.VideoRef{{VideoID: "cachedVid01", Title: "Cached Hit"}}
		cache := newFakeCacheRepo()
		cache.entries["trending_music_US"] = &models.TrendingCache{
			CacheKey:  "trending_music_US",
			Data:      trendingPayload(t, cached),
			UpdatedAt: time.Now().Add(-10 * time.Minute),
		}

		s := newTestYouTubeService(server.URL, cache)
		videos, err := s.FetchTrending(context.Background(), "US")
		if err != nil {
			t.Fatalf("FetchTrending: %v", err)
		}
		if len(videos) != 1 || videos[0].VideoID != "cachedVid01" {
			t.Errorf("videos = %+v, want the cached entry", videos)
		}
		if atomic.LoadInt32(&hits) != 0 {
			t.Errorf("network was hit with a fresh cache")
		}
	})

	t.Run("expired cache refreshes and stores", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("regionCode"); got != "KR" {
				t.Errorf("regionCode = %q", got)
			}
			if got := r.URL.Query().Get("videoCategoryId"); got != "10" {
				t.Errorf("videoCategoryId = %q", got)
			}
			fmt.Fprint(w, live)
		}))
		defer server.Close()

		cache := newFakeCacheRepo()
		cache.entries["trending_music_KR"] = &models.TrendingCache{
			CacheKey:  "trending_music_KR",
			Data:      trendingPayload(t, []models.VideoRef{{VideoID: "oldVideo001"}}),
			UpdatedAt: time.Now().Add(-2 * time.Hour),
		}

		s := newTestYouTubeService(server.URL, cache)
		videos, err := s.FetchTrending(context.Background(), "KR")
		if err != nil {
			t.Fatalf("FetchTrending: %v", err)
		}
		if len(videos) != 1 || videos[0].VideoID != "liveVideo01" {
			t.Errorf("videos = %+v, want live data", videos)
		}
		if cache.puts != 1 {
			t.Errorf("cache puts = %d, want 1", cache.puts)
		}
	})

	t.Run("stale cache beats a live failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cache := newFakeCacheRepo()
		cache.entries["trending_music_US"] = &models.TrendingCache{
			CacheKey:  "trending_music_US",
			Data:      trendingPayload(t, []models.VideoRef{{VideoID: "staleVid001"}}),
			UpdatedAt: time.Now().Add(-48 * time.Hour),
		}

		s := newTestYouTubeService(server.URL, cache)
		videos, err := s.FetchTrending(context.Background(), "US")
		if err != nil {
			t.Fatalf("FetchTrending: %v", err)
		}
		if len(videos) != 1 || videos[0].VideoID != "staleVid001" {
			t.Errorf("videos = %+v, want the stale cache", videos)
		}
	})

	t.Run("no cache and live failure errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		s := newTestYouTubeService(server.URL, newFakeCacheRepo())
		if _, err := s.FetchTrending(context.Background(), "US"); err == nil {
			t.Errorf("want error when nothing can be served")
		}
	})

	t.Run("regions cache independently", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"items":[{"id":"vid-%s","snippet":{"title":"Hit","channelTitle":"C"}}]}`,
				r.URL.Query().Get("regionCode"))
		}))
		defer server.Close()

		cache := newFakeCacheRepo()
		s := newTestYouTubeService(server.URL, cache)
		if _, err := s.FetchTrending(context.Background(), "US"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.FetchTrending(context.Background(), "KR"); err != nil {
			t.Fatal(err)
		}
		if _, ok := cache.entries["trending_music_US"]; !ok {
			t.Errorf("missing US cache entry")
		}
		if _, ok := cache.entries["trending_music_KR"]; !ok {
			t.Errorf("missing KR cache entry")
		}
	})
}
