package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/neocaptain/Rhythmish/internal/config"
	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/repository"
)

const trendingCacheKeyPrefix = "trending_music_"

type VideoLookup interface {
	// Resolve maps a free-text search query to the first matching video.
	// Returns (nil, nil) on zero results, a result carrying no video id,
	// or a missing API key; callers treat nil as "keep the placeholder
	// thumbnail", never as fatal.
	Resolve(ctx context.Context, query string) (*models.VideoRef, error)
	// FetchTrending returns region scoped most-popular music videos,
	// served from a 1-hour cache when fresh. On provider error any cached
	// entry wins regardless of age; empty only when there is no cache and
	// the live call failed too.
	FetchTrending(ctx context.Context, regionCode string) ([]models.VideoRef, error)
}

type YouTubeService struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	cache    repository.CacheRepository
	cacheTTL time.Duration
	now      func() time.Time
}

func NewYouTubeService(cache repository.CacheRepository) VideoLookup {
	s := &YouTubeService{
		baseURL:  "https://www.googleapis.com/youtube/v3",
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    cache,
		cacheTTL: time.Hour,
		now:      time.Now,
	}
	if cfg := config.GlobalConfig; cfg != nil {
		s.apiKey = cfg.YouTubeAPIKey
		if cfg.TrendingCacheTTL > 0 {
			s.cacheTTL = time.Duration(cfg.TrendingCacheTTL) * time.Second
		}
	}
	return s
}

func thumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID)
}

func (s *YouTubeService) Resolve(ctx context.Context, query string) (*models.VideoRef, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Add("part", "snippet")
	params.Add("q", query)
	params.Add("type", "video")
	params.Add("maxResults", "1")
	params.Add("key", s.apiKey)

	fullURL := fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api error: status %d", resp.StatusCode)
	}

	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if len(result.Items) == 0 || result.Items[0].ID.VideoID == "" {
		return nil, nil
	}

	item := result.Items[0]
	return &models.VideoRef{
		VideoID:      item.ID.VideoID,
		Title:        item.Snippet.Title,
		Thumbnail:    thumbnailURL(item.ID.VideoID),
		ChannelTitle: item.Snippet.ChannelTitle,
	}, nil
}

func (s *YouTubeService) FetchTrending(ctx context.Context, regionCode string) ([]models.VideoRef, error) {
	key := trendingCacheKeyPrefix + regionCode

	entry, err := s.cache.GetEntry(key)
	if err != nil {
		log.Printf("⚠️ Trending cache read failed for %s: %v", key, err)
		entry = nil
	}

	if entry != nil && s.now().Sub(entry.UpdatedAt) < s.cacheTTL {
		if videos, ok := decodeTrending(entry.Data); ok {
			return videos, nil
		}
	}

	videos, liveErr := s.fetchTrendingLive(ctx, regionCode)
	if liveErr == nil {
		if data, err := json.Marshal(videos); err == nil {
			if err := s.cache.PutEntry(key, data); err != nil {
				log.Printf("⚠️ Trending cache write failed for %s: %v", key, err)
			}
		}
		return videos, nil
	}

	// Stale-but-present cache always beats an empty result.
	if entry != nil {
		if videos, ok := decodeTrending(entry.Data); ok {
			log.Printf("⚠️ Trending lookup failed for %s, serving stale cache: %v", regionCode, liveErr)
			return videos, nil
		}
	}
	return nil, liveErr
}

func decodeTrending(data []byte) ([]models.VideoRef, bool) {
	var videos []models.VideoRef
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, false
	}
	return videos, true
}

func (s *YouTubeService) fetchTrendingLive(ctx context.Context, regionCode string) ([]models.VideoRef, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("youtube api key is not configured")
	}

	params := url.Values{}
	params.Add("part", "snippet")
	params.Add("chart", "mostPopular")
	params.Add("regionCode", regionCode)
	params.Add("videoCategoryId", "10") // Music category
	params.Add("maxResults", "10")
	params.Add("key", s.apiKey)

	fullURL := fmt.Sprintf("%s/videos?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api error: status %d", resp.StatusCode)
	}

	var result struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	videos := make([]models.VideoRef, 0, len(result.Items))
	for _, item := range result.Items {
		videos = append(videos, models.VideoRef{
			VideoID:      item.ID,
			Title:        item.Snippet.Title,
			Thumbnail:    thumbnailURL(item.ID),
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}
	return videos, nil
}
