package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/repository"
)

// validResult builds an analysis result that passes schema validation.
func validResult(headline string) *models.AnalysisResult {
	emotions := []models.Emotion{
		{Label: "Joy", Value: 30, Color: "text-yellow-400", Icon: "sentiment_very_satisfied"},
		{Label: "Calm", Value: 70, Color: "text-blue-400", Icon: "water_drop"},
		{Label: "Nostalgia", Value: 45, Color: "text-orange-400", Icon: "history"},
	}
	songs := make([]models.SongRecommendation, 3)
	for i := range songs {
		songs[i] = models.SongRecommendation{
			ID:          fmt.Sprintf("%d", i+1),
			Title:       fmt.Sprintf("Song %d", i+1),
			Artist:      fmt.Sprintf("Artist %d", i+1),
			MatchScore:  95 - i*5,
			Emotions:    emotions,
			Tags:        []string{"#Chill"},
			Duration:    "3:45",
			SearchQuery: fmt.Sprintf("Artist %d - Song %d official audio", i+1, i+1),
		}
	}
	return &models.AnalysisResult{
		Headline:        headline,
		Summary:         "Songs chosen to match the moment.",
		Emotions:        emotions,
		Recommendations: songs,
	}
}

type fakeClassifier struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	result  *models.AnalysisResult
	err     error

	// When non-nil, Classify blocks until the channel closes.
	block chan struct{}
}

func (f *fakeClassifier) Classify(ctx context.Context, userText string, image *ImageInput) (*models.AnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, userText)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrClassifierService, ctx.Err())
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return validResult("A fake but valid mood"), nil
}

func (f *fakeClassifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeLookup struct {
	mu       sync.Mutex
	calls    int
	refs     map[string]*models.VideoRef
	err      error
	failFor  map[string]bool
	trending []models.VideoRef
}

func (f *fakeLookup) Resolve(ctx context.Context, query string) (*models.VideoRef, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.failFor[query] {
		return nil, errors.New("lookup failed")
	}
	return f.refs[query], nil
}

func (f *fakeLookup) FetchTrending(ctx context.Context, regionCode string) ([]models.VideoRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trending, nil
}

type fakeMoodRepo struct {
	mu      sync.Mutex
	records []models.MoodRecord
	err     error
	deleted []time.Time
}

func (f *fakeMoodRepo) CreateMoodRecord(record *models.MoodRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeMoodRepo) GetRecentMoodRecords(userID uint, limit int) ([]models.MoodRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.MoodRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	if out == nil {
		out = []models.MoodRecord{}
	}
	return out, nil
}

func (f *fakeMoodRepo) CountMoodRecords(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMoodRepo) DeleteOlderThan(userID uint, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, cutoff)
	var kept []models.MoodRecord
	var removed int64
	for _, r := range f.records {
		if r.UserID == userID && r.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return removed, nil
}

func (f *fakeMoodRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeLikedRepo struct {
	mu    sync.Mutex
	songs []models.LikedSong
	err   error
}

func (f *fakeLikedRepo) ToggleLike(song *models.LikedSong) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for i, s := range f.songs {
		if s.UserID == song.UserID && s.Title == song.Title && s.Artist == song.Artist {
			f.songs = append(f.songs[:i], f.songs[i+1:]...)
			return false, nil
		}
	}
	f.songs = append(f.songs, *song)
	return true, nil
}

func (f *fakeLikedRepo) GetLikedSongs(userID uint) ([]models.LikedSong, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.LikedSong{}
	for _, s := range f.songs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeLikedRepo) GetMostRecentLiked(userID uint) (*models.LikedSong, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := len(f.songs) - 1; i >= 0; i-- {
		if f.songs[i].UserID == userID {
			s := f.songs[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeLikedRepo) RemoveLikedSong(userID uint, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.songs {
		if s.UserID == userID && s.ID == id {
			f.songs = append(f.songs[:i], f.songs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeLikedRepo) CountLikedSongs(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, s := range f.songs {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeFeedbackRepo struct {
	mu     sync.Mutex
	events []models.FeedbackEvent
	err    error
}

func (f *fakeFeedbackRepo) CreateFeedback(event *models.FeedbackEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeFeedbackRepo) GetFeedbackForUser(userID uint) ([]models.FeedbackEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.FeedbackEvent{}
	for _, e := range f.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePlaylistRepo struct {
	mu      sync.Mutex
	entries []models.PlaylistEntry
	err     error
}

func (f *fakePlaylistRepo) AddEntry(entry *models.PlaylistEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakePlaylistRepo) GetEntries(userID uint, playlistName string) ([]models.PlaylistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.PlaylistEntry{}
	for _, e := range f.entries {
		if e.UserID == userID && (playlistName == "" || e.PlaylistName == playlistName) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	entries map[string]*models.TrendingCache
	getErr  error
	putErr  error
	puts    int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string]*models.TrendingCache)}
}

func (f *fakeCacheRepo) GetEntry(key string) (*models.TrendingCache, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	entry, ok := f.entries[key]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeCacheRepo) PutEntry(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[key] = &models.TrendingCache{CacheKey: key, Data: data, UpdatedAt: time.Now()}
	return nil
}

// Interface conformance for the fakes.
var (
	_ MoodClassifier                 = (*fakeClassifier)(nil)
	_ VideoLookup                    = (*fakeLookup)(nil)
	_ repository.MoodRepository      = (*fakeMoodRepo)(nil)
	_ repository.LikedSongRepository = (*fakeLikedRepo)(nil)
	_ repository.FeedbackRepository  = (*fakeFeedbackRepo)(nil)
	_ repository.PlaylistRepository  = (*fakePlaylistRepo)(nil)
	_ repository.CacheRepository     = (*fakeCacheRepo)(nil)
)
