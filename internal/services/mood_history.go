package services

import (
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/neocaptain/Rhythmish/internal/config"
	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/repository"
)

// saveGuardWindow bounds how long an idempotency key suppresses repeat
// saves of the same analysis.
const saveGuardWindow = 10 * time.Minute

// MoodHistoryService persists completed analyses as mood records. Writes
// are fire-and-forget: failures are logged, never surfaced.
type MoodHistoryService struct {
	moodRepo  repository.MoodRepository
	retention time.Duration
	now       func() time.Time

	mu    sync.Mutex
	saved map[string]time.Time
}

func NewMoodHistoryService(moodRepo repository.MoodRepository) *MoodHistoryService {
	days := 30
	if config.GlobalConfig != nil && config.GlobalConfig.MoodRetentionDays > 0 {
		days = config.GlobalConfig.MoodRetentionDays
	}
	return &MoodHistoryService{
		moodRepo:  moodRepo,
		retention: time.Duration(days) * 24 * time.Hour,
		now:       time.Now,
		saved:     make(map[string]time.Time),
	}
}

// SaveAnalysis projects an analysis into a MoodRecord and appends it,
// cleaning up expired history first. Re-invocations with the same result
// within the guard window are suppressed by the idempotency key, so
// re-render driven repeats cannot duplicate records.
func (s *MoodHistoryService) SaveAnalysis(userID uint, result *models.AnalysisResult, inputType, userInput, imageURL, storagePath string) {
	if result == nil {
		return
	}
	if !s.markSaved(saveKey(userID, result)) {
		log.Printf("[MoodHistory] Duplicate save suppressed for user %d", userID)
		return
	}

	cutoff := s.now().Add(-s.retention)
	if _, err := s.moodRepo.DeleteOlderThan(userID, cutoff); err != nil {
		log.Printf("⚠️ Mood history cleanup failed for user %d: %v", userID, err)
	}

	record := MoodRecordFromAnalysis(userID, result, inputType, userInput, imageURL, storagePath)
	if err := s.moodRepo.CreateMoodRecord(record); err != nil {
		log.Printf("❌ Failed to save mood record for user %d: %v", userID, err)
	}
}

// markSaved registers the key, pruning expired entries. Returns false when
// the key was already present.
func (s *MoodHistoryService) markSaved(key string) bool {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, t := range s.saved {
		if now.Sub(t) > saveGuardWindow {
			delete(s.saved, k)
		}
	}
	if _, ok := s.saved[key]; ok {
		return false
	}
	s.saved[key] = now
	return true
}

// saveKey fingerprints one analysis for one user. The same result saved
// twice hashes identically; a fresh analysis produces a fresh key.
func saveKey(userID uint, result *models.AnalysisResult) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s", userID, result.Headline, result.Summary)
	for _, e := range result.Emotions {
		fmt.Fprintf(h, "|%s=%d", e.Label, e.Value)
	}
	for _, song := range result.Recommendations {
		fmt.Fprintf(h, "|%s/%s", song.Title, song.Artist)
	}
	return fmt.Sprintf("%x", h.Sum64())
}

// MoodRecordFromAnalysis builds the persisted projection of an analysis.
// The emotion list is sorted by descending score so the dominant emotion
// is always first.
func MoodRecordFromAnalysis(userID uint, result *models.AnalysisResult, inputType, userInput, imageURL, storagePath string) *models.MoodRecord {
	scores := make(models.EmotionScores, 0, len(result.Emotions))
	for _, e := range result.Emotions {
		scores = append(scores, models.EmotionScore{Emotion: e.Label, Score: e.Value})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if inputType == "" {
		inputType = models.InputTypeText
	}

	return &models.MoodRecord{
		UserID:      userID,
		UserMood:    scores,
		InputType:   inputType,
		UserInput:   userInput,
		ImageURL:    imageURL,
		StoragePath: storagePath,
	}
}
