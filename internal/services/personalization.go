package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/neocaptain/Rhythmish/internal/models"
	"github.com/neocaptain/Rhythmish/internal/moods"
	"github.com/neocaptain/Rhythmish/internal/repository"
)

// Mixtape is a personalized message plus an optional fresh recommendation
// set. Result is nil when personalization degraded or the user has no
// liked songs; when present it is NOT enriched yet.
type Mixtape struct {
	Message string                 `json:"message"`
	Result  *models.AnalysisResult `json:"result,omitempty"`
}

// Personalizer blends mood history and liked-song history into a tailored
// message and a re-prompt for the classifier. Every failure degrades to a
// fallback; nothing here ever blocks the rest of the flow.
type Personalizer struct {
	moodRepo   repository.MoodRepository
	likedRepo  repository.LikedSongRepository
	classifier MoodClassifier
}

func NewPersonalizer(moodRepo repository.MoodRepository, likedRepo repository.LikedSongRepository, classifier MoodClassifier) *Personalizer {
	return &Personalizer{
		moodRepo:   moodRepo,
		likedRepo:  likedRepo,
		classifier: classifier,
	}
}

// Tone tags for the (current category x previous category) matrix.
const (
	ToneEncouraging = "encouraging"
	ToneComforting  = "comforting"
	ToneRecharge    = "recharge"
	ToneUplifting   = "uplifting"
	ToneNeutral     = "neutral"
)

const genericFallbackMessage = "Tuning into your rhythm..."

var toneMessages = map[string]string{
	ToneEncouraging: "Still riding that %s wave! Here is an energetic mix to keep the momentum going after \"%s\".",
	ToneComforting:  "Feeling %s again today. Here is something gentle to sit with, the way \"%s\" kept you company.",
	ToneRecharge:    "A %s turn after brighter days. Let's slow things down and recharge with sounds softer than \"%s\".",
	ToneUplifting:   "The clouds are lifting into a %s sky. Time for something brighter than \"%s\".",
	ToneNeutral:     "AI has tuned into your vibration. A %s mix inspired by \"%s\".",
}

// toneFor maps the coarse category pair to a message tone. Combinations
// outside the 4-way matrix get the neutral tone.
func toneFor(current, previous moods.Category) string {
	switch {
	case current == moods.Positive && previous == moods.Positive:
		return ToneEncouraging
	case current == moods.Negative && previous == moods.Negative:
		return ToneComforting
	case current == moods.Negative && previous == moods.Positive:
		return ToneRecharge
	case current == moods.Positive && previous == moods.Negative:
		return ToneUplifting
	default:
		return ToneNeutral
	}
}

const mixtapePrompt = `I'm currently feeling %s. The last song I truly loved was "%s" by %s. Curate a personalized mixtape that bridges that feeling and that taste. Recommend exactly 5 songs.`

// BuildMessage derives the contextual mixtape message for a user. The
// manual override, when non-empty, replaces the most recent recorded mood.
func (p *Personalizer) BuildMessage(ctx context.Context, userID uint, manualMoodOverride string) string {
	message, _, _ := p.resolve(ctx, userID, manualMoodOverride)
	return message
}

// BuildMixtape builds the message and delegates a synthetic prompt to the
// classifier for a fresh 5-song set. The result is left unenriched; the
// caller runs the enrichment pipeline.
func (p *Personalizer) BuildMixtape(ctx context.Context, userID uint, manualMoodOverride string) *Mixtape {
	message, currentMood, lastLiked := p.resolve(ctx, userID, manualMoodOverride)
	if lastLiked == nil {
		return &Mixtape{Message: message}
	}

	prompt := fmt.Sprintf(mixtapePrompt, currentMood, lastLiked.Title, lastLiked.Artist)
	result, err := p.classifier.Classify(ctx, prompt, nil)
	if err != nil {
		log.Printf("⚠️ Mixtape classification degraded for user %d: %v", userID, err)
		return &Mixtape{Message: message}
	}
	return &Mixtape{Message: message, Result: result}
}

// resolve runs the personalization state machine: current mood, last liked
// song, category matrix, template. lastLiked is nil when the user has no
// likes or the lookup degraded.
func (p *Personalizer) resolve(ctx context.Context, userID uint, manualMoodOverride string) (message, currentMood string, lastLiked *models.LikedSong) {
	currentMood = p.currentMood(userID, manualMoodOverride)

	lastLiked, err := p.likedRepo.GetMostRecentLiked(userID)
	if err != nil {
		log.Printf("⚠️ Liked song lookup degraded for user %d: %v", userID, err)
		return genericFallbackMessage, currentMood, nil
	}
	if lastLiked == nil {
		return fmt.Sprintf("We've curated a special rhythm for your %s mood.", currentMood), currentMood, nil
	}

	currentCategory := moods.CategoryOf(currentMood)
	previousCategory := moods.Neutral
	if len(lastLiked.UserMood) > 0 {
		previousCategory = moods.CategoryOf(lastLiked.UserMood[0].Emotion)
	}

	tone := toneFor(currentCategory, previousCategory)
	message = fmt.Sprintf(toneMessages[tone], strings.ToLower(currentMood), lastLiked.Title)
	return message, currentMood, lastLiked
}

func (p *Personalizer) currentMood(userID uint, manualMoodOverride string) string {
	if manualMoodOverride != "" {
		return manualMoodOverride
	}
	records, err := p.moodRepo.GetRecentMoodRecords(userID, 1)
	if err != nil {
		log.Printf("⚠️ Mood history lookup degraded for user %d: %v", userID, err)
		return moods.DefaultLabel
	}
	if len(records) == 0 || len(records[0].UserMood) == 0 {
		return moods.DefaultLabel
	}
	return records[0].UserMood[0].Emotion
}
