package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neocaptain/Rhythmish/internal/moods"
	"github.com/neocaptain/Rhythmish/internal/repository"
	"github.com/neocaptain/Rhythmish/internal/utils"
)

// ProfileHandler serves the mood journal history and profile counters.
type ProfileHandler struct {
	moodRepo  repository.MoodRepository
	likedRepo repository.LikedSongRepository
}

func NewProfileHandler(moodRepo repository.MoodRepository, likedRepo repository.LikedSongRepository) *ProfileHandler {
	return &ProfileHandler{
		moodRepo:  moodRepo,
		likedRepo: likedRepo,
	}
}

type historyEntry struct {
	ID        string    `json:"id"`
	Emotion   string    `json:"emotion"`
	Emoji     string    `json:"emoji,omitempty"`
	Color     string    `json:"color,omitempty"`
	InputType string    `json:"input_type"`
	UserInput string    `json:"user_input"`
	ImageURL  string    `json:"image_url,omitempty"`
	TimeAgo   string    `json:"time_ago"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *ProfileHandler) History(c *gin.Context) {
	userID := c.GetUint("user_id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	records, err := h.moodRepo.GetRecentMoodRecords(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load mood history",
		})
		return
	}

	now := time.Now()
	entries := make([]historyEntry, 0, len(records))
	for _, record := range records {
		entry := historyEntry{
			ID:        record.ID,
			Emotion:   record.DominantEmotion(),
			InputType: record.InputType,
			UserInput: record.UserInput,
			ImageURL:  record.ImageURL,
			TimeAgo:   utils.TimeAgo(record.CreatedAt, now),
			CreatedAt: record.CreatedAt,
		}
		if detail, ok := moods.Lookup(entry.Emotion); ok {
			entry.Emoji = detail.Emoji
			entry.Color = detail.Color
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   entries,
	})
}

func (h *ProfileHandler) Stats(c *gin.Context) {
	userID := c.GetUint("user_id")

	moodCount, err := h.moodRepo.CountMoodRecords(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load profile stats",
		})
		return
	}
	likedCount, err := h.likedRepo.CountLikedSongs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load profile stats",
		})
		return
	}

	currentMood := moods.DefaultLabel
	if records, err := h.moodRepo.GetRecentMoodRecords(userID, 1); err == nil && len(records) > 0 {
		if label := records[0].DominantEmotion(); label != "" {
			currentMood = label
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"mood_count":   moodCount,
			"liked_count":  likedCount,
			"current_mood": currentMood,
		},
	})
}
