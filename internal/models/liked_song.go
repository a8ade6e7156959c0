package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikedSong is a denormalized favorite: a snapshot of the recommendation
// plus the liking user's emotion vector at like time. At most one document
// exists per (user, title, artist); unliking deletes the row.
type LikedSong struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uint          `gorm:"not null;uniqueIndex:idx_liked_user_title_artist" json:"user_id"`
	Title          string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_liked_user_title_artist" json:"title"`
	Artist         string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_liked_user_title_artist" json:"artist"`
	MatchScore     int           `json:"match_score"`
	YoutubeVideoID string        `gorm:"type:varchar(20)" json:"youtube_video_id"`
	SongMoods      EmotionList   `gorm:"type:jsonb" json:"song_moods"`
	UserMood       EmotionScores `gorm:"type:jsonb" json:"user_mood"`
	Tags           StringList    `gorm:"type:jsonb" json:"tags"`
	Duration       string        `gorm:"type:varchar(10)" json:"duration"`
	CreatedAt      time.Time     `gorm:"index" json:"created_at"`
}

func (s *LikedSong) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
