package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Input modalities for a mood record.
const (
	InputTypeText    = "text"
	InputTypeGallery = "gallery"
	InputTypeCamera  = "camera"
)

// MoodRecord is one journal entry. UserMood is non-empty and sorted by
// descending score at creation time; the first element is the dominant
// emotion. Records are never mutated and are deleted once strictly older
// than the retention window.
type MoodRecord struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	UserMood    EmotionScores `gorm:"type:jsonb;not null" json:"user_mood"`
	InputType   string        `gorm:"type:varchar(20);not null" json:"input_type"`
	UserInput   string        `gorm:"type:text" json:"user_input"`
	ImageURL    string        `json:"image_url,omitempty"`
	StoragePath string        `json:"storage_path,omitempty"`
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`
}

// IDs are generated app side so no database extension is required.
func (m *MoodRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// DominantEmotion returns the top emotion label, or empty when the record
// carries no mood snapshot.
func (m *MoodRecord) DominantEmotion() string {
	if len(m.UserMood) == 0 {
		return ""
	}
	return m.UserMood[0].Emotion
}
