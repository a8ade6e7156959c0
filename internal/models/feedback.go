package models

import (
	"time"
)

// FeedbackDislikeStyle marks a "don't recommend this style" event.
const FeedbackDislikeStyle = "DISLIKE_STYLE"

// FeedbackEvent is an append-only negative signal. It feeds a local
// advisory blacklist; it is never enforced server side.
type FeedbackEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	SongID    string    `gorm:"type:varchar(100)" json:"song_id"`
	Artist    string    `gorm:"type:varchar(255)" json:"artist"`
	Genre     string    `gorm:"type:varchar(100)" json:"genre"`
	Type      string    `gorm:"type:varchar(30);default:'DISLIKE_STYLE'" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// PlaylistEntry is one song added to a named user playlist.
type PlaylistEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	PlaylistName string    `gorm:"type:varchar(100);not null;index" json:"playlist_name"`
	SongID       string    `gorm:"type:varchar(100)" json:"song_id"`
	Title        string    `gorm:"type:varchar(255)" json:"title"`
	AddedAt      time.Time `gorm:"autoCreateTime" json:"added_at"`
}
