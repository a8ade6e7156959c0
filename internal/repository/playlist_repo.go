package repository

import (
	"gorm.io/gorm"

	"github.com/neocaptain/Rhythmish/internal/database"
	"github.com/neocaptain/Rhythmish/internal/models"
)

type PlaylistRepository interface {
	AddEntry(entry *models.PlaylistEntry) error
	GetEntries(userID uint, playlistName string) ([]models.PlaylistEntry, error)
}

type playlistRepo struct {
	db *gorm.DB
}

func NewPlaylistRepository() PlaylistRepository {
	return &playlistRepo{db: database.DB}
}

func (r *playlistRepo) AddEntry(entry *models.PlaylistEntry) error {
	return r.db.Create(entry).Error
}

func (r *playlistRepo) GetEntries(userID uint, playlistName string) ([]models.PlaylistEntry, error) {
	q := r.db.Where("user_id = ?", userID)
	if playlistName != "" {
		q = q.Where("playlist_name = ?", playlistName)
	}
	var entries []models.PlaylistEntry
	err := q.Order("added_at DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.PlaylistEntry{}
	}
	return entries, nil
}
