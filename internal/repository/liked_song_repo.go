package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/neocaptain/Rhythmish/internal/database"
	"github.com/neocaptain/Rhythmish/internal/models"
)

type LikedSongRepository interface {
	// ToggleLike likes the song when no document exists for the
	// (user, title, artist) tuple, or deletes the existing document.
	// Returns true when the song is liked after the call.
	ToggleLike(song *models.LikedSong) (bool, error)
	GetLikedSongs(userID uint) ([]models.LikedSong, error)
	// GetMostRecentLiked returns (nil, nil) when the user has no likes.
	GetMostRecentLiked(userID uint) (*models.LikedSong, error)
	// RemoveLikedSong is a no-op when the document does not exist.
	RemoveLikedSong(userID uint, id string) error
	CountLikedSongs(userID uint) (int64, error)
}

type likedSongRepo struct {
	db *gorm.DB
}

func NewLikedSongRepository() LikedSongRepository {
	return &likedSongRepo{db: database.DB}
}

func (r *likedSongRepo) ToggleLike(song *models.LikedSong) (bool, error) {
	var existing models.LikedSong
	err := r.db.Where("user_id = ? AND title = ? AND artist = ?",
		song.UserID, song.Title, song.Artist).
		First(&existing).Error

	if err == nil {
		// Already liked: toggle off by deleting, never duplicate.
		if delErr := r.db.Delete(&existing).Error; delErr != nil {
			return true, delErr
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if createErr := r.db.Create(song).Error; createErr != nil {
		return false, createErr
	}
	return true, nil
}

func (r *likedSongRepo) GetLikedSongs(userID uint) ([]models.LikedSong, error) {
	var songs []models.LikedSong
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.LikedSong{}
	}
	return songs, nil
}

func (r *likedSongRepo) GetMostRecentLiked(userID uint) (*models.LikedSong, error) {
	var song models.LikedSong
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&song).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &song, nil
}

func (r *likedSongRepo) RemoveLikedSong(userID uint, id string) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.LikedSong{}).Error
}

func (r *likedSongRepo) CountLikedSongs(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LikedSong{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
