package repository

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/neocaptain/Rhythmish/internal/database"
	"github.com/neocaptain/Rhythmish/internal/models"
)

type MoodRepository interface {
	CreateMoodRecord(record *models.MoodRecord) error
	GetRecentMoodRecords(userID uint, limit int) ([]models.MoodRecord, error)
	CountMoodRecords(userID uint) (int64, error)
	DeleteOlderThan(userID uint, cutoff time.Time) (int64, error)
}

type moodRepo struct {
	db *gorm.DB
}

func NewMoodRepository() MoodRepository {
	return &moodRepo{db: database.DB}
}

func (r *moodRepo) CreateMoodRecord(record *models.MoodRecord) error {
	return r.db.Create(record).Error
}

func (r *moodRepo) GetRecentMoodRecords(userID uint, limit int) ([]models.MoodRecord, error) {
	var records []models.MoodRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.MoodRecord{}
	}
	return records, nil
}

func (r *moodRepo) CountMoodRecords(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.MoodRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DeleteOlderThan removes records strictly older than the cutoff. A record
// created exactly at the cutoff survives.
func (r *moodRepo) DeleteOlderThan(userID uint, cutoff time.Time) (int64, error) {
	res := r.db.Where("user_id = ? AND created_at < ?", userID, cutoff).
		Delete(&models.MoodRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[MoodRepository] Removed %d expired records for user %d", res.RowsAffected, userID)
	}
	return res.RowsAffected, nil
}
