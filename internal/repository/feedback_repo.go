package repository

import (
	"gorm.io/gorm"

	"github.com/neocaptain/Rhythmish/internal/database"
	"github.com/neocaptain/Rhythmish/internal/models"
)

type FeedbackRepository interface {
	CreateFeedback(event *models.FeedbackEvent) error
	GetFeedbackForUser(userID uint) ([]models.FeedbackEvent, error)
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepository() FeedbackRepository {
	return &feedbackRepo{db: database.DB}
}

func (r *feedbackRepo) CreateFeedback(event *models.FeedbackEvent) error {
	if event.Type == "" {
		event.Type = models.FeedbackDislikeStyle
	}
	return r.db.Create(event).Error
}

func (r *feedbackRepo) GetFeedbackForUser(userID uint) ([]models.FeedbackEvent, error) {
	var events []models.FeedbackEvent
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.FeedbackEvent{}
	}
	return events, nil
}
