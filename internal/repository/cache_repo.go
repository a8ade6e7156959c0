package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neocaptain/Rhythmish/internal/database"
	"github.com/neocaptain/Rhythmish/internal/models"
)

// CacheRepository is the persistent key-value store behind the trending
// video cache. Reads and writes to one key are read-modify-write; callers
// must not assume atomicity across the pair.
type CacheRepository interface {
	// GetEntry returns (nil, nil) when the key is absent.
	GetEntry(key string) (*models.TrendingCache, error)
	PutEntry(key string, data []byte) error
}

type cacheRepo struct {
	db *gorm.DB
}

func NewCacheRepository() CacheRepository {
	return &cacheRepo{db: database.DB}
}

func (r *cacheRepo) GetEntry(key string) (*models.TrendingCache, error) {
	var entry models.TrendingCache
	err := r.db.First(&entry, "cache_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *cacheRepo) PutEntry(key string, data []byte) error {
	entry := models.TrendingCache{
		CacheKey:  key,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		UpdateAll: true,
	}).Create(&entry).Error
}
