package repository

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/neocaptain/Rhythmish/internal/models"
)

// newTestDB opens a private in-memory database per test so repository
// queries run against real SQL instead of a reimplementation.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.MoodRecord{},
		&models.LikedSong{},
		&models.FeedbackEvent{},
		&models.PlaylistEntry{},
		&models.TrendingCache{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
