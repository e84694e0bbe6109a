// services/service_test.go
package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AmmarAssaf/renderbot/models"
)

// newTestDB opens a throwaway database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.UserLink{},
		&models.UserPayment{},
		&models.RegistrationProgress{},
		&models.CommentTask{},
		&models.VerificationTask{},
		&models.UserReward{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seedProfile inserts a minimal committed profile.
func seedProfile(t *testing.T, db *gorm.DB, userID int64, referralCode string) models.UserProfile {
	t.Helper()
	profile := models.UserProfile{
		UserID:       userID,
		FullName:     "Seed User Account",
		ReferralCode: referralCode,
		Status:       models.ProfileStatusActive,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}
