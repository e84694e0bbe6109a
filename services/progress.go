// services/progress.go
package services

import (
	"errors"

	"github.com/AmmarAssaf/renderbot/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressService persists registration checkpoints so an interrupted
// session can resume. Last write wins; one row per user.
type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// Save upserts the checkpoint for a user.
func (s *ProgressService) Save(userID int64, stage string, userData string, telegramUsername string) error {
	row := models.RegistrationProgress{
		UserID:           userID,
		CurrentStage:     stage,
		UserData:         userData,
		TelegramUsername: telegramUsername,
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_stage", "user_data", "telegram_username", "last_updated"}),
	}).Create(&row).Error
}

// Load returns the stored checkpoint, or nil when the user has none.
func (s *ProgressService) Load(userID int64) (*models.RegistrationProgress, error) {
	var row models.RegistrationProgress
	if err := s.DB.First(&row, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Delete removes the checkpoint after commit or an explicit restart.
func (s *ProgressService) Delete(userID int64) error {
	return s.DB.Delete(&models.RegistrationProgress{}, "user_id = ?", userID).Error
}
