package models

import "time"

// RegistrationProgress is the durable checkpoint for an in-flight
// registration. One row per user, overwritten on every successful field
// collection and deleted on commit or explicit restart. It exists only so a
// session can resume; it is not an audit log.
type RegistrationProgress struct {
	UserID           int64     `gorm:"primaryKey" json:"user_id"`
	CurrentStage     string    `gorm:"size:50;not null" json:"current_stage"`
	UserData         string    `gorm:"type:text" json:"user_data"` // serialized engine draft
	TelegramUsername string    `gorm:"size:100" json:"telegram_username"`
	CreatedDate      time.Time `gorm:"autoCreateTime" json:"created_date"`
	LastUpdated      time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}
