// services/registration.go
package services

import (
	"log"
	"strings"
	"time"

	"github.com/AmmarAssaf/renderbot/models"
	"github.com/AmmarAssaf/renderbot/validators"
	"gorm.io/gorm"
)

// RegistrationData is everything a finished draft contributes to the durable
// commit.
type RegistrationData struct {
	UserID           int64
	TelegramUsername string
	Email            string
	InvitedBy        *string
	FullName         string
	Country          string
	Gender           string
	BirthYear        int
	PhoneNumber      string

	Facebook  []string
	Instagram []string
	YouTube   []string
	Other     []string

	PaymentMethod    string
	WalletType       string
	WalletAddress    string
	TransferFullName string
	TransferPhone    string
	TransferLocation string
	TransferCompany  string
}

// RegistrationService performs the one-shot commit of a finished draft and
// serves committed-profile reads.
type RegistrationService struct {
	DB        *gorm.DB
	Referrals *ReferralService
	Progress  *ProgressService
}

func NewRegistrationService(db *gorm.DB, referrals *ReferralService, progress *ProgressService) *RegistrationService {
	return &RegistrationService{DB: db, Referrals: referrals, Progress: progress}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// Commit writes the profile, all link rows, the payment row, and removes the
// checkpoint in one transaction. The inviter's referral counter is bumped
// afterwards as a separate best-effort statement. Returns the new profile's
// referral code.
//
// A referral-code collision slipping past the generator's pre-check is
// absorbed here: the unique index rejects the insert and the whole
// transaction is retried with a fresh code.
func (s *RegistrationService) Commit(data RegistrationData) (string, error) {
	var code string
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err = s.Referrals.GenerateUniqueCode()
		if err != nil {
			return "", err
		}
		err = s.commitOnce(data, code)
		if isUniqueViolation(err) {
			log.Printf("⚠️ referral code %s collided at commit, retrying", code)
			continue
		}
		break
	}
	if err != nil {
		return "", err
	}

	if data.InvitedBy != nil && *data.InvitedBy != "" {
		if incErr := s.Referrals.IncrementReferralCount(*data.InvitedBy); incErr != nil {
			log.Printf("❌ failed to bump referral count for %s: %v", *data.InvitedBy, incErr)
		}
	}

	log.Printf("✅ committed registration for user %d (referral code %s)", data.UserID, code)
	return code, nil
}

func (s *RegistrationService) commitOnce(data RegistrationData, code string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		profile := models.UserProfile{
			UserID:           data.UserID,
			TelegramUsername: data.TelegramUsername,
			Email:            data.Email,
			ReferralCode:     code,
			InvitedBy:        data.InvitedBy,
			FullName:         data.FullName,
			Country:          data.Country,
			Gender:           data.Gender,
			BirthYear:        data.BirthYear,
			PhoneNumber:      data.PhoneNumber,
			Status:           models.ProfileStatusActive,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		addLinks := func(platform string, urls []string) error {
			for _, url := range urls {
				link := models.UserLink{UserID: data.UserID, Platform: platform, URL: url}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
			return nil
		}
		if err := addLinks("Facebook", data.Facebook); err != nil {
			return err
		}
		if err := addLinks("Instagram", data.Instagram); err != nil {
			return err
		}
		if err := addLinks("YouTube", data.YouTube); err != nil {
			return err
		}
		for _, url := range data.Other {
			link := models.UserLink{UserID: data.UserID, Platform: validators.InferPlatform(url), URL: url}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		payment := models.UserPayment{
			UserID:        data.UserID,
			PaymentMethod: data.PaymentMethod,
		}
		if data.PaymentMethod == models.PaymentMethodWallet {
			payment.WalletType = data.WalletType
			payment.WalletAddress = data.WalletAddress
		} else {
			payment.TransferFullName = data.TransferFullName
			payment.TransferPhone = data.TransferPhone
			payment.TransferLocation = data.TransferLocation
			payment.TransferCompany = data.TransferCompany
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return tx.Delete(&models.RegistrationProgress{}, "user_id = ?", data.UserID).Error
	})
}

// Profile loads a committed profile with its links and payment record.
func (s *RegistrationService) Profile(userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.DB.Preload("Links", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Preload("Payment").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// BotStats summarizes registration activity for the owner's /stats command.
type BotStats struct {
	TotalUsers         int64
	ActiveUsers        int64
	TotalReferrals     int64
	TodayRegistrations int64
	TopReferrers       []models.UserProfile
}

func (s *RegistrationService) Stats(now time.Time) (BotStats, error) {
	var stats BotStats
	if err := s.DB.Model(&models.UserProfile{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.UserProfile{}).
		Where("status = ?", models.ProfileStatusActive).
		Count(&stats.ActiveUsers).Error; err != nil {
		return stats, err
	}
	var total struct{ Sum int64 }
	if err := s.DB.Model(&models.UserProfile{}).
		Select("COALESCE(SUM(total_referrals), 0) AS sum").
		Scan(&total).Error; err != nil {
		return stats, err
	}
	stats.TotalReferrals = total.Sum
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.DB.Model(&models.UserProfile{}).
		Where("registration_date >= ?", dayStart).
		Count(&stats.TodayRegistrations).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Select("full_name", "total_referrals").
		Where("total_referrals > 0").
		Order("total_referrals DESC").
		Limit(5).
		Find(&stats.TopReferrers).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
