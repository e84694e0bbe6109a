// services/referral.go
package services

import (
	"crypto/rand"
	"errors"
	"log"
	"strings"

	"github.com/AmmarAssaf/renderbot/models"
	"gorm.io/gorm"
)

const (
	referralCodeLength   = 8
	referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts      = 10

	// Referral codes shorter than this are rejected before any lookup.
	minReferralCodeInput = 3
)

// ReferralService owns referral-code issuance and attribution counters.
// Uniqueness is ultimately enforced by the unique index on
// user_profiles.referral_code; the generator's pre-check only keeps the
// expected retry count at zero.
type ReferralService struct {
	DB *gorm.DB
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{DB: db}
}

func randomReferralCode() string {
	buf := make([]byte, referralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	for i, b := range buf {
		buf[i] = referralCodeAlphabet[int(b)%len(referralCodeAlphabet)]
	}
	return string(buf)
}

// GenerateUniqueCode produces an 8-character uppercase alphanumeric code not
// currently assigned to any profile.
func (s *ReferralService) GenerateUniqueCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := randomReferralCode()
		var count int64
		if err := s.DB.Model(&models.UserProfile{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique referral code")
}

// Canonical normalizes user-supplied code input to the stored form.
func Canonical(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCodeValid reports whether a referral code belongs to a committed
// profile. Input is case-insensitive; implausibly short input short-circuits
// without a lookup.
func (s *ReferralService) IsCodeValid(code string) (bool, error) {
	code = Canonical(code)
	if len(code) < minReferralCodeInput {
		return false, nil
	}
	var count int64
	if err := s.DB.Model(&models.UserProfile{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// InviterName resolves the display name behind a referral code for the
// greeting, falling back to a generic label.
func (s *ReferralService) InviterName(code string) string {
	var profile models.UserProfile
	err := s.DB.Select("full_name").First(&profile, "referral_code = ?", Canonical(code)).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ failed to resolve inviter for code %s: %v", code, err)
		}
		return "an existing member"
	}
	return profile.FullName
}

// IncrementReferralCount bumps the inviter's counter with a single atomic
// UPDATE. Best effort: it runs after the invitee's commit and must never
// fail that commit.
func (s *ReferralService) IncrementReferralCount(code string) error {
	return s.DB.Model(&models.UserProfile{}).
		Where("referral_code = ?", Canonical(code)).
		UpdateColumn("total_referrals", gorm.Expr("total_referrals + 1")).Error
}
