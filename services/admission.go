// services/admission.go
package services

import (
	"errors"

	"github.com/AmmarAssaf/renderbot/models"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyRegistered means the identity already owns a committed
	// profile; the workflow is bypassed.
	ErrAlreadyRegistered = errors.New("user already registered")
	// ErrInvalidReferral means the supplied code resolves to nothing.
	ErrInvalidReferral = errors.New("invalid referral code")
	// ErrNotInvited means no code was supplied and the identity is not on
	// the allow-list.
	ErrNotInvited = errors.New("user not invited")
)

// Admission is a granted entry into the registration workflow.
type Admission struct {
	Privileged  bool   // admitted via the allow-list, no code needed
	Owner       bool   // the configured owner identity
	InviterCode string // canonical referral code used, empty when none
	InviterName string // resolved for the greeting, empty when none
}

// AdmissionService decides whether a session may begin registration. The
// allow-list and owner identity are fixed at construction.
type AdmissionService struct {
	DB        *gorm.DB
	Referrals *ReferralService

	ownerID        int64
	allowedUserIDs map[int64]bool
}

func NewAdmissionService(db *gorm.DB, referrals *ReferralService, ownerID int64, allowedUserIDs []int64) *AdmissionService {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &AdmissionService{
		DB:             db,
		Referrals:      referrals,
		ownerID:        ownerID,
		allowedUserIDs: allowed,
	}
}

// IsOwner reports whether the identity is the configured administrator.
func (s *AdmissionService) IsOwner(userID int64) bool {
	return userID != 0 && userID == s.ownerID
}

// IsRegistered reports whether a committed profile exists for the identity.
func (s *AdmissionService) IsRegistered(userID int64) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.UserProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Decide resolves one of three outcomes for a session: allow-listed,
// admitted by referral code, or rejected. Already-registered identities are
// short-circuited before either path.
func (s *AdmissionService) Decide(userID int64, referralCode string) (Admission, error) {
	registered, err := s.IsRegistered(userID)
	if err != nil {
		return Admission{}, err
	}
	if registered {
		return Admission{}, ErrAlreadyRegistered
	}

	if s.allowedUserIDs[userID] {
		return Admission{Privileged: true, Owner: s.IsOwner(userID)}, nil
	}

	if referralCode == "" {
		return Admission{}, ErrNotInvited
	}

	valid, err := s.Referrals.IsCodeValid(referralCode)
	if err != nil {
		return Admission{}, err
	}
	if !valid {
		return Admission{}, ErrInvalidReferral
	}

	code := Canonical(referralCode)
	return Admission{
		InviterCode: code,
		InviterName: s.Referrals.InviterName(code),
	}, nil
}
