package models

import "time"

// ProfileStatus is the lifecycle state of a committed profile.
type ProfileStatus string

const (
	ProfileStatusActive    ProfileStatus = "active"
	ProfileStatusSuspended ProfileStatus = "suspended"
)

// UserProfile is the finalized registration record, created exactly once at
// commit time. Immutable afterwards except for the referral counter and
// status.
type UserProfile struct {
	UserID           int64         `gorm:"primaryKey" json:"user_id"`
	TelegramUsername string        `gorm:"size:100" json:"telegram_username"`
	Email            string        `gorm:"size:255" json:"email"`
	ReferralCode     string        `gorm:"size:20;uniqueIndex;not null" json:"referral_code"`
	InvitedBy        *string       `gorm:"size:20;index" json:"invited_by,omitempty"` // inviter's referral code
	FullName         string        `gorm:"size:200" json:"full_name"`
	Country          string        `gorm:"size:100" json:"country"`
	Gender           string        `gorm:"size:10" json:"gender"`
	BirthYear        int           `json:"birth_year"`
	PhoneNumber      string        `gorm:"size:20" json:"phone_number"` // E.164
	TotalReferrals   int           `gorm:"default:0" json:"total_referrals"`
	Status           ProfileStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	RegistrationDate time.Time     `gorm:"autoCreateTime" json:"registration_date"`
	LastUpdated      time.Time     `gorm:"autoUpdateTime" json:"last_updated"`

	Links   []UserLink   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"links,omitempty"`
	Payment *UserPayment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"payment,omitempty"`
}

// UserLink is one social-media URL attached to a profile. Insertion order is
// display order.
type UserLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Platform  string    `gorm:"size:50;not null" json:"platform"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	AddedDate time.Time `gorm:"autoCreateTime" json:"added_date"`
}

// Payment method selectors as rendered to the user.
const (
	PaymentMethodWallet   = "electronic_wallet"
	PaymentMethodTransfer = "money_transfer"
)

// UserPayment is the single payout record for a profile. Exactly one of the
// wallet or transfer field groups is populated, keyed by PaymentMethod.
type UserPayment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        int64  `gorm:"uniqueIndex;not null" json:"user_id"`
	PaymentMethod string `gorm:"size:50;not null" json:"payment_method"`

	WalletType    string `gorm:"size:100" json:"wallet_type,omitempty"`
	WalletAddress string `gorm:"size:500" json:"wallet_address,omitempty"`

	TransferFullName string    `gorm:"size:200" json:"transfer_full_name,omitempty"`
	TransferPhone    string    `gorm:"size:20" json:"transfer_phone,omitempty"`
	TransferLocation string    `gorm:"size:200" json:"transfer_location,omitempty"`
	TransferCompany  string    `gorm:"size:100" json:"transfer_company,omitempty"`
	SetupDate        time.Time `gorm:"autoCreateTime" json:"setup_date"`
}
