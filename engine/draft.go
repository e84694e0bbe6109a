package engine

import (
	"encoding/json"

	"github.com/AmmarAssaf/renderbot/services"
)

// ReturnTo routes where a field collector hands control back to once its
// value is accepted: the next linear stage, or the edit menu.
type ReturnTo string

const (
	ReturnToLinear   ReturnTo = "linear"
	ReturnToEditMenu ReturnTo = "edit_menu"
)

// SocialBuckets holds collected links per platform in insertion order.
type SocialBuckets struct {
	Facebook  []string `json:"facebook,omitempty"`
	Instagram []string `json:"instagram,omitempty"`
	YouTube   []string `json:"youtube,omitempty"`
	Other     []string `json:"other,omitempty"`
}

func (b SocialBuckets) Total() int {
	return len(b.Facebook) + len(b.Instagram) + len(b.YouTube) + len(b.Other)
}

// bucketHasLink reports whether bucket already holds a link that normalizes
// to the same canonical form. Duplicates are checked per platform: the same
// URL may legitimately appear under two different platforms.
func bucketHasLink(bucket []string, normalized string, normalize func(string) string) bool {
	for _, link := range bucket {
		if normalize(link) == normalized {
			return true
		}
	}
	return false
}

// Draft accumulates everything collected during registration. It is the
// checkpoint payload: the whole struct is serialized into the progress row
// after every accepted answer.
type Draft struct {
	TelegramUsername string  `json:"telegram_username,omitempty"`
	InvitedBy        *string `json:"invited_by,omitempty"`

	FullName    string `json:"full_name,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Gender      string `json:"gender,omitempty"`
	BirthYear   int    `json:"birth_year,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`

	Social SocialBuckets `json:"social_media"`

	PaymentMethod string `json:"payment_method,omitempty"`
	WalletType    string `json:"wallet_type,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`

	TransferFullName string `json:"transfer_full_name,omitempty"`
	TransferPhone    string `json:"transfer_phone,omitempty"`
	TransferLocation string `json:"transfer_location,omitempty"`
	TransferCompany  string `json:"transfer_company,omitempty"`

	// ReturnTo is conversation routing state. It rides along in the
	// checkpoint but is never part of the committed profile.
	ReturnTo ReturnTo `json:"return_to,omitempty"`
}

func (d *Draft) Marshal() (string, error) {
	blob, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

func restoreDraft(blob string) (*Draft, error) {
	d := &Draft{}
	if blob == "" {
		return d, nil
	}
	if err := json.Unmarshal([]byte(blob), d); err != nil {
		return nil, err
	}
	return d, nil
}

// toRegistration maps the draft onto the commit input. ReturnTo and other
// routing state deliberately do not cross this boundary.
func (d *Draft) toRegistration(userID int64) services.RegistrationData {
	return services.RegistrationData{
		UserID:           userID,
		TelegramUsername: d.TelegramUsername,
		FullName:         d.FullName,
		Country:          d.Country,
		Gender:           d.Gender,
		BirthYear:        d.BirthYear,
		PhoneNumber:      d.PhoneNumber,
		Email:            d.Email,
		InvitedBy:        d.InvitedBy,
		Facebook:         d.Social.Facebook,
		Instagram:        d.Social.Instagram,
		YouTube:          d.Social.YouTube,
		Other:            d.Social.Other,
		PaymentMethod:    d.PaymentMethod,
		WalletType:       d.WalletType,
		WalletAddress:    d.WalletAddress,
		TransferFullName: d.TransferFullName,
		TransferPhone:    d.TransferPhone,
		TransferLocation: d.TransferLocation,
		TransferCompany:  d.TransferCompany,
	}
}
