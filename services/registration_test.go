// services/registration_test.go
package services

import (
	"testing"
	"time"

	"github.com/AmmarAssaf/renderbot/models"
)

func newRegistrationEnv(t *testing.T) *RegistrationService {
	t.Helper()
	db := newTestDB(t)
	referrals := NewReferralService(db)
	return NewRegistrationService(db, referrals, NewProgressService(db))
}

func walletData(userID int64) RegistrationData {
	return RegistrationData{
		UserID:           userID,
		TelegramUsername: "someuser",
		Email:            "user@example.com",
		FullName:         "Ahmad Khalil Haddad",
		Country:          "Saudi Arabia",
		Gender:           "Male",
		BirthYear:        1995,
		PhoneNumber:      "+966512345678",
		Facebook:         []string{"https://www.facebook.com/a.page"},
		Instagram:        []string{"https://www.instagram.com/someuser"},
		Other:            []string{"https://www.tiktok.com/@someuser"},
		PaymentMethod:    models.PaymentMethodWallet,
		WalletType:       "PayPal",
		WalletAddress:    "user@example.com",
	}
}

func TestCommitWritesEverythingAndClearsCheckpoint(t *testing.T) {
	svc := newRegistrationEnv(t)
	inviter := seedProfile(t, svc.DB, 100, "ABCD1234")

	if err := svc.Progress.Save(500, "confirmation", "{}", "someuser"); err != nil {
		t.Fatalf("seed checkpoint: %v", err)
	}

	data := walletData(500)
	inviterCode := inviter.ReferralCode
	data.InvitedBy = &inviterCode

	code, err := svc.Commit(data)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(code) != 8 {
		t.Errorf("referral code %q, want 8 characters", code)
	}

	profile, err := svc.Profile(500)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.FullName != data.FullName || profile.ReferralCode != code {
		t.Errorf("profile = %+v", profile)
	}
	if len(profile.Links) != 3 {
		t.Fatalf("links = %d, want 3", len(profile.Links))
	}
	// The "other" bucket link gets its platform inferred from the domain.
	var platforms []string
	for _, l := range profile.Links {
		platforms = append(platforms, l.Platform)
	}
	wantPlatforms := map[string]bool{"Facebook": true, "Instagram": true, "TikTok": true}
	for _, p := range platforms {
		if !wantPlatforms[p] {
			t.Errorf("unexpected platform %q in %v", p, platforms)
		}
	}
	if profile.Payment == nil || profile.Payment.WalletType != "PayPal" {
		t.Errorf("payment = %+v", profile.Payment)
	}

	row, err := svc.Progress.Load(500)
	if err != nil {
		t.Fatalf("load checkpoint: %v", err)
	}
	if row != nil {
		t.Error("checkpoint survived the commit")
	}

	var total int
	if err := svc.DB.Raw("SELECT total_referrals FROM user_profiles WHERE user_id = ?", 100).Scan(&total).Error; err != nil {
		t.Fatalf("read inviter counter: %v", err)
	}
	if total != 1 {
		t.Errorf("inviter total_referrals = %d, want 1", total)
	}
}

func TestCommitTransferPayment(t *testing.T) {
	svc := newRegistrationEnv(t)

	data := walletData(500)
	data.PaymentMethod = models.PaymentMethodTransfer
	data.WalletType, data.WalletAddress = "", ""
	data.TransferFullName = "Ahmad Khalil Haddad"
	data.TransferPhone = "+966512345678"
	data.TransferLocation = "Riyadh, Saudi Arabia"
	data.TransferCompany = "Western Union"

	if _, err := svc.Commit(data); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	profile, err := svc.Profile(500)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Payment == nil {
		t.Fatal("payment row missing")
	}
	if profile.Payment.PaymentMethod != models.PaymentMethodTransfer {
		t.Errorf("payment method = %q", profile.Payment.PaymentMethod)
	}
	if profile.Payment.TransferCompany != "Western Union" || profile.Payment.WalletAddress != "" {
		t.Errorf("payment = %+v", profile.Payment)
	}
}

func TestCommitIsAtomic(t *testing.T) {
	svc := newRegistrationEnv(t)
	seedProfile(t, svc.DB, 500, "EXIST000")

	if err := svc.Progress.Save(500, "confirmation", "{}", "someuser"); err != nil {
		t.Fatalf("seed checkpoint: %v", err)
	}

	// The profile row already exists, so every attempt fails inside the
	// transaction. Nothing else may be left behind.
	if _, err := svc.Commit(walletData(500)); err == nil {
		t.Fatal("Commit of a duplicate user succeeded, want error")
	}

	var links, payments int64
	svc.DB.Raw("SELECT COUNT(*) FROM user_links WHERE user_id = ?", 500).Scan(&links)
	svc.DB.Raw("SELECT COUNT(*) FROM user_payments WHERE user_id = ?", 500).Scan(&payments)
	if links != 0 || payments != 0 {
		t.Errorf("leftover rows after failed commit: links=%d payments=%d", links, payments)
	}

	row, err := svc.Progress.Load(500)
	if err != nil {
		t.Fatalf("load checkpoint: %v", err)
	}
	if row == nil {
		t.Error("checkpoint was deleted by a failed commit")
	}
}

func TestStats(t *testing.T) {
	svc := newRegistrationEnv(t)
	seedProfile(t, svc.DB, 100, "ABCD1234")
	svc.DB.Model(&models.UserProfile{}).Where("user_id = ?", 100).UpdateColumn("total_referrals", 3)
	seedProfile(t, svc.DB, 101, "EFGH5678")

	stats, err := svc.Stats(time.Now())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalUsers != 2 || stats.ActiveUsers != 2 {
		t.Errorf("user counts = %+v", stats)
	}
	if stats.TotalReferrals != 3 {
		t.Errorf("total referrals = %d, want 3", stats.TotalReferrals)
	}
	if stats.TodayRegistrations != 2 {
		t.Errorf("today = %d, want 2", stats.TodayRegistrations)
	}
	if len(stats.TopReferrers) != 1 || stats.TopReferrers[0].TotalReferrals != 3 {
		t.Errorf("top referrers = %+v", stats.TopReferrers)
	}
}
