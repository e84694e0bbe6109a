// services/referral_test.go
package services

import (
	"strings"
	"testing"
)

func TestGenerateUniqueCodeShape(t *testing.T) {
	svc := NewReferralService(newTestDB(t))

	code, err := svc.GenerateUniqueCode()
	if err != nil {
		t.Fatalf("GenerateUniqueCode: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("code length = %d, want 8", len(code))
	}
	for _, r := range code {
		if !strings.ContainsRune(referralCodeAlphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", code, r)
		}
	}
}

func TestGenerateUniqueCodePairwiseDistinct(t *testing.T) {
	svc := NewReferralService(newTestDB(t))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := svc.GenerateUniqueCode()
		if err != nil {
			t.Fatalf("GenerateUniqueCode: %v", err)
		}
		if seen[code] {
			t.Fatalf("code %q issued twice", code)
		}
		seen[code] = true
	}
}

func TestIsCodeValid(t *testing.T) {
	db := newTestDB(t)
	svc := NewReferralService(db)
	seedProfile(t, db, 100, "ABCD1234")

	valid, err := svc.IsCodeValid("abcd1234")
	if err != nil {
		t.Fatalf("IsCodeValid: %v", err)
	}
	if !valid {
		t.Error("lowercase input for an existing code rejected, want accepted")
	}

	valid, err = svc.IsCodeValid("ZZZZ9999")
	if err != nil {
		t.Fatalf("IsCodeValid: %v", err)
	}
	if valid {
		t.Error("unknown code accepted, want rejected")
	}

	// Too-short input must short-circuit without matching anything.
	valid, err = svc.IsCodeValid("ab")
	if err != nil {
		t.Fatalf("IsCodeValid: %v", err)
	}
	if valid {
		t.Error("two-character input accepted, want rejected")
	}
}

func TestIncrementReferralCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewReferralService(db)
	seedProfile(t, db, 100, "ABCD1234")

	if err := svc.IncrementReferralCount("ABCD1234"); err != nil {
		t.Fatalf("IncrementReferralCount: %v", err)
	}
	if err := svc.IncrementReferralCount("ABCD1234"); err != nil {
		t.Fatalf("IncrementReferralCount: %v", err)
	}

	var total int
	if err := db.Raw("SELECT total_referrals FROM user_profiles WHERE user_id = ?", 100).Scan(&total).Error; err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if total != 2 {
		t.Fatalf("total_referrals = %d, want 2", total)
	}
}

func TestInviterNameFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewReferralService(db)
	seedProfile(t, db, 100, "ABCD1234")

	if got := svc.InviterName("ABCD1234"); got != "Seed User Account" {
		t.Fatalf("InviterName = %q", got)
	}
	if got := svc.InviterName("MISSING1"); got != "an existing member" {
		t.Fatalf("fallback InviterName = %q", got)
	}
}
