// services/admission_test.go
package services

import (
	"errors"
	"testing"
)

func newAdmissionFns(t *testing.T) (*AdmissionService, *ReferralService) {
	t.Helper()
	db := newTestDB(t)
	referrals := NewReferralService(db)
	admission := NewAdmissionService(db, referrals, 1, []int64{1, 2})
	return admission, referrals
}

func TestDecideAllowList(t *testing.T) {
	admission, _ := newAdmissionFns(t)

	adm, err := admission.Decide(1, "")
	if err != nil {
		t.Fatalf("Decide owner: %v", err)
	}
	if !adm.Privileged || !adm.Owner {
		t.Errorf("owner admission = %+v, want privileged owner", adm)
	}

	adm, err = admission.Decide(2, "")
	if err != nil {
		t.Fatalf("Decide allow-listed: %v", err)
	}
	if !adm.Privileged || adm.Owner {
		t.Errorf("allow-listed admission = %+v, want privileged non-owner", adm)
	}
}

func TestDecideWithReferralCode(t *testing.T) {
	admission, _ := newAdmissionFns(t)
	seedProfile(t, admission.DB, 100, "ABCD1234")

	adm, err := admission.Decide(500, "abcd1234")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if adm.InviterCode != "ABCD1234" {
		t.Errorf("inviter code = %q, want canonical ABCD1234", adm.InviterCode)
	}
	if adm.InviterName != "Seed User Account" {
		t.Errorf("inviter name = %q", adm.InviterName)
	}
}

func TestDecideRejections(t *testing.T) {
	admission, _ := newAdmissionFns(t)
	seedProfile(t, admission.DB, 100, "ABCD1234")

	if _, err := admission.Decide(500, ""); !errors.Is(err, ErrNotInvited) {
		t.Errorf("no code: err = %v, want ErrNotInvited", err)
	}
	if _, err := admission.Decide(500, "WRONG999"); !errors.Is(err, ErrInvalidReferral) {
		t.Errorf("bad code: err = %v, want ErrInvalidReferral", err)
	}
	if _, err := admission.Decide(100, "ABCD1234"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("registered user: err = %v, want ErrAlreadyRegistered", err)
	}
	// Registration wins even over the allow-list.
	seedProfile(t, admission.DB, 2, "EFGH5678")
	if _, err := admission.Decide(2, ""); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("registered allow-listed user: err = %v, want ErrAlreadyRegistered", err)
	}
}
