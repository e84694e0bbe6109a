package validators

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.domain.org"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "plainstring", "user@", "@example.com", "user@host"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = true, want false", e)
		}
	}
}

func TestValidateBirthYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	if !ValidateBirthYear(1995, now) {
		t.Error("1995 rejected, want accepted")
	}
	if !ValidateBirthYear(2013, now) {
		t.Error("exactly-13 boundary rejected, want accepted")
	}
	if ValidateBirthYear(2014, now) {
		t.Error("under-13 year accepted, want rejected")
	}
	if ValidateBirthYear(1919, now) {
		t.Error("pre-1920 year accepted, want rejected")
	}
}

func TestValidateFullName(t *testing.T) {
	if !ValidateFullName("Ahmad Khalil Haddad") {
		t.Error("three-word name rejected, want accepted")
	}
	if ValidateFullName("Ahmad Khalil") {
		t.Error("two-word name accepted, want rejected")
	}
	if ValidateFullName("This Name Is Far Far Too Long To Fit Inside The Limit At All") {
		t.Error("over-length name accepted, want rejected")
	}
	if ValidateFullName("   ") {
		t.Error("blank name accepted, want rejected")
	}
}
