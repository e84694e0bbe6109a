package validators

import "testing"

func TestValidatePhoneLocalFormat(t *testing.T) {
	got, err := ValidatePhone("512345678", "+966")
	if err != nil {
		t.Fatalf("ValidatePhone: %v", err)
	}
	if got != "+966512345678" {
		t.Fatalf("normalized = %q, want +966512345678", got)
	}
}

func TestValidatePhoneInternationalFormat(t *testing.T) {
	got, err := ValidatePhone("+20 100 123 4567", "+966")
	if err != nil {
		t.Fatalf("ValidatePhone: %v", err)
	}
	if got != "+201001234567" {
		t.Fatalf("normalized = %q, want +201001234567", got)
	}
}

func TestValidatePhoneStripsFormatting(t *testing.T) {
	got, err := ValidatePhone("(051) 234-5678", "+966")
	if err != nil {
		t.Fatalf("ValidatePhone: %v", err)
	}
	if got != "+966512345678" {
		t.Fatalf("normalized = %q, want +966512345678", got)
	}
}

func TestValidatePhoneRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "abc", "123", "+966 12"} {
		if _, err := ValidatePhone(raw, "+966"); err == nil {
			t.Errorf("ValidatePhone(%q) accepted, want error", raw)
		}
	}
}
