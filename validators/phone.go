package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var phoneJunk = regexp.MustCompile(`[\s\-\(\)]`)

// ValidatePhone checks a raw phone number against a country dialing code
// (e.g. "+966") and returns the canonical E.164 form. Numbers without a
// leading + get the dialing code prepended before parsing.
func ValidatePhone(raw, dialCode string) (string, error) {
	number := phoneJunk.ReplaceAllString(raw, "")
	if !strings.HasPrefix(number, "+") {
		number = dialCode + number
	}

	parsed, err := phonenumbers.Parse(number, "")
	if err != nil {
		return "", fmt.Errorf("invalid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number for %s", dialCode)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
