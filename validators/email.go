package validators

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the address matches the accepted shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Registrants must be at least this old.
const minRegistrationAge = 13

// ValidateBirthYear parses a four-digit birth year and checks it falls in the
// accepted range (1920 up to thirteen years before now).
func ValidateBirthYear(year int, now time.Time) bool {
	return year >= 1920 && year <= now.Year()-minRegistrationAge
}
