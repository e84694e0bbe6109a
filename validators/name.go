package validators

import "strings"

const (
	minNameWords  = 3
	maxNameLength = 50
)

// ValidateFullName accepts a legal-style full name: at least three words,
// at most fifty characters overall.
func ValidateFullName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return false
	}
	return len(strings.Fields(name)) >= minNameWords
}
