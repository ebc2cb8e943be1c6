package normalize

import "strings"

// Lower canonicalizes case-insensitive identifiers (usernames, emails, sort
// fields) before they reach the store.
func Lower(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
