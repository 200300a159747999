// Package shared provides utility functions for email normalization.
package shared

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Email identity is case-insensitive everywhere in accountd; normalization
// happens once at the boundary and the stored value is always normalized.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the (already normalized) address parses as a
// plain RFC 5322 address without a display name.
func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
