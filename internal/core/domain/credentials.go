package domain

import (
	"regexp"
	"strings"
)

const minSignupPasswordLength = 3

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsAcceptableSignupPassword requires at least three characters after trimming.
func IsAcceptableSignupPassword(s string) bool {
	return len(strings.TrimSpace(s)) >= minSignupPasswordLength
}

// IsAcceptableLoginPassword only requires a non-blank password.
func IsAcceptableLoginPassword(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NormalizeEmail returns the lookup and uniqueness key for an email.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
