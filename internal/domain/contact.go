package domain

import (
	"regexp"
	"strings"
	"time"
)

// Contact is a single addressable recipient. Email is unique across the
// system; uniqueness is enforced at creation time by the contact service.
type Contact struct {
	ID         string    `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	Name       string    `json:"name" db:"name"`
	Company    string    `json:"company" db:"company"`
	Tags       []string  `json:"tags"`
	Subscribed bool      `json:"is_subscribed" db:"is_subscribed"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// emailPattern is intentionally simple: local-part@domain.tld. Anything
// stricter tends to reject real addresses.
var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.\w+$`)

// ValidEmail reports whether s looks like a deliverable email address.
// Leading/trailing whitespace is ignored.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// NormalizeEmail lowercases and trims an address for uniqueness comparison.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
