package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOpaqueToken returns a random token for email verification and
// password reset links.
func GenerateOpaqueToken() string {
	return uuid.New().String()
}

// GenerateOrderNumber returns a short human-readable order reference,
// e.g. "BB-9F4C21D8".
func GenerateOrderNumber() string {
	id := uuid.New().String()
	return "BB-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
