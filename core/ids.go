package core

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.New().String()
}

// NewVerificationCode returns a fresh 8 character upper case code printed on certificates.
func NewVerificationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
