package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewSessionID generates a cryptographically secure session identifier
// with 256 bits of entropy.
func NewSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
