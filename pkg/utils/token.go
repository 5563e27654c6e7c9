package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomToken returns a 128-bit hex token for email verification
// and password reset links.
func RandomToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
