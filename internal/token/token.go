// Package token generates the opaque single-use tokens used for email
// verification and password resets.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generate returns a hex-encoded token built from 20 random bytes.
func Generate() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
