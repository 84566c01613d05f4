package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// apiKeyBytes is the entropy of a generated key: 16 random bytes rendered as
// 32 hex characters.
const apiKeyBytes = 16

// GenerateAPIKey creates a new opaque credential token
func GenerateAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
