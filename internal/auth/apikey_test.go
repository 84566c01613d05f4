package auth

import (
	"encoding/hex"
	"testing"
)

func TestGenerateAPIKey(t *testing.T) {
	t.Run("produces 32 hex characters", func(t *testing.T) {
		key, err := GenerateAPIKey()
		if err != nil {
			t.Fatalf("GenerateAPIKey() error: %v", err)
		}
		if len(key) != 32 {
			t.Errorf("key length = %d, want 32", len(key))
		}
		if _, err := hex.DecodeString(key); err != nil {
			t.Errorf("key %q is not hex: %v", key, err)
		}
	})

	t.Run("consecutive keys differ", func(t *testing.T) {
		a, _ := GenerateAPIKey()
		b, _ := GenerateAPIKey()
		if a == b {
			t.Error("GenerateAPIKey() produced identical keys on consecutive calls")
		}
	})
}
