package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateBase64Key generates a secure random key of the given size and
// returns it base64 URL-encoded. PASETO v2 local requires 32 bytes.
func GenerateBase64Key(size int) (string, error) {
	if size != 32 {
		return "", fmt.Errorf("PASETO v2 local requires a 32-byte key")
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}

	return base64.URLEncoding.EncodeToString(key), nil
}

// FormatStaffID renders a sequence number as the human-readable staff
// identifier, e.g. 7 -> "STF-0007". Sequences past 9999 keep their full
// width rather than wrapping.
func FormatStaffID(seq int64) string {
	return fmt.Sprintf("STF-%04d", seq)
}
