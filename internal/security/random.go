package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateOpaqueToken returns a random URL-safe token and its sha256 hash,
// used for password-reset and email-verification links.
func GenerateOpaqueToken(length int) (string, []byte, error) {
	if length <= 0 {
		length = 32
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buf)
	return token, HashToken(token), nil
}
