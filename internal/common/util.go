package common

import (
	"crypto/rand"
	"strings"
)

// GenerateRandByteArray returns n cryptographically random bytes.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray overwrites the slice with zeros. Used for passwords read
// from the terminal. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeEmail trims and lower-cases an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively; anything else yields "".
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < len(BearerScheme) || !strings.EqualFold(header[:len(BearerScheme)], BearerScheme) {
		return ""
	}
	return strings.TrimSpace(header[len(BearerScheme):])
}
