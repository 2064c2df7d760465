package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// shareTokenLen is the length of a snippet share token. 9 random bytes
// encode to exactly 12 URL-safe characters.
const shareTokenLen = 12

// newShareToken returns a 12-character URL-safe random token. Unlike row ids
// the token must be unguessable, so it comes from crypto/rand rather than
// xid (which is time-prefixed and sortable).
func newShareToken() (string, error) {
	buf := make([]byte, shareTokenLen/4*3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
