package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// LooIDLength is the exact length of every loo ID as supplied on the wire.
// IDs of any other length are rejected before persistence is touched.
const LooIDLength = 24

// ErrIDLength is the exact validation message for a malformed path ID on the
// upsert route. The wording is part of the API contract.
var ErrIDLength = fmt.Errorf("%w: id must be exactly 24 characters", ErrValidation)

// NewLooID mints a fresh 24-character ID: 12 random bytes, hex encoded.
// IDs are opaque to callers; nothing may be derived from their contents.
func NewLooID() string {
	b := make([]byte, LooIDLength/2)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ValidateLooID reports whether id is a well-formed loo ID: exactly 24
// lowercase hex characters. It does not check existence.
func ValidateLooID(id string) bool {
	if len(id) != LooIDLength {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
