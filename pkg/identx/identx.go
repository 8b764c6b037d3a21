// Package identx derives stable user identities from email addresses.
//
// There is no user table: a user simply is their email address, and the user
// ID is a deterministic function of it. The ID is shaped like a random UUID so
// downstream consumers cannot tell it apart from one.
package identx

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize canonicalizes an email address for hashing and map keys:
// surrounding whitespace is stripped and the address is lower-cased.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DeriveUserID maps a (raw or normalized) email address to a stable 128-bit
// identifier formatted as a version-4-variant UUID string. The same email
// always yields the same ID, across processes and restarts.
func DeriveUserID(email string) string {
	sum := sha256.Sum256([]byte(Normalize(email)))

	var b [16]byte
	copy(b[:], sum[:16])

	// Force UUIDv4 version and variant bits.
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	h := hex.EncodeToString(b[:])
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}
