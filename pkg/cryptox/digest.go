package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// SignMessage returns a keyed HMAC-SHA256 digest of msg under key, encoded as
// base64url without padding.
func SignMessage(key []byte, msg string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msg))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// HashCode returns the salted keyed digest stored in place of a one-time
// code: HMAC-SHA256 over "email:code" under the server secret. The raw code
// is never stored in recoverable form.
func HashCode(key []byte, email, code string) string {
	return SignMessage(key, email+":"+code)
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token,
// base64url-encoded. Used to key server-side records by token value without
// retaining the token itself.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// SecureCompare reports whether two digests are equal without leaking the
// position of the first mismatch.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
