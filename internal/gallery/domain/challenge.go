package domain

import "time"

// Challenge is a live one-time-code challenge for an email address. At most
// one exists per email at any instant; issuing a new code replaces it.
// Only the salted digest of the code is retained.
type Challenge struct {
	Email     string // normalized, unique key
	CodeHash  string // keyed digest, never the raw code
	Attempts  int    // verification attempts consumed so far
	ExpiresAt time.Time
}

// IssuedCode is returned to the issuance caller so the plaintext code can be
// delivered out of band. It is never stored.
type IssuedCode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}
