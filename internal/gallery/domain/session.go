package domain

import "time"

// Session is the resolved view of a signed bearer token. It is never stored
// server-side; validity is recomputed from the token on every use, with the
// revocation set as the only mutable override.
type Session struct {
	Token     string
	Email     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
