package httpx

import (
	"context"
	"time"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyEmail    ctxKey = "email"
	CtxKeyIdentity ctxKey = "identity"
)

// Identity is the resolved view of a bearer session injected into the request
// context by SessionMiddleware.
type Identity struct {
	Token     string
	Email     string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(CtxKeyIdentity).(Identity)
	return id, ok
}

// UserIDFromContext returns the authenticated user ID or "".
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
