package httpx

import (
	"context"
	"net/http"
	"strings"
)

// SessionResolver validates a bearer token and returns the identity bound to
// it. ok is false when the token is unusable for any reason; callers never
// learn why.
type SessionResolver func(token string) (Identity, bool)

// SessionMiddleware enforces a valid bearer session on the wrapped handler and
// injects the resolved identity into the request context.
func SessionMiddleware(resolve SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				ErrUnauthenticated.WriteError(w)
				return
			}

			id, ok := resolve(token)
			if !ok {
				ErrUnauthenticated.WriteError(w)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, CtxKeyUserID, id.UserID)
			ctx = context.WithValue(ctx, CtxKeyEmail, id.Email)
			ctx = context.WithValue(ctx, CtxKeyIdentity, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization: Bearer header.
// Returns "" when the header is absent or not a bearer credential.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}
