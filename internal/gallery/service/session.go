package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/blushhq/blush/internal/gallery/authstate"
	"github.com/blushhq/blush/internal/gallery/domain"
	"github.com/blushhq/blush/pkg/cryptox"
	"github.com/blushhq/blush/pkg/identx"
	"github.com/blushhq/blush/pkg/tokenx"
)

// SessionService turns consumed OTP challenges into signed session tokens,
// validates bearer tokens, and tracks explicit revocations. Tokens are
// stateless and self-verifying; the injected RevocationSet is the single
// piece of server-side session state and overrides any otherwise-valid token.
type SessionService struct {
	Revocations *authstate.RevocationSet

	Secret     []byte
	SessionTTL time.Duration

	// Now is the clock, overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateSession mints a session for an email whose OTP challenge was just
// consumed. The user ID is derived deterministically from the email. The only
// failure mode is a misconfigured codec, which is not recoverable per-request.
func (s *SessionService) CreateSession(email string) (domain.Session, error) {
	now := s.now()
	email = identx.Normalize(email)
	userID := identx.DeriveUserID(email)
	expiresAt := now.Add(s.SessionTTL)

	token, err := tokenx.Encode(tokenx.NewClaims(email, userID, now, expiresAt), s.Secret)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return domain.Session{
		Token:     token,
		Email:     email,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

// Resolve validates a bearer token and returns the session it proves, or nil.
// Revocation is checked before any token content is trusted. All failure
// modes collapse to nil; callers never learn why a token was rejected.
func (s *SessionService) Resolve(token string) *domain.Session {
	now := s.now()
	s.Revocations.PruneExpired(now)

	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	if s.Revocations.Contains(cryptox.FingerprintToken(token)) {
		return nil
	}

	claims, err := tokenx.Decode(token, s.Secret, tokenx.Options{
		VerifySignature: true,
		VerifyExpiry:    true,
	})
	if err != nil {
		return nil
	}

	sess := &domain.Session{
		Token:     token,
		Email:     claims.Email,
		UserID:    claims.UserID,
		CreatedAt: now,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		sess.CreatedAt = claims.IssuedAt.Time
	}
	return sess
}

// Revoke permanently invalidates a token by recording its digest. The token
// must carry a valid signature (forged tokens cannot grow the set) but may
// already be expired, so a session can still be revoked for defense in depth.
// Revoking twice is harmless; unusable tokens are ignored.
func (s *SessionService) Revoke(token string) {
	now := s.now()
	s.Revocations.PruneExpired(now)

	token = strings.TrimSpace(token)
	if token == "" {
		return
	}

	claims, err := tokenx.Decode(token, s.Secret, tokenx.Options{VerifySignature: true})
	if err != nil {
		return
	}

	// Retain the entry until the token's own expiry; after that the expiry
	// check rejects it regardless. Conservative fallback when exp is absent.
	expiresAt := now.Add(s.SessionTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	s.Revocations.Add(cryptox.FingerprintToken(token), expiresAt)
}
