package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/blushhq/blush/internal/gallery/authstate"
	"github.com/blushhq/blush/internal/gallery/domain"
	"github.com/blushhq/blush/pkg/cryptox"
	"github.com/blushhq/blush/pkg/identx"
)

// OTPService issues, rate-limits, and verifies one-time login codes per
// email. All state lives in the injected ChallengeStore; every public
// operation starts by purging expired challenges so memory stays bounded
// without a dedicated sweeper.
type OTPService struct {
	Challenges *authstate.ChallengeStore

	Secret         []byte        // keyed-digest secret for code hashes
	TTL            time.Duration // challenge lifetime
	ResendCooldown time.Duration // minimum gap between issuances per email
	MaxAttempts    int           // verification attempt budget per challenge

	// AllowedEmails restricts issuance and verification to the listed
	// normalized addresses. Empty means everyone.
	AllowedEmails []string

	// Now is the clock, overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

func (s *OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OTPService) checkAllowed(email string) error {
	if len(s.AllowedEmails) == 0 {
		return nil
	}
	if !slices.Contains(s.AllowedEmails, email) {
		return ErrEmailNotAllowed
	}
	return nil
}

// IssueChallenge generates a fresh one-time code for email, replacing any
// previous challenge, and returns the plaintext code for out-of-band
// delivery. Fails with ErrEmailNotAllowed or ErrResendCooldown (as a
// *RateLimitedError) without disturbing existing state.
func (s *OTPService) IssueChallenge(email string) (domain.IssuedCode, error) {
	now := s.now()
	s.Challenges.PruneExpired(now, s.ResendCooldown)

	email = identx.Normalize(email)
	if err := s.checkAllowed(email); err != nil {
		return domain.IssuedCode{}, err
	}

	var (
		issued domain.IssuedCode
		opErr  error
	)
	s.Challenges.Update(email, func(st *authstate.EmailState) {
		if !st.LastIssuedAt.IsZero() {
			if wait := s.ResendCooldown - now.Sub(st.LastIssuedAt); wait > 0 {
				opErr = &RateLimitedError{RetryAfter: wait}
				return
			}
		}

		code, err := cryptox.GenerateCode()
		if err != nil {
			opErr = fmt.Errorf("failed to generate code: %w", err)
			return
		}

		expiresAt := now.Add(s.TTL)
		st.Challenge = &domain.Challenge{
			Email:     email,
			CodeHash:  cryptox.HashCode(s.Secret, email, code),
			Attempts:  0,
			ExpiresAt: expiresAt,
		}
		st.LastIssuedAt = now

		issued = domain.IssuedCode{Email: email, Code: code, ExpiresAt: expiresAt}
	})

	return issued, opErr
}

// VerifyAndConsume checks a submitted code against the live challenge for
// email. On success the challenge is deleted (one-time use). The attempt
// counter is charged before anything else is decided, and exhaustion fails
// closed even when the submitted code is correct.
func (s *OTPService) VerifyAndConsume(email, code string) error {
	now := s.now()
	s.Challenges.PruneExpired(now, s.ResendCooldown)

	email = identx.Normalize(email)
	code = strings.TrimSpace(code)
	if err := s.checkAllowed(email); err != nil {
		return err
	}

	var opErr error
	s.Challenges.Update(email, func(st *authstate.EmailState) {
		ch := st.Challenge
		if ch == nil {
			opErr = ErrNoChallenge
			return
		}

		if !ch.ExpiresAt.After(now) {
			st.Challenge = nil
			opErr = ErrChallengeExpired
			return
		}

		ch.Attempts++
		if ch.Attempts > s.MaxAttempts {
			st.Challenge = nil
			opErr = ErrTooManyAttempts
			return
		}

		if !cryptox.SecureCompare(cryptox.HashCode(s.Secret, email, code), ch.CodeHash) {
			opErr = ErrInvalidCode
			return
		}

		st.Challenge = nil
	})

	return opErr
}
