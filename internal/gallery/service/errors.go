package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmailNotAllowed is returned when an allow-list is configured and the
	// email is not on it.
	ErrEmailNotAllowed = errors.New("email not allowed")

	// ErrResendCooldown is returned when a code was issued for this email too
	// recently. Use errors.As with *RateLimitedError for the retry delay.
	ErrResendCooldown = errors.New("please wait before requesting another code")

	// ErrNoChallenge is returned when no live challenge exists for the email.
	ErrNoChallenge = errors.New("no active code, request a new one")

	// ErrChallengeExpired is returned when the challenge's TTL has passed.
	// The challenge is deleted as a side effect.
	ErrChallengeExpired = errors.New("code expired, request a new one")

	// ErrTooManyAttempts is returned once the attempt budget is exhausted.
	// The challenge is deleted; a correct code no longer helps.
	ErrTooManyAttempts = errors.New("too many incorrect attempts, request a new code")

	// ErrInvalidCode is returned on a code mismatch. The challenge survives,
	// minus one attempt.
	ErrInvalidCode = errors.New("invalid code")

	// ErrDeliveryFailed wraps mail-delivery failures surfaced to the
	// issuance caller. A code the user never receives is useless, so there is
	// no partial success.
	ErrDeliveryFailed = errors.New("failed to deliver code")
)

// RateLimitedError carries the remaining cooldown alongside ErrResendCooldown
// so the boundary layer can emit Retry-After.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%v (retry in %s)", ErrResendCooldown, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitedError) Unwrap() error { return ErrResendCooldown }
