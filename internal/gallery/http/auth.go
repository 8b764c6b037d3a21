package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/blushhq/blush/internal/gallery/mailer"
	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/pkg/httpx"
	"github.com/blushhq/blush/pkg/slogx"
)

// AuthHandler serves the email-code sign-in flow: request a code, trade the
// code for a session token, inspect and revoke that token.
type AuthHandler struct {
	OTPService     *service.OTPService
	SessionService *service.SessionService
	Mailer         mailer.Sender
}

type requestCodeRequest struct {
	Email string `json:"email"`
}

type requestCodeResponse struct {
	Sent      bool      `json:"sent"`
	ExpiresAt time.Time `json:"expires_at"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type meResponse struct {
	Email     string    `json:"email"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleRequestCode godoc
//
//	@Summary		Request Sign-In Code
//	@Description	Issues a one-time sign-in code and emails it to the given address
//	@Description	Re-requesting within the cooldown window is rejected with a Retry-After header
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		requestCodeRequest	true	"Email address to send the code to"
//	@Success		200		{object}	requestCodeResponse	"sent, expires_at"
//	@Failure		400		{object}	httpx.APIError		"error, error_description"
//	@Failure		403		{object}	httpx.APIError		"email not on the allow list"
//	@Failure		429		{object}	httpx.APIError		"resend cooldown active"
//	@Failure		502		{object}	httpx.APIError		"email delivery failed"
//	@Router			/v1/auth/request-code [post].
func (h *AuthHandler) HandleRequestCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req requestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httpx.NewError(http.StatusBadRequest, httpx.ErrorCodeInvalidRequest, "email is required").WriteError(w)
		return
	}

	issued, err := h.OTPService.IssueChallenge(req.Email)
	if err != nil {
		writeOTPError(w, log, err)
		return
	}

	if err := h.Mailer.SendCode(ctx, issued.Email, issued.Code, time.Until(issued.ExpiresAt)); err != nil {
		log.Error("failed to deliver sign-in code", "err", err)
		writeOTPError(w, log, service.ErrDeliveryFailed)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, requestCodeResponse{
		Sent:      true,
		ExpiresAt: issued.ExpiresAt,
	})
}

// HandleVerify godoc
//
//	@Summary		Verify Sign-In Code
//	@Description	Consumes a previously issued code and returns a session token
//	@Description	The code is single-use; wrong guesses burn attempts and too many guesses void the code
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifyRequest	true	"Email and the code it received"
//	@Success		200		{object}	sessionResponse	"token, email, user_id, expires_at"
//	@Failure		400		{object}	httpx.APIError	"error, error_description"
//	@Failure		401		{object}	httpx.APIError	"wrong, expired or missing code"
//	@Failure		403		{object}	httpx.APIError	"email not on the allow list"
//	@Failure		429		{object}	httpx.APIError	"attempt budget exhausted"
//	@Router			/v1/auth/verify [post].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		httpx.NewError(http.StatusBadRequest, httpx.ErrorCodeInvalidRequest, "email and code are required").WriteError(w)
		return
	}

	if err := h.OTPService.VerifyAndConsume(req.Email, req.Code); err != nil {
		writeOTPError(w, log, err)
		return
	}

	sess, err := h.SessionService.CreateSession(req.Email)
	if err != nil {
		log.Error("failed to create session", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse{
		Token:     sess.Token,
		Email:     sess.Email,
		UserID:    sess.UserID,
		ExpiresAt: sess.ExpiresAt,
	})
}

// HandleMe godoc
//
//	@Summary		Current Session
//	@Description	Returns the identity bound to the presented bearer token
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	meResponse		"email, user_id, expires_at"
//	@Failure		401	{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrUnauthenticated.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meResponse{
		Email:     id.Email,
		UserID:    id.UserID,
		ExpiresAt: id.ExpiresAt,
	})
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Revokes the presented bearer token for its remaining lifetime
//	@Description	Always returns 200; revoking garbage or an already-revoked token is harmless
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	"token revoked (or was never usable)"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token := httpx.BearerToken(r); token != "" {
		h.SessionService.Revoke(token)
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}

// writeOTPError maps challenge-manager errors onto API statuses. The split
// mirrors the manager's taxonomy: allow-list failures are forbidden, pacing
// failures are rate limited, everything about the code itself is a uniform
// unauthenticated response.
func writeOTPError(w http.ResponseWriter, log *slog.Logger, err error) {
	var rateLimited *service.RateLimitedError
	switch {
	case errors.Is(err, service.ErrEmailNotAllowed):
		httpx.NewError(http.StatusForbidden, httpx.ErrorCodeForbidden, "Email not authorized").WriteError(w)
	case errors.As(err, &rateLimited):
		w.Header().Set("Retry-After", strconv.Itoa(int(rateLimited.RetryAfter.Seconds())+1))
		httpx.NewError(http.StatusTooManyRequests, httpx.ErrorCodeRateLimited, "Please wait before requesting another code.").WriteError(w)
	case errors.Is(err, service.ErrTooManyAttempts):
		httpx.NewError(http.StatusTooManyRequests, httpx.ErrorCodeRateLimited, "Too many incorrect attempts. Request a new code.").WriteError(w)
	case errors.Is(err, service.ErrNoChallenge):
		httpx.NewError(http.StatusUnauthorized, httpx.ErrorCodeUnauthenticated, "No active code. Request a new code.").WriteError(w)
	case errors.Is(err, service.ErrChallengeExpired):
		httpx.NewError(http.StatusUnauthorized, httpx.ErrorCodeUnauthenticated, "Code expired. Request a new code.").WriteError(w)
	case errors.Is(err, service.ErrInvalidCode):
		httpx.NewError(http.StatusUnauthorized, httpx.ErrorCodeUnauthenticated, "Invalid code.").WriteError(w)
	case errors.Is(err, service.ErrDeliveryFailed):
		httpx.NewError(http.StatusBadGateway, "delivery_failed", "Could not deliver the sign-in code. Try again later.").WriteError(w)
	default:
		log.Error("challenge operation failed", "err", err)
		httpx.ErrServerError.WriteError(w)
	}
}
