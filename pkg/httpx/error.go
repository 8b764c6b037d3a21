package httpx

import (
	"fmt"
	"net/http"
)

// Error codes returned in API error bodies.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeUnauthenticated = "unauthenticated"
	ErrorCodeForbidden       = "forbidden"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeRateLimited     = "rate_limited"
	ErrorCodeServerError     = "server_error"
)

// APIError is the error body every endpoint returns on failure. It implements
// the error interface so handlers can pass it around before writing it.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is a stable machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	NoCache(w)
	WriteJSON(w, e.StatusCode, e)
}

// NewError builds an APIError with a custom description.
func NewError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

var (
	// ErrInvalidRequest is returned when the request body or parameters are
	// malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrUnauthenticated is returned when the bearer token is absent,
	// malformed, expired or revoked. The description is deliberately uniform.
	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "invalid or expired session",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
