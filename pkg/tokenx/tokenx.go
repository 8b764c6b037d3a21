// Package tokenx implements the compact signed session-token format.
//
// Tokens are HS256-signed JWTs carrying exactly the session claims
// {email, userId, iat, exp}. The format is fixed: there is no algorithm
// negotiation, no key rotation, and nothing but HS256 under the single
// server secret is ever accepted.
package tokenx

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only error Decode returns. All failure modes
// (malformed segments, bad signature, wrong algorithm, missing claims,
// expiry) collapse into it so callers cannot build an oracle out of the
// distinction.
var ErrInvalidToken = errors.New("tokenx: invalid token")

// Claims is the session-token payload.
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// NewClaims builds session claims for the given identity and validity window.
// Timestamps are truncated to whole seconds on the wire.
func NewClaims(email, userID string, issuedAt, expiresAt time.Time) Claims {
	return Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}

// Options controls which checks Decode applies. Signature and expiry are
// independently toggleable: revocation needs the claims of a correctly signed
// but possibly already-expired token.
type Options struct {
	VerifySignature bool
	VerifyExpiry    bool
}

// Encode serializes and signs claims under the server secret, producing the
// three-segment base64url token.
func Encode(claims Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Decode parses a token and returns its claims, or ErrInvalidToken. The
// token must have exactly three segments, an HS256/JWT header, and string
// email/userId plus a numeric exp claim. Signature comparison inside the JWT
// library is constant-time (HMAC recompute + constant-time equality).
func Decode(token string, secret []byte, opts Options) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}

	if opts.VerifySignature {
		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		)
		parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			return nil, ErrInvalidToken
		}
		if !headerMatches(parsed) {
			return nil, ErrInvalidToken
		}
	} else {
		parser := jwt.NewParser(jwt.WithoutClaimsValidation())
		parsed, _, err := parser.ParseUnverified(token, claims)
		if err != nil {
			return nil, ErrInvalidToken
		}
		if !headerMatches(parsed) {
			return nil, ErrInvalidToken
		}
	}

	if claims.Email == "" || claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	if opts.VerifyExpiry && !claims.ExpiresAt.After(time.Now()) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// headerMatches pins the header to exactly what Encode produces.
func headerMatches(t *jwt.Token) bool {
	alg, _ := t.Header["alg"].(string)
	typ, _ := t.Header["typ"].(string)
	return alg == jwt.SigningMethodHS256.Alg() && typ == "JWT"
}
