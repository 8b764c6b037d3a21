package tokenx_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/blushhq/blush/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func freshClaims() tokenx.Claims {
	now := time.Now().Truncate(time.Second)
	return tokenx.NewClaims("alice@example.com", "11111111-2222-4333-8444-555555555555",
		now, now.Add(time.Hour))
}

func TestEncodeWireFormat(t *testing.T) {
	t.Parallel()

	token, err := tokenx.Encode(freshClaims(), secret)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	require.JSONEq(t, `{"alg":"HS256","typ":"JWT"}`, string(headerJSON))

	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(payloadJSON, &payload))
	require.Equal(t, "alice@example.com", payload["email"])
	require.Equal(t, "11111111-2222-4333-8444-555555555555", payload["userId"])

	// Timestamps are whole-second unix numbers.
	_, ok := payload["iat"].(float64)
	require.True(t, ok)
	_, ok = payload["exp"].(float64)
	require.True(t, ok)
}

func TestDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	in := freshClaims()
	token, err := tokenx.Encode(in, secret)
	require.NoError(t, err)

	out, err := tokenx.Decode(token, secret, tokenx.Options{
		VerifySignature: true,
		VerifyExpiry:    true,
	})
	require.NoError(t, err)
	require.Equal(t, in.Email, out.Email)
	require.Equal(t, in.UserID, out.UserID)
	require.Equal(t, in.ExpiresAt.Unix(), out.ExpiresAt.Unix())
	require.Equal(t, in.IssuedAt.Unix(), out.IssuedAt.Unix())
}

// mutateSegment changes one character in the middle of the i-th token segment.
func mutateSegment(t *testing.T, token string, i int) string {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	seg := []byte(parts[i])
	pos := len(seg) / 2
	if seg[pos] == 'A' {
		seg[pos] = 'B'
	} else {
		seg[pos] = 'A'
	}
	parts[i] = string(seg)
	return strings.Join(parts, ".")
}

func TestDecodeRejectsTampering(t *testing.T) {
	t.Parallel()

	token, err := tokenx.Encode(freshClaims(), secret)
	require.NoError(t, err)

	opts := tokenx.Options{VerifySignature: true, VerifyExpiry: true}

	for i := range 3 {
		_, err := tokenx.Decode(mutateSegment(t, token, i), secret, opts)
		require.ErrorIs(t, err, tokenx.ErrInvalidToken, "segment %d", i)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	opts := tokenx.Options{VerifySignature: true, VerifyExpiry: true}

	for _, tok := range []string{
		"",
		"   ",
		"only-one-segment",
		"two.segments",
		"a.b.c.d",
		"!!!.???.***",
	} {
		_, err := tokenx.Decode(tok, secret, opts)
		require.ErrorIs(t, err, tokenx.ErrInvalidToken, "token %q", tok)
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := tokenx.Encode(freshClaims(), secret)
	require.NoError(t, err)

	_, err = tokenx.Decode(token, []byte("other-secret"), tokenx.Options{
		VerifySignature: true,
	})
	require.ErrorIs(t, err, tokenx.ErrInvalidToken)
}

func TestDecodeRejectsUnsignedAlg(t *testing.T) {
	t.Parallel()

	// Hand-rolled alg:none token; must never be accepted, with or without
	// signature verification.
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(
		`{"email":"alice@example.com","userId":"u","iat":1,"exp":99999999999}`))
	token := header + "." + payload + "."

	_, err := tokenx.Decode(token, secret, tokenx.Options{VerifySignature: true})
	require.ErrorIs(t, err, tokenx.ErrInvalidToken)

	_, err = tokenx.Decode(token, secret, tokenx.Options{})
	require.ErrorIs(t, err, tokenx.ErrInvalidToken)
}

func TestDecodeExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now().Truncate(time.Second)
	claims := tokenx.NewClaims("alice@example.com", "user-id",
		now.Add(-2*time.Hour), now.Add(-time.Hour))

	token, err := tokenx.Encode(claims, secret)
	require.NoError(t, err)

	// Expired and checked: rejected despite a valid signature.
	_, err = tokenx.Decode(token, secret, tokenx.Options{
		VerifySignature: true,
		VerifyExpiry:    true,
	})
	require.ErrorIs(t, err, tokenx.ErrInvalidToken)

	// Expired but expiry check disabled: claims still extractable.
	out, err := tokenx.Decode(token, secret, tokenx.Options{VerifySignature: true})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", out.Email)
}

func TestDecodeRequiresClaimFields(t *testing.T) {
	t.Parallel()

	now := time.Now()

	for name, claims := range map[string]tokenx.Claims{
		"missing email":  tokenx.NewClaims("", "user-id", now, now.Add(time.Hour)),
		"missing userId": tokenx.NewClaims("alice@example.com", "", now, now.Add(time.Hour)),
		"missing exp": {
			Email:  "alice@example.com",
			UserID: "user-id",
		},
	} {
		token, err := tokenx.Encode(claims, secret)
		require.NoError(t, err, name)

		_, err = tokenx.Decode(token, secret, tokenx.Options{VerifySignature: true})
		require.ErrorIs(t, err, tokenx.ErrInvalidToken, name)
	}
}
