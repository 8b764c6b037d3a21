package cryptox_test

import (
	"testing"

	"github.com/blushhq/blush/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeShape(t *testing.T) {
	t.Parallel()

	for range 200 {
		code, err := cryptox.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, cryptox.CodeDigits)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestHashCodeIsKeyedAndSalted(t *testing.T) {
	t.Parallel()

	key := []byte("server-secret")

	h := cryptox.HashCode(key, "alice@example.com", "123456")
	require.Equal(t, h, cryptox.HashCode(key, "alice@example.com", "123456"))

	// Different code, email, or key all change the digest.
	require.NotEqual(t, h, cryptox.HashCode(key, "alice@example.com", "123457"))
	require.NotEqual(t, h, cryptox.HashCode(key, "bob@example.com", "123456"))
	require.NotEqual(t, h, cryptox.HashCode([]byte("other-secret"), "alice@example.com", "123456"))
}

func TestFingerprintTokenDeterministic(t *testing.T) {
	t.Parallel()

	a := cryptox.FingerprintToken("some-token")
	b := cryptox.FingerprintToken("some-token")
	c := cryptox.FingerprintToken("some-token2")

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 43) // base64url of 32 bytes, no padding
}

func TestSecureCompare(t *testing.T) {
	t.Parallel()

	require.True(t, cryptox.SecureCompare("abc", "abc"))
	require.False(t, cryptox.SecureCompare("abc", "abd"))
	require.False(t, cryptox.SecureCompare("abc", "abcd"))
}
