package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildCodeEmail(t *testing.T) {
	t.Parallel()

	body, err := buildCodeEmail("Blush", "alice@example.com", "042137", 10*time.Minute)
	require.NoError(t, err)
	require.Contains(t, body, "Hi alice@example.com,")
	require.Contains(t, body, "Blush")
	require.Contains(t, body, "042137")
	require.Contains(t, body, "valid for 10 minutes")
}

func TestBuildMessageHeaders(t *testing.T) {
	t.Parallel()

	msg := string(buildMessage("noreply@blush.app", "alice@example.com", "Blush sign-in code", "line one\nline two\n"))

	require.True(t, strings.HasPrefix(msg, "From: noreply@blush.app\r\n"))
	require.Contains(t, msg, "To: alice@example.com\r\n")
	require.Contains(t, msg, "Subject: Blush sign-in code\r\n")
	require.Contains(t, msg, "\r\n\r\nline one\r\nline two\r\n")
}
