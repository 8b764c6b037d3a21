// Package mailer delivers one-time sign-in codes to users. The auth flow
// only depends on the Sender interface; SMTP is the production transport and
// LogSender stands in during local development.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"
)

// Sender delivers a plaintext sign-in code. A returned error means the user
// never received the code, which callers must treat as a failed issuance.
type Sender interface {
	SendCode(ctx context.Context, to, code string, ttl time.Duration) error
}

// CodeEmailParams is the data passed when executing the code email template.
type CodeEmailParams struct {
	Email    string
	SiteName string
	Code     string
	TTL      time.Duration
}

// DefaultCodeTemplate is the body used when no custom template is configured.
const DefaultCodeTemplate = `Hi {{.Email}},

This is your sign-in code for {{.SiteName}}:

{{.Code}}

The code is valid for {{printf "%.f" .TTL.Minutes}} minutes.

If you did not request a sign-in code, you can ignore this email.
`

var codeTemplate = template.Must(template.New("code").Parse(DefaultCodeTemplate))

func buildCodeEmail(siteName, to, code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := codeTemplate.Execute(&buf, CodeEmailParams{
		Email:    to,
		SiteName: siteName,
		Code:     code,
		TTL:      ttl,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render code email: %w", err)
	}
	return buf.String(), nil
}
