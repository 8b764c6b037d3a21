package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSender sends code emails through a plain SMTP relay.
type SMTPSender struct {
	Addr     string // host:port
	Username string
	Password string
	From     string
	SiteName string
}

func (s *SMTPSender) SendCode(ctx context.Context, to, code string, ttl time.Duration) error {
	body, err := buildCodeEmail(s.SiteName, to, code, ttl)
	if err != nil {
		return err
	}

	msg := buildMessage(s.From, to, s.SiteName+" sign-in code", body)

	var auth smtp.Auth
	if s.Username != "" {
		host := s.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	// net/smtp has no context support; run the send in a goroutine so a
	// cancelled request does not hang on a slow relay.
	errCh := make(chan error, 1)
	go func() {
		errCh <- smtp.SendMail(s.Addr, auth, s.From, []string{to}, msg)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
