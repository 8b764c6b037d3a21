package mailer

import (
	"context"
	"log/slog"
	"time"
)

// LogSender logs the code instead of emailing it. Development only; it must
// never be wired up in production.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) SendCode(ctx context.Context, to, code string, ttl time.Duration) error {
	s.Logger.Warn("email delivery disabled, logging sign-in code instead",
		slog.String("to", to),
		slog.String("code", code),
		slog.Duration("ttl", ttl),
	)
	return nil
}
