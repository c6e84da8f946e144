package smtp

import (
	"context"
	"log/slog"

	"github.com/digivote/api/internal/core/ports"
)

// LogSender logs outbound mail instead of delivering it. It stands in for the
// real sender when no SMTP host is configured, which keeps local development
// working without mail credentials.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

var _ ports.Notifier = (*LogSender)(nil)

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.log.Info("mail delivery skipped, smtp not configured",
		"to", to, "subject", subject, "body", body)
	return nil
}
