package mailer

import "log/slog"

type logSender struct {
	logger *slog.Logger
}

// NewLogSender returns a Sender that only logs. Used when SMTP is not
// configured so the rest of the app behaves normally in development.
func NewLogSender(logger *slog.Logger) Sender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(task EmailTask) error {
	s.logger.Info("email suppressed, SMTP not configured",
		"to", task.To,
		"subject", task.Subject,
	)
	return nil
}
