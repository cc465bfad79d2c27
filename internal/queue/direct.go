package queue

import (
	"context"
	"log/slog"

	"foodshare-be/internal/mailer"
)

type directPublisher struct {
	sender mailer.Sender
	logger *slog.Logger
}

// NewDirectPublisher returns a TaskPublisher that sends each email in
// its own goroutine instead of going through RabbitMQ. Used when no
// queue is configured; the response still never waits on delivery.
func NewDirectPublisher(sender mailer.Sender, logger *slog.Logger) TaskPublisher {
	return &directPublisher{sender: sender, logger: logger}
}

func (p *directPublisher) PublishEmailTask(_ context.Context, task mailer.EmailTask) error {
	go func() {
		if err := p.sender.Send(task); err != nil {
			p.logger.Error("direct email send failed", "to", task.To, "error", err)
		}
	}()
	return nil
}
