// Package worker runs the email delivery loop: consume tasks from the
// queue and deliver them over SMTP with bounded retries.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"foodshare-be/internal/mailer"
	"foodshare-be/internal/queue"
)

// Run starts the consumer and blocks until ctx is cancelled. Each task
// is retried with exponential backoff before it is handed back to the
// queue for requeueing.
func Run(ctx context.Context, consumer queue.TaskConsumer, sender mailer.Sender, logger *slog.Logger) error {
	handler := func(ctx context.Context, task mailer.EmailTask) error {
		backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))

		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := sender.Send(task); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		logger.Info("email delivered", "to", task.To, "subject", task.Subject)
		return nil
	}

	if err := consumer.StartConsuming(ctx, handler); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("worker stopping")
	return nil
}
