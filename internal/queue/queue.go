// Package queue carries email tasks between the request path and the
// delivery worker.
package queue

import (
	"context"

	"foodshare-be/internal/mailer"
)

// TaskPublisher enqueues an email task. Used by the request path.
type TaskPublisher interface {
	PublishEmailTask(ctx context.Context, task mailer.EmailTask) error
}

// TaskConsumer drains the queue. Used by the worker.
type TaskConsumer interface {
	// StartConsuming begins delivering queued tasks to handler. It
	// returns after the consumer goroutine is running; the goroutine
	// stops when ctx is cancelled.
	StartConsuming(ctx context.Context, handler func(context.Context, mailer.EmailTask) error) error
}
