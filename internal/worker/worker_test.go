package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodshare-be/internal/mailer"
	"foodshare-be/internal/queue"
)

// fakeConsumer hands a fixed batch of tasks to the handler and signals
// done once the batch is drained.
type fakeConsumer struct {
	tasks []mailer.EmailTask
	done  chan struct{}

	mu       sync.Mutex
	requeued []mailer.EmailTask
}

var _ queue.TaskConsumer = (*fakeConsumer)(nil)

func (f *fakeConsumer) StartConsuming(ctx context.Context, handler func(context.Context, mailer.EmailTask) error) error {
	go func() {
		defer close(f.done)
		for _, task := range f.tasks {
			if err := handler(ctx, task); err != nil {
				f.mu.Lock()
				f.requeued = append(f.requeued, task)
				f.mu.Unlock()
			}
		}
	}()
	return nil
}

// flakySender fails the first failures calls, then delivers.
type flakySender struct {
	mu       sync.Mutex
	failures int
	sent     []mailer.EmailTask
}

func (f *flakySender) Send(task mailer.EmailTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, task)
	return nil
}

func runWorker(t *testing.T, consumer *fakeConsumer, sender mailer.Sender) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.DiscardHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, consumer, sender, logger)
	}()

	select {
	case <-consumer.done:
	case <-time.After(10 * time.Second):
		t.Fatal("consumer did not drain its tasks")
	}

	cancel()
	require.NoError(t, <-errCh)
}

func TestWorkerDeliversTask(t *testing.T) {
	task := mailer.VerificationEmail("donor@example.com", "http://localhost:8080", "abc123")
	consumer := &fakeConsumer{tasks: []mailer.EmailTask{task}, done: make(chan struct{})}
	sender := &flakySender{}

	runWorker(t, consumer, sender)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, task, sender.sent[0])
	assert.Empty(t, consumer.requeued)
}

func TestWorkerRetriesTransientFailure(t *testing.T) {
	task := mailer.ResetEmail("donor@example.com", "http://localhost:8080", "abc123")
	consumer := &fakeConsumer{tasks: []mailer.EmailTask{task}, done: make(chan struct{})}
	sender := &flakySender{failures: 2}

	runWorker(t, consumer, sender)

	require.Len(t, sender.sent, 1)
	assert.Empty(t, consumer.requeued)
}

func TestWorkerRequeuesAfterRetriesExhausted(t *testing.T) {
	task := mailer.ClaimedEmail("donor@example.com", "Bread", "North Pantry")
	consumer := &fakeConsumer{tasks: []mailer.EmailTask{task}, done: make(chan struct{})}
	sender := &flakySender{failures: 10}

	runWorker(t, consumer, sender)

	assert.Empty(t, sender.sent)
	require.Len(t, consumer.requeued, 1)
	assert.Equal(t, task, consumer.requeued[0])
}
