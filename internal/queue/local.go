package queue

import (
	"context"
	"fmt"
	"sync"

	"wealth-backend/internal/shared/telemetry"
)

// LocalQueue runs jobs on an in-process worker pool fed by a buffered channel.
type LocalQueue struct {
	handler Handler
	workers int

	ch   chan Message
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.RWMutex
	closed bool
}

// LocalOption configures a LocalQueue.
type LocalOption func(*LocalQueue)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) LocalOption {
	return func(q *LocalQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

// WithQueueSize sets the channel buffer size.
func WithQueueSize(n int) LocalOption {
	return func(q *LocalQueue) {
		if n > 0 {
			q.ch = make(chan Message, n)
		}
	}
}

// NewLocalQueue starts the workers immediately.
func NewLocalQueue(handler Handler, opts ...LocalOption) *LocalQueue {
	q := &LocalQueue{
		handler: handler,
		workers: 4,
		ch:      make(chan Message, 100),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *LocalQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				for msg := range q.ch {
					q.run(workerID, msg)
				}
			}(i + 1)
		}
	})
}

func (q *LocalQueue) run(workerID int, msg Message) {
	ctx := telemetry.WithRequestID(context.Background(), msg.RequestID)
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("queue.local.panic", map[string]any{
				"worker_id":   workerID,
				"document_id": msg.DocumentID,
				"panic":       fmt.Sprint(rec),
			})
		}
	}()
	if err := q.handler(ctx, msg); err != nil {
		telemetry.Warn("queue.local.job_failed", map[string]any{
			"worker_id":   workerID,
			"document_id": msg.DocumentID,
			"request_id":  msg.RequestID,
			"error":       err.Error(),
		})
	}
}

// Send enqueues without blocking. It fails with ErrQueueFull when the buffer is
// full and ErrClosed after Shutdown.
func (q *LocalQueue) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.ch <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting messages and waits for queued jobs to finish or ctx to end.
func (q *LocalQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		telemetry.Warn("queue.local.shutdown_interrupted", map[string]any{"pending": len(q.ch)})
		return ctx.Err()
	case <-done:
		telemetry.Info("queue.local.drained", nil)
		return nil
	}
}

var _ Client = (*LocalQueue)(nil)
