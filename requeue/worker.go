package requeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/strand/internal/logging"
	"github.com/arloliu/strand/types"
)

// ErrWorkerRunning indicates Start was called on a running worker.
var ErrWorkerRunning = errors.New("requeue: worker already running")

// ExecuteFunc re-executes one statement. Returning nil marks the entry done.
type ExecuteFunc func(ctx context.Context, stmt *types.Statement) error

// WorkerConfig configures a Worker.
type WorkerConfig struct {
	// PollInterval is the wait between dequeue attempts on an empty queue.
	// Default: 100ms
	PollInterval time.Duration

	// RetryDelay is the initial delay before re-enqueueing a failed entry.
	// Grows exponentially per attempt.
	// Default: 100ms
	RetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff.
	// Default: 30s
	MaxRetryDelay time.Duration

	// ExecuteTimeout bounds each re-execution.
	// Default: 30s
	ExecuteTimeout time.Duration

	// MaxAttempts drops an entry after this many failed re-executions.
	// Zero means retry indefinitely.
	// Default: 0
	MaxAttempts int

	// Logger receives worker events. Nil disables logging.
	Logger types.Logger

	// OnSuccess is called after a successful re-execution (optional).
	OnSuccess func(entry Entry)

	// OnError is called after each failed re-execution (optional).
	OnError func(entry Entry, err error)

	// OnDrop is called when an entry is dropped, either because MaxAttempts
	// was exceeded or the queue was full on re-enqueue (optional).
	OnDrop func(entry Entry, err error)
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:   100 * time.Millisecond,
		RetryDelay:     100 * time.Millisecond,
		MaxRetryDelay:  30 * time.Second,
		ExecuteTimeout: 30 * time.Second,
	}
}

// WorkerOption configures a Worker.
type WorkerOption func(*WorkerConfig)

// WithPollInterval sets the polling interval for an empty queue.
func WithPollInterval(d time.Duration) WorkerOption {
	return func(c *WorkerConfig) {
		c.PollInterval = d
	}
}

// WithRetryDelay sets the initial backoff delay.
func WithRetryDelay(d time.Duration) WorkerOption {
	return func(c *WorkerConfig) {
		c.RetryDelay = d
	}
}

// WithMaxRetryDelay caps the backoff delay.
func WithMaxRetryDelay(d time.Duration) WorkerOption {
	return func(c *WorkerConfig) {
		c.MaxRetryDelay = d
	}
}

// WithExecuteTimeout bounds each re-execution.
func WithExecuteTimeout(d time.Duration) WorkerOption {
	return func(c *WorkerConfig) {
		c.ExecuteTimeout = d
	}
}

// WithMaxAttempts drops entries after n failed re-executions.
func WithMaxAttempts(n int) WorkerOption {
	return func(c *WorkerConfig) {
		c.MaxAttempts = n
	}
}

// WithWorkerLogger sets the logger for worker events.
func WithWorkerLogger(l types.Logger) WorkerOption {
	return func(c *WorkerConfig) {
		c.Logger = l
	}
}

// WithOnSuccess sets the success callback.
func WithOnSuccess(fn func(Entry)) WorkerOption {
	return func(c *WorkerConfig) {
		c.OnSuccess = fn
	}
}

// WithOnError sets the per-attempt failure callback.
func WithOnError(fn func(Entry, error)) WorkerOption {
	return func(c *WorkerConfig) {
		c.OnError = fn
	}
}

// WithOnDrop sets the drop callback.
func WithOnDrop(fn func(Entry, error)) WorkerOption {
	return func(c *WorkerConfig) {
		c.OnDrop = fn
	}
}

// Worker consumes a Queue and re-executes its entries.
//
// A single goroutine polls the queue and executes entries one at a time.
// Failed entries are re-enqueued after an exponential backoff, so a slow
// entry does not block the rest of the queue while it waits.
type Worker struct {
	config  WorkerConfig
	queue   *Queue
	execute ExecuteFunc
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorker creates a worker consuming the given queue.
//
// Parameters:
//   - queue: The queue to consume
//   - execute: Function that re-executes one statement
//   - opts: Optional configuration options
//
// Returns:
//   - *Worker: A new worker, not yet started
func NewWorker(queue *Queue, execute ExecuteFunc, opts ...WorkerOption) *Worker {
	config := DefaultWorkerConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.Logger == nil {
		config.Logger = logging.NewNopLogger()
	}

	return &Worker{
		config:  config,
		queue:   queue,
		execute: execute,
		stopCh:  make(chan struct{}),
	}
}

// Start begins processing entries in a background goroutine.
//
// Returns:
//   - error: ErrWorkerRunning if already started
func (w *Worker) Start() error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrWorkerRunning
	}

	w.wg.Add(1)
	go w.process()

	return nil
}

// Stop signals the worker to stop and waits for the in-flight entry to
// finish. Idempotent.
func (w *Worker) Stop() {
	if !w.running.CompareAndSwap(true, false) {
		return
	}

	close(w.stopCh)
	w.wg.Wait()
}

// IsRunning reports whether the worker is currently running.
func (w *Worker) IsRunning() bool {
	return w.running.Load()
}

func (w *Worker) process() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		entry, ok := w.queue.TryDequeue()
		if !ok {
			select {
			case <-w.stopCh:
				return
			case <-time.After(w.config.PollInterval):
			}

			continue
		}

		w.executeEntry(entry)
	}
}

// executeEntry runs one entry and re-enqueues it with backoff on failure.
func (w *Worker) executeEntry(entry Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), w.config.ExecuteTimeout)
	err := w.execute(ctx, entry.Statement)
	cancel()

	if err == nil {
		w.config.Logger.Debug("requeued statement re-executed",
			"query", entry.Statement.Query,
			"attempts", entry.Attempts+1,
		)
		if w.config.OnSuccess != nil {
			w.config.OnSuccess(entry)
		}

		return
	}

	entry.Attempts++
	w.config.Logger.Warn("requeued statement failed",
		"query", entry.Statement.Query,
		"attempt", entry.Attempts,
		"error", err.Error(),
	)
	if w.config.OnError != nil {
		w.config.OnError(entry, err)
	}

	if w.config.MaxAttempts > 0 && entry.Attempts >= w.config.MaxAttempts {
		w.drop(entry, err, "max attempts exceeded")

		return
	}

	select {
	case <-w.stopCh:
		return
	case <-time.After(backoff(entry.Attempts, w.config.RetryDelay, w.config.MaxRetryDelay)):
	}

	enqCtx, enqCancel := context.WithTimeout(context.Background(), time.Second)
	defer enqCancel()

	if enqErr := w.queue.Enqueue(enqCtx, entry); enqErr != nil {
		w.drop(entry, err, enqErr.Error())
	}
}

func (w *Worker) drop(entry Entry, err error, reason string) {
	w.config.Logger.Error("requeued statement dropped",
		"query", entry.Statement.Query,
		"attempts", entry.Attempts,
		"reason", reason,
		"error", err.Error(),
	)
	if w.config.OnDrop != nil {
		w.config.OnDrop(entry, err)
	}
}

// backoff returns the exponential backoff delay for an attempt, capped at
// maxDelay.
func backoff(attempt int, delay, maxDelay time.Duration) time.Duration {
	for i := 1; i < attempt && delay < maxDelay; i++ {
		delay *= 2
	}
	if delay > maxDelay {
		delay = maxDelay
	}

	return delay
}
