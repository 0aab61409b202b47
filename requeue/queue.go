package requeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/strand/types"
)

// Queue errors.
var (
	// ErrQueueFull indicates the target priority queue is at capacity.
	ErrQueueFull = errors.New("requeue: queue is full")

	// ErrQueueClosed indicates the queue no longer accepts entries.
	ErrQueueClosed = errors.New("requeue: queue is closed")
)

// Priority selects which internal queue an entry lands in.
type Priority int

const (
	// PriorityLow is the default priority.
	PriorityLow Priority = iota
	// PriorityHigh entries are preferred during dequeue, subject to the
	// configured fairness ratio.
	PriorityHigh
)

// Entry is one statement awaiting re-execution.
type Entry struct {
	// Statement is the statement to re-execute. Must be idempotent; the
	// worker may execute it more than once.
	Statement *types.Statement

	// Cause is the terminal error that put the statement here.
	Cause error

	// Priority selects the internal queue.
	Priority Priority

	// EnqueuedAt is stamped by Enqueue when left zero.
	EnqueuedAt time.Time

	// Attempts counts re-execution attempts already made. Maintained by
	// the worker.
	Attempts int
}

// Queue is an in-memory priority queue of failed statements.
//
// Two buffered channels share the total capacity, one per priority.
// High-priority entries are preferred during dequeue, with a ratio-based
// fairness rule so low-priority entries cannot starve under sustained
// high-priority load.
//
// All methods are safe for concurrent use. Close marks the queue closed
// without closing the channels, so concurrent Enqueue calls during shutdown
// fail with ErrQueueClosed instead of panicking.
type Queue struct {
	high     chan Entry
	low      chan Entry
	closed   atomic.Bool
	capacity int

	mu            sync.Mutex
	highProcessed int
	fairnessRatio int
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithCapacity sets the total queue capacity, split evenly between the two
// priorities.
//
// Default: 10000
//
// Parameters:
//   - n: Total capacity across both priorities
//
// Returns:
//   - QueueOption: Configuration option
func WithCapacity(n int) QueueOption {
	return func(q *Queue) {
		q.capacity = n
	}
}

// WithFairnessRatio sets how many high-priority entries are dequeued before
// one low-priority entry is forced through. Zero means equal priority.
//
// Default: 10
//
// Parameters:
//   - n: High-priority entries per low-priority entry
//
// Returns:
//   - QueueOption: Configuration option
func WithFairnessRatio(n int) QueueOption {
	return func(q *Queue) {
		q.fairnessRatio = n
	}
}

// NewQueue creates an in-memory requeue queue.
//
// Parameters:
//   - opts: Optional configuration options
//
// Returns:
//   - *Queue: A new queue ready for concurrent use
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		capacity:      10000,
		fairnessRatio: 10,
	}

	for _, opt := range opts {
		opt(q)
	}

	half := q.capacity / 2
	if half < 1 {
		half = 1
	}
	q.high = make(chan Entry, half)
	q.low = make(chan Entry, half)

	return q
}

// Enqueue adds an entry to its priority queue without blocking.
//
// Parameters:
//   - ctx: Context for cancellation
//   - entry: The entry to enqueue
//
// Returns:
//   - error: ErrQueueFull when at capacity, ErrQueueClosed after Close
func (q *Queue) Enqueue(ctx context.Context, entry Entry) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}
	if entry.EnqueuedAt.IsZero() {
		entry.EnqueuedAt = time.Now()
	}

	target := q.low
	if entry.Priority == PriorityHigh {
		target = q.high
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case target <- entry:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue blocks until an entry is available or the context is cancelled.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - Entry: The next entry
//   - bool: false when the context was cancelled
func (q *Queue) Dequeue(ctx context.Context) (Entry, bool) {
	if entry, ok := q.TryDequeue(); ok {
		return entry, true
	}

	select {
	case <-ctx.Done():
		return Entry{}, false
	case entry := <-q.high:
		q.mu.Lock()
		q.highProcessed++
		q.mu.Unlock()

		return entry, true
	case entry := <-q.low:
		q.mu.Lock()
		q.highProcessed = 0
		q.mu.Unlock()

		return entry, true
	}
}

// TryDequeue retrieves an entry without blocking, honoring the fairness
// ratio between priorities.
//
// Returns:
//   - Entry: The entry if one was available
//   - bool: false when both queues are empty
func (q *Queue) TryDequeue() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ratio := q.fairnessRatio
	if ratio <= 0 {
		ratio = 1
	}

	if q.highProcessed >= ratio {
		select {
		case entry := <-q.low:
			q.highProcessed = 0
			return entry, true
		default:
			// Low queue empty; fall through to high.
		}
	}

	select {
	case entry := <-q.high:
		q.highProcessed++
		return entry, true
	default:
	}

	select {
	case entry := <-q.low:
		q.highProcessed = 0
		return entry, true
	default:
		return Entry{}, false
	}
}

// Len returns the number of pending entries across both priorities.
func (q *Queue) Len() int {
	return len(q.high) + len(q.low)
}

// Cap returns the total capacity across both priorities.
func (q *Queue) Cap() int {
	return cap(q.high) + cap(q.low)
}

// Close marks the queue as closed. Pending entries remain dequeueable;
// use Drain to collect them. Close is idempotent.
func (q *Queue) Close() {
	q.closed.Store(true)
}

// IsClosed reports whether Close has been called.
func (q *Queue) IsClosed() bool {
	return q.closed.Load()
}

// Drain removes and returns all pending entries, high priority first.
//
// Intended for graceful shutdown, to hand pending entries to durable
// storage before the process exits.
//
// Returns:
//   - []Entry: All pending entries
func (q *Queue) Drain() []Entry {
	var entries []Entry

	for {
		select {
		case entry := <-q.high:
			entries = append(entries, entry)
		default:
			for {
				select {
				case entry := <-q.low:
					entries = append(entries, entry)
				default:
					return entries
				}
			}
		}
	}
}
