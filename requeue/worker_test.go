package requeue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strand/types"
)

func TestWorkerExecutesEntries(t *testing.T) {
	q := NewQueue()

	var mu sync.Mutex
	var executed []string
	done := make(chan struct{})

	w := NewWorker(q, func(_ context.Context, stmt *types.Statement) error {
		mu.Lock()
		executed = append(executed, stmt.Query)
		if len(executed) == 2 {
			close(done)
		}
		mu.Unlock()

		return nil
	}, WithPollInterval(5*time.Millisecond))

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, q.Enqueue(context.Background(), testEntry("q1", PriorityLow)))
	require.NoError(t, q.Enqueue(context.Background(), testEntry("q2", PriorityLow)))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("entries were not executed in time")
	}

	mu.Lock()
	defer mu.Unlock()
	require.ElementsMatch(t, []string{"q1", "q2"}, executed)
}

func TestWorkerRetriesWithBackoff(t *testing.T) {
	q := NewQueue()

	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})

	w := NewWorker(q, func(_ context.Context, _ *types.Statement) error {
		mu.Lock()
		defer mu.Unlock()

		attempts++
		if attempts < 3 {
			return errors.New("still down")
		}
		close(done)

		return nil
	},
		WithPollInterval(5*time.Millisecond),
		WithRetryDelay(time.Millisecond),
		WithMaxRetryDelay(5*time.Millisecond),
	)

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, q.Enqueue(context.Background(), testEntry("q1", PriorityLow)))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("entry was not retried to success in time")
	}
}

func TestWorkerDropsAfterMaxAttempts(t *testing.T) {
	q := NewQueue()

	failure := errors.New("permanently down")
	dropped := make(chan Entry, 1)
	var attempts int
	var mu sync.Mutex

	w := NewWorker(q, func(_ context.Context, _ *types.Statement) error {
		mu.Lock()
		attempts++
		mu.Unlock()

		return failure
	},
		WithPollInterval(5*time.Millisecond),
		WithRetryDelay(time.Millisecond),
		WithMaxAttempts(2),
		WithOnDrop(func(entry Entry, _ error) {
			dropped <- entry
		}),
	)

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, q.Enqueue(context.Background(), testEntry("q1", PriorityLow)))

	select {
	case entry := <-dropped:
		require.Equal(t, 2, entry.Attempts)
	case <-time.After(2 * time.Second):
		t.Fatal("entry was not dropped in time")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, attempts)
}

func TestWorkerCallbacks(t *testing.T) {
	q := NewQueue()

	succeeded := make(chan Entry, 1)
	failed := make(chan error, 1)
	var once sync.Once

	w := NewWorker(q, func(_ context.Context, _ *types.Statement) error {
		var err error
		once.Do(func() {
			err = errors.New("first attempt fails")
		})

		return err
	},
		WithPollInterval(5*time.Millisecond),
		WithRetryDelay(time.Millisecond),
		WithOnSuccess(func(entry Entry) {
			succeeded <- entry
		}),
		WithOnError(func(_ Entry, err error) {
			select {
			case failed <- err:
			default:
			}
		}),
	)

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, q.Enqueue(context.Background(), testEntry("q1", PriorityLow)))

	select {
	case err := <-failed:
		require.ErrorContains(t, err, "first attempt fails")
	case <-time.After(time.Second):
		t.Fatal("error callback not invoked")
	}

	select {
	case entry := <-succeeded:
		require.Equal(t, 1, entry.Attempts)
	case <-time.After(time.Second):
		t.Fatal("success callback not invoked")
	}
}

func TestWorkerStartStop(t *testing.T) {
	q := NewQueue()
	w := NewWorker(q, func(_ context.Context, _ *types.Statement) error {
		return nil
	}, WithPollInterval(time.Millisecond))

	require.NoError(t, w.Start())
	require.True(t, w.IsRunning())
	require.ErrorIs(t, w.Start(), ErrWorkerRunning)

	w.Stop()
	require.False(t, w.IsRunning())

	// Idempotent.
	w.Stop()
}
