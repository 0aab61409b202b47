package requeue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strand/types"
)

func testEntry(query string, priority Priority) Entry {
	return Entry{
		Statement: &types.Statement{
			Query:      query,
			Kind:       types.KindWrite,
			Idempotent: true,
		},
		Priority: priority,
	}
}

func TestQueueEnqueueDequeue(t *testing.T) {
	q := NewQueue()

	require.NoError(t, q.Enqueue(context.Background(), testEntry("q1", PriorityLow)))
	require.Equal(t, 1, q.Len())

	entry, ok := q.TryDequeue()
	require.True(t, ok)
	require.Equal(t, "q1", entry.Statement.Query)
	require.False(t, entry.EnqueuedAt.IsZero())
	require.Equal(t, 0, q.Len())
}

func TestQueueFull(t *testing.T) {
	q := NewQueue(WithCapacity(2)) // one slot per priority

	require.NoError(t, q.Enqueue(context.Background(), testEntry("q1", PriorityLow)))
	require.ErrorIs(t, q.Enqueue(context.Background(), testEntry("q2", PriorityLow)), ErrQueueFull)

	// The high-priority slot is independent.
	require.NoError(t, q.Enqueue(context.Background(), testEntry("q3", PriorityHigh)))
}

func TestQueueClosedRejectsEnqueue(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Enqueue(context.Background(), testEntry("q1", PriorityLow)))

	q.Close()
	require.True(t, q.IsClosed())
	require.ErrorIs(t, q.Enqueue(context.Background(), testEntry("q2", PriorityLow)), ErrQueueClosed)

	// Pending entries remain dequeueable after Close.
	_, ok := q.TryDequeue()
	require.True(t, ok)

	// Idempotent.
	q.Close()
}

func TestQueueHighPriorityPreferred(t *testing.T) {
	q := NewQueue()

	require.NoError(t, q.Enqueue(context.Background(), testEntry("low", PriorityLow)))
	require.NoError(t, q.Enqueue(context.Background(), testEntry("high", PriorityHigh)))

	entry, ok := q.TryDequeue()
	require.True(t, ok)
	require.Equal(t, "high", entry.Statement.Query)
}

func TestQueueFairnessRatio(t *testing.T) {
	q := NewQueue(WithFairnessRatio(2))

	for i := 0; i < 6; i++ {
		require.NoError(t, q.Enqueue(context.Background(), testEntry("high", PriorityHigh)))
	}
	require.NoError(t, q.Enqueue(context.Background(), testEntry("low", PriorityLow)))

	// Two high entries, then the low one is forced through.
	var order []string
	for i := 0; i < 3; i++ {
		entry, ok := q.TryDequeue()
		require.True(t, ok)
		order = append(order, entry.Statement.Query)
	}
	require.Equal(t, []string{"high", "high", "low"}, order)
}

func TestQueueDequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewQueue()

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = q.Enqueue(context.Background(), testEntry("late", PriorityLow))
	}()

	entry, ok := q.Dequeue(context.Background())
	require.True(t, ok)
	require.Equal(t, "late", entry.Statement.Query)
}

func TestQueueDequeueCancelled(t *testing.T) {
	q := NewQueue()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok := q.Dequeue(ctx)
	require.False(t, ok)
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue()

	require.NoError(t, q.Enqueue(context.Background(), testEntry("low1", PriorityLow)))
	require.NoError(t, q.Enqueue(context.Background(), testEntry("high1", PriorityHigh)))
	require.NoError(t, q.Enqueue(context.Background(), testEntry("low2", PriorityLow)))

	entries := q.Drain()
	require.Len(t, entries, 3)
	// High priority drains first.
	require.Equal(t, "high1", entries[0].Statement.Query)
	require.Equal(t, 0, q.Len())
}

func TestQueueCap(t *testing.T) {
	q := NewQueue(WithCapacity(100))
	require.Equal(t, 100, q.Cap())

	// Capacity below 2 still yields one slot per priority.
	q = NewQueue(WithCapacity(0))
	require.Equal(t, 2, q.Cap())
}
