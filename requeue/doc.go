// Package requeue provides an in-memory queue and worker for re-executing
// statements that failed terminally.
//
// A typical use is write reconciliation: when Execute surfaces a timeout or
// connection error for an idempotent write, the application enqueues the
// statement and a background worker re-executes it with exponential backoff
// once the cluster recovers.
//
//	queue := requeue.NewQueue(requeue.WithCapacity(5000))
//	worker := requeue.NewWorker(queue,
//	    func(ctx context.Context, stmt *types.Statement) error {
//	        _, err := client.Execute(ctx, stmt)
//	        return err
//	    },
//	    requeue.WithMaxAttempts(8),
//	)
//	worker.Start()
//	defer worker.Stop()
//
//	if _, err := client.Execute(ctx, stmt); err != nil && stmt.Idempotent {
//	    _ = queue.Enqueue(ctx, requeue.Entry{Statement: stmt, Cause: err})
//	}
//
// Only enqueue idempotent statements: the worker may execute an entry more
// than once, and a statement that was reported as timed out may already have
// been applied.
//
// Entries are held in memory only and are lost on process restart. Use
// Drain during shutdown to persist pending entries elsewhere if losing them
// is not acceptable.
package requeue
