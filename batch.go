package strand

import (
	"context"
	"sync"

	"github.com/arloliu/strand/types"
)

// BatchResult is the outcome of one statement in a concurrent batch.
// Exactly one of Result and Err is set.
type BatchResult struct {
	// Result is the statement's result on success.
	Result *Result

	// Err is the typed terminal failure, nil on success.
	Err error
}

// ExecuteBatch executes the statements with bounded concurrency and
// returns their outcomes in input order.
//
// At most concurrency requests are in flight at any instant; a value
// below 1 is treated as 1, which makes execution strictly sequential and
// equivalent to calling Execute in a loop. A failing statement never
// cancels its siblings; every statement runs to its own terminal outcome
// and all results are collected.
//
// Each statement still performs its own retries and metrics recording
// exactly as Execute does.
//
// Parameters:
//   - ctx: Context shared by all statements; cancellation aborts the
//     current attempt of every in-flight statement
//   - stmts: The statements to execute
//   - concurrency: Maximum number of statements in flight
//
// Returns:
//   - []BatchResult: One entry per statement, ordered to match stmts
func (c *Client) ExecuteBatch(ctx context.Context, stmts []*types.Statement, concurrency int) []BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BatchResult, len(stmts))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, stmt := range stmts {
		// Acquiring before spawning caps in-flight requests and, with
		// concurrency=1, preserves strict sequential execution order.
		sem <- struct{}{}
		wg.Add(1)

		go func(i int, stmt *types.Statement) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := c.Execute(ctx, stmt)
			results[i] = BatchResult{Result: res, Err: err}
		}(i, stmt)
	}
	wg.Wait()

	return results
}
