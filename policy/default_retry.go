package policy

import "github.com/arloliu/strand/types"

// DefaultRetry is the conservative default retry policy.
//
// Verdicts per failure kind:
//
//   - Unavailable: retry on the next coordinator once; a different
//     coordinator may have a fresher view of replica liveness. If the
//     request was already retried, rethrow.
//   - WriteTimeout / ReadTimeout: rethrow, unless the statement is
//     idempotent and at least one replica acknowledged, in which case retry
//     once on the same coordinator. Partial progress suggests the retry is
//     likely to succeed, and idempotence keeps at-most-once semantics for
//     the caller. A non-idempotent statement is never retried after a
//     timeout: the write may have been applied.
//   - WriteFailure / ReadFailure / FunctionFailure: always rethrow. These
//     are deterministic replica-side rejections a retry cannot fix.
//   - ConnectionError: retry on the next coordinator until every known
//     host has been tried, then rethrow.
//   - Anything else: rethrow.
//
// The policy is pure and stateless; the same inputs always produce the
// same decision.
type DefaultRetry struct{}

// NewDefaultRetry creates the default retry policy.
//
// Returns:
//   - *DefaultRetry: A new default retry policy
func NewDefaultRetry() *DefaultRetry {
	return &DefaultRetry{}
}

// Decide returns the retry verdict for a failed attempt.
//
// Parameters:
//   - err: The typed error from the attempt
//   - stmt: The statement being executed
//   - attempt: 1-based number of the attempt that just failed
//   - triedHosts: Number of distinct hosts attempted so far
//   - totalHosts: Number of hosts known to the selector
//
// Returns:
//   - types.RetryDecision: The action to take
func (p *DefaultRetry) Decide(err error, stmt *types.Statement, attempt, triedHosts, totalHosts int) types.RetryDecision {
	switch e := err.(type) {
	case *types.Unavailable:
		if attempt == 1 {
			return types.RetryDecision{Type: types.RetryNextHost}
		}

		return types.RethrowDecision()

	case *types.WriteTimeout:
		return timeoutDecision(stmt, attempt, e.Received)

	case *types.ReadTimeout:
		return timeoutDecision(stmt, attempt, e.Received)

	case *types.ConnectionError:
		if triedHosts < totalHosts {
			return types.RetryDecision{Type: types.RetryNextHost}
		}

		return types.RethrowDecision()

	default:
		// WriteFailure, ReadFailure, FunctionFailure, decode errors.
		return types.RethrowDecision()
	}
}

// timeoutDecision applies the shared timeout rule: one same-host retry,
// only for idempotent statements that saw partial progress.
func timeoutDecision(stmt *types.Statement, attempt, received int) types.RetryDecision {
	if stmt.Idempotent && received > 0 && attempt == 1 {
		return types.RetryDecision{Type: types.RetrySameHost}
	}

	return types.RethrowDecision()
}
