package policy

import "github.com/arloliu/strand/types"

// DowngradingRetry retries at a reduced consistency level when the
// coordinator reports that fewer replicas than required are reachable but
// some progress is still possible.
//
// WARNING: this policy knowingly trades consistency for availability. A
// request issued at QUORUM may complete at ONE. Use it only for workloads
// where serving stale or thinly-replicated data beats failing, and never
// as a silent default.
//
// Verdicts:
//
//   - Unavailable: when at least one replica is alive, retry on the same
//     coordinator at the strongest level satisfiable by the alive count.
//     With nothing alive, fall back to the wrapped policy.
//   - WriteTimeout: only idempotent statements are eligible (a retry may
//     re-apply the write). With partial acknowledgment, retry once at the
//     level satisfiable by the acknowledged count.
//   - ReadTimeout: with partial responses, retry once at the level
//     satisfiable by the response count. Reads carry no re-application
//     risk, so idempotence is not required.
//   - Everything else: delegate to the wrapped policy.
//
// Downgrades never target serial levels and only ever lower strictness.
type DowngradingRetry struct {
	inner interface {
		Decide(err error, stmt *types.Statement, attempt, triedHosts, totalHosts int) types.RetryDecision
	}
}

// NewDowngradingRetry creates a consistency-downgrading retry policy
// wrapping the default policy for failure kinds it does not handle.
//
// Returns:
//   - *DowngradingRetry: A new downgrading retry policy
func NewDowngradingRetry() *DowngradingRetry {
	return &DowngradingRetry{inner: NewDefaultRetry()}
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
func (p *DowngradingRetry) Decide(err error, stmt *types.Statement, attempt, triedHosts, totalHosts int) types.RetryDecision {
	if attempt > 1 {
		// One downgrade attempt only; after that, defer to the inner policy.
		return p.inner.Decide(err, stmt, attempt, triedHosts, totalHosts)
	}

	switch e := err.(type) {
	case *types.Unavailable:
		if level, ok := downgradeTo(e.Alive); ok {
			return types.RetryDecision{Type: types.RetrySameHost, Consistency: &level}
		}

	case *types.WriteTimeout:
		if stmt.Idempotent {
			if level, ok := downgradeTo(e.Received); ok {
				return types.RetryDecision{Type: types.RetrySameHost, Consistency: &level}
			}
		}

	case *types.ReadTimeout:
		if level, ok := downgradeTo(e.Received); ok {
			return types.RetryDecision{Type: types.RetrySameHost, Consistency: &level}
		}
	}

	return p.inner.Decide(err, stmt, attempt, triedHosts, totalHosts)
}

// downgradeTo returns the strongest non-serial level satisfiable by the
// given replica count.
func downgradeTo(replicas int) (types.Consistency, bool) {
	switch {
	case replicas >= 3:
		return types.Three, true
	case replicas == 2:
		return types.Two, true
	case replicas == 1:
		return types.One, true
	default:
		return 0, false
	}
}
