// Package policy provides retry policies and host-health selectors for the
// strand request execution engine.
//
// # Retry Policies
//
// Retry policies decide what to do with one failed attempt. All policies
// implement the strand.RetryPolicy interface:
//
//	type RetryPolicy interface {
//	    Decide(err error, stmt *types.Statement, attempt, triedHosts, totalHosts int) types.RetryDecision
//	}
//
// Available policies:
//
//   - [DefaultRetry]: the conservative default. Unavailable moves to the
//     next coordinator once; timeouts retry only idempotent statements that
//     saw partial progress; replica-side failures and function failures
//     always rethrow; connection errors walk the host list once.
//   - [DowngradingRetry]: wraps another policy and, when a quorum-family
//     request times out or goes unavailable with enough replicas alive to
//     still make progress, retries at a reduced consistency level. Trades
//     consistency for availability; never the default.
//
// Example:
//
//	client, _ := strand.NewClient(transport, selector, topo,
//	    strand.WithRetryPolicy(policy.NewDefaultRetry()),
//	)
//
// # Host Health
//
// [BreakerSelector] wraps a host selector with a per-host circuit breaker.
// Hosts accumulating consecutive transport failures are skipped until a
// reset timeout elapses. It implements strand.HostStateRecorder, so the
// executor feeds it attempt outcomes automatically.
//
//	inner := topology.NewStatic(hosts)
//	selector := policy.NewBreakerSelector(inner,
//	    policy.WithBreakerThreshold(3),
//	    policy.WithBreakerResetTimeout(30*time.Second),
//	)
package policy
