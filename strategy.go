package strand

import (
	"context"
	"time"

	"github.com/arloliu/strand/types"
)

// Transport sends an encoded request to one coordinator and returns the
// decoded response envelope.
//
// Implementations own the wire protocol, connection pooling, and frame
// decoding; strand never sees raw bytes. A Transport signals outcomes as:
//
//   - (envelope, nil): the coordinator answered; the envelope carries either
//     a result or a coordinator-reported error, classified by Classify.
//   - (nil, error): no usable coordinator verdict. Context expiry surfaces
//     the context error; an undecodable frame surfaces
//     *types.ProtocolDecodeError; anything else is treated as a
//     transport-level failure and becomes *types.ConnectionError.
//
// Implementations MUST be safe for concurrent use from multiple goroutines
// and MUST honor ctx cancellation; strand derives a per-attempt deadline
// from the statement's effective timeout.
type Transport interface {
	// Send dispatches the statement to the given coordinator.
	//
	// Parameters:
	//   - ctx: Context carrying the per-attempt deadline
	//   - host: The coordinator to contact
	//   - stmt: The statement to execute (read-only)
	//   - consistency: Effective consistency level for this attempt
	//
	// Returns:
	//   - *ResponseEnvelope: The decoded coordinator response, nil on transport failure
	//   - error: Context, decode, or transport-level error
	Send(ctx context.Context, host types.Host, stmt *types.Statement, consistency types.Consistency) (*ResponseEnvelope, error)
}

// HostSelector chooses coordinator candidates for request attempts.
//
// The selector supplies hosts in a stable order of its choosing; strand
// walks that order, never randomizing, so retry behavior is deterministic
// for a given selector state.
//
// Implementations MUST be safe for concurrent use from multiple goroutines.
type HostSelector interface {
	// Next returns a coordinator that is not in the tried set.
	//
	// Parameters:
	//   - tried: Hosts already attempted for this logical request
	//
	// Returns:
	//   - types.Host: The next candidate coordinator
	//   - bool: false when every known host has been tried
	Next(tried map[types.Host]struct{}) (types.Host, bool)

	// Size returns the number of hosts currently known to the selector.
	Size() int
}

// TopologyInfo exposes the replication metadata strand needs for
// consistency arithmetic. It is read-only from strand's perspective
// during a single execution.
type TopologyInfo interface {
	// ReplicationFactor returns the replication factor for a keyspace.
	//
	// Parameters:
	//   - keyspace: The keyspace name; implementations define the
	//     fallback for an unknown or empty keyspace
	//
	// Returns:
	//   - int: The replication factor, at least 1
	ReplicationFactor(keyspace string) int
}

// RetryPolicy decides what to do with one failed attempt.
//
// Decide receives the typed attempt error, the statement, the 1-based
// number of the attempt that just failed, and the tried/total host counts.
// The decision is internal to the executor; callers only ever observe the
// terminal outcome.
//
// Implementations MUST be pure with respect to the request (no I/O, no
// blocking) and safe for concurrent use from multiple goroutines.
type RetryPolicy interface {
	// Decide returns the retry verdict for a failed attempt.
	//
	// Parameters:
	//   - err: The typed error from the attempt (types.Unavailable,
	//     types.WriteTimeout, ...)
	//   - stmt: The statement being executed (read-only)
	//   - attempt: 1-based number of the attempt that just failed
	//   - triedHosts: Number of distinct hosts attempted so far
	//   - totalHosts: Number of hosts known to the selector
	//
	// Returns:
	//   - types.RetryDecision: The action to take
	Decide(err error, stmt *types.Statement, attempt, triedHosts, totalHosts int) types.RetryDecision
}

// HostStateRecorder is an optional interface for host selectors that track
// per-host health. Selectors implementing it are notified after each
// attempt, enabling circuit-breaking selectors to steer traffic away from
// failing coordinators.
//
// Implementations MUST be safe for concurrent use from multiple goroutines.
//
// Example implementation: policy.BreakerSelector
type HostStateRecorder interface {
	// RecordSuccess records a successful attempt against a host.
	RecordSuccess(host types.Host)

	// RecordFailure records a failed attempt against a host.
	// Only transport-level failures are reported; coordinator-reported
	// partial failures (timeouts, unavailable) do not mark a host bad.
	RecordFailure(host types.Host)
}

// sleepCtx waits for the given delay or until the context is done,
// whichever comes first. Returns the context error on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
