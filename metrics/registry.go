// Package metrics provides the request outcome counters for strand.
//
// Registry is the canonical, always-on counter set owned by each client.
// Snapshot returns a point-in-time copy; counter names in Snapshot are part
// of the client's observable contract.
package metrics

import (
	"sync/atomic"

	"github.com/arloliu/strand/types"
)

// Registry holds monotonically increasing request outcome counters.
//
// All increments are atomic; no locks are held. Counters are unsigned
// 64-bit and wrap on overflow (after 2^64 increments), which is accepted
// behavior rather than saturating.
//
// A Registry is owned by a single client instance and passed to executors
// by dependency injection, keeping multiple clients isolated and testable
// in parallel. After Close, further increments are dropped; the final
// snapshot remains readable.
type Registry struct {
	successes        atomic.Uint64
	retries          atomic.Uint64
	connectionErrors atomic.Uint64
	writeTimeouts    atomic.Uint64
	readTimeouts     atomic.Uint64
	unavailables     atomic.Uint64
	writeFailures    atomic.Uint64
	readFailures     atomic.Uint64
	functionFailures atomic.Uint64
	otherErrors      atomic.Uint64
	ignores          atomic.Uint64

	closed atomic.Bool
}

// Compile-time assertion that Registry implements types.MetricsCollector.
var _ types.MetricsCollector = (*Registry)(nil)

// NewRegistry creates a new counter registry with all counters at zero.
//
// Returns:
//   - *Registry: A new registry ready for concurrent use
func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot is an immutable copy of the registry counters at one instant.
//
// Field names mirror the counter names exposed to callers:
// successes, retries, connection_errors, write_timeouts, read_timeouts,
// unavailables, write_failures, read_failures, function_failures,
// other_errors, ignores.
type Snapshot struct {
	Successes        uint64
	Retries          uint64
	ConnectionErrors uint64
	WriteTimeouts    uint64
	ReadTimeouts     uint64
	Unavailables     uint64
	WriteFailures    uint64
	ReadFailures     uint64
	FunctionFailures uint64
	OtherErrors      uint64
	Ignores          uint64
}

// Snapshot returns a copy of all counters.
//
// The copy is not a consistent cut across counters (each counter is read
// atomically but independently), which is sufficient for monotonic
// counters.
//
// Returns:
//   - Snapshot: Current counter values
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Successes:        r.successes.Load(),
		Retries:          r.retries.Load(),
		ConnectionErrors: r.connectionErrors.Load(),
		WriteTimeouts:    r.writeTimeouts.Load(),
		ReadTimeouts:     r.readTimeouts.Load(),
		Unavailables:     r.unavailables.Load(),
		WriteFailures:    r.writeFailures.Load(),
		ReadFailures:     r.readFailures.Load(),
		FunctionFailures: r.functionFailures.Load(),
		OtherErrors:      r.otherErrors.Load(),
		Ignores:          r.ignores.Load(),
	}
}

// Close stops the registry from accepting further increments.
//
// Reads of the final snapshot remain valid after Close. Close is
// idempotent.
func (r *Registry) Close() {
	r.closed.Store(true)
}

// IncSuccess increments the completed-request counter.
func (r *Registry) IncSuccess() {
	if r.closed.Load() {
		return
	}
	r.successes.Add(1)
}

// IncRetry increments the retry counter.
func (r *Registry) IncRetry() {
	if r.closed.Load() {
		return
	}
	r.retries.Add(1)
}

// IncConnectionError increments the connection error counter.
func (r *Registry) IncConnectionError() {
	if r.closed.Load() {
		return
	}
	r.connectionErrors.Add(1)
}

// IncWriteTimeout increments the write timeout counter.
func (r *Registry) IncWriteTimeout() {
	if r.closed.Load() {
		return
	}
	r.writeTimeouts.Add(1)
}

// IncReadTimeout increments the read timeout counter.
func (r *Registry) IncReadTimeout() {
	if r.closed.Load() {
		return
	}
	r.readTimeouts.Add(1)
}

// IncUnavailable increments the unavailable counter.
func (r *Registry) IncUnavailable() {
	if r.closed.Load() {
		return
	}
	r.unavailables.Add(1)
}

// IncWriteFailure increments the replica write failure counter.
func (r *Registry) IncWriteFailure() {
	if r.closed.Load() {
		return
	}
	r.writeFailures.Add(1)
}

// IncReadFailure increments the replica read failure counter.
func (r *Registry) IncReadFailure() {
	if r.closed.Load() {
		return
	}
	r.readFailures.Add(1)
}

// IncFunctionFailure increments the user-defined function failure counter.
func (r *Registry) IncFunctionFailure() {
	if r.closed.Load() {
		return
	}
	r.functionFailures.Add(1)
}

// IncOtherError increments the counter for errors outside the coordinator
// failure taxonomy.
func (r *Registry) IncOtherError() {
	if r.closed.Load() {
		return
	}
	r.otherErrors.Add(1)
}

// IncIgnore increments the counter for ignored failures.
func (r *Registry) IncIgnore() {
	if r.closed.Load() {
		return
	}
	r.ignores.Add(1)
}
