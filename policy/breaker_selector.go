package policy

import (
	"sync"
	"time"

	"github.com/arloliu/strand/types"
)

// HostProvider is the subset of host selection the breaker wraps.
// strand's topology.Static satisfies it.
type HostProvider interface {
	// Next returns a coordinator not in the tried set.
	Next(tried map[types.Host]struct{}) (types.Host, bool)

	// Size returns the number of hosts currently known.
	Size() int
}

// BreakerSelector wraps a host selector with a per-host circuit breaker.
//
// Consecutive transport failures against a host trip its breaker; while
// tripped, the host is skipped by Next until the reset timeout elapses.
// A success closes the breaker immediately. If every candidate host is
// tripped, the breaker degrades to the inner selector's order rather than
// refusing all hosts: a fully-open breaker set usually means the network
// is the problem, not every coordinator at once.
//
// BreakerSelector implements both the selector surface and
// strand.HostStateRecorder, so the executor reports attempt outcomes to it
// automatically.
type BreakerSelector struct {
	inner        HostProvider
	threshold    int
	resetTimeout time.Duration
	logger       types.Logger

	mu    sync.Mutex
	state map[types.Host]*hostState
}

type hostState struct {
	failures    int
	lastFailure time.Time
}

// BreakerOption configures a BreakerSelector.
type BreakerOption func(*BreakerSelector)

// WithBreakerThreshold sets the number of consecutive failures that trip a
// host's breaker.
//
// Parameters:
//   - n: Number of failures required
//
// Returns:
//   - BreakerOption: Configuration option
func WithBreakerThreshold(n int) BreakerOption {
	return func(b *BreakerSelector) {
		b.threshold = n
	}
}

// WithBreakerResetTimeout sets how long a tripped host is skipped before
// it becomes eligible again.
//
// Parameters:
//   - d: Reset timeout duration
//
// Returns:
//   - BreakerOption: Configuration option
func WithBreakerResetTimeout(d time.Duration) BreakerOption {
	return func(b *BreakerSelector) {
		b.resetTimeout = d
	}
}

// WithBreakerLogger sets the logger for breaker state transitions.
//
// Parameters:
//   - l: The logger
//
// Returns:
//   - BreakerOption: Configuration option
func WithBreakerLogger(l types.Logger) BreakerOption {
	return func(b *BreakerSelector) {
		b.logger = l
	}
}

// NewBreakerSelector creates a circuit-breaking host selector wrapping the
// given provider.
//
// Defaults: threshold=3, resetTimeout=30s
//
// Parameters:
//   - inner: The host provider supplying candidate order
//   - opts: Optional configuration options
//
// Returns:
//   - *BreakerSelector: A new breaker selector
func NewBreakerSelector(inner HostProvider, opts ...BreakerOption) *BreakerSelector {
	b := &BreakerSelector{
		inner:        inner,
		threshold:    3,
		resetTimeout: 30 * time.Second,
		state:        make(map[types.Host]*hostState),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Next returns the first non-tripped host in the inner selector's order,
// falling back to the inner order when every candidate is tripped.
//
// Parameters:
//   - tried: Hosts already attempted for this logical request
//
// Returns:
//   - types.Host: The next candidate coordinator
//   - bool: false when every known host has been tried
func (b *BreakerSelector) Next(tried map[types.Host]struct{}) (types.Host, bool) {
	// Walk the inner order, accumulating skipped hosts as virtually tried.
	skipped := make(map[types.Host]struct{}, len(tried))
	for h := range tried {
		skipped[h] = struct{}{}
	}

	for {
		host, ok := b.inner.Next(skipped)
		if !ok {
			break
		}
		if !b.isOpen(host) {
			return host, true
		}
		skipped[host] = struct{}{}
	}

	// All remaining candidates are tripped; degrade to the inner order.
	return b.inner.Next(tried)
}

// Size returns the number of hosts known to the inner selector.
func (b *BreakerSelector) Size() int {
	return b.inner.Size()
}

// RecordSuccess closes the host's breaker.
//
// Parameters:
//   - host: The host that answered
func (b *BreakerSelector) RecordSuccess(host types.Host) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state[host]
	if s == nil {
		return
	}

	wasOpen := s.failures >= b.threshold
	s.failures = 0
	s.lastFailure = time.Time{}

	if wasOpen && b.logger != nil {
		b.logger.Info("host breaker closed", "host", host.String())
	}
}

// RecordFailure counts a transport failure against the host, tripping the
// breaker at the threshold. A failure after the reset timeout restarts the
// count at 1 instead of accumulating.
//
// Parameters:
//   - host: The host that failed
func (b *BreakerSelector) RecordFailure(host types.Host) {
	now := time.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state[host]
	if s == nil {
		s = &hostState{}
		b.state[host] = s
	}

	if !s.lastFailure.IsZero() && now.Sub(s.lastFailure) > b.resetTimeout {
		s.failures = 1
	} else {
		s.failures++
	}
	s.lastFailure = now

	if s.failures == b.threshold && b.logger != nil {
		b.logger.Warn("host breaker tripped",
			"host", host.String(),
			"threshold", b.threshold,
		)
	}
}

// Failures returns the current consecutive failure count for a host.
//
// Parameters:
//   - host: The host to check
//
// Returns:
//   - int: Number of consecutive failures
func (b *BreakerSelector) Failures(host types.Host) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s := b.state[host]; s != nil {
		return s.failures
	}

	return 0
}

// isOpen reports whether the host's breaker is currently tripped.
func (b *BreakerSelector) isOpen(host types.Host) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state[host]
	if s == nil || s.failures < b.threshold {
		return false
	}

	// The reset timeout re-admits the host for a probe attempt.
	return time.Since(s.lastFailure) <= b.resetTimeout
}
