package metrics

import "github.com/arloliu/strand/types"

// Nop is a no-op metrics collector that discards all increments.
//
// This is used as the default external collector when none is configured,
// avoiding nil checks throughout the codebase. The client-owned Registry
// still counts every outcome regardless.
type Nop struct{}

// Compile-time assertion that Nop implements types.MetricsCollector.
var _ types.MetricsCollector = (*Nop)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *Nop: A collector that discards all increments
func NewNop() *Nop {
	return &Nop{}
}

// IncSuccess discards the increment.
func (n *Nop) IncSuccess() {}

// IncRetry discards the increment.
func (n *Nop) IncRetry() {}

// IncConnectionError discards the increment.
func (n *Nop) IncConnectionError() {}

// IncWriteTimeout discards the increment.
func (n *Nop) IncWriteTimeout() {}

// IncReadTimeout discards the increment.
func (n *Nop) IncReadTimeout() {}

// IncUnavailable discards the increment.
func (n *Nop) IncUnavailable() {}

// IncWriteFailure discards the increment.
func (n *Nop) IncWriteFailure() {}

// IncReadFailure discards the increment.
func (n *Nop) IncReadFailure() {}

// IncFunctionFailure discards the increment.
func (n *Nop) IncFunctionFailure() {}

// IncOtherError discards the increment.
func (n *Nop) IncOtherError() {}

// IncIgnore discards the increment.
func (n *Nop) IncIgnore() {}
