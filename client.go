package strand

import (
	"context"
	"sync/atomic"

	"github.com/arloliu/strand/metrics"
	"github.com/arloliu/strand/policy"
	"github.com/arloliu/strand/types"
)

// Client executes statements against a coordinator-based replicated
// database through a pluggable transport.
//
// # Thread Safety
//
// Client is safe for concurrent use from multiple goroutines. A single
// client instance can be shared across your application:
//
//	client, err := strand.NewClient(transport, selector, topo, ...)
//	defer client.Close()
//
//	go func() { client.Execute(ctx, writeStmt) }()
//	go func() { client.Execute(ctx, readStmt) }()
//
// The only mutable state shared across concurrent executions is the
// metrics registry, which mutates through atomic increments; no locks are
// held across a network wait.
//
// # Lifecycle
//
// Create a client with NewClient() and release resources with Close().
// After Close() the client cannot be reused: operations return
// types.ErrClientClosed, the registry stops accepting increments, and the
// final metrics snapshot remains readable.
type Client struct {
	transport Transport
	selector  HostSelector
	topology  TopologyInfo
	config    *ClientConfig
	registry  *metrics.Registry
	recorder  HostStateRecorder // nil when the selector does not track host health
	closed    atomic.Bool
}

// NewClient creates a new strand client.
//
// The transport, selector, and topology collaborators are required. If the
// selector also implements HostStateRecorder, per-host health is reported
// to it after each attempt.
//
// Parameters:
//   - transport: Sends requests to coordinators (required)
//   - selector: Chooses coordinator candidates (required)
//   - topo: Supplies replication factors for consistency arithmetic (required)
//   - opts: Optional configuration options
//
// Returns:
//   - *Client: A new client
//   - error: A sentinel error when a required collaborator is nil
func NewClient(transport Transport, selector HostSelector, topo TopologyInfo, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, types.ErrNilTransport
	}
	if selector == nil {
		return nil, types.ErrNilHostSelector
	}
	if topo == nil {
		return nil, types.ErrNilTopology
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	// Ensure collector and logger are never nil
	if config.Metrics == nil {
		config.Metrics = metrics.NewNop()
	}
	if config.Logger == nil {
		config.Logger = DefaultConfig().Logger
	}
	if config.RetryPolicy == nil {
		config.RetryPolicy = policy.NewDefaultRetry()
	}

	client := &Client{
		transport: transport,
		selector:  selector,
		topology:  topo,
		config:    config,
		registry:  metrics.NewRegistry(),
	}

	if recorder, ok := selector.(HostStateRecorder); ok {
		client.recorder = recorder
	}

	return client, nil
}

// Statement creates a statement stamped with the client's default
// consistency level. The caller can adjust any field before execution.
//
// Parameters:
//   - query: Statement text with ? placeholders
//   - values: Values to bind to placeholders
//
// Returns:
//   - *types.Statement: A statement ready for Execute
func (c *Client) Statement(query string, values ...any) *types.Statement {
	return &types.Statement{
		Query:       query,
		Values:      values,
		Consistency: c.config.DefaultConsistency,
	}
}

// Execute runs one logical statement to a terminal outcome.
//
// The statement is validated, dispatched to a coordinator chosen by the
// host selector, and retried according to the retry policy until a
// terminal outcome is reached. A terminal failure is returned as the
// concrete typed error from the types package (never wrapped), and
// increments exactly one failure counter; intermediate retries increment
// only the retries counter.
//
// Parameters:
//   - ctx: Context for cancellation; cancelling aborts the current attempt
//     and terminates the request with the context error
//   - stmt: The statement to execute (read-only during execution)
//
// Returns:
//   - *Result: The decoded result on success
//   - error: types.ErrClientClosed, *types.InvalidConsistency, the context
//     error, or one of the typed terminal failures
func (c *Client) Execute(ctx context.Context, stmt *types.Statement) (*Result, error) {
	if c.closed.Load() {
		return nil, types.ErrClientClosed
	}
	if stmt == nil {
		return nil, types.ErrNilStatement
	}
	if err := ValidateStatement(stmt); err != nil {
		return nil, err
	}

	return newExecution(c, stmt).run(ctx)
}

// Metrics returns the client-owned counter registry.
//
// The registry is alive for the client's lifetime; after Close it stops
// accepting increments but its final snapshot remains readable.
//
// Returns:
//   - *metrics.Registry: The client's counter registry
func (c *Client) Metrics() *metrics.Registry {
	return c.registry
}

// Close shuts the client down.
//
// In-flight executions observe closure on their next attempt boundary.
// Close is idempotent.
func (c *Client) Close() {
	if c.closed.CompareAndSwap(false, true) {
		c.registry.Close()
	}
}
