package strand

import (
	"time"

	"github.com/arloliu/strand/internal/logging"
	"github.com/arloliu/strand/metrics"
	"github.com/arloliu/strand/types"
)

// DefaultRequestTimeout is the client-side timeout applied to a statement
// that neither overrides it nor disables it.
const DefaultRequestTimeout = 10 * time.Second

// ClientConfig holds configuration for strand clients.
type ClientConfig struct {
	RetryPolicy        RetryPolicy
	Metrics            types.MetricsCollector
	Logger             types.Logger
	DefaultTimeout     time.Duration
	DefaultConsistency types.Consistency
}

// DefaultConfig returns a ClientConfig with sensible defaults.
//
// Defaults:
//   - RetryPolicy: nil (the client installs policy.NewDefaultRetry())
//   - Metrics: no-op external collector (the client-owned registry always counts)
//   - Logger: no-op logger
//   - DefaultTimeout: DefaultRequestTimeout (10s)
//   - DefaultConsistency: LOCAL_ONE
//
// Returns:
//   - *ClientConfig: Configuration with default settings
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Metrics:            metrics.NewNop(),
		Logger:             logging.NewNopLogger(),
		DefaultTimeout:     DefaultRequestTimeout,
		DefaultConsistency: types.LocalOne,
	}
}

// Option configures a ClientConfig.
type Option func(*ClientConfig)

// WithRetryPolicy sets the retry policy consulted after each failed attempt.
//
// If not set, policy.NewDefaultRetry() is used.
//
// Parameters:
//   - p: The retry policy implementation
//
// Returns:
//   - Option: Configuration option
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *ClientConfig) {
		c.RetryPolicy = p
	}
}

// WithMetrics sets an additional metrics collector mirroring the
// client-owned registry.
//
// The registry always counts every outcome; the external collector
// receives the same increments, which is how Prometheus export is wired.
// Use contrib/metrics/vm.New() for VictoriaMetrics integration.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	client, _ := strand.NewClient(transport, selector, topo,
//	    strand.WithMetrics(collector),
//	)
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *ClientConfig) {
		c.Metrics = collector
	}
}

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// The logger interface is compatible with zap.SugaredLogger.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *ClientConfig) {
		c.Logger = logger
	}
}

// WithDefaultTimeout sets the client-side timeout applied to statements
// that do not override it.
//
// A statement can still opt out entirely with types.NoTimeout, relying
// solely on the coordinator response.
//
// Parameters:
//   - d: The default per-request timeout
//
// Returns:
//   - Option: Configuration option
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *ClientConfig) {
		c.DefaultTimeout = d
	}
}

// WithDefaultConsistency sets the consistency level stamped onto statements
// created through Client.Statement.
//
// Statements passed directly to Execute use their own Consistency field
// as-is.
//
// Parameters:
//   - level: The default consistency level
//
// Returns:
//   - Option: Configuration option
func WithDefaultConsistency(level types.Consistency) Option {
	return func(c *ClientConfig) {
		c.DefaultConsistency = level
	}
}
