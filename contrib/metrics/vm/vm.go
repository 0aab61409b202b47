package vm

import (
	"io"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/strand/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "strand"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector registers its counters with this set instead
// of creating a new one. The caller is responsible for exposing the set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All counters are pre-created at initialization time for optimal
// performance. Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	successes        *metrics.Counter
	retries          *metrics.Counter
	connectionErrors *metrics.Counter
	writeTimeouts    *metrics.Counter
	readTimeouts     *metrics.Counter
	unavailables     *metrics.Counter
	writeFailures    *metrics.Counter
	readFailures     *metrics.Counter
	functionFailures *metrics.Counter
	otherErrors      *metrics.Counter
	ignores          *metrics.Counter
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// Without WithMetricsSet, the collector creates its own metrics.Set and
// registers it globally.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	client, _ := strand.NewClient(transport, selector, topo,
//	    strand.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "strand",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all counters with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	c.successes = c.set.NewCounter(p + "_successes_total")
	c.retries = c.set.NewCounter(p + "_retries_total")
	c.connectionErrors = c.set.NewCounter(p + "_connection_errors_total")
	c.writeTimeouts = c.set.NewCounter(p + "_write_timeouts_total")
	c.readTimeouts = c.set.NewCounter(p + "_read_timeouts_total")
	c.unavailables = c.set.NewCounter(p + "_unavailables_total")
	c.writeFailures = c.set.NewCounter(p + "_write_failures_total")
	c.readFailures = c.set.NewCounter(p + "_read_failures_total")
	c.functionFailures = c.set.NewCounter(p + "_function_failures_total")
	c.otherErrors = c.set.NewCounter(p + "_other_errors_total")
	c.ignores = c.set.NewCounter(p + "_ignores_total")
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// IncSuccess increments the completed-request counter.
func (c *Collector) IncSuccess() {
	c.successes.Inc()
}

// IncRetry increments the retry counter.
func (c *Collector) IncRetry() {
	c.retries.Inc()
}

// IncConnectionError increments the connection error counter.
func (c *Collector) IncConnectionError() {
	c.connectionErrors.Inc()
}

// IncWriteTimeout increments the write timeout counter.
func (c *Collector) IncWriteTimeout() {
	c.writeTimeouts.Inc()
}

// IncReadTimeout increments the read timeout counter.
func (c *Collector) IncReadTimeout() {
	c.readTimeouts.Inc()
}

// IncUnavailable increments the unavailable counter.
func (c *Collector) IncUnavailable() {
	c.unavailables.Inc()
}

// IncWriteFailure increments the replica write failure counter.
func (c *Collector) IncWriteFailure() {
	c.writeFailures.Inc()
}

// IncReadFailure increments the replica read failure counter.
func (c *Collector) IncReadFailure() {
	c.readFailures.Inc()
}

// IncFunctionFailure increments the user-defined function failure counter.
func (c *Collector) IncFunctionFailure() {
	c.functionFailures.Inc()
}

// IncOtherError increments the out-of-taxonomy error counter.
func (c *Collector) IncOtherError() {
	c.otherErrors.Inc()
}

// IncIgnore increments the ignored-failure counter.
func (c *Collector) IncIgnore() {
	c.ignores.Inc()
}
