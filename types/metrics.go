package types

// MetricsCollector defines methods for recording request outcomes.
//
// Implementations must be thread-safe as methods are called concurrently
// from all in-flight request executions. Increments must never block.
//
// The execution engine calls exactly one failure method per terminal
// failure, IncSuccess once per completed request, and IncRetry once per
// retry decision, so counters can be compared directly against the number
// of logical requests issued.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	client, _ := strand.NewClient(transport, selector, topo,
//	    strand.WithMetrics(collector),
//	)
//
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// IncSuccess increments the completed-request counter.
	IncSuccess()

	// IncRetry increments the retry counter. Called once per retry
	// decision, before the retried attempt is dispatched.
	IncRetry()

	// IncConnectionError increments the connection error counter.
	IncConnectionError()

	// IncWriteTimeout increments the write timeout counter.
	IncWriteTimeout()

	// IncReadTimeout increments the read timeout counter.
	IncReadTimeout()

	// IncUnavailable increments the unavailable counter.
	IncUnavailable()

	// IncWriteFailure increments the replica write failure counter.
	IncWriteFailure()

	// IncReadFailure increments the replica read failure counter.
	IncReadFailure()

	// IncFunctionFailure increments the user-defined function failure counter.
	IncFunctionFailure()

	// IncOtherError increments the counter for terminal errors outside the
	// coordinator failure taxonomy (e.g. undecodable response frames).
	IncOtherError()

	// IncIgnore increments the counter for failures the retry policy chose
	// to swallow, completing the request with an empty result.
	IncIgnore()
}
