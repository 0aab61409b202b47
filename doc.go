// Package strand provides the request execution and failure classification
// engine for a coordinator-based replicated database client.
//
// Strand owns the path between "a statement was issued" and "a typed outcome
// was returned": it picks a coordinator through a pluggable host selector,
// dispatches through a pluggable transport, decodes the coordinator's verdict
// into a typed outcome, consults a retry policy, and records the terminal
// outcome in per-client counters. Wire encoding, connection pooling, and
// topology discovery stay behind the Transport, HostSelector, and
// TopologyInfo interfaces.
//
// # Key Features
//
//   - Typed Failure Taxonomy: Unavailable, Write/ReadTimeout, Write/ReadFailure,
//     FunctionFailure, and ConnectionError are distinct error types with the
//     coordinator's received/required replica counts preserved exactly
//   - Consistency Arithmetic: quorum/ALL/ANY replica math, validated before dispatch
//   - Pluggable Retry: the default policy retries only where idempotence allows;
//     consistency-downgrading and circuit-breaking variants live in policy/
//   - Exactly-Once Metrics: one counter update per terminal outcome, never per
//     intermediate retry, so counters line up with logical requests
//   - Bounded Fan-Out: ExecuteBatch runs many statements under a concurrency
//     cap and returns results in input order
//
// # Basic Usage
//
//	topo := topology.NewStatic(
//	    []types.Host{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042"},
//	    topology.WithReplicationFactor("app", 3),
//	)
//
//	client, err := strand.NewClient(transport, topo, topo,
//	    strand.WithDefaultTimeout(5*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	stmt := client.Statement("INSERT INTO app.users (id, name) VALUES (?, ?)", id, name)
//	stmt.Consistency = types.Quorum
//	if _, err := client.Execute(ctx, stmt); err != nil {
//	    var wt *types.WriteTimeout
//	    if errors.As(err, &wt) {
//	        log.Printf("timed out: %d of %d acks", wt.Received, wt.Required)
//	    }
//	}
//
// # Error Handling
//
// A terminal failure always surfaces as the concrete type from the types
// package, never wrapped or generalized. A caller who hit a WriteTimeout on a
// non-idempotent statement receives *types.WriteTimeout every time; the
// engine never masks a possible partial write with a silent retry.
//
// # Metrics
//
// Every client owns a metrics.Registry. Snapshot() returns a copy of the
// counters (successes, retries, connection_errors, write_timeouts,
// read_timeouts, unavailables, write_failures, read_failures,
// function_failures, other_errors, ignores). An additional
// types.MetricsCollector (for example contrib/metrics/vm for Prometheus
// export) can mirror the registry via WithMetrics.
package strand
