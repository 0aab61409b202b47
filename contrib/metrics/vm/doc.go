// Package vm provides a VictoriaMetrics-backed metrics collector for strand.
//
// The collector implements types.MetricsCollector and exposes the request
// outcome counters as Prometheus metrics:
//
//	strand_successes_total
//	strand_retries_total
//	strand_connection_errors_total
//	strand_write_timeouts_total
//	strand_read_timeouts_total
//	strand_unavailables_total
//	strand_write_failures_total
//	strand_read_failures_total
//	strand_function_failures_total
//	strand_other_errors_total
//	strand_ignores_total
//
// Wire it into a client and expose the handler:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	client, _ := strand.NewClient(transport, selector, topo,
//	    strand.WithMetrics(collector),
//	)
//	http.HandleFunc("/metrics", collector.Handler)
package vm
