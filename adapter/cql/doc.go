// Package cql adapts a gocql session into a strand.Transport.
//
// The adapter executes statements through the session and translates
// gocql's request errors into strand response envelopes, so the core
// classifier and retry policy drive retries identically for live clusters
// and for injected faults in tests.
//
//	cluster := gocql.NewCluster("10.0.0.1", "10.0.0.2", "10.0.0.3")
//	session, err := cluster.CreateSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	transport, _ := cql.NewTransport(session)
//	client, _ := strand.NewClient(transport, topo, topo)
//
// Note that gocql owns connection pooling and host routing internally; the
// host strand selects is recorded on the envelope for diagnostics and
// retry accounting, while the session's own pool picks the connection.
// Configure the session with a single-host pool policy if strict host
// pinning is required.
package cql
