// Package topology provides host-list and replication-factor sources for
// the strand client.
//
// Static is an in-memory implementation of both strand.HostSelector and
// strand.TopologyInfo: a fixed, ordered host list plus per-keyspace
// replication factors. It is the natural fit for deployments with a known
// contact-point list, and for tests that need deterministic host order.
//
//	topo := topology.NewStatic(
//	    []types.Host{"10.0.0.1:9042", "10.0.0.2:9042"},
//	    topology.WithReplicationFactor("app", 3),
//	)
//	client, _ := strand.NewClient(transport, topo, topo)
//
// A Static can also be loaded from a YAML file:
//
//	hosts:
//	  - 10.0.0.1:9042
//	  - 10.0.0.2:9042
//	replication:
//	  default: 3
//	  keyspaces:
//	    app: 3
//	    audit: 5
//
//	topo, err := topology.LoadFile("topology.yaml")
//
// Cluster discovery (gossip, control connection) is out of scope; a
// discovery-backed implementation only needs to satisfy the same two
// interfaces.
package topology
