package topology

import (
	"sync"

	"github.com/arloliu/strand"
	"github.com/arloliu/strand/types"
)

// Static is a fixed, ordered host list with per-keyspace replication
// factors. It implements strand.HostSelector and strand.TopologyInfo.
//
// Hosts are offered in the configured order, never randomized, so retry
// behavior is deterministic. AddHost and RemoveHost allow operational
// adjustments; all methods are safe for concurrent use.
type Static struct {
	mu        sync.RWMutex
	hosts     []types.Host
	factors   map[string]int
	defaultRF int
}

// Compile-time assertions that Static satisfies both collaborator interfaces.
var (
	_ strand.HostSelector = (*Static)(nil)
	_ strand.TopologyInfo = (*Static)(nil)
)

// StaticOption configures a Static topology.
type StaticOption func(*Static)

// WithReplicationFactor sets the replication factor for one keyspace.
//
// Parameters:
//   - keyspace: The keyspace name
//   - rf: The replication factor, at least 1
//
// Returns:
//   - StaticOption: Configuration option
func WithReplicationFactor(keyspace string, rf int) StaticOption {
	return func(s *Static) {
		s.factors[keyspace] = rf
	}
}

// WithDefaultReplicationFactor sets the replication factor returned for
// keyspaces without an explicit entry.
//
// Default: 1
//
// Parameters:
//   - rf: The replication factor, at least 1
//
// Returns:
//   - StaticOption: Configuration option
func WithDefaultReplicationFactor(rf int) StaticOption {
	return func(s *Static) {
		s.defaultRF = rf
	}
}

// NewStatic creates a static topology over the given hosts.
//
// The host order is preserved and used as the coordinator selection order.
//
// Parameters:
//   - hosts: Coordinator endpoints in selection order
//   - opts: Optional configuration options
//
// Returns:
//   - *Static: A new static topology
func NewStatic(hosts []types.Host, opts ...StaticOption) *Static {
	s := &Static{
		hosts:     append([]types.Host(nil), hosts...),
		factors:   make(map[string]int),
		defaultRF: 1,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Next returns the first host in configured order that is not in the
// tried set.
//
// Parameters:
//   - tried: Hosts already attempted for this logical request
//
// Returns:
//   - types.Host: The next candidate coordinator
//   - bool: false when every host has been tried
func (s *Static) Next(tried map[types.Host]struct{}) (types.Host, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.hosts {
		if _, ok := tried[h]; !ok {
			return h, true
		}
	}

	return "", false
}

// Size returns the number of known hosts.
func (s *Static) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.hosts)
}

// Hosts returns a copy of the host list in selection order.
//
// Returns:
//   - []types.Host: The known hosts
func (s *Static) Hosts() []types.Host {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]types.Host(nil), s.hosts...)
}

// AddHost appends a host to the selection order if not already present.
//
// Parameters:
//   - host: The host to add
func (s *Static) AddHost(host types.Host) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.hosts {
		if h == host {
			return
		}
	}
	s.hosts = append(s.hosts, host)
}

// RemoveHost removes a host from the selection order.
//
// Parameters:
//   - host: The host to remove
func (s *Static) RemoveHost(host types.Host) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, h := range s.hosts {
		if h == host {
			s.hosts = append(s.hosts[:i], s.hosts[i+1:]...)
			return
		}
	}
}

// ReplicationFactor returns the replication factor for a keyspace, falling
// back to the configured default for unknown keyspaces.
//
// Parameters:
//   - keyspace: The keyspace name
//
// Returns:
//   - int: The replication factor, at least 1
func (s *Static) ReplicationFactor(keyspace string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rf, ok := s.factors[keyspace]; ok && rf >= 1 {
		return rf
	}
	if s.defaultRF >= 1 {
		return s.defaultRF
	}

	return 1
}

// SetReplicationFactor updates the replication factor for a keyspace.
//
// Parameters:
//   - keyspace: The keyspace name
//   - rf: The replication factor, at least 1
func (s *Static) SetReplicationFactor(keyspace string, rf int) {
	if rf < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.factors[keyspace] = rf
}
