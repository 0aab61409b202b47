package topology

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strand/types"
)

func TestStaticNextOrder(t *testing.T) {
	s := NewStatic([]types.Host{"h1", "h2", "h3"})

	tried := map[types.Host]struct{}{}
	for _, want := range []types.Host{"h1", "h2", "h3"} {
		host, ok := s.Next(tried)
		require.True(t, ok)
		require.Equal(t, want, host)
		tried[host] = struct{}{}
	}

	_, ok := s.Next(tried)
	require.False(t, ok)
}

func TestStaticAddRemoveHost(t *testing.T) {
	s := NewStatic([]types.Host{"h1", "h2"})
	require.Equal(t, 2, s.Size())

	s.AddHost("h3")
	require.Equal(t, []types.Host{"h1", "h2", "h3"}, s.Hosts())

	// Duplicate add is a no-op.
	s.AddHost("h2")
	require.Equal(t, 3, s.Size())

	s.RemoveHost("h2")
	require.Equal(t, []types.Host{"h1", "h3"}, s.Hosts())

	// Removing an unknown host is a no-op.
	s.RemoveHost("h9")
	require.Equal(t, 2, s.Size())
}

func TestStaticHostsIsCopy(t *testing.T) {
	s := NewStatic([]types.Host{"h1", "h2"})

	hosts := s.Hosts()
	hosts[0] = "mutated"

	require.Equal(t, []types.Host{"h1", "h2"}, s.Hosts())
}

func TestStaticReplicationFactor(t *testing.T) {
	s := NewStatic([]types.Host{"h1"},
		WithDefaultReplicationFactor(3),
		WithReplicationFactor("audit", 5),
	)

	require.Equal(t, 5, s.ReplicationFactor("audit"))
	require.Equal(t, 3, s.ReplicationFactor("app"))

	s.SetReplicationFactor("app", 2)
	require.Equal(t, 2, s.ReplicationFactor("app"))

	// Invalid update is rejected.
	s.SetReplicationFactor("app", 0)
	require.Equal(t, 2, s.ReplicationFactor("app"))
}

func TestStaticReplicationFactorFloor(t *testing.T) {
	// Without any configuration the factor is never below 1.
	s := NewStatic([]types.Host{"h1"})
	require.Equal(t, 1, s.ReplicationFactor("anything"))
}
