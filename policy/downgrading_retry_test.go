package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strand/types"
)

func TestDowngradingRetryUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		alive int
		want  types.Consistency
		ok    bool
	}{
		{"three alive", 3, types.Three, true},
		{"many alive", 5, types.Three, true},
		{"two alive", 2, types.Two, true},
		{"one alive", 1, types.One, true},
		{"none alive", 0, 0, false},
	}

	p := NewDowngradingRetry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &types.Unavailable{Consistency: types.All, Required: 5, Alive: tt.alive}
			d := p.Decide(err, plainStmt(), 1, 1, 3)

			if tt.ok {
				require.Equal(t, types.RetrySameHost, d.Type)
				require.NotNil(t, d.Consistency)
				require.Equal(t, tt.want, *d.Consistency)
			} else {
				// No replica alive; default policy takes over and moves on.
				require.Equal(t, types.RetryNextHost, d.Type)
				require.Nil(t, d.Consistency)
			}
		})
	}
}

func TestDowngradingRetryWriteTimeout(t *testing.T) {
	p := NewDowngradingRetry()

	// Idempotent with partial acknowledgment downgrades.
	err := &types.WriteTimeout{Consistency: types.Quorum, Received: 2, Required: 3, WriteType: types.WriteTypeSimple}
	d := p.Decide(err, idempotentStmt(), 1, 1, 3)
	require.Equal(t, types.RetrySameHost, d.Type)
	require.NotNil(t, d.Consistency)
	require.Equal(t, types.Two, *d.Consistency)

	// Non-idempotent never downgrades a write.
	d = p.Decide(err, plainStmt(), 1, 1, 3)
	require.Equal(t, types.Rethrow, d.Type)
	require.Nil(t, d.Consistency)
}

func TestDowngradingRetryReadTimeout(t *testing.T) {
	p := NewDowngradingRetry()
	stmt := &types.Statement{Query: "SELECT * FROM t", Kind: types.KindRead}

	// Reads downgrade without requiring idempotence.
	err := &types.ReadTimeout{Consistency: types.Quorum, Received: 1, Required: 2}
	d := p.Decide(err, stmt, 1, 1, 3)
	require.Equal(t, types.RetrySameHost, d.Type)
	require.NotNil(t, d.Consistency)
	require.Equal(t, types.One, *d.Consistency)

	// No responses at all; nothing to downgrade to.
	err = &types.ReadTimeout{Consistency: types.Quorum, Received: 0, Required: 2}
	d = p.Decide(err, stmt, 1, 1, 3)
	require.Equal(t, types.Rethrow, d.Type)
}

func TestDowngradingRetrySingleDowngrade(t *testing.T) {
	// After the first attempt the policy defers to the wrapped default,
	// so a downgraded retry that fails again terminates.
	p := NewDowngradingRetry()
	err := &types.Unavailable{Consistency: types.Quorum, Required: 2, Alive: 1}

	d := p.Decide(err, plainStmt(), 2, 1, 3)
	require.Equal(t, types.Rethrow, d.Type)
	require.Nil(t, d.Consistency)
}

func TestDowngradingRetryDelegatesOtherErrors(t *testing.T) {
	p := NewDowngradingRetry()

	d := p.Decide(&types.ConnectionError{Endpoint: "h1", Cause: errors.New("refused")}, plainStmt(), 1, 1, 3)
	require.Equal(t, types.RetryNextHost, d.Type)

	d = p.Decide(&types.WriteFailure{Consistency: types.All, Received: 2, Required: 3}, plainStmt(), 1, 1, 3)
	require.Equal(t, types.Rethrow, d.Type)
}
