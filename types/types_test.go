package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsistencyString(t *testing.T) {
	tests := []struct {
		level Consistency
		want  string
	}{
		{Any, "ANY"},
		{One, "ONE"},
		{Two, "TWO"},
		{Three, "THREE"},
		{Quorum, "QUORUM"},
		{All, "ALL"},
		{LocalQuorum, "LOCAL_QUORUM"},
		{EachQuorum, "EACH_QUORUM"},
		{Serial, "SERIAL"},
		{LocalSerial, "LOCAL_SERIAL"},
		{LocalOne, "LOCAL_ONE"},
		{Consistency(0xFF), "UNKNOWN_255"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.level.String())
	}
}

func TestConsistencyIsSerial(t *testing.T) {
	require.True(t, Serial.IsSerial())
	require.True(t, LocalSerial.IsSerial())
	require.False(t, Quorum.IsSerial())
	require.False(t, Any.IsSerial())
}

func TestStatementEffectiveKind(t *testing.T) {
	tests := []struct {
		name string
		stmt Statement
		want StatementKind
	}{
		{
			name: "explicit read wins",
			stmt: Statement{Query: "INSERT INTO t (k) VALUES (?)", Kind: KindRead},
			want: KindRead,
		},
		{
			name: "explicit write wins",
			stmt: Statement{Query: "SELECT * FROM t", Kind: KindWrite},
			want: KindWrite,
		},
		{
			name: "select inferred as read",
			stmt: Statement{Query: "SELECT * FROM t WHERE k = ?"},
			want: KindRead,
		},
		{
			name: "lowercase select",
			stmt: Statement{Query: "select v from t"},
			want: KindRead,
		},
		{
			name: "leading whitespace",
			stmt: Statement{Query: "  \n SELECT v FROM t"},
			want: KindRead,
		},
		{
			name: "insert inferred as write",
			stmt: Statement{Query: "INSERT INTO t (k) VALUES (?)"},
			want: KindWrite,
		},
		{
			name: "update inferred as write",
			stmt: Statement{Query: "UPDATE t SET v = ? WHERE k = ?"},
			want: KindWrite,
		},
		{
			name: "empty query defaults to write",
			stmt: Statement{Query: ""},
			want: KindWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.stmt.EffectiveKind())
		})
	}
}

func TestRetryTypeString(t *testing.T) {
	require.Equal(t, "rethrow", Rethrow.String())
	require.Equal(t, "retry_same_host", RetrySameHost.String())
	require.Equal(t, "retry_next_host", RetryNextHost.String())
	require.Equal(t, "ignore", Ignore.String())
	require.Equal(t, "unknown", RetryType(99).String())
}

func TestRethrowDecision(t *testing.T) {
	d := RethrowDecision()
	require.Equal(t, Rethrow, d.Type)
	require.Zero(t, d.Delay)
	require.Nil(t, d.Consistency)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid consistency",
			err:  &InvalidConsistency{Consistency: Serial, Reason: "not a conditional write"},
			want: "strand: invalid consistency SERIAL: not a conditional write",
		},
		{
			name: "unavailable",
			err:  &Unavailable{Consistency: All, Required: 3, Alive: 2},
			want: "strand: unavailable at ALL: required 3 replicas, 2 alive",
		},
		{
			name: "write timeout",
			err:  &WriteTimeout{Consistency: Quorum, Received: 1, Required: 2, WriteType: WriteTypeSimple},
			want: "strand: write timeout at QUORUM: received 1 of 2 required acks (write type SIMPLE)",
		},
		{
			name: "read timeout",
			err:  &ReadTimeout{Consistency: Quorum, Received: 2, Required: 2, DataPresent: false},
			want: "strand: read timeout at QUORUM: received 2 of 2 required responses (data present: false)",
		},
		{
			name: "function failure",
			err:  &FunctionFailure{Keyspace: "ks", Function: "f", ArgTypes: []string{"double", "int"}, Detail: "boom"},
			want: "strand: function failure in ks.f(double, int): boom",
		},
		{
			name: "connection error with endpoint",
			err:  &ConnectionError{Endpoint: "h1:9042", Cause: errors.New("refused")},
			want: "strand: connection error on h1:9042: refused",
		},
		{
			name: "connection error bare",
			err:  &ConnectionError{},
			want: "strand: connection error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWriteFailureReasonsStableOrder(t *testing.T) {
	err := &WriteFailure{
		Consistency: All,
		Received:    2,
		Required:    3,
		Reasons: map[Host]uint16{
			"10.0.0.2:9042": 0x0001,
			"10.0.0.1:9042": 0x0000,
		},
		WriteType: WriteTypeSimple,
	}

	want := "strand: write failure at ALL: received 2 of 3 required acks, 2 replica failure(s) [10.0.0.1:9042=0x0000, 10.0.0.2:9042=0x0001]"
	// Map iteration order must not leak into the message.
	for i := 0; i < 20; i++ {
		require.Equal(t, want, err.Error())
	}
}

func TestConnectionErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &ConnectionError{Endpoint: "h1", Cause: cause}
	require.ErrorIs(t, err, cause)

	decodeErr := &ProtocolDecodeError{Endpoint: "h1", Cause: cause}
	require.ErrorIs(t, decodeErr, cause)
}
