package strand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/strand/types"
)

func TestClassifySuccess(t *testing.T) {
	rows := []map[string]any{{"k": 1, "v": "a"}}
	res, err := Classify(&ResponseEnvelope{Host: "h1", Success: true, Rows: rows})
	require.NoError(t, err)
	require.Equal(t, rows, res.Rows)
}

func TestClassifyUnavailable(t *testing.T) {
	_, err := Classify(&ResponseEnvelope{
		ErrorCode:   ErrCodeUnavailable,
		Consistency: types.All,
		Required:    3,
		Alive:       2,
	})

	var ua *types.Unavailable
	require.ErrorAs(t, err, &ua)
	require.Equal(t, types.All, ua.Consistency)
	require.Equal(t, 3, ua.Required)
	require.Equal(t, 2, ua.Alive)
}

func TestClassifyWriteTimeout(t *testing.T) {
	_, err := Classify(&ResponseEnvelope{
		ErrorCode:   ErrCodeWriteTimeout,
		Consistency: types.Quorum,
		Received:    1,
		Required:    2,
		WriteType:   types.WriteTypeBatchLog,
	})

	var wt *types.WriteTimeout
	require.ErrorAs(t, err, &wt)
	require.Equal(t, 1, wt.Received)
	require.Equal(t, 2, wt.Required)
	require.Equal(t, types.WriteTypeBatchLog, wt.WriteType)
}

func TestClassifyReadTimeout(t *testing.T) {
	_, err := Classify(&ResponseEnvelope{
		ErrorCode:   ErrCodeReadTimeout,
		Consistency: types.Quorum,
		Received:    2,
		Required:    2,
		DataPresent: true,
	})

	var rt *types.ReadTimeout
	require.ErrorAs(t, err, &rt)
	require.Equal(t, 2, rt.Received)
	require.True(t, rt.DataPresent)
}

func TestClassifyWriteFailure(t *testing.T) {
	reasons := map[types.Host]uint16{"10.0.0.1:9042": 0x0000}
	_, err := Classify(&ResponseEnvelope{
		ErrorCode:   ErrCodeWriteFailure,
		Consistency: types.All,
		Received:    2,
		Required:    3,
		Reasons:     reasons,
		WriteType:   types.WriteTypeSimple,
	})

	var wf *types.WriteFailure
	require.ErrorAs(t, err, &wf)
	require.Equal(t, reasons, wf.Reasons)
	require.Equal(t, 2, wf.Received)
	require.Equal(t, 3, wf.Required)
}

func TestClassifyReadFailure(t *testing.T) {
	_, err := Classify(&ResponseEnvelope{
		ErrorCode:   ErrCodeReadFailure,
		Consistency: types.Quorum,
		Received:    1,
		Required:    2,
		Reasons:     map[types.Host]uint16{"10.0.0.2:9042": 0x0001},
	})

	var rf *types.ReadFailure
	require.ErrorAs(t, err, &rf)
	require.Len(t, rf.Reasons, 1)
	require.False(t, rf.DataPresent)
}

func TestClassifyFunctionFailure(t *testing.T) {
	_, err := Classify(&ResponseEnvelope{
		ErrorCode: ErrCodeFunctionFailure,
		Keyspace:  "ks",
		Function:  "div_by_zero",
		ArgTypes:  []string{"double", "double"},
		Message:   "java.lang.ArithmeticException",
	})

	var ff *types.FunctionFailure
	require.ErrorAs(t, err, &ff)
	require.Equal(t, "ks", ff.Keyspace)
	require.Equal(t, "div_by_zero", ff.Function)
	require.Equal(t, []string{"double", "double"}, ff.ArgTypes)
}

func TestClassifyReceivedExceedsRequired(t *testing.T) {
	// Coordinator-reported counts pass through without coercion, even when
	// received exceeds required.
	_, err := Classify(&ResponseEnvelope{
		ErrorCode:   ErrCodeWriteTimeout,
		Consistency: types.One,
		Received:    3,
		Required:    1,
		WriteType:   types.WriteTypeSimple,
	})

	var wt *types.WriteTimeout
	require.ErrorAs(t, err, &wt)
	require.Equal(t, 3, wt.Received)
	require.Equal(t, 1, wt.Required)
}

func TestClassifyUnknownCode(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
	}{
		{"server error", ErrCodeServer},
		{"overloaded", ErrCodeOverloaded},
		{"bootstrapping", ErrCodeBootstrapping},
		{"unrecognized", ErrorCode(0x9999)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(&ResponseEnvelope{
				Host:      "h1",
				ErrorCode: tt.code,
				Message:   "boom",
			})

			var ce *types.ConnectionError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, types.Host("h1"), ce.Endpoint)
		})
	}
}
