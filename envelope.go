package strand

import (
	"fmt"

	"github.com/arloliu/strand/types"
)

// ErrorCode identifies a coordinator-reported error in a response envelope.
// Values match the native protocol error codes.
type ErrorCode uint32

// Coordinator error codes from the native protocol.
const (
	ErrCodeServer          ErrorCode = 0x0000
	ErrCodeProtocol        ErrorCode = 0x000A
	ErrCodeUnavailable     ErrorCode = 0x1000
	ErrCodeOverloaded      ErrorCode = 0x1001
	ErrCodeBootstrapping   ErrorCode = 0x1002
	ErrCodeTruncate        ErrorCode = 0x1003
	ErrCodeWriteTimeout    ErrorCode = 0x1100
	ErrCodeReadTimeout     ErrorCode = 0x1200
	ErrCodeReadFailure     ErrorCode = 0x1300
	ErrCodeFunctionFailure ErrorCode = 0x1400
	ErrCodeWriteFailure    ErrorCode = 0x1500
	ErrCodeSyntax          ErrorCode = 0x2000
	ErrCodeUnauthorized    ErrorCode = 0x2100
	ErrCodeInvalid         ErrorCode = 0x2200
)

// Result is the decoded payload of a successful request.
type Result struct {
	// Rows holds the decoded result rows, column name to value.
	// Nil for writes and other row-less results.
	Rows []map[string]any
}

// ResponseEnvelope is a decoded coordinator response.
//
// The transport decodes each frame into this structure; Classify then maps
// it onto a typed outcome, confining dynamic-shape handling to one place.
// Exactly one of the two shapes is populated: Success with Rows, or an
// error with ErrorCode and its kind-specific fields.
type ResponseEnvelope struct {
	// Host is the coordinator that produced this response.
	Host types.Host

	// Success is true for result frames. All error fields are ignored.
	Success bool

	// Rows holds decoded result rows for successful reads.
	Rows []map[string]any

	// ErrorCode identifies the coordinator error when Success is false.
	ErrorCode ErrorCode

	// Message is the server-provided error message.
	Message string

	// Consistency is the level the failed request was executed at.
	Consistency types.Consistency

	// Received is the number of replica acknowledgments/responses seen.
	// May exceed Required in edge cases; tolerated, never asserted on.
	Received int

	// Required is the number of acknowledgments the level demands.
	Required int

	// Alive is the number of live replicas (unavailable errors only).
	Alive int

	// WriteType is the kind of write in flight (write errors only).
	WriteType types.WriteType

	// DataPresent reports whether the data replica responded (read errors only).
	DataPresent bool

	// Reasons maps replica endpoints to failure reason codes
	// (read/write failure errors only).
	Reasons map[types.Host]uint16

	// Keyspace, Function, ArgTypes identify the failed user-defined
	// function (function failure errors only).
	Keyspace string
	Function string
	ArgTypes []string
}

// Classify maps a decoded response envelope onto a typed outcome.
//
// The mapping is deterministic and pure. Unknown or out-of-taxonomy error
// codes (server error, overloaded, bootstrapping, truncate, and anything
// unrecognized) classify as *types.ConnectionError so the executor can try
// another coordinator; Classify itself never fails on a decodable envelope.
//
// Received and Required are carried through without coercion so callers
// observe exactly the counts the coordinator reported.
//
// Parameters:
//   - env: The decoded coordinator response
//
// Returns:
//   - *Result: The decoded result on success, nil otherwise
//   - error: The typed failure, nil on success
func Classify(env *ResponseEnvelope) (*Result, error) {
	if env.Success {
		return &Result{Rows: env.Rows}, nil
	}

	switch env.ErrorCode {
	case ErrCodeUnavailable:
		return nil, &types.Unavailable{
			Consistency: env.Consistency,
			Required:    env.Required,
			Alive:       env.Alive,
		}
	case ErrCodeWriteTimeout:
		return nil, &types.WriteTimeout{
			Consistency: env.Consistency,
			Received:    env.Received,
			Required:    env.Required,
			WriteType:   env.WriteType,
		}
	case ErrCodeReadTimeout:
		return nil, &types.ReadTimeout{
			Consistency: env.Consistency,
			Received:    env.Received,
			Required:    env.Required,
			DataPresent: env.DataPresent,
		}
	case ErrCodeWriteFailure:
		return nil, &types.WriteFailure{
			Consistency: env.Consistency,
			Received:    env.Received,
			Required:    env.Required,
			Reasons:     env.Reasons,
			WriteType:   env.WriteType,
		}
	case ErrCodeReadFailure:
		return nil, &types.ReadFailure{
			Consistency: env.Consistency,
			Received:    env.Received,
			Required:    env.Required,
			Reasons:     env.Reasons,
			DataPresent: env.DataPresent,
		}
	case ErrCodeFunctionFailure:
		return nil, &types.FunctionFailure{
			Keyspace: env.Keyspace,
			Function: env.Function,
			ArgTypes: env.ArgTypes,
			Detail:   env.Message,
		}
	default:
		return nil, &types.ConnectionError{
			Endpoint: env.Host,
			Cause:    fmt.Errorf("coordinator error 0x%04x: %s", uint32(env.ErrorCode), env.Message),
		}
	}
}
