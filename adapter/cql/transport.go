package cql

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"github.com/arloliu/strand"
	"github.com/arloliu/strand/types"
)

// ErrNilSession indicates that a nil gocql session was provided.
var ErrNilSession = errors.New("cql: session cannot be nil")

// Transport implements strand.Transport over a gocql session.
//
// Safe for concurrent use; gocql sessions are themselves goroutine-safe.
type Transport struct {
	session *gocql.Session
}

// Compile-time assertion that Transport implements strand.Transport.
var _ strand.Transport = (*Transport)(nil)

// NewTransport creates a transport over an established gocql session.
//
// The transport does not own the session; closing the session remains the
// caller's responsibility.
//
// Parameters:
//   - session: An established gocql session
//
// Returns:
//   - *Transport: A new transport
//   - error: ErrNilSession if session is nil
func NewTransport(session *gocql.Session) (*Transport, error) {
	if session == nil {
		return nil, ErrNilSession
	}

	return &Transport{session: session}, nil
}

// Send executes the statement through the session and returns the decoded
// coordinator verdict as a response envelope.
//
// Coordinator-reported request errors (unavailable, timeouts, failures)
// become error envelopes; transport-level errors and context expiry are
// returned as errors for the executor to map.
//
// Parameters:
//   - ctx: Context carrying the per-attempt deadline
//   - host: The coordinator strand selected, recorded for diagnostics
//   - stmt: The statement to execute
//   - consistency: Effective consistency level for this attempt
//
// Returns:
//   - *strand.ResponseEnvelope: The coordinator verdict, nil on transport failure
//   - error: Context or transport-level error
func (t *Transport) Send(ctx context.Context, host types.Host, stmt *types.Statement, consistency types.Consistency) (*strand.ResponseEnvelope, error) {
	q := t.session.Query(stmt.Query, stmt.Values...).
		WithContext(ctx).
		Consistency(gocql.Consistency(consistency)).
		Idempotent(stmt.Idempotent)
	defer q.Release()

	if stmt.EffectiveKind() == types.KindRead {
		iter := q.Iter()
		rows, err := iter.SliceMap()
		if cerr := iter.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return t.translate(host, err)
		}

		return &strand.ResponseEnvelope{Host: host, Success: true, Rows: rows}, nil
	}

	if err := q.Exec(); err != nil {
		return t.translate(host, err)
	}

	return &strand.ResponseEnvelope{Host: host, Success: true}, nil
}

// translate maps a gocql error onto a response envelope, or returns it
// unchanged when it is not a coordinator verdict.
func (t *Transport) translate(host types.Host, err error) (*strand.ResponseEnvelope, error) {
	// Context expiry is the executor's signal for a client-observed
	// timeout; pass it through untouched.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil, err
	}

	switch e := err.(type) {
	case *gocql.RequestErrUnavailable:
		return &strand.ResponseEnvelope{
			Host:        host,
			ErrorCode:   strand.ErrCodeUnavailable,
			Message:     e.Message(),
			Consistency: types.Consistency(e.Consistency),
			Required:    e.Required,
			Alive:       e.Alive,
		}, nil

	case *gocql.RequestErrWriteTimeout:
		return &strand.ResponseEnvelope{
			Host:        host,
			ErrorCode:   strand.ErrCodeWriteTimeout,
			Message:     e.Message(),
			Consistency: types.Consistency(e.Consistency),
			Received:    e.Received,
			Required:    e.BlockFor,
			WriteType:   types.WriteType(e.WriteType),
		}, nil

	case *gocql.RequestErrReadTimeout:
		return &strand.ResponseEnvelope{
			Host:        host,
			ErrorCode:   strand.ErrCodeReadTimeout,
			Message:     e.Message(),
			Consistency: types.Consistency(e.Consistency),
			Received:    e.Received,
			Required:    e.BlockFor,
			DataPresent: e.DataPresent != 0,
		}, nil

	case *gocql.RequestErrWriteFailure:
		return &strand.ResponseEnvelope{
			Host:        host,
			ErrorCode:   strand.ErrCodeWriteFailure,
			Message:     e.Message(),
			Consistency: types.Consistency(e.Consistency),
			Received:    e.Received,
			Required:    e.BlockFor,
			WriteType:   types.WriteType(e.WriteType),
		}, nil

	case *gocql.RequestErrReadFailure:
		return &strand.ResponseEnvelope{
			Host:        host,
			ErrorCode:   strand.ErrCodeReadFailure,
			Message:     e.Message(),
			Consistency: types.Consistency(e.Consistency),
			Received:    e.Received,
			Required:    e.BlockFor,
			DataPresent: e.DataPresent,
		}, nil

	case *gocql.RequestErrFunctionFailure:
		return &strand.ResponseEnvelope{
			Host:      host,
			ErrorCode: strand.ErrCodeFunctionFailure,
			Message:   e.Message(),
			Keyspace:  e.Keyspace,
			Function:  e.Function,
			ArgTypes:  e.ArgTypes,
		}, nil
	}

	// Other coordinator error codes (overloaded, bootstrapping, syntax...)
	// carry no kind-specific fields strand consumes; surface the code so
	// classification can fall through to ConnectionError deterministically.
	var reqErr gocql.RequestError
	if errors.As(err, &reqErr) {
		return &strand.ResponseEnvelope{
			Host:      host,
			ErrorCode: strand.ErrorCode(reqErr.Code()),
			Message:   reqErr.Message(),
		}, nil
	}

	// Transport-level failure; the executor wraps it in ConnectionError.
	return nil, err
}
