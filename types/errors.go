package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrClientClosed indicates an operation was attempted on a closed client.
	ErrClientClosed = errors.New("strand: client is closed")

	// ErrNilTransport indicates that a nil transport was provided.
	ErrNilTransport = errors.New("strand: transport cannot be nil")

	// ErrNilHostSelector indicates that a nil host selector was provided.
	ErrNilHostSelector = errors.New("strand: host selector cannot be nil")

	// ErrNilTopology indicates that a nil topology was provided.
	ErrNilTopology = errors.New("strand: topology cannot be nil")

	// ErrNoHostAvailable indicates the host selector had no coordinator to
	// offer. Surfaced to callers as the cause of a ConnectionError.
	ErrNoHostAvailable = errors.New("strand: no coordinator host available")

	// ErrNilStatement indicates that a nil statement was provided.
	ErrNilStatement = errors.New("strand: statement cannot be nil")
)

// InvalidConsistency indicates a consistency level incompatible with the
// statement it was attached to. This is a caller error; it is never retried
// and never increments a failure counter.
type InvalidConsistency struct {
	// Consistency is the offending level.
	Consistency Consistency

	// Reason explains the incompatibility.
	Reason string
}

// Error implements the error interface.
func (e *InvalidConsistency) Error() string {
	return "strand: invalid consistency " + e.Consistency.String() + ": " + e.Reason
}

// Unavailable indicates the coordinator determined, before dispatching to
// replicas, that not enough live replicas exist to satisfy the requested
// consistency level.
type Unavailable struct {
	// Consistency is the level the request was executed at.
	Consistency Consistency

	// Required is the number of replica acknowledgments the level demands.
	Required int

	// Alive is the number of replicas the coordinator believed were live.
	Alive int
}

// Error implements the error interface.
func (e *Unavailable) Error() string {
	return fmt.Sprintf("strand: unavailable at %s: required %d replicas, %d alive",
		e.Consistency, e.Required, e.Alive)
}

// WriteTimeout indicates the coordinator did not hear back from enough
// replicas before its write timeout elapsed. The write may or may not have
// been applied on the replicas that did not respond.
//
// Received may exceed Required in rare races; callers must tolerate it.
type WriteTimeout struct {
	// Consistency is the level the request was executed at.
	Consistency Consistency

	// Received is the number of replica acknowledgments seen in time.
	Received int

	// Required is the number of acknowledgments the level demands.
	Required int

	// WriteType is the kind of write the coordinator was performing.
	WriteType WriteType
}

// Error implements the error interface.
func (e *WriteTimeout) Error() string {
	return fmt.Sprintf("strand: write timeout at %s: received %d of %d required acks (write type %s)",
		e.Consistency, e.Received, e.Required, e.WriteType)
}

// ReadTimeout indicates the coordinator did not hear back from enough
// replicas before its read timeout elapsed.
type ReadTimeout struct {
	// Consistency is the level the request was executed at.
	Consistency Consistency

	// Received is the number of replica responses seen in time.
	Received int

	// Required is the number of responses the level demands.
	Required int

	// DataPresent is true when the replica asked for the actual data
	// (rather than a digest) responded.
	DataPresent bool
}

// Error implements the error interface.
func (e *ReadTimeout) Error() string {
	return fmt.Sprintf("strand: read timeout at %s: received %d of %d required responses (data present: %t)",
		e.Consistency, e.Received, e.Required, e.DataPresent)
}

// WriteFailure indicates one or more replicas explicitly rejected the write
// (as opposed to not answering in time). These are deterministic replica-side
// errors; retrying cannot fix them.
type WriteFailure struct {
	// Consistency is the level the request was executed at.
	Consistency Consistency

	// Received is the number of replicas that acknowledged the write.
	Received int

	// Required is the number of acknowledgments the level demands.
	Required int

	// Reasons maps replica endpoints to protocol failure reason codes.
	Reasons map[Host]uint16

	// WriteType is the kind of write the coordinator was performing.
	WriteType WriteType
}

// Error implements the error interface.
func (e *WriteFailure) Error() string {
	return fmt.Sprintf("strand: write failure at %s: received %d of %d required acks, %d replica failure(s)%s",
		e.Consistency, e.Received, e.Required, len(e.Reasons), formatReasons(e.Reasons))
}

// ReadFailure indicates one or more replicas explicitly failed the read,
// for example after crossing the tombstone scan threshold.
type ReadFailure struct {
	// Consistency is the level the request was executed at.
	Consistency Consistency

	// Received is the number of replicas that responded.
	Received int

	// Required is the number of responses the level demands.
	Required int

	// Reasons maps replica endpoints to protocol failure reason codes.
	Reasons map[Host]uint16

	// DataPresent is true when the data replica responded.
	DataPresent bool
}

// Error implements the error interface.
func (e *ReadFailure) Error() string {
	return fmt.Sprintf("strand: read failure at %s: received %d of %d required responses, %d replica failure(s)%s",
		e.Consistency, e.Received, e.Required, len(e.Reasons), formatReasons(e.Reasons))
}

// FunctionFailure indicates a server-side user-defined function raised
// during execution. The failure is deterministic; it is never retried.
type FunctionFailure struct {
	// Keyspace the function is defined in.
	Keyspace string

	// Function is the function name.
	Function string

	// ArgTypes are the CQL types of the function arguments.
	ArgTypes []string

	// Detail is the server-provided failure message.
	Detail string
}

// Error implements the error interface.
func (e *FunctionFailure) Error() string {
	return fmt.Sprintf("strand: function failure in %s.%s(%s): %s",
		e.Keyspace, e.Function, strings.Join(e.ArgTypes, ", "), e.Detail)
}

// ConnectionError indicates a transport-level failure to reach a
// coordinator, or an unrecognized coordinator response. The request never
// produced a usable coordinator verdict on this endpoint.
type ConnectionError struct {
	// Endpoint is the coordinator that could not be reached.
	// Empty when no host was available to try at all.
	Endpoint Host

	// Cause is the underlying transport error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	msg := "strand: connection error"
	if e.Endpoint != "" {
		msg += " on " + e.Endpoint.String()
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// ProtocolDecodeError indicates a response frame that could not be decoded
// at all. This signals a protocol mismatch between client and server; the
// attempt is failed without retry.
type ProtocolDecodeError struct {
	// Endpoint is the coordinator that produced the frame.
	Endpoint Host

	// Cause is the underlying decode error.
	Cause error
}

// Error implements the error interface.
func (e *ProtocolDecodeError) Error() string {
	return "strand: protocol decode error from " + e.Endpoint.String() + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ProtocolDecodeError) Unwrap() error {
	return e.Cause
}

// formatReasons renders per-endpoint failure reason codes in a stable order.
func formatReasons(reasons map[Host]uint16) string {
	if len(reasons) == 0 {
		return ""
	}

	endpoints := make([]string, 0, len(reasons))
	for h := range reasons {
		endpoints = append(endpoints, h.String())
	}
	sort.Strings(endpoints)

	var b strings.Builder
	b.WriteString(" [")
	for i, ep := range endpoints {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=0x%04x", ep, reasons[Host(ep)])
	}
	b.WriteString("]")

	return b.String()
}
