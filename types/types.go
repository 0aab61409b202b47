package types

import (
	"strconv"
	"strings"
	"time"
)

// Host identifies a coordinator endpoint, typically "address:port".
type Host string

// String returns the string representation of the Host.
func (h Host) String() string {
	return string(h)
}

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Common consistency levels matching the native protocol encoding.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// String returns the protocol name of the consistency level.
func (c Consistency) String() string {
	switch c {
	case Any:
		return "ANY"
	case One:
		return "ONE"
	case Two:
		return "TWO"
	case Three:
		return "THREE"
	case Quorum:
		return "QUORUM"
	case All:
		return "ALL"
	case LocalQuorum:
		return "LOCAL_QUORUM"
	case EachQuorum:
		return "EACH_QUORUM"
	case Serial:
		return "SERIAL"
	case LocalSerial:
		return "LOCAL_SERIAL"
	case LocalOne:
		return "LOCAL_ONE"
	default:
		return "UNKNOWN_" + strconv.Itoa(int(c))
	}
}

// IsSerial returns true for the lightweight-transaction consistency levels.
func (c Consistency) IsSerial() bool {
	return c == Serial || c == LocalSerial
}

// WriteType describes the kind of write a coordinator was performing when it
// timed out or failed. Values match the native protocol strings.
type WriteType string

// Write types reported by the coordinator.
const (
	WriteTypeSimple        WriteType = "SIMPLE"
	WriteTypeBatch         WriteType = "BATCH"
	WriteTypeUnloggedBatch WriteType = "UNLOGGED_BATCH"
	WriteTypeCounter       WriteType = "COUNTER"
	WriteTypeBatchLog      WriteType = "BATCH_LOG"
	WriteTypeCAS           WriteType = "CAS"
	WriteTypeView          WriteType = "VIEW"
	WriteTypeCDC           WriteType = "CDC"
)

// StatementKind distinguishes reads from writes.
//
// The kind determines which timeout error is synthesized when the client
// observes a local timeout before hearing from the coordinator, and which
// metric counter a terminal timeout increments.
type StatementKind int

const (
	// KindUnknown lets the client infer the kind from the query text.
	KindUnknown StatementKind = iota
	// KindRead marks the statement as a read (SELECT).
	KindRead
	// KindWrite marks the statement as a mutation.
	KindWrite
)

// NoTimeout disables the client-side timer for a statement entirely,
// relying solely on the coordinator response. This is a deliberate,
// explicit choice; a zero Timeout means "use the client default".
const NoTimeout time.Duration = -1

// Statement is one logical request to execute against a coordinator.
//
// A Statement is created by the caller, immutable during execution, and
// discarded after. The execution engine never mutates it.
type Statement struct {
	// Query is the statement text with ? placeholders.
	Query string

	// Values are the bound values for the query.
	Values []any

	// Keyspace the statement targets; used to resolve the replication
	// factor for consistency arithmetic.
	Keyspace string

	// Consistency is the level the statement executes at.
	Consistency Consistency

	// Timeout overrides the client default for this statement.
	// Zero means "use the client default"; NoTimeout disables the
	// client-side timer entirely.
	Timeout time.Duration

	// Idempotent marks the statement as safe to execute more than once.
	// Only idempotent statements are eligible for timeout retries under
	// the default retry policy.
	Idempotent bool

	// Conditional marks a lightweight-transaction (IF ...) statement.
	// Serial consistency levels are only valid on conditional statements.
	Conditional bool

	// Kind distinguishes reads from writes. Leave as KindUnknown to have
	// the client infer it from the query text.
	Kind StatementKind
}

// EffectiveKind returns the statement kind, inferring it from the query
// text when the caller left Kind as KindUnknown. Queries starting with
// SELECT are reads; everything else is treated as a write.
func (s *Statement) EffectiveKind() StatementKind {
	if s.Kind != KindUnknown {
		return s.Kind
	}
	q := strings.TrimSpace(s.Query)
	if len(q) >= 6 && strings.EqualFold(q[:6], "select") {
		return KindRead
	}

	return KindWrite
}

// RetryType enumerates the possible retry policy verdicts.
type RetryType int

const (
	// Rethrow terminates the request and surfaces the typed error to the caller.
	Rethrow RetryType = iota
	// RetrySameHost retries the attempt on the same coordinator.
	RetrySameHost
	// RetryNextHost retries the attempt on a different coordinator.
	RetryNextHost
	// Ignore swallows the error and completes the request with an empty result.
	Ignore
)

// String returns a human-readable name for the retry type.
func (t RetryType) String() string {
	switch t {
	case Rethrow:
		return "rethrow"
	case RetrySameHost:
		return "retry_same_host"
	case RetryNextHost:
		return "retry_next_host"
	case Ignore:
		return "ignore"
	default:
		return "unknown"
	}
}

// RetryDecision is the verdict a retry policy returns for one failed attempt.
type RetryDecision struct {
	// Type is the action to take.
	Type RetryType

	// Delay is an optional backoff before the next attempt.
	// Only consulted for RetrySameHost and RetryNextHost.
	Delay time.Duration

	// Consistency, when non-nil, replaces the consistency level for the
	// retried attempt and all attempts after it. The statement itself is
	// never mutated. Only consulted for RetrySameHost and RetryNextHost.
	Consistency *Consistency
}

// RethrowDecision is the zero decision: terminate and surface the error.
func RethrowDecision() RetryDecision {
	return RetryDecision{Type: Rethrow}
}
