// Package types provides shared types and error definitions for the strand library.
//
// This is a leaf package with zero strand imports to prevent import cycles.
// All packages in strand can safely import this package.
//
// # Types
//
// Consistency levels mirror the native protocol encoding used by gocql:
//
//	const (
//	    Any         Consistency = 0x00
//	    One         Consistency = 0x01
//	    Two         Consistency = 0x02
//	    Three       Consistency = 0x03
//	    Quorum      Consistency = 0x04
//	    All         Consistency = 0x05
//	    LocalQuorum Consistency = 0x06
//	    EachQuorum  Consistency = 0x07
//	    Serial      Consistency = 0x08
//	    LocalSerial Consistency = 0x09
//	    LocalOne    Consistency = 0x0A
//	)
//
// Statement describes one logical request: query text, bound values, the
// consistency level it executes at, an optional per-call timeout override,
// and the idempotence flag the retry policy consults.
//
// # Errors
//
// Terminal request failures are concrete error types, one per coordinator
// failure kind, so callers can distinguish them programmatically:
//
//   - Unavailable: not enough live replicas to even attempt the request
//   - WriteTimeout / ReadTimeout: the coordinator timed out waiting on replicas
//   - WriteFailure / ReadFailure: replicas explicitly rejected the request
//   - FunctionFailure: a server-side user-defined function raised
//   - ConnectionError: the coordinator itself could not be reached
//   - InvalidConsistency: caller error, detected before dispatch
//   - ProtocolDecodeError: the response frame could not be decoded at all
package types
