package strand

import "github.com/arloliu/strand/types"

// RequiredReplicas returns the number of replica acknowledgments the given
// consistency level demands under the given replication factor.
//
// The arithmetic mirrors the server side:
//
//   - QUORUM, LOCAL_QUORUM, EACH_QUORUM, SERIAL, LOCAL_SERIAL: floor(rf/2)+1
//   - ALL: rf
//   - ANY: 1 (satisfiable by any write, including a hinted handoff, so it
//     is never subject to Unavailable from replica count)
//   - ONE, LOCAL_ONE: 1
//   - TWO, THREE: the literal count, capped at rf
//
// A replication factor below 1 yields 0.
//
// Parameters:
//   - level: The consistency level
//   - replicationFactor: The keyspace replication factor
//
// Returns:
//   - int: Required replica acknowledgments
func RequiredReplicas(level types.Consistency, replicationFactor int) int {
	if replicationFactor < 1 {
		return 0
	}

	switch level {
	case types.All:
		return replicationFactor
	case types.Quorum, types.LocalQuorum, types.EachQuorum, types.Serial, types.LocalSerial:
		return replicationFactor/2 + 1
	case types.Two:
		return capAt(2, replicationFactor)
	case types.Three:
		return capAt(3, replicationFactor)
	default:
		// ANY, ONE, LOCAL_ONE, and unknown levels.
		return 1
	}
}

// ValidateStatement checks that the statement's consistency level is
// compatible with the statement type. Called once before the first
// dispatch; an invalid statement fails fast and is never retried.
//
// Rules:
//   - SERIAL and LOCAL_SERIAL are only valid on conditional (lightweight
//     transaction) writes or on reads
//   - ANY is only valid on writes
//
// Parameters:
//   - stmt: The statement to validate
//
// Returns:
//   - error: *types.InvalidConsistency, or nil if valid
func ValidateStatement(stmt *types.Statement) error {
	kind := stmt.EffectiveKind()

	if stmt.Consistency.IsSerial() && kind == types.KindWrite && !stmt.Conditional {
		return &types.InvalidConsistency{
			Consistency: stmt.Consistency,
			Reason:      "serial consistency is only valid on conditional writes",
		}
	}

	if stmt.Consistency == types.Any && kind == types.KindRead {
		return &types.InvalidConsistency{
			Consistency: stmt.Consistency,
			Reason:      "ANY is not supported for reads",
		}
	}

	return nil
}

func capAt(n, limit int) int {
	if n > limit {
		return limit
	}

	return n
}
