package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Combatant errors
	CodeCombatantEmptyID        Code = "COMBATANT_EMPTY_ID"
	CodeCombatantInvalidHealth  Code = "COMBATANT_INVALID_HEALTH"
	CodeCombatantAlreadyEngaged Code = "COMBATANT_ALREADY_ENGAGED"

	// Session errors
	CodeSessionNotFound        Code = "SESSION_NOT_FOUND"
	CodeSessionCompleted       Code = "SESSION_COMPLETED"
	CodeSessionTooFewFighters  Code = "SESSION_TOO_FEW_FIGHTERS"
	CodeSessionBusy            Code = "SESSION_BUSY"
	CodeSessionYieldNegotiated Code = "SESSION_YIELD_NEGOTIATED"

	// Action errors
	CodeActionOutOfTurn     Code = "ACTION_OUT_OF_TURN"
	CodeActionNotAllowed    Code = "ACTION_NOT_ALLOWED"
	CodeActionUnknownKind   Code = "ACTION_UNKNOWN_KIND"
	CodeActionMissingTarget Code = "ACTION_MISSING_TARGET"
	CodeActionInvalidTarget Code = "ACTION_INVALID_TARGET"
	CodeActionTargetDown    Code = "ACTION_TARGET_DOWN"
	CodeActionActorDown     Code = "ACTION_ACTOR_DOWN"

	// Duel errors
	CodeDuelSameCombatant Code = "DUEL_SAME_COMBATANT"

	// Content/configuration errors
	CodeContentInvalidTuning Code = "CONTENT_INVALID_TUNING"
	CodeContentReadFailed    Code = "CONTENT_READ_FAILED"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeCombatantEmptyID,
		CodeCombatantInvalidHealth,
		CodeActionUnknownKind,
		CodeActionMissingTarget,
		CodeActionInvalidTarget,
		CodeDuelSameCombatant,
		CodeContentInvalidTuning:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow the operation
	case CodeCombatantAlreadyEngaged,
		CodeSessionCompleted,
		CodeSessionTooFewFighters,
		CodeSessionYieldNegotiated,
		CodeActionOutOfTurn,
		CodeActionNotAllowed,
		CodeActionTargetDown,
		CodeActionActorDown:
		return codes.FailedPrecondition

	// Aborted - contention on a session already mid-resolution
	case CodeSessionBusy:
		return codes.Aborted

	// NotFound - resource doesn't exist
	case CodeSessionNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
