package i18n

import "golang.org/x/text/language"

// Error codes must match the codes defined in internal/errors/codes.go.
const (
	CodeCombatantEmptyID        = "COMBATANT_EMPTY_ID"
	CodeCombatantInvalidHealth  = "COMBATANT_INVALID_HEALTH"
	CodeCombatantAlreadyEngaged = "COMBATANT_ALREADY_ENGAGED"
	CodeSessionNotFound         = "SESSION_NOT_FOUND"
	CodeSessionCompleted        = "SESSION_COMPLETED"
	CodeSessionTooFewFighters   = "SESSION_TOO_FEW_FIGHTERS"
	CodeSessionBusy             = "SESSION_BUSY"
	CodeSessionYieldNegotiated  = "SESSION_YIELD_NEGOTIATED"
	CodeActionOutOfTurn         = "ACTION_OUT_OF_TURN"
	CodeActionNotAllowed        = "ACTION_NOT_ALLOWED"
	CodeActionUnknownKind       = "ACTION_UNKNOWN_KIND"
	CodeActionMissingTarget     = "ACTION_MISSING_TARGET"
	CodeActionInvalidTarget     = "ACTION_INVALID_TARGET"
	CodeActionTargetDown        = "ACTION_TARGET_DOWN"
	CodeActionActorDown         = "ACTION_ACTOR_DOWN"
	CodeDuelSameCombatant       = "DUEL_SAME_COMBATANT"
	CodeContentInvalidTuning    = "CONTENT_INVALID_TUNING"
	CodeContentReadFailed       = "CONTENT_READ_FAILED"
	CodeSeedUnavailable         = "SEED_UNAVAILABLE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	tag:    language.AmericanEnglish,
	messages: map[Code]string{
		// Combatant errors
		CodeCombatantEmptyID:        "Combatant is missing a character identifier",
		CodeCombatantInvalidHealth:  "Combatant health values are invalid",
		CodeCombatantAlreadyEngaged: "{{.CharacterID}} is already fighting in another encounter",

		// Session errors
		CodeSessionNotFound:        "Combat session not found",
		CodeSessionCompleted:       "This combat has already ended",
		CodeSessionTooFewFighters:  "A combat session needs at least two fighters",
		CodeSessionBusy:            "Another action is already being resolved, try again",
		CodeSessionYieldNegotiated: "A surrender has already been negotiated this round",

		// Action errors
		CodeActionOutOfTurn:     "It is not your turn to act",
		CodeActionNotAllowed:    "You cannot take that action right now",
		CodeActionUnknownKind:   "Unknown combat action",
		CodeActionMissingTarget: "This action requires a target",
		CodeActionInvalidTarget: "That target is not part of this combat",
		CodeActionTargetDown:    "That target is already down",
		CodeActionActorDown:     "You are in no state to act",

		// Duel errors
		CodeDuelSameCombatant: "A duelist cannot fight themselves",

		// Content errors
		CodeContentInvalidTuning: "Combat tuning values are invalid",
		CodeContentReadFailed:    "Combat content tables could not be loaded",

		// Random errors
		CodeSeedUnavailable: "Randomness source is unavailable",
	},
}
