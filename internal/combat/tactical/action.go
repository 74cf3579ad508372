package tactical

import (
	apperrors "github.com/emberfall/crucible/internal/errors"
)

var (
	// ErrUnknownAction indicates an action kind the engine does not know.
	ErrUnknownAction = apperrors.New(apperrors.CodeActionUnknownKind, "unknown action kind")
	// ErrMissingTarget indicates an action kind that requires a target
	// submitted without one.
	ErrMissingTarget = apperrors.New(apperrors.CodeActionMissingTarget, "action requires a target")
	// ErrInvalidTarget indicates a target that is absent, foreign to the
	// session, or otherwise illegal for the action.
	ErrInvalidTarget = apperrors.New(apperrors.CodeActionInvalidTarget, "target is not a valid choice for this action")
	// ErrTargetDown indicates a target that is already incapacitated.
	ErrTargetDown = apperrors.New(apperrors.CodeActionTargetDown, "target is already down")
	// ErrActorDown indicates an actor that is incapacitated or has yielded.
	ErrActorDown = apperrors.New(apperrors.CodeActionActorDown, "actor can no longer act")
	// ErrOutOfTurn indicates an action submitted outside the actor's turn.
	ErrOutOfTurn = apperrors.New(apperrors.CodeActionOutOfTurn, "it is not this character's turn")
	// ErrActionNotAllowed indicates an action that is illegal given the
	// actor's current status effects.
	ErrActionNotAllowed = apperrors.New(apperrors.CodeActionNotAllowed, "action is not allowed in the current state")
)

// ActionKind identifies a tactical action.
type ActionKind string

const (
	// ActionAttack resolves a contested exchange against a hostile target.
	ActionAttack ActionKind = "attack"
	// ActionProtect grants a defense bonus to an ally until next round.
	ActionProtect ActionKind = "protect"
	// ActionGrapple pins a hostile target on a contested check. A grappled
	// actor submits the same kind, without a target, to attempt an escape.
	ActionGrapple ActionKind = "grapple"
	// ActionDisengage leaves melee range, exposing the actor to opportunity
	// attacks from standing hostiles.
	ActionDisengage ActionKind = "disengage"
	// ActionBrace raises the actor's defense until next round in place of
	// attacking.
	ActionBrace ActionKind = "brace"
)

// Action is one declared tactical action. Kinds are a closed set; the
// payload is validated per kind before any resolution happens.
type Action struct {
	Kind     ActionKind
	TargetID string
}

// Validate checks the action's shape: a known kind and a payload that
// matches it. Session-dependent rules (turn ownership, target legality)
// are checked by the engine's ValidateAction.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionAttack, ActionProtect:
		if a.TargetID == "" {
			return ErrMissingTarget.WithMeta(map[string]string{"Kind": string(a.Kind)})
		}
	case ActionGrapple, ActionDisengage, ActionBrace:
		// Grapple targets are validated in session context: an escape
		// attempt carries no target.
	default:
		return ErrUnknownAction.WithMeta(map[string]string{"Kind": string(a.Kind)})
	}
	return nil
}

// RequiresTarget reports whether the kind acts on another combatant.
func (a Action) RequiresTarget() bool {
	switch a.Kind {
	case ActionAttack, ActionProtect:
		return true
	}
	return false
}
