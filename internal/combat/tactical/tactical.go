// Package tactical resolves exactly one actor's declared action per call
// for multi-actor sessions: attack, protect, grapple, disengage, and
// brace, plus the round-start upkeep between rounds. The session manager
// owns the session state and calls in here under its per-session guard.
package tactical

import (
	"fmt"
	"math/rand"

	"github.com/emberfall/crucible/internal/combat"
	"github.com/emberfall/crucible/internal/combat/resolver"
	"github.com/emberfall/crucible/internal/content"
	"github.com/emberfall/crucible/internal/core/damage"
	"github.com/emberfall/crucible/internal/core/dice"
	apperrors "github.com/emberfall/crucible/internal/errors"
)

// ErrSessionNotActive indicates an action submitted to a session that has
// already completed.
var ErrSessionNotActive = apperrors.New(apperrors.CodeSessionCompleted, "session is no longer active")

// Durations for effects granted by tactical actions, in rounds.
const (
	protectDuration = 1
	braceDuration   = 1
	grappleDuration = 2
)

// grappleMagnitude is the success count an escape attempt must reach.
const grappleMagnitude = 2

// Engine resolves tactical actions using an injected RNG and the
// data-driven content tables.
type Engine struct {
	rng      *rand.Rand
	resolver *resolver.Resolver
	tables   *content.Tables
}

// New creates a tactical engine. A nil tables uses the embedded defaults.
func New(rng *rand.Rand, tables *content.Tables) *Engine {
	if tables == nil {
		tables = content.Default()
	}
	return &Engine{
		rng:      rng,
		resolver: resolver.New(rng, tables),
		tables:   tables,
	}
}

// GrappleContest records the contested pools of a grapple or an escape
// attempt.
type GrappleContest struct {
	ActorPool  dice.PoolResult
	TargetPool dice.PoolResult
	// Escape marks an escape attempt by a grappled actor; TargetPool is
	// zero for escapes.
	Escape    bool
	Succeeded bool
}

// ActionResult is the outcome of one resolved tactical action.
type ActionResult struct {
	ActorID  string
	Kind     ActionKind
	TargetID string

	// Attack is set for attack actions.
	Attack *combat.AttackResult
	// Grapple is set for grapple and escape actions.
	Grapple *GrappleContest
	// OpportunityAttacks are the reduced-dice attacks provoked by a
	// disengage, in turn order.
	OpportunityAttacks []combat.AttackResult

	EffectsApplied []combat.StatusEffect

	Narrative string
}

// BleedTick records bleed damage applied at round start.
type BleedTick struct {
	CharacterID string
	Damage      int
	HealthAfter int
}

// ExpiredEffect records a status effect that ran out at round start.
type ExpiredEffect struct {
	CharacterID string
	Effect      combat.StatusEffect
}

// RoundStartResult is the upkeep record for a new round.
type RoundStartResult struct {
	Round   int
	Bleeds  []BleedTick
	Expired []ExpiredEffect
}

// ValidateAction enforces every session-dependent rule before resolution:
// the session is active, it is the actor's turn, the action is legal for
// the actor's current status effects, and the target is a live member of
// the same session. It never mutates state.
func (e *Engine) ValidateAction(state *combat.SessionState, actorID string, action Action) error {
	if state.Status != combat.SessionStatusActive {
		return ErrSessionNotActive.WithMeta(map[string]string{"SessionID": state.ID})
	}
	if err := action.Validate(); err != nil {
		return err
	}

	actor := state.CombatantByID(actorID)
	if actor == nil {
		return ErrInvalidTarget.WithMeta(map[string]string{"CharacterID": actorID, "Role": "actor"})
	}
	if current := state.CurrentCombatant(); current == nil || current.Stats.CharacterID != actorID {
		return ErrOutOfTurn.WithMeta(map[string]string{"CharacterID": actorID})
	}
	if !actor.Standing() {
		return ErrActorDown.WithMeta(map[string]string{"CharacterID": actorID})
	}

	grappled := actor.Stats.HasEffect(combat.StatusGrappled)
	if grappled && action.Kind != ActionGrapple {
		return ErrActionNotAllowed.WithMeta(map[string]string{
			"CharacterID": actorID,
			"Reason":      "grappled",
		})
	}
	if action.Kind == ActionGrapple && !grappled && action.TargetID == "" {
		return ErrMissingTarget.WithMeta(map[string]string{"Kind": string(ActionGrapple)})
	}

	if action.TargetID == "" {
		return nil
	}
	return e.validateTarget(state, actor, action)
}

func (e *Engine) validateTarget(state *combat.SessionState, actor *combat.SessionCombatant, action Action) error {
	target := state.CombatantByID(action.TargetID)
	if target == nil {
		return ErrInvalidTarget.WithMeta(map[string]string{"CharacterID": action.TargetID})
	}
	if target == actor {
		return ErrInvalidTarget.WithMeta(map[string]string{
			"CharacterID": action.TargetID,
			"Reason":      "self",
		})
	}

	switch action.Kind {
	case ActionAttack, ActionGrapple:
		if target.Team == actor.Team {
			return ErrInvalidTarget.WithMeta(map[string]string{
				"CharacterID": action.TargetID,
				"Reason":      "friendly",
			})
		}
		if !target.Alive() {
			return ErrTargetDown.WithMeta(map[string]string{"CharacterID": action.TargetID})
		}
		if target.Yielded {
			return ErrInvalidTarget.WithMeta(map[string]string{
				"CharacterID": action.TargetID,
				"Reason":      "yielded",
			})
		}
		if target.Disengaged {
			return ErrInvalidTarget.WithMeta(map[string]string{
				"CharacterID": action.TargetID,
				"Reason":      "out of melee range",
			})
		}

	case ActionProtect:
		if target.Team != actor.Team {
			return ErrInvalidTarget.WithMeta(map[string]string{
				"CharacterID": action.TargetID,
				"Reason":      "hostile",
			})
		}
		if !target.Standing() {
			return ErrTargetDown.WithMeta(map[string]string{"CharacterID": action.TargetID})
		}
	}
	return nil
}

// Resolve validates and resolves one action, mutating the session state in
// place.
func (e *Engine) Resolve(state *combat.SessionState, actorID string, action Action) (*ActionResult, error) {
	if err := e.ValidateAction(state, actorID, action); err != nil {
		return nil, err
	}

	actor := state.CombatantByID(actorID)
	result := &ActionResult{
		ActorID:  actorID,
		Kind:     action.Kind,
		TargetID: action.TargetID,
	}

	switch action.Kind {
	case ActionAttack:
		e.resolveAttack(state, actor, action.TargetID, result)
	case ActionProtect:
		e.resolveProtect(state, actor, action.TargetID, result)
	case ActionGrapple:
		if actor.Stats.HasEffect(combat.StatusGrappled) {
			e.resolveEscape(actor, result)
		} else {
			e.resolveGrapple(state, actor, action.TargetID, result)
		}
	case ActionDisengage:
		e.resolveDisengage(state, actor, result)
	case ActionBrace:
		e.resolveBrace(actor, result)
	}
	return result, nil
}

func (e *Engine) resolveAttack(state *combat.SessionState, actor *combat.SessionCombatant, targetID string, result *ActionResult) {
	target := state.CombatantByID(targetID)
	attack := e.resolver.Resolve(&actor.Stats, &target.Stats, resolver.Context{
		AllowRiposte:            true,
		DefenderReversalCapable: target.BracedThisRound,
	})
	result.Attack = &attack
	result.EffectsApplied = attack.EffectsApplied

	switch {
	case attack.Dodged:
		result.Narrative = fmt.Sprintf("%s attacks %s, who slips aside.", name(actor), name(target))
	case attack.DefenseReversal:
		result.Narrative = fmt.Sprintf("%s attacks %s, who turns the blade back.", name(actor), name(target))
	case !attack.Hit:
		result.Narrative = fmt.Sprintf("%s swings at %s and misses.", name(actor), name(target))
	default:
		result.Narrative = fmt.Sprintf("%s lands a %s blow on %s, the strike %s for %d damage.",
			name(actor), attack.Quality, name(target), attack.DamageLabel, attack.Damage)
		if !target.Alive() {
			result.Narrative += fmt.Sprintf(" %s goes down.", name(target))
		}
	}
}

func (e *Engine) resolveProtect(state *combat.SessionState, actor *combat.SessionCombatant, targetID string, result *ActionResult) {
	target := state.CombatantByID(targetID)
	effect := combat.StatusEffect{
		Type:      combat.StatusProtected,
		Duration:  protectDuration,
		Magnitude: e.tables.Tuning.ProtectDice,
	}
	target.Stats.AddEffect(effect)
	result.EffectsApplied = append(result.EffectsApplied, effect)
	result.Narrative = fmt.Sprintf("%s moves to shield %s.", name(actor), name(target))
}

func (e *Engine) resolveGrapple(state *combat.SessionState, actor *combat.SessionCombatant, targetID string, result *ActionResult) {
	target := state.CombatantByID(targetID)
	tuning := e.tables.Tuning

	actorPool := dice.RollPool(e.rng, grapplePoolSize(&actor.Stats), tuning.AttackThreshold)
	targetPool := dice.RollPool(e.rng, grapplePoolSize(&target.Stats), tuning.AttackThreshold)

	contest := &GrappleContest{
		ActorPool:  actorPool,
		TargetPool: targetPool,
		Succeeded:  actorPool.Successes > targetPool.Successes,
	}
	result.Grapple = contest

	if !contest.Succeeded {
		result.Narrative = fmt.Sprintf("%s grabs for %s and is thrown off.", name(actor), name(target))
		return
	}

	effect := combat.StatusEffect{
		Type:      combat.StatusGrappled,
		Duration:  grappleDuration,
		Magnitude: grappleMagnitude,
	}
	target.Stats.AddEffect(effect)
	result.EffectsApplied = append(result.EffectsApplied, effect)
	result.Narrative = fmt.Sprintf("%s wrestles %s to a standstill.", name(actor), name(target))
}

// resolveEscape is a grappled actor's attempt to break free: an
// uncontested pool that must reach the grapple's magnitude in successes.
func (e *Engine) resolveEscape(actor *combat.SessionCombatant, result *ActionResult) {
	pool := dice.RollPool(e.rng, grapplePoolSize(&actor.Stats), e.tables.Tuning.AttackThreshold)

	needed := grappleMagnitude
	for _, effect := range actor.Stats.ActiveEffects {
		if effect.Type == combat.StatusGrappled {
			needed = effect.Magnitude
		}
	}

	contest := &GrappleContest{
		ActorPool: pool,
		Escape:    true,
		Succeeded: pool.Successes >= needed,
	}
	result.Grapple = contest

	if contest.Succeeded {
		actor.Stats.RemoveEffect(combat.StatusGrappled)
		result.Narrative = fmt.Sprintf("%s breaks free of the hold.", name(actor))
	} else {
		result.Narrative = fmt.Sprintf("%s strains against the hold and stays pinned.", name(actor))
	}
}

func (e *Engine) resolveDisengage(state *combat.SessionState, actor *combat.SessionCombatant, result *ActionResult) {
	actor.Disengaged = true
	result.Narrative = fmt.Sprintf("%s breaks away from the melee.", name(actor))

	// Every standing hostile still in melee gets a reduced-dice swing at
	// the retreating actor.
	for _, hostile := range state.Hostiles(actor.Team) {
		if hostile.Disengaged || hostile.Stats.HasEffect(combat.StatusGrappled) {
			continue
		}
		attack := e.resolver.Resolve(&hostile.Stats, &actor.Stats, resolver.Context{
			DiceDivisor: e.tables.Tuning.OpportunityDiceDivisor,
		})
		result.OpportunityAttacks = append(result.OpportunityAttacks, attack)
		if !actor.Alive() {
			result.Narrative += fmt.Sprintf(" %s is cut down while retreating.", name(actor))
			break
		}
	}
}

func (e *Engine) resolveBrace(actor *combat.SessionCombatant, result *ActionResult) {
	effect := combat.StatusEffect{
		Type:      combat.StatusBraced,
		Duration:  braceDuration,
		Magnitude: e.tables.Tuning.BraceDice,
	}
	actor.Stats.AddEffect(effect)
	actor.BracedThisRound = true
	result.EffectsApplied = append(result.EffectsApplied, effect)
	result.Narrative = fmt.Sprintf("%s plants their feet and braces.", name(actor))
}

// ProcessRoundStart runs the upkeep between rounds: bleed damage, effect
// duration ticks, and per-round flag resets. The caller advances
// state.Round before invoking it.
func (e *Engine) ProcessRoundStart(state *combat.SessionState) *RoundStartResult {
	result := &RoundStartResult{Round: state.Round}
	state.YieldNegotiatedThisRound = false

	for _, c := range state.Combatants {
		c.BracedThisRound = false
		if !c.Alive() {
			continue
		}

		for _, effect := range c.Stats.ActiveEffects {
			if effect.Type != combat.StatusBleeding {
				continue
			}
			_, after := c.Stats.ApplyDamage(effect.Magnitude)
			result.Bleeds = append(result.Bleeds, BleedTick{
				CharacterID: c.Stats.CharacterID,
				Damage:      effect.Magnitude,
				HealthAfter: after,
			})
			if after <= 0 {
				break
			}
		}

		for _, expired := range c.Stats.TickEffects() {
			result.Expired = append(result.Expired, ExpiredEffect{
				CharacterID: c.Stats.CharacterID,
				Effect:      expired,
			})
		}
	}
	return result
}

// grapplePoolSize is the raw-strength pool used by grapples and escapes:
// prowess, minus wound dice and attack penalties. Weapon dice do not help
// in a wrestle.
func grapplePoolSize(stats *combat.CombatantStats) int {
	return stats.Prowess -
		damage.WoundDice(stats.CurrentHealth, stats.MaxHealth) -
		stats.AttackDicePenalty()
}

func name(c *combat.SessionCombatant) string {
	if c.Stats.Name != "" {
		return c.Stats.Name
	}
	return c.Stats.CharacterID
}
