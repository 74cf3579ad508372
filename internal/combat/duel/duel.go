// Package duel resolves a complete 1v1 encounter in a single synchronous
// call: initiative, per-round contested exchanges, yield negotiation,
// desperate stands, and a terminal outcome within the configured round cap.
package duel

import (
	"math/rand"

	"github.com/emberfall/crucible/internal/combat"
	"github.com/emberfall/crucible/internal/combat/reputation"
	"github.com/emberfall/crucible/internal/combat/resolver"
	"github.com/emberfall/crucible/internal/content"
	"github.com/emberfall/crucible/internal/core/dice"
	apperrors "github.com/emberfall/crucible/internal/errors"
)

// ErrSameCombatant indicates a duel between a combatant and themselves.
var ErrSameCombatant = apperrors.New(apperrors.CodeDuelSameCombatant, "a duelist cannot fight themselves")

// Exchange is one attack within a round.
type Exchange struct {
	ActorID string
	Attack  combat.AttackResult
}

// RoundResult records one full round of a duel.
type RoundResult struct {
	Round int

	AttackerInitiative int
	DefenderInitiative int
	FirstActorID       string

	Exchanges []Exchange

	YieldAttempted   bool
	YieldAttemptedBy string
	YieldAccepted    bool
	// DesperateStand marks that a refused yielder was granted the bonus
	// this round.
	DesperateStand bool

	AttackerHealthAfter int
	DefenderHealthAfter int

	Narrative string
}

// DuelResult is the terminal record of a full duel.
type DuelResult struct {
	// WinnerID and LoserID are empty on a draw.
	WinnerID string
	LoserID  string
	Outcome  combat.DuelOutcome

	Rounds      []RoundResult
	TotalRounds int

	AttackerStartHealth int
	DefenderStartHealth int
	AttackerEndHealth   int
	DefenderEndHealth   int

	Reputation []reputation.Delta
}

// Engine resolves duels. It holds no state between calls beyond the
// injected RNG; the CombatantStats passed to Resolve are mutated in place
// and must not be shared with a concurrently running encounter.
type Engine struct {
	rng      *rand.Rand
	resolver *resolver.Resolver
	tables   *content.Tables
}

// New creates a duel engine. A nil tables uses the embedded defaults.
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

// state tracks per-duel bookkeeping that spans rounds.
type state struct {
	attacker *combat.CombatantStats
	defender *combat.CombatantStats

	attackerInitiative int
	defenderInitiative int
	first              *combat.CombatantStats
	second             *combat.CombatantStats

	// bonus holds desperate-stand attack dice per character id.
	bonus map[string]int
	// refused marks characters whose yield offer was refused; a refused
	// yielder does not offer again.
	refused map[string]bool

	// negotiated caps yield negotiation at one per round.
	negotiated bool
	// refusedThisRoundID names the combatant whose yield was refused during
	// the current round. Slaying them before the round ends is what makes a
	// kill a refused-and-slain outcome.
	refusedThisRoundID string
	// acceptedYielderID is set when a surrender was accepted, ending the
	// duel in favor of the other side.
	acceptedYielderID string
}

// Resolve runs the duel to a terminal outcome.
func (e *Engine) Resolve(attacker, defender *combat.CombatantStats) (*DuelResult, error) {
	if err := attacker.Validate(); err != nil {
		return nil, err
	}
	if err := defender.Validate(); err != nil {
		return nil, err
	}
	if attacker.CharacterID == defender.CharacterID {
		return nil, ErrSameCombatant
	}

	attackerInit := dice.RollInitiative(e.rng, attacker.Cunning, attacker.Prowess, -attacker.Encumbrance)
	defenderInit := dice.RollInitiative(e.rng, defender.Cunning, defender.Prowess, -defender.Encumbrance)

	st := &state{
		attacker:           attacker,
		defender:           defender,
		attackerInitiative: attackerInit.Total,
		defenderInitiative: defenderInit.Total,
		bonus:              make(map[string]int),
		refused:            make(map[string]bool),
	}
	// Initiative is rolled once for the whole duel; ties favor the
	// attacker.
	if attackerInit.Total >= defenderInit.Total {
		st.first, st.second = attacker, defender
	} else {
		st.first, st.second = defender, attacker
	}

	result := &DuelResult{
		AttackerStartHealth: attacker.CurrentHealth,
		DefenderStartHealth: defender.CurrentHealth,
	}

	outcome := combat.OutcomeDraw
	var winner, loser *combat.CombatantStats
	for round := 1; round <= e.tables.Tuning.MaxRounds; round++ {
		result.Rounds = append(result.Rounds, e.resolveRound(st, round))

		var done bool
		outcome, winner, loser, done = e.terminalState(st)
		if done {
			break
		}
		outcome = combat.OutcomeDraw
	}

	result.Outcome = outcome
	result.TotalRounds = len(result.Rounds)
	result.AttackerEndHealth = attacker.CurrentHealth
	result.DefenderEndHealth = defender.CurrentHealth
	if winner != nil && loser != nil {
		result.WinnerID = winner.CharacterID
		result.LoserID = loser.CharacterID
		result.Reputation = reputation.Compute(reputation.DuelSummary{
			Outcome:       outcome,
			WinnerID:      winner.CharacterID,
			LoserID:       loser.CharacterID,
			WinnerProwess: winner.Prowess,
			LoserProwess:  loser.Prowess,
		})
	}
	return result, nil
}

// resolveRound runs one round: the first actor attacks, the target may
// offer surrender, then the second actor attacks if the duel is still
// undecided.
func (e *Engine) resolveRound(st *state, round int) RoundResult {
	roundResult := RoundResult{
		Round:              round,
		AttackerInitiative: st.attackerInitiative,
		DefenderInitiative: st.defenderInitiative,
		FirstActorID:       st.first.CharacterID,
	}
	st.negotiated = false
	st.refusedThisRoundID = ""

	if round > 1 {
		tickEffects(st.attacker)
		tickEffects(st.defender)
		if st.attacker.IsDown() || st.defender.IsDown() {
			e.closeRound(st, &roundResult)
			return roundResult
		}
	}

	e.exchange(st, st.first, st.second, &roundResult)
	if st.first.IsDown() || st.second.IsDown() {
		e.closeRound(st, &roundResult)
		return roundResult
	}

	e.negotiateYield(st, st.first, st.second, &roundResult)
	if st.acceptedYielderID != "" {
		e.closeRound(st, &roundResult)
		return roundResult
	}

	e.exchange(st, st.second, st.first, &roundResult)
	if st.first.IsDown() || st.second.IsDown() {
		e.closeRound(st, &roundResult)
		return roundResult
	}

	// The symmetric yield check only runs if no negotiation happened
	// earlier this round.
	e.negotiateYield(st, st.second, st.first, &roundResult)

	e.closeRound(st, &roundResult)
	return roundResult
}

// exchange resolves one attack and records it.
func (e *Engine) exchange(st *state, actor, target *combat.CombatantStats, roundResult *RoundResult) {
	attack := e.resolver.Resolve(actor, target, resolver.Context{
		BonusAttackDice:         st.bonus[actor.CharacterID],
		AllowRiposte:            true,
		DefenderReversalCapable: true,
	})
	roundResult.Exchanges = append(roundResult.Exchanges, Exchange{
		ActorID: actor.CharacterID,
		Attack:  attack,
	})
}

// negotiateYield checks whether the target offers surrender after being
// attacked, and resolves the captor's answer. Each round allows at most one
// negotiation, and a combatant whose offer was already refused does not
// offer again.
func (e *Engine) negotiateYield(st *state, captor, target *combat.CombatantStats, roundResult *RoundResult) {
	if st.negotiated || st.refused[target.CharacterID] || !combat.ShouldAttemptYield(target) {
		return
	}
	st.negotiated = true
	roundResult.YieldAttempted = true
	roundResult.YieldAttemptedBy = target.CharacterID

	if combat.ResolveYieldResponse(captor.YieldResponse, target.IsNoble) {
		st.acceptedYielderID = target.CharacterID
		roundResult.YieldAccepted = true
		return
	}

	st.refused[target.CharacterID] = true
	st.refusedThisRoundID = target.CharacterID
	if bonus, ok := combat.DesperateStandBonus(target.Prowess, captor.Prowess); ok {
		st.bonus[target.CharacterID] = bonus
		roundResult.DesperateStand = true
	}
}

// tickEffects applies bleed damage and expires status effects at round
// start.
func tickEffects(stats *combat.CombatantStats) {
	for _, effect := range stats.ActiveEffects {
		if effect.Type == combat.StatusBleeding && !stats.IsDown() {
			stats.ApplyDamage(effect.Magnitude)
		}
	}
	stats.TickEffects()
}

// closeRound snapshots both sides' health and renders the narrative.
func (e *Engine) closeRound(st *state, roundResult *RoundResult) {
	roundResult.AttackerHealthAfter = st.attacker.CurrentHealth
	roundResult.DefenderHealthAfter = st.defender.CurrentHealth
	roundResult.Narrative = buildNarrative(st.attacker, st.defender, roundResult)
}

// terminalState inspects the duel after a round and reports whether it
// reached a terminal outcome. Exchanges damage one side at a time, so the
// first side to hit zero decides the duel.
func (e *Engine) terminalState(st *state) (combat.DuelOutcome, *combat.CombatantStats, *combat.CombatantStats, bool) {
	switch {
	case st.attacker.IsDown() && st.defender.IsDown():
		// Both sides fell in the same upkeep, e.g. to bleed ticks; neither
		// final attack decided it.
		return combat.OutcomeDraw, nil, nil, true

	case st.defender.IsDown():
		return e.killOutcome(st, st.attacker, st.defender), st.attacker, st.defender, true

	case st.attacker.IsDown():
		return e.killOutcome(st, st.defender, st.attacker), st.defender, st.attacker, true

	case st.acceptedYielderID != "":
		winner, loser := st.attacker, st.defender
		if st.acceptedYielderID == st.attacker.CharacterID {
			winner, loser = st.defender, st.attacker
		}
		return combat.OutcomeYieldAccepted, winner, loser, true
	}
	return "", nil, nil, false
}

// killOutcome classifies a kill: slaying a yielder refused earlier in the
// same round, winning on a desperate stand, or a plain victory.
func (e *Engine) killOutcome(st *state, winner, loser *combat.CombatantStats) combat.DuelOutcome {
	if st.refusedThisRoundID == loser.CharacterID {
		return combat.OutcomeYieldRejectedSlain
	}
	if st.bonus[winner.CharacterID] > 0 {
		return combat.OutcomeDesperateStandWin
	}
	return combat.OutcomeVictory
}
