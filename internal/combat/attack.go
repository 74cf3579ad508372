package combat

import "github.com/emberfall/crucible/internal/core/dice"

// AttackResult is the outcome of one contested exchange. CounterAttack and
// DodgeRiposte are bounded to depth one: a counter cannot itself counter.
type AttackResult struct {
	AttackerID string
	DefenderID string

	AttackerPool dice.PoolResult
	DefenderPool dice.PoolResult
	// NetSuccesses is attacker successes minus defender successes.
	NetSuccesses int

	Hit             bool
	Dodged          bool
	DefenseReversal bool

	Quality     string
	Damage      int
	DamageLabel string

	// CritEffects lists the crit-table labels triggered by sixes in the
	// attack pool.
	CritEffects []string
	// EffectsApplied lists the status effects attached to the defender by
	// this exchange.
	EffectsApplied []StatusEffect

	DefenderHealthBefore int
	DefenderHealthAfter  int

	CounterAttack *AttackResult
	DodgeRiposte  *AttackResult
}

// FlatAttack is the client-facing shape of an exchange: nested pool objects
// are flattened for narrative broadcast. Nested counter and riposte results
// are flattened the same way, one level deep.
type FlatAttack struct {
	AttackerID        string         `json:"attacker_id"`
	DefenderID        string         `json:"defender_id"`
	AttackPoolSize    int            `json:"attack_pool_size"`
	AttackDice        []int          `json:"attack_dice"`
	AttackSuccesses   int            `json:"attack_successes"`
	DefensePoolSize   int            `json:"defense_pool_size"`
	DefenseDice       []int          `json:"defense_dice"`
	DefenseSuccesses  int            `json:"defense_successes"`
	NetSuccesses      int            `json:"net_successes"`
	Hit               bool           `json:"hit"`
	Dodged            bool           `json:"dodged"`
	DefenseReversal   bool           `json:"defense_reversal"`
	Quality           string         `json:"quality"`
	Damage            int            `json:"damage"`
	DamageLabel       string         `json:"damage_label"`
	CritEffects       []string       `json:"crit_effects,omitempty"`
	EffectsApplied    []StatusEffect `json:"effects_applied,omitempty"`
	DefenderHealth    int            `json:"defender_health"`
	CounterAttack     *FlatAttack    `json:"counter_attack,omitempty"`
	DodgeRiposte      *FlatAttack    `json:"dodge_riposte,omitempty"`
}

// Flatten converts an attack result into its broadcast shape.
func Flatten(result *AttackResult) *FlatAttack {
	if result == nil {
		return nil
	}
	flat := &FlatAttack{
		AttackerID:       result.AttackerID,
		DefenderID:       result.DefenderID,
		AttackPoolSize:   result.AttackerPool.Effective,
		AttackDice:       result.AttackerPool.Dice,
		AttackSuccesses:  result.AttackerPool.Successes,
		DefensePoolSize:  result.DefenderPool.Effective,
		DefenseDice:      result.DefenderPool.Dice,
		DefenseSuccesses: result.DefenderPool.Successes,
		NetSuccesses:     result.NetSuccesses,
		Hit:              result.Hit,
		Dodged:           result.Dodged,
		DefenseReversal:  result.DefenseReversal,
		Quality:          result.Quality,
		Damage:           result.Damage,
		DamageLabel:      result.DamageLabel,
		CritEffects:      result.CritEffects,
		EffectsApplied:   result.EffectsApplied,
		DefenderHealth:   result.DefenderHealthAfter,
	}
	flat.CounterAttack = Flatten(result.CounterAttack)
	flat.DodgeRiposte = Flatten(result.DodgeRiposte)
	return flat
}

// DuelOutcome is the terminal state of a duel.
type DuelOutcome string

const (
	// OutcomeVictory indicates one side was incapacitated outright.
	OutcomeVictory DuelOutcome = "victory"
	// OutcomeYieldAccepted indicates a surrender was offered and accepted.
	OutcomeYieldAccepted DuelOutcome = "yield_accepted"
	// OutcomeYieldRejectedSlain indicates a refused yielder was then slain.
	OutcomeYieldRejectedSlain DuelOutcome = "yield_rejected_slain"
	// OutcomeDesperateStandWin indicates a refused yielder fought back and
	// won.
	OutcomeDesperateStandWin DuelOutcome = "desperate_stand_win"
	// OutcomeDraw indicates the round cap expired or both sides fell.
	OutcomeDraw DuelOutcome = "draw"
)
