// Package resolver resolves one contested attack exchange between two
// combatants. It is the only component that mutates a combatant's current
// health; callers keep their own health caches in sync from the returned
// before/after values.
package resolver

import (
	"math/rand"

	"github.com/emberfall/crucible/internal/combat"
	"github.com/emberfall/crucible/internal/content"
	"github.com/emberfall/crucible/internal/core/damage"
	"github.com/emberfall/crucible/internal/core/dice"
)

// Resolver resolves contested exchanges using an injected RNG and the
// data-driven content tables.
type Resolver struct {
	rng    *rand.Rand
	tables *content.Tables
}

// New creates a resolver. A nil tables uses the embedded defaults.
func New(rng *rand.Rand, tables *content.Tables) *Resolver {
	if tables == nil {
		tables = content.Default()
	}
	return &Resolver{rng: rng, tables: tables}
}

// Context carries per-exchange modifiers.
type Context struct {
	// BonusAttackDice adds dice to the attack pool, e.g. from a desperate
	// stand.
	BonusAttackDice int
	// DiceDivisor reduces the attack pool for ripostes and opportunity
	// attacks. Zero or one means full dice.
	DiceDivisor int
	// DefenderForfeitsDefense skips the defense pool entirely, for
	// defenders who committed to an action that forfeits defense.
	DefenderForfeitsDefense bool
	// DefenderReversalCapable marks a defender holding a stance that can
	// turn a strong defense into a counter attack.
	DefenderReversalCapable bool
	// AllowRiposte permits a dodge to trigger a reduced-dice riposte.
	AllowRiposte bool

	// depth bounds nested sub-attacks: a counter cannot itself counter.
	depth int
}

// Resolve runs one contested exchange. On a hit it applies damage and
// status effects to the defender in place.
func (r *Resolver) Resolve(attacker, defender *combat.CombatantStats, ctx Context) combat.AttackResult {
	tuning := r.tables.Tuning

	attackSize := attacker.Prowess + attacker.AttackDice + ctx.BonusAttackDice -
		damage.WoundDice(attacker.CurrentHealth, attacker.MaxHealth) -
		attacker.AttackDicePenalty()
	if ctx.DiceDivisor > 1 {
		attackSize /= ctx.DiceDivisor
	}
	attackPool := dice.RollPool(r.rng, attackSize, tuning.AttackThreshold)

	result := combat.AttackResult{
		AttackerID:           attacker.CharacterID,
		DefenderID:           defender.CharacterID,
		AttackerPool:         attackPool,
		DefenderHealthBefore: defender.CurrentHealth,
		DefenderHealthAfter:  defender.CurrentHealth,
	}

	defenseRolled := !defender.IsDown() && !ctx.DefenderForfeitsDefense
	if defenseRolled {
		defenseSize := defender.DefenseDice + defender.DefenseDiceBonus() -
			damage.WoundDice(defender.CurrentHealth, defender.MaxHealth)
		result.DefenderPool = dice.RollPool(r.rng, defenseSize, tuning.DefenseThreshold)
	}
	result.NetSuccesses = attackPool.Successes - result.DefenderPool.Successes

	if defenseRolled {
		defenseMargin := result.DefenderPool.Successes - attackPool.Successes

		if defenseMargin >= tuning.DodgeMargin {
			result.Dodged = true
			if ctx.AllowRiposte && ctx.depth == 0 {
				riposte := r.Resolve(defender, attacker, Context{
					DiceDivisor: tuning.RiposteDiceDivisor,
					depth:       ctx.depth + 1,
				})
				result.DodgeRiposte = &riposte
			}
			return result
		}

		if ctx.DefenderReversalCapable && defenseMargin >= tuning.ReversalMargin {
			result.DefenseReversal = true
			if ctx.depth == 0 {
				counter := r.Resolve(defender, attacker, Context{depth: ctx.depth + 1})
				result.CounterAttack = &counter
			}
			return result
		}
	}

	if result.NetSuccesses <= 0 {
		return result
	}

	result.Hit = true
	diff := damage.PenetrationDifference(attacker.Penetration, defender.Mitigation)
	quality := damage.HitQuality(result.NetSuccesses)
	result.Quality = string(quality)
	result.DamageLabel = damage.Label(diff)

	base := attacker.WeaponDamage + result.NetSuccesses
	result.Damage = damage.FinalDamage(base, damage.Multiplier(diff), quality)
	result.DefenderHealthBefore, result.DefenderHealthAfter = defender.ApplyDamage(result.Damage)

	for _, crit := range r.tables.CritEffectsFor(attackPool.Sixes) {
		effect := combat.StatusEffect{
			Type:      crit.Effect,
			Duration:  crit.Duration,
			Magnitude: crit.Magnitude,
		}
		defender.AddEffect(effect)
		result.CritEffects = append(result.CritEffects, crit.Label)
		result.EffectsApplied = append(result.EffectsApplied, effect)
	}

	if weapon, ok := r.tables.WeaponEffectFor(attacker.WeaponClass); ok {
		effect := combat.StatusEffect{
			Type:      weapon.Effect,
			Duration:  weapon.Duration,
			Magnitude: weapon.Magnitude,
		}
		defender.AddEffect(effect)
		result.EffectsApplied = append(result.EffectsApplied, effect)
	}

	return result
}
