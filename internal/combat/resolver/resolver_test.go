package resolver

import (
	"math/rand"
	"testing"

	"github.com/emberfall/crucible/internal/combat"
	"github.com/emberfall/crucible/internal/content"
)

func bruiser(id string) *combat.CombatantStats {
	return &combat.CombatantStats{
		CharacterID:   id,
		Name:          id,
		Prowess:       30,
		CurrentHealth: 100,
		MaxHealth:     100,
		AttackDice:    10,
		WeaponDamage:  6,
		Penetration:   8,
	}
}

func straw(id string) *combat.CombatantStats {
	return &combat.CombatantStats{
		CharacterID:   id,
		CurrentHealth: 100,
		MaxHealth:     100,
	}
}

func TestResolve_OverwhelmingAttackHits(t *testing.T) {
	attacker := bruiser("attacker")
	defender := straw("defender")
	r := New(rand.New(rand.NewSource(1)), nil)

	result := r.Resolve(attacker, defender, Context{})

	if !result.Hit {
		t.Fatalf("overwhelming attack missed: %+v", result)
	}
	if result.Damage < 1 {
		t.Errorf("Damage = %d, want >= 1", result.Damage)
	}
	if result.DefenderHealthAfter != result.DefenderHealthBefore-result.Damage {
		t.Errorf("health delta %d->%d does not match damage %d",
			result.DefenderHealthBefore, result.DefenderHealthAfter, result.Damage)
	}
	if defender.CurrentHealth != result.DefenderHealthAfter {
		t.Errorf("defender stats health %d out of sync with result %d",
			defender.CurrentHealth, result.DefenderHealthAfter)
	}
	if result.Quality == "" || result.DamageLabel == "" {
		t.Errorf("hit missing quality %q or label %q", result.Quality, result.DamageLabel)
	}
}

func TestResolve_DefenseForfeitSkipsDefensePool(t *testing.T) {
	attacker := bruiser("attacker")
	defender := bruiser("defender")
	defender.DefenseDice = 20
	r := New(rand.New(rand.NewSource(3)), nil)

	result := r.Resolve(attacker, defender, Context{DefenderForfeitsDefense: true})

	if result.DefenderPool.Effective != 0 {
		t.Errorf("defense pool rolled %d dice despite forfeit", result.DefenderPool.Effective)
	}
	if result.Dodged || result.DefenseReversal {
		t.Error("forfeited defense cannot dodge or reverse")
	}
	if !result.Hit {
		t.Errorf("overwhelming attack against forfeited defense missed: %+v", result)
	}
}

func TestResolve_IncapacitatedDefenderCannotDefend(t *testing.T) {
	attacker := bruiser("attacker")
	defender := straw("defender")
	defender.CurrentHealth = 0
	defender.DefenseDice = 20
	r := New(rand.New(rand.NewSource(5)), nil)

	result := r.Resolve(attacker, defender, Context{})

	if result.DefenderPool.Effective != 0 {
		t.Errorf("downed defender rolled %d defense dice", result.DefenderPool.Effective)
	}
}

func TestResolve_DodgeAndRiposte(t *testing.T) {
	attacker := straw("attacker")
	attacker.CurrentHealth = 20 // wound dice push the pool to the 1-die floor
	defender := bruiser("defender")
	defender.DefenseDice = 30
	r := New(rand.New(rand.NewSource(11)), nil)

	result := r.Resolve(attacker, defender, Context{AllowRiposte: true})

	if !result.Dodged {
		t.Fatalf("expected dodge, got %+v", result)
	}
	if result.Hit || result.Damage != 0 {
		t.Error("a dodged attack cannot also hit")
	}
	if result.DodgeRiposte == nil {
		t.Fatal("dodge with AllowRiposte produced no riposte")
	}
	if result.DodgeRiposte.AttackerID != defender.CharacterID {
		t.Errorf("riposte attacker = %s, want %s", result.DodgeRiposte.AttackerID, defender.CharacterID)
	}
	// Recursion is bounded to depth one.
	if result.DodgeRiposte.DodgeRiposte != nil || result.DodgeRiposte.CounterAttack != nil {
		t.Error("riposte spawned a nested sub-attack")
	}
	// Riposte dice are reduced: full pool would be prowess + attack dice.
	full := defender.Prowess + defender.AttackDice
	if result.DodgeRiposte.AttackerPool.Requested >= full {
		t.Errorf("riposte pool %d not reduced from %d", result.DodgeRiposte.AttackerPool.Requested, full)
	}
}

func TestResolve_DefenseReversalTriggersCounter(t *testing.T) {
	tables := content.Default()
	tables.Tuning.DodgeMargin = 99 // force the reversal branch
	tables.Tuning.ReversalMargin = 1

	attacker := straw("attacker")
	defender := bruiser("defender")
	defender.DefenseDice = 30
	r := New(rand.New(rand.NewSource(13)), tables)

	result := r.Resolve(attacker, defender, Context{DefenderReversalCapable: true})

	if !result.DefenseReversal {
		t.Fatalf("expected defense reversal, got %+v", result)
	}
	if result.CounterAttack == nil {
		t.Fatal("reversal produced no counter attack")
	}
	if result.CounterAttack.CounterAttack != nil {
		t.Error("counter attack spawned its own counter")
	}
}

func TestResolve_CritEffectsApplied(t *testing.T) {
	attacker := bruiser("attacker")
	attacker.Prowess = 60 // enough sixes to trigger the crit table
	defender := straw("defender")
	defender.MaxHealth = 1000
	defender.CurrentHealth = 1000
	r := New(rand.New(rand.NewSource(17)), nil)

	result := r.Resolve(attacker, defender, Context{})

	if !result.Hit {
		t.Fatalf("expected hit, got %+v", result)
	}
	if result.AttackerPool.Sixes < 2 {
		t.Skipf("seed rolled only %d sixes", result.AttackerPool.Sixes)
	}
	if len(result.CritEffects) == 0 {
		t.Error("sixes rolled but no crit effects applied")
	}
	if len(defender.ActiveEffects) == 0 {
		t.Error("crit effects not attached to defender")
	}
}

func TestResolve_WeaponEffectApplied(t *testing.T) {
	attacker := bruiser("attacker")
	attacker.WeaponClass = "serrated"
	defender := straw("defender")
	r := New(rand.New(rand.NewSource(19)), nil)

	result := r.Resolve(attacker, defender, Context{})

	if !result.Hit {
		t.Fatalf("expected hit, got %+v", result)
	}
	if !defender.HasEffect(combat.StatusBleeding) {
		t.Error("serrated weapon hit did not apply bleeding")
	}
}

func TestResolve_Determinism(t *testing.T) {
	run := func() combat.AttackResult {
		attacker := bruiser("attacker")
		defender := bruiser("defender")
		defender.DefenseDice = 6
		r := New(rand.New(rand.NewSource(23)), nil)
		return r.Resolve(attacker, defender, Context{AllowRiposte: true, DefenderReversalCapable: true})
	}

	first := run()
	second := run()

	if first.NetSuccesses != second.NetSuccesses || first.Damage != second.Damage {
		t.Errorf("seeded runs differ: %+v vs %+v", first, second)
	}
	for i := range first.AttackerPool.Dice {
		if first.AttackerPool.Dice[i] != second.AttackerPool.Dice[i] {
			t.Fatalf("attack dice differ at %d", i)
		}
	}
}
