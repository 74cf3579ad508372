package combat

import (
	apperrors "github.com/emberfall/crucible/internal/errors"
)

var (
	// ErrEmptyCharacterID indicates a combatant without an identifier.
	ErrEmptyCharacterID = apperrors.New(apperrors.CodeCombatantEmptyID, "character id is required")
	// ErrInvalidHealth indicates inconsistent health values.
	ErrInvalidHealth = apperrors.New(apperrors.CodeCombatantInvalidHealth, "health values are invalid")
)

// CombatantStats is a snapshot of one fighter's combat-relevant attributes
// for the duration of a single encounter. The resolver mutates
// CurrentHealth and ActiveEffects in place; a stats value must never be
// shared across concurrently running encounters.
type CombatantStats struct {
	CharacterID string
	Name        string

	// Aptitudes.
	Prowess   int
	Cunning   int
	Fortitude int

	CurrentHealth int
	MaxHealth     int

	// Total equipment encumbrance, applied as an initiative modifier
	// (typically negative).
	Encumbrance int

	// Equipment-derived stats, built by an external stats-loading step.
	AttackDice  int // weapon attack dice bonus
	DefenseDice int // weapon/shield defense dice bonus
	Penetration int // weapon penetration
	Mitigation  int // armor mitigation

	// Base weapon damage before multipliers.
	WeaponDamage int
	// WeaponClass selects the weapon's on-hit status effect from the
	// content tables; empty means none.
	WeaponClass string

	YieldThreshold YieldThreshold
	YieldResponse  YieldResponse
	IsNoble        bool

	// ActiveEffects holds the status effects currently attached to the
	// combatant. Owned by the encounter resolving this combatant.
	ActiveEffects []StatusEffect
}

// Validate checks the snapshot for values the engine cannot work with.
func (s *CombatantStats) Validate() error {
	if s.CharacterID == "" {
		return ErrEmptyCharacterID
	}
	if s.MaxHealth < 1 || s.CurrentHealth < 0 || s.CurrentHealth > s.MaxHealth {
		return ErrInvalidHealth.WithMeta(map[string]string{
			"CharacterID": s.CharacterID,
		})
	}
	return nil
}

// HealthRatio returns current health as a fraction of maximum.
func (s *CombatantStats) HealthRatio() float64 {
	if s.MaxHealth <= 0 {
		return 0
	}
	return float64(s.CurrentHealth) / float64(s.MaxHealth)
}

// IsDown reports whether the combatant is incapacitated.
func (s *CombatantStats) IsDown() bool {
	return s.CurrentHealth <= 0
}

// ApplyDamage reduces current health, not below zero, and returns the
// health before and after. Clamping here is a correctness measure: callers
// must still treat zero health as a terminal transition.
func (s *CombatantStats) ApplyDamage(amount int) (before, after int) {
	before = s.CurrentHealth
	s.CurrentHealth = max(s.CurrentHealth-amount, 0)
	return before, s.CurrentHealth
}

// Heal restores health up to the maximum and returns before and after.
func (s *CombatantStats) Heal(amount int) (before, after int) {
	before = s.CurrentHealth
	s.CurrentHealth = min(s.CurrentHealth+amount, s.MaxHealth)
	return before, s.CurrentHealth
}
