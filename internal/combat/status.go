package combat

// StatusEffectType identifies a status effect.
type StatusEffectType string

const (
	// StatusBleeding deals its magnitude in damage at each round start.
	StatusBleeding StatusEffectType = "bleeding"
	// StatusStunned removes its magnitude in attack dice.
	StatusStunned StatusEffectType = "stunned"
	// StatusWeakened removes its magnitude in attack dice.
	StatusWeakened StatusEffectType = "weakened"
	// StatusGrappled pins the combatant; attacking and disengaging require
	// escaping first.
	StatusGrappled StatusEffectType = "grappled"
	// StatusProtected adds its magnitude in defense dice, granted by an
	// ally's protect action.
	StatusProtected StatusEffectType = "protected"
	// StatusBraced adds its magnitude in defense dice until the next round
	// starts.
	StatusBraced StatusEffectType = "braced"
)

// StatusEffect is one effect attached to a combatant.
type StatusEffect struct {
	Type StatusEffectType
	// Duration is the remaining number of rounds. Effects are removed when
	// it reaches zero or when the session ends.
	Duration int
	// Magnitude scales the effect (damage per round, dice added/removed).
	Magnitude int
}

// HasEffect reports whether an effect of the given type is active.
func (s *CombatantStats) HasEffect(effectType StatusEffectType) bool {
	for _, e := range s.ActiveEffects {
		if e.Type == effectType {
			return true
		}
	}
	return false
}

// AddEffect attaches an effect. An existing effect of the same type is
// refreshed rather than stacked: the longer duration and larger magnitude
// win.
func (s *CombatantStats) AddEffect(effect StatusEffect) {
	for i, e := range s.ActiveEffects {
		if e.Type != effect.Type {
			continue
		}
		if effect.Duration > e.Duration {
			s.ActiveEffects[i].Duration = effect.Duration
		}
		if effect.Magnitude > e.Magnitude {
			s.ActiveEffects[i].Magnitude = effect.Magnitude
		}
		return
	}
	s.ActiveEffects = append(s.ActiveEffects, effect)
}

// RemoveEffect detaches every effect of the given type.
func (s *CombatantStats) RemoveEffect(effectType StatusEffectType) {
	kept := s.ActiveEffects[:0]
	for _, e := range s.ActiveEffects {
		if e.Type != effectType {
			kept = append(kept, e)
		}
	}
	s.ActiveEffects = kept
}

// TickEffects decrements every effect's duration and drops expired ones.
// It returns the effects that expired this tick.
func (s *CombatantStats) TickEffects() []StatusEffect {
	var expired []StatusEffect
	kept := s.ActiveEffects[:0]
	for _, e := range s.ActiveEffects {
		e.Duration--
		if e.Duration <= 0 {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	s.ActiveEffects = kept
	return expired
}

// AttackDicePenalty sums the attack dice removed by active effects.
func (s *CombatantStats) AttackDicePenalty() int {
	penalty := 0
	for _, e := range s.ActiveEffects {
		switch e.Type {
		case StatusStunned, StatusWeakened:
			penalty += e.Magnitude
		}
	}
	return penalty
}

// DefenseDiceBonus sums the defense dice granted by active effects.
func (s *CombatantStats) DefenseDiceBonus() int {
	bonus := 0
	for _, e := range s.ActiveEffects {
		switch e.Type {
		case StatusProtected, StatusBraced:
			bonus += e.Magnitude
		}
	}
	return bonus
}
