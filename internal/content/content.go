// Package content loads the data-driven combat tables: engine tuning
// values, the crit-effect table, and per-weapon-class status effects.
//
// The dodge and reversal margins and the crit-effect table belong to game
// content, not code; they ship as an embedded default and can be overridden
// from a yaml file.
package content

import (
	_ "embed"
	"os"

	"github.com/emberfall/crucible/internal/combat"
	apperrors "github.com/emberfall/crucible/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	// ErrInvalidTuning indicates tuning values the engine cannot run with.
	ErrInvalidTuning = apperrors.New(apperrors.CodeContentInvalidTuning, "tuning values are invalid")
)

// Tuning holds the numeric knobs of the resolution engine.
type Tuning struct {
	// AttackThreshold is the success threshold for attack pools.
	AttackThreshold int `yaml:"attack_threshold"`
	// DefenseThreshold is the success threshold for defense pools.
	DefenseThreshold int `yaml:"defense_threshold"`
	// DodgeMargin is how many successes the defender pool must exceed the
	// attacker pool by to dodge outright.
	DodgeMargin int `yaml:"dodge_margin"`
	// ReversalMargin is the smaller success margin that turns a defense
	// into a reversal when the defender holds a reversal-capable stance.
	ReversalMargin int `yaml:"reversal_margin"`
	// RiposteDiceDivisor reduces the dice of a dodge riposte.
	RiposteDiceDivisor int `yaml:"riposte_dice_divisor"`
	// OpportunityDiceDivisor reduces the dice of opportunity attacks.
	OpportunityDiceDivisor int `yaml:"opportunity_dice_divisor"`
	// ProtectDice is the defense bonus granted by a protect action.
	ProtectDice int `yaml:"protect_dice"`
	// BraceDice is the defense bonus granted by a brace action.
	BraceDice int `yaml:"brace_dice"`
	// MaxRounds is the hard termination cap for duels and sessions.
	MaxRounds int `yaml:"max_rounds"`
}

// CritEffect maps a count of sixes in the attack pool to a status effect.
type CritEffect struct {
	MinSixes  int                     `yaml:"min_sixes"`
	Effect    combat.StatusEffectType `yaml:"effect"`
	Duration  int                     `yaml:"duration"`
	Magnitude int                     `yaml:"magnitude"`
	Label     string                  `yaml:"label"`
}

// WeaponEffect is the status effect a weapon class applies on every hit.
type WeaponEffect struct {
	Effect    combat.StatusEffectType `yaml:"effect"`
	Duration  int                     `yaml:"duration"`
	Magnitude int                     `yaml:"magnitude"`
}

// Tables bundles every data-driven combat table.
type Tables struct {
	Tuning      Tuning       `yaml:"tuning"`
	CritEffects []CritEffect `yaml:"crit_effects"`
	// WeaponEffects is keyed by weapon class.
	WeaponEffects map[string]WeaponEffect `yaml:"weapon_effects"`
}

// Validate checks the tables for values the engine cannot run with.
func (t *Tables) Validate() error {
	tuning := t.Tuning
	if tuning.AttackThreshold < 2 || tuning.AttackThreshold > 6 ||
		tuning.DefenseThreshold < 2 || tuning.DefenseThreshold > 6 {
		return ErrInvalidTuning.WithMeta(map[string]string{"Field": "thresholds"})
	}
	if tuning.DodgeMargin < 1 || tuning.ReversalMargin < 1 || tuning.ReversalMargin > tuning.DodgeMargin {
		return ErrInvalidTuning.WithMeta(map[string]string{"Field": "margins"})
	}
	if tuning.RiposteDiceDivisor < 1 || tuning.OpportunityDiceDivisor < 1 {
		return ErrInvalidTuning.WithMeta(map[string]string{"Field": "divisors"})
	}
	if tuning.MaxRounds < 1 {
		return ErrInvalidTuning.WithMeta(map[string]string{"Field": "max_rounds"})
	}
	for _, crit := range t.CritEffects {
		if crit.MinSixes < 1 || crit.Duration < 1 {
			return ErrInvalidTuning.WithMeta(map[string]string{"Field": "crit_effects"})
		}
	}
	return nil
}

// CritEffectsFor returns the crit-table entries triggered by the given
// count of sixes.
func (t *Tables) CritEffectsFor(sixes int) []CritEffect {
	var triggered []CritEffect
	for _, crit := range t.CritEffects {
		if sixes >= crit.MinSixes {
			triggered = append(triggered, crit)
		}
	}
	return triggered
}

// WeaponEffectFor returns the status effect for a weapon class, if any.
func (t *Tables) WeaponEffectFor(weaponClass string) (WeaponEffect, bool) {
	effect, ok := t.WeaponEffects[weaponClass]
	return effect, ok
}

// Default returns the embedded default tables.
func Default() *Tables {
	tables, err := parse(defaultsYAML)
	if err != nil {
		// The embedded defaults are fixed at compile time; failing to
		// parse them is unreachable.
		panic(err)
	}
	return tables
}

// Load reads tables from a yaml file, falling back to embedded defaults
// for any omitted section.
func Load(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeContentReadFailed, "read content tables", err)
	}

	tables := Default()
	if err := yaml.Unmarshal(raw, tables); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeContentReadFailed, "parse content tables", err)
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

func parse(raw []byte) (*Tables, error) {
	var tables Tables
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return nil, err
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &tables, nil
}
