package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/emberfall/crucible/internal/combat"
)

func TestDefault(t *testing.T) {
	tables := Default()

	if tables.Tuning.AttackThreshold != 4 {
		t.Errorf("AttackThreshold = %d, want 4", tables.Tuning.AttackThreshold)
	}
	if tables.Tuning.DefenseThreshold != 5 {
		t.Errorf("DefenseThreshold = %d, want 5", tables.Tuning.DefenseThreshold)
	}
	if tables.Tuning.MaxRounds != 50 {
		t.Errorf("MaxRounds = %d, want 50", tables.Tuning.MaxRounds)
	}
	if tables.Tuning.DodgeMargin <= tables.Tuning.ReversalMargin {
		t.Error("dodge margin must exceed reversal margin: dodge is checked first")
	}
	if len(tables.CritEffects) == 0 {
		t.Error("default crit-effect table is empty")
	}
	if err := tables.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestCritEffectsFor(t *testing.T) {
	tables := Default()

	if got := tables.CritEffectsFor(0); len(got) != 0 {
		t.Errorf("CritEffectsFor(0) = %d entries, want 0", len(got))
	}
	if got := tables.CritEffectsFor(1); len(got) != 0 {
		t.Errorf("CritEffectsFor(1) = %d entries, want 0", len(got))
	}

	two := tables.CritEffectsFor(2)
	if len(two) != 1 || two[0].Effect != combat.StatusBleeding {
		t.Errorf("CritEffectsFor(2) = %+v, want single bleeding entry", two)
	}

	// Higher counts trigger every entry at or below them.
	four := tables.CritEffectsFor(4)
	if len(four) != 3 {
		t.Errorf("CritEffectsFor(4) = %d entries, want 3", len(four))
	}
}

func TestWeaponEffectFor(t *testing.T) {
	tables := Default()

	effect, ok := tables.WeaponEffectFor("serrated")
	if !ok || effect.Effect != combat.StatusBleeding {
		t.Errorf("WeaponEffectFor(serrated) = %+v, %v; want bleeding effect", effect, ok)
	}
	if _, ok := tables.WeaponEffectFor("longsword"); ok {
		t.Error("WeaponEffectFor(longsword) = ok, want no entry")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	override := []byte("tuning:\n  attack_threshold: 4\n  defense_threshold: 5\n  dodge_margin: 4\n  reversal_margin: 2\n  riposte_dice_divisor: 2\n  opportunity_dice_divisor: 2\n  protect_dice: 2\n  brace_dice: 2\n  max_rounds: 20\n")
	if err := os.WriteFile(path, override, 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	tables, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tables.Tuning.MaxRounds != 20 {
		t.Errorf("MaxRounds = %d, want 20", tables.Tuning.MaxRounds)
	}
	if tables.Tuning.DodgeMargin != 4 {
		t.Errorf("DodgeMargin = %d, want 4", tables.Tuning.DodgeMargin)
	}
	// Omitted sections keep the embedded defaults.
	if len(tables.CritEffects) == 0 {
		t.Error("crit effects lost on override")
	}
}

func TestLoad_RejectsBadTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	bad := []byte("tuning:\n  attack_threshold: 9\n")
	if err := os.WriteFile(path, bad, 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("Load() error = %v, want ErrInvalidTuning", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() on missing file succeeded, want error")
	}
}
