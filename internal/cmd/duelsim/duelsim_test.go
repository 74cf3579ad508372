package duelsim

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScenario = `
pairs:
  - attacker:
      character_id: knight
      name: Ser Aldric
      prowess: 5
      cunning: 3
      fortitude: 4
      max_health: 60
      attack_dice: 2
      defense_dice: 3
      penetration: 6
      mitigation: 4
      weapon_damage: 12
      yield_threshold: heroic
      yield_response: ruthless
    defender:
      character_id: levy
      name: Tam
      prowess: 2
      cunning: 2
      fortitude: 3
      max_health: 50
      defense_dice: 1
      yield_threshold: brave
      yield_response: ruthless
`

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("duelsim", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-scenario", "fight.yaml", "-duels", "25", "-seed", "42"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.ScenarioPath != "fight.yaml" {
		t.Errorf("ScenarioPath = %q, want fight.yaml", cfg.ScenarioPath)
	}
	if cfg.Duels != 25 {
		t.Errorf("Duels = %d, want 25", cfg.Duels)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Parallelism != 4 {
		t.Errorf("Parallelism = %d, want default 4", cfg.Parallelism)
	}
}

func TestRun(t *testing.T) {
	cfg := Config{
		ScenarioPath: writeScenario(t, testScenario),
		Duels:        20,
		Parallelism:  2,
		Seed:         7,
	}

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	report := out.String()
	if !strings.Contains(report, "duels: 20") {
		t.Errorf("report missing duel count:\n%s", report)
	}
	if !strings.Contains(report, "outcomes:") {
		t.Errorf("report missing outcome distribution:\n%s", report)
	}
}

func TestRun_Rejections(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing scenario path", cfg: Config{Duels: 1}},
		{name: "zero duels", cfg: Config{ScenarioPath: "x.yaml"}},
		{
			name: "empty scenario",
			cfg: func() Config {
				return Config{Duels: 1, ScenarioPath: writeScenario(t, "pairs: []\n")}
			}(),
		},
		{
			name: "invalid fighter",
			cfg: func() Config {
				return Config{Duels: 1, ScenarioPath: writeScenario(t, "pairs:\n  - attacker: {character_id: a}\n    defender: {character_id: b}\n")}
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Run(context.Background(), tt.cfg, nil); err == nil {
				t.Error("Run() succeeded, want error")
			}
		})
	}
}
