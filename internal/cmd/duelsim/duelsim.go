// Package duelsim implements the duelsim command: it loads a scenario of
// fighter pairs and runs batches of automatic duels in parallel, printing
// the outcome distribution. Useful for balancing content tables.
package duelsim

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/emberfall/crucible/internal/combat"
	"github.com/emberfall/crucible/internal/combat/duel"
	"github.com/emberfall/crucible/internal/content"
	"github.com/emberfall/crucible/internal/random"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Config holds duelsim command configuration.
type Config struct {
	ScenarioPath string `env:"CRUCIBLE_SCENARIO_FILE"`
	ContentPath  string `env:"CRUCIBLE_CONTENT_FILE"`
	Duels        int    `env:"CRUCIBLE_DUELS"       envDefault:"1000"`
	Parallelism  int    `env:"CRUCIBLE_PARALLELISM" envDefault:"4"`
	Seed         int64  `env:"CRUCIBLE_SEED"`
	Verbose      bool   `env:"CRUCIBLE_VERBOSE"`
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.ScenarioPath, "scenario", cfg.ScenarioPath, "path to scenario yaml file")
	fs.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "path to content tables yaml file")
	fs.IntVar(&cfg.Duels, "duels", cfg.Duels, "number of duels to run")
	fs.IntVar(&cfg.Parallelism, "parallelism", cfg.Parallelism, "concurrent duel workers")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base RNG seed (0 picks a random seed)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every duel")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fighterSpec is the yaml shape of one fighter in a scenario file.
type fighterSpec struct {
	CharacterID    string `yaml:"character_id"`
	Name           string `yaml:"name"`
	Prowess        int    `yaml:"prowess"`
	Cunning        int    `yaml:"cunning"`
	Fortitude      int    `yaml:"fortitude"`
	MaxHealth      int    `yaml:"max_health"`
	Encumbrance    int    `yaml:"encumbrance"`
	AttackDice     int    `yaml:"attack_dice"`
	DefenseDice    int    `yaml:"defense_dice"`
	Penetration    int    `yaml:"penetration"`
	Mitigation     int    `yaml:"mitigation"`
	WeaponDamage   int    `yaml:"weapon_damage"`
	WeaponClass    string `yaml:"weapon_class"`
	YieldThreshold string `yaml:"yield_threshold"`
	YieldResponse  string `yaml:"yield_response"`
	Noble          bool   `yaml:"noble"`
}

func (f fighterSpec) stats() combat.CombatantStats {
	return combat.CombatantStats{
		CharacterID:    f.CharacterID,
		Name:           f.Name,
		Prowess:        f.Prowess,
		Cunning:        f.Cunning,
		Fortitude:      f.Fortitude,
		CurrentHealth:  f.MaxHealth,
		MaxHealth:      f.MaxHealth,
		Encumbrance:    f.Encumbrance,
		AttackDice:     f.AttackDice,
		DefenseDice:    f.DefenseDice,
		Penetration:    f.Penetration,
		Mitigation:     f.Mitigation,
		WeaponDamage:   f.WeaponDamage,
		WeaponClass:    f.WeaponClass,
		YieldThreshold: combat.YieldThreshold(f.YieldThreshold),
		YieldResponse:  combat.YieldResponse(f.YieldResponse),
		IsNoble:        f.Noble,
	}
}

type pairSpec struct {
	Attacker fighterSpec `yaml:"attacker"`
	Defender fighterSpec `yaml:"defender"`
}

type scenarioSpec struct {
	Pairs []pairSpec `yaml:"pairs"`
}

func loadScenario(path string) (*scenarioSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var spec scenarioSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(spec.Pairs) == 0 {
		return nil, errors.New("scenario has no fighter pairs")
	}
	for i, pair := range spec.Pairs {
		if err := validateSpec(pair.Attacker); err != nil {
			return nil, fmt.Errorf("pair %d attacker: %w", i, err)
		}
		if err := validateSpec(pair.Defender); err != nil {
			return nil, fmt.Errorf("pair %d defender: %w", i, err)
		}
	}
	return &spec, nil
}

func validateSpec(f fighterSpec) error {
	stats := f.stats()
	return stats.Validate()
}

// tally accumulates duel results across workers.
type tally struct {
	mu          sync.Mutex
	outcomes    map[combat.DuelOutcome]int
	wins        map[string]int
	totalRounds int
	duels       int
}

func (t *tally) add(result *duel.DuelResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes[result.Outcome]++
	if result.WinnerID != "" {
		t.wins[result.WinnerID]++
	}
	t.totalRounds += result.TotalRounds
	t.duels++
}

// Run executes the duelsim command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.ScenarioPath == "" {
		return errors.New("scenario path is required")
	}
	if cfg.Duels < 1 {
		return errors.New("duel count must be at least 1")
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}

	spec, err := loadScenario(cfg.ScenarioPath)
	if err != nil {
		return err
	}

	tables := content.Default()
	if cfg.ContentPath != "" {
		tables, err = content.Load(cfg.ContentPath)
		if err != nil {
			return err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return err
		}
	}

	logger, err := buildLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting simulation",
		zap.Int("duels", cfg.Duels),
		zap.Int("pairs", len(spec.Pairs)),
		zap.Int("parallelism", cfg.Parallelism),
		zap.Int64("seed", seed),
	)

	results := &tally{
		outcomes: make(map[combat.DuelOutcome]int),
		wins:     make(map[string]int),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i := 0; i < cfg.Duels; i++ {
		pair := spec.Pairs[i%len(spec.Pairs)]
		duelSeed := seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			engine := duel.New(rand.New(rand.NewSource(duelSeed)), tables)
			attacker := pair.Attacker.stats()
			defender := pair.Defender.stats()
			result, err := engine.Resolve(&attacker, &defender)
			if err != nil {
				return err
			}

			results.add(result)
			if cfg.Verbose {
				logger.Info("duel resolved",
					zap.String("attacker", attacker.CharacterID),
					zap.String("defender", defender.CharacterID),
					zap.String("outcome", string(result.Outcome)),
					zap.Int("rounds", result.TotalRounds),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report(out, results)
	return nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func report(out io.Writer, results *tally) {
	fmt.Fprintf(out, "duels: %d\n", results.duels)
	if results.duels > 0 {
		fmt.Fprintf(out, "average rounds: %.2f\n", float64(results.totalRounds)/float64(results.duels))
	}

	outcomes := make([]string, 0, len(results.outcomes))
	for outcome := range results.outcomes {
		outcomes = append(outcomes, string(outcome))
	}
	sort.Strings(outcomes)
	fmt.Fprintln(out, "outcomes:")
	for _, outcome := range outcomes {
		count := results.outcomes[combat.DuelOutcome(outcome)]
		fmt.Fprintf(out, "  %-22s %6d (%5.1f%%)\n",
			outcome, count, 100*float64(count)/float64(results.duels))
	}

	winners := make([]string, 0, len(results.wins))
	for winner := range results.wins {
		winners = append(winners, winner)
	}
	sort.Strings(winners)
	fmt.Fprintln(out, "wins:")
	for _, winner := range winners {
		fmt.Fprintf(out, "  %-22s %6d\n", winner, results.wins[winner])
	}
}
