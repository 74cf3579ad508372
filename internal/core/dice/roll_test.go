package dice

import (
	"math/rand"
	"testing"
)

func TestRollPool_ClampsToOneDie(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		wantEffective int
	}{
		{name: "zero pool", size: 0, wantEffective: 1},
		{name: "negative pool", size: -4, wantEffective: 1},
		{name: "single die", size: 1, wantEffective: 1},
		{name: "full pool", size: 7, wantEffective: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			result := RollPool(rng, tt.size, AttackThreshold)

			if result.Requested != tt.size {
				t.Errorf("Requested = %d, want %d", result.Requested, tt.size)
			}
			if result.Effective != tt.wantEffective {
				t.Errorf("Effective = %d, want %d", result.Effective, tt.wantEffective)
			}
			if len(result.Dice) != tt.wantEffective {
				t.Errorf("got %d dice, want %d", len(result.Dice), tt.wantEffective)
			}
		})
	}
}

func TestRollPool_CountsSuccessesAndSixes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	result := RollPool(rng, 20, AttackThreshold)

	successes, sixes := 0, 0
	for _, v := range result.Dice {
		if v < 1 || v > 6 {
			t.Fatalf("die value %d out of range [1, 6]", v)
		}
		if v >= AttackThreshold {
			successes++
		}
		if v == 6 {
			sixes++
		}
	}
	if result.Successes != successes {
		t.Errorf("Successes = %d, want %d", result.Successes, successes)
	}
	if result.Sixes != sixes {
		t.Errorf("Sixes = %d, want %d", result.Sixes, sixes)
	}
	if result.Sixes > result.Successes {
		t.Errorf("Sixes (%d) cannot exceed Successes (%d)", result.Sixes, result.Successes)
	}
}

func TestRollPool_Determinism(t *testing.T) {
	first := RollPool(rand.New(rand.NewSource(12345)), 8, DefenseThreshold)
	second := RollPool(rand.New(rand.NewSource(12345)), 8, DefenseThreshold)

	if first.Successes != second.Successes {
		t.Errorf("Successes differ: %d vs %d", first.Successes, second.Successes)
	}
	for i := range first.Dice {
		if first.Dice[i] != second.Dice[i] {
			t.Errorf("Dice[%d] differs: %d vs %d", i, first.Dice[i], second.Dice[i])
		}
	}
}

func TestRollInitiative(t *testing.T) {
	tests := []struct {
		name        string
		cunning     int
		prowess     int
		encumbrance int
		wantPool    int
	}{
		{name: "balanced fighter", cunning: 3, prowess: 4, encumbrance: -2, wantPool: 5},
		{name: "odd prowess rounds down", cunning: 2, prowess: 5, encumbrance: 0, wantPool: 4},
		{name: "no aptitudes still rolls one die", cunning: 0, prowess: 0, encumbrance: -1, wantPool: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(99))
			result := RollInitiative(rng, tt.cunning, tt.prowess, tt.encumbrance)

			if result.Pool != tt.wantPool {
				t.Errorf("Pool = %d, want %d", result.Pool, tt.wantPool)
			}
			sum := 0
			for _, v := range result.Dice {
				if v < 1 || v > 6 {
					t.Fatalf("die value %d out of range [1, 6]", v)
				}
				sum += v
			}
			if result.Total != sum+tt.encumbrance {
				t.Errorf("Total = %d, want %d", result.Total, sum+tt.encumbrance)
			}
		})
	}
}

func TestRollAptitude_KeepsBestDice(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	result := RollAptitude(rng, 3, 4, 2)

	if len(result.Rolled) != 7 {
		t.Fatalf("got %d rolled dice, want 7", len(result.Rolled))
	}
	// keep = aptitude + experience/2 = 3 + 2
	if len(result.Kept) != 5 {
		t.Fatalf("got %d kept dice, want 5", len(result.Kept))
	}

	// Kept dice must be the best of the rolled set: the worst kept die is
	// at least as high as every discarded value.
	worstKept := result.Kept[len(result.Kept)-1]
	kept := make(map[int]int)
	for _, v := range result.Kept {
		kept[v]++
	}
	discarded := make([]int, 0, 2)
	for _, v := range result.Rolled {
		if kept[v] > 0 {
			kept[v]--
			continue
		}
		discarded = append(discarded, v)
	}
	for _, v := range discarded {
		if v > worstKept {
			t.Errorf("discarded %d but kept %d", v, worstKept)
		}
	}

	total := 0
	for _, v := range result.Kept {
		total += v
	}
	if result.Total != total+2 {
		t.Errorf("Total = %d, want %d", result.Total, total+2)
	}
}

func TestRollAptitude_ZeroInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	result := RollAptitude(rng, 0, 0, 0)

	if len(result.Rolled) != 1 || len(result.Kept) != 1 {
		t.Errorf("got %d rolled / %d kept, want 1 / 1", len(result.Rolled), len(result.Kept))
	}
}
