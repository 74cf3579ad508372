// Package dice implements the dice-pool primitives for combat resolution.
//
// # Determinism
//
// Every roll takes an explicit *rand.Rand. Given the same generator state
// and the same arguments, rolls always produce the same result, which lets
// callers replay entire encounters from a seed. Production callers seed the
// generator from internal/random.NewRand.
package dice

import "math/rand"

const (
	// AttackThreshold is the default success threshold for attack pools.
	AttackThreshold = 4
	// DefenseThreshold is the success threshold for defense pools.
	DefenseThreshold = 5
	// poolSides is the die used by all combat pools.
	poolSides = 6
	// aptitudeSides is the die used by non-combat aptitude checks.
	aptitudeSides = 10
)

// PoolResult records one combat dice-pool roll.
type PoolResult struct {
	// Requested is the pool size asked for, which may be zero or negative
	// after penalties.
	Requested int
	// Effective is the pool size actually rolled, never below one.
	Effective int
	// Threshold is the minimum die value counted as a success.
	Threshold int
	// Dice holds the individual die values in roll order.
	Dice []int
	// Successes counts dice meeting or exceeding the threshold.
	Successes int
	// Sixes counts dice showing six, which trigger critical effects.
	Sixes int
}

// RollPool rolls a combat pool of six-sided dice and counts successes.
// A pool of zero or fewer still rolls exactly one die: even a maximally
// penalized combatant retains a chance to act.
func RollPool(rng *rand.Rand, size, threshold int) PoolResult {
	effective := size
	if effective < 1 {
		effective = 1
	}

	result := PoolResult{
		Requested: size,
		Effective: effective,
		Threshold: threshold,
		Dice:      make([]int, effective),
	}
	for i := 0; i < effective; i++ {
		value := rng.Intn(poolSides) + 1
		result.Dice[i] = value
		if value >= threshold {
			result.Successes++
		}
		if value == poolSides {
			result.Sixes++
		}
	}
	return result
}

// InitiativeResult records one initiative roll.
type InitiativeResult struct {
	// Pool is the number of dice rolled.
	Pool int
	// Dice holds the individual die values.
	Dice []int
	// Modifier is the encumbrance modifier added to the sum.
	Modifier int
	// Total is the sum of all dice plus the modifier.
	Total int
}

// RollInitiative rolls pool initiative: cunning + prowess/2 six-sided dice,
// summed (not success-counted), plus the encumbrance modifier. Ties are
// broken by the caller; the duel engine favors the attacker on a tie.
func RollInitiative(rng *rand.Rand, cunning, prowess, encumbrance int) InitiativeResult {
	pool := cunning + prowess/2
	if pool < 1 {
		pool = 1
	}

	result := InitiativeResult{
		Pool:     pool,
		Dice:     make([]int, pool),
		Modifier: encumbrance,
	}
	sum := 0
	for i := 0; i < pool; i++ {
		value := rng.Intn(poolSides) + 1
		result.Dice[i] = value
		sum += value
	}
	result.Total = sum + encumbrance
	return result
}

// AptitudeResult records one keep-best aptitude check.
type AptitudeResult struct {
	// Rolled holds every die rolled, in roll order.
	Rolled []int
	// Kept holds the best dice counted toward the total.
	Kept []int
	// Modifier is the situational modifier added to the total.
	Modifier int
	// Total is the sum of kept dice plus the modifier.
	Total int
}

// RollAptitude performs a non-combat skill check: roll aptitude+experience
// ten-sided dice, keep the best aptitude + experience/2, and sum the kept
// dice plus the modifier. Not part of the attack path.
func RollAptitude(rng *rand.Rand, aptitude, experience, modifier int) AptitudeResult {
	rolled := aptitude + experience
	if rolled < 1 {
		rolled = 1
	}
	keep := aptitude + experience/2
	if keep < 1 {
		keep = 1
	}
	if keep > rolled {
		keep = rolled
	}

	result := AptitudeResult{
		Rolled:   make([]int, rolled),
		Modifier: modifier,
	}
	for i := 0; i < rolled; i++ {
		result.Rolled[i] = rng.Intn(aptitudeSides) + 1
	}

	sorted := make([]int, rolled)
	copy(sorted, result.Rolled)
	// Selection sort descending; pools are tiny.
	for i := 0; i < len(sorted); i++ {
		best := i
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[best] {
				best = j
			}
		}
		sorted[i], sorted[best] = sorted[best], sorted[i]
	}

	result.Kept = sorted[:keep]
	total := 0
	for _, v := range result.Kept {
		total += v
	}
	result.Total = total + modifier
	return result
}
