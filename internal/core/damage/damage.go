// Package damage implements the pure numeric damage model: wound penalties,
// the penetration ladder, hit-quality buckets, and final damage. Every
// function is deterministic given its inputs; randomness lives entirely in
// the dice package.
package damage

import "math"

// WoundDice returns the dice removed from a combat pool based on the
// combatant's remaining health. A non-positive maximum returns the maximal
// penalty rather than guessing at a ratio.
func WoundDice(current, max int) int {
	if max <= 0 {
		return 3
	}
	ratio := float64(current) / float64(max)
	switch {
	case ratio >= 0.75:
		return 0
	case ratio >= 0.50:
		return 1
	case ratio >= 0.25:
		return 2
	default:
		return 3
	}
}

// PenetrationDifference returns weapon penetration minus armor mitigation.
// The value is signed and unclamped; the ladder below interprets it.
func PenetrationDifference(weaponPen, armorMitigation int) int {
	return weaponPen - armorMitigation
}

// penetrationLadder defines the seven-bucket threshold ladder over the raw
// penetration difference. Label and Multiplier must stay bucket-aligned;
// both index into this table through penetrationBucket.
var penetrationLadder = []struct {
	max        int // inclusive upper bound; the last bucket is unbounded
	label      string
	multiplier float64
}{
	{max: -15, label: "turned aside", multiplier: 0.40},
	{max: -10, label: "blunted", multiplier: 0.55},
	{max: -5, label: "dampened", multiplier: 0.70},
	{max: 0, label: "contested", multiplier: 0.85},
	{max: 5, label: "solid", multiplier: 1.00},
	{max: 10, label: "rending", multiplier: 1.15},
	{max: math.MaxInt, label: "devastating", multiplier: 1.30},
}

// penetrationBucket returns the ladder index for a penetration difference.
func penetrationBucket(diff int) int {
	for i, bucket := range penetrationLadder {
		if diff <= bucket.max {
			return i
		}
	}
	return len(penetrationLadder) - 1
}

// Label returns the flavor label for a penetration difference.
func Label(diff int) string {
	return penetrationLadder[penetrationBucket(diff)].label
}

// Multiplier returns the damage multiplier for a penetration difference.
func Multiplier(diff int) float64 {
	return penetrationLadder[penetrationBucket(diff)].multiplier
}

// Quality classifies how cleanly an attack landed.
type Quality string

const (
	// QualityNormal is an ordinary hit.
	QualityNormal Quality = "normal"
	// QualityStrong is a hit with three or more net successes.
	QualityStrong Quality = "strong"
	// QualityCritical is a hit with five or more net successes.
	QualityCritical Quality = "critical"
)

// HitQuality buckets net successes into a quality tier.
func HitQuality(netSuccesses int) Quality {
	switch {
	case netSuccesses >= 5:
		return QualityCritical
	case netSuccesses >= 3:
		return QualityStrong
	default:
		return QualityNormal
	}
}

// Multiplier returns the damage multiplier for the quality tier.
func (q Quality) Multiplier() float64 {
	switch q {
	case QualityCritical:
		return 1.35
	case QualityStrong:
		return 1.15
	default:
		return 1.0
	}
}

// FinalDamage combines base damage with the penetration and hit-quality
// multipliers. For strong and critical hits the penetration multiplier is
// floored at 1.0: a clean hit is never discounted below full penetration
// value, only boosted. An attack that lands never deals less than 1.
func FinalDamage(base int, penetrationMultiplier float64, quality Quality) int {
	effective := penetrationMultiplier
	if quality != QualityNormal && effective < 1.0 {
		effective = 1.0
	}

	result := int(math.Round(float64(base) * effective * quality.Multiplier()))
	if result < 1 {
		return 1
	}
	return result
}
