package combat

// YieldThreshold is the personality trait deciding how badly wounded a
// combatant must be before offering surrender.
type YieldThreshold string

const (
	// YieldHeroic fighters yield only on the brink of death.
	YieldHeroic YieldThreshold = "heroic"
	// YieldBrave fighters yield when seriously wounded.
	YieldBrave YieldThreshold = "brave"
	// YieldCautious fighters yield once a fight turns against them.
	YieldCautious YieldThreshold = "cautious"
	// YieldCowardly fighters yield at the first real wound.
	YieldCowardly YieldThreshold = "cowardly"
)

// Ratio returns the health fraction at or below which the combatant
// attempts to yield.
func (t YieldThreshold) Ratio() float64 {
	switch t {
	case YieldHeroic:
		return 0.10
	case YieldBrave:
		return 0.25
	case YieldCautious:
		return 0.40
	case YieldCowardly:
		return 0.60
	default:
		return 0.25
	}
}

// YieldResponse is the personality trait deciding how a combatant answers
// an opponent's surrender offer.
type YieldResponse string

const (
	// ResponseMerciful fighters accept any surrender.
	ResponseMerciful YieldResponse = "merciful"
	// ResponsePragmatic fighters accept a noble's surrender for the ransom
	// and refuse a commoner's.
	ResponsePragmatic YieldResponse = "pragmatic"
	// ResponseRuthless fighters refuse all surrender.
	ResponseRuthless YieldResponse = "ruthless"
)

// ShouldAttemptYield reports whether the combatant offers surrender at
// their current health. Incapacitated combatants cannot yield.
func ShouldAttemptYield(stats *CombatantStats) bool {
	if stats.IsDown() {
		return false
	}
	return stats.HealthRatio() <= stats.YieldThreshold.Ratio()
}

// ResolveYieldResponse reports whether the captor accepts the surrender.
func ResolveYieldResponse(response YieldResponse, yielderIsNoble bool) bool {
	switch response {
	case ResponseMerciful:
		return true
	case ResponsePragmatic:
		return yielderIsNoble
	case ResponseRuthless:
		return false
	default:
		return true
	}
}

// DesperateStandBonus returns the attack dice granted to a refused yielder
// for the remainder of the encounter. The bonus exists only when the
// yielder's prowess exceeds the captor's; ok is false otherwise.
func DesperateStandBonus(yielderProwess, captorProwess int) (bonus int, ok bool) {
	if yielderProwess <= captorProwess {
		return 0, false
	}
	return 2, true
}
