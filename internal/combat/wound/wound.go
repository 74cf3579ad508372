// Package wound classifies post-combat health into a severity taxonomy for
// the surrounding game. The assessment only sees the final health snapshot;
// it has no knowledge of how combat concluded.
package wound

// Severity is the post-combat wound classification.
type Severity string

const (
	// SeverityHealthy means the fighter walked away with scratches.
	SeverityHealthy Severity = "healthy"
	// SeverityLight wounds heal on their own.
	SeverityLight Severity = "light"
	// SeveritySerious wounds impair fighting until tended.
	SeveritySerious Severity = "serious"
	// SeveritySevere wounds demand tending and risk infection.
	SeveritySevere Severity = "severe"
	// SeverityGrave means the fighter was left for dead.
	SeverityGrave Severity = "grave"
)

// Assessment is the full post-combat wound report.
type Assessment struct {
	Severity Severity
	// HealthPercent is the final health as a percentage of maximum.
	HealthPercent int
	// DicePenalty is the combat-pool penalty while the wound persists.
	DicePenalty int
	// TendingRequired marks wounds that will not heal untended.
	TendingRequired bool
	// InfectionRisk marks wounds that can fester.
	InfectionRisk bool
}

// Assess maps a final health snapshot to a wound assessment.
func Assess(currentHealth, maxHealth int) Assessment {
	percent := 0
	if maxHealth > 0 {
		percent = currentHealth * 100 / maxHealth
	}
	if percent < 0 {
		percent = 0
	}

	severity := classify(currentHealth, maxHealth, percent)
	return Assessment{
		Severity:        severity,
		HealthPercent:   percent,
		DicePenalty:     dicePenalty(severity),
		TendingRequired: severity == SeveritySerious || severity == SeveritySevere || severity == SeverityGrave,
		InfectionRisk:   severity == SeveritySevere || severity == SeverityGrave,
	}
}

func classify(currentHealth, maxHealth, percent int) Severity {
	switch {
	case currentHealth <= 0 || maxHealth <= 0:
		return SeverityGrave
	case percent > 75:
		return SeverityHealthy
	case percent > 50:
		return SeverityLight
	case percent > 25:
		return SeveritySerious
	default:
		return SeveritySevere
	}
}

func dicePenalty(severity Severity) int {
	switch severity {
	case SeverityHealthy:
		return 0
	case SeverityLight:
		return 1
	case SeveritySerious:
		return 2
	case SeveritySevere:
		return 3
	default:
		return 4
	}
}
