package wound

import "testing"

func TestAssess(t *testing.T) {
	tests := []struct {
		name         string
		current      int
		max          int
		wantSeverity Severity
		wantPenalty  int
		wantTending  bool
		wantInfect   bool
	}{
		{name: "untouched", current: 100, max: 100, wantSeverity: SeverityHealthy},
		{name: "just above light boundary", current: 76, max: 100, wantSeverity: SeverityHealthy},
		{name: "light at 75", current: 75, max: 100, wantSeverity: SeverityLight, wantPenalty: 1},
		{name: "light at 51", current: 51, max: 100, wantSeverity: SeverityLight, wantPenalty: 1},
		{name: "serious at 50", current: 50, max: 100, wantSeverity: SeveritySerious, wantPenalty: 2, wantTending: true},
		{name: "serious at 26", current: 26, max: 100, wantSeverity: SeveritySerious, wantPenalty: 2, wantTending: true},
		{name: "severe at 25", current: 25, max: 100, wantSeverity: SeveritySevere, wantPenalty: 3, wantTending: true, wantInfect: true},
		{name: "severe at 1", current: 1, max: 100, wantSeverity: SeveritySevere, wantPenalty: 3, wantTending: true, wantInfect: true},
		{name: "grave at 0", current: 0, max: 100, wantSeverity: SeverityGrave, wantPenalty: 4, wantTending: true, wantInfect: true},
		{name: "zero max is grave", current: 10, max: 0, wantSeverity: SeverityGrave, wantPenalty: 4, wantTending: true, wantInfect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.current, tt.max)

			if got.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", got.Severity, tt.wantSeverity)
			}
			if got.DicePenalty != tt.wantPenalty {
				t.Errorf("DicePenalty = %d, want %d", got.DicePenalty, tt.wantPenalty)
			}
			if got.TendingRequired != tt.wantTending {
				t.Errorf("TendingRequired = %v, want %v", got.TendingRequired, tt.wantTending)
			}
			if got.InfectionRisk != tt.wantInfect {
				t.Errorf("InfectionRisk = %v, want %v", got.InfectionRisk, tt.wantInfect)
			}
		})
	}
}
