package reputation

import (
	"testing"

	"github.com/emberfall/crucible/internal/combat"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		summary DuelSummary
		check   func(t *testing.T, deltas []Delta)
	}{
		{
			name: "victory",
			summary: DuelSummary{
				Outcome: combat.OutcomeVictory, WinnerID: "w", LoserID: "l",
				WinnerProwess: 5, LoserProwess: 3,
			},
			check: func(t *testing.T, deltas []Delta) {
				if len(deltas) != 1 {
					t.Fatalf("got %d deltas, want 1", len(deltas))
				}
				if deltas[0].Honor != 3 || deltas[0].Renown != 2 {
					t.Errorf("winner delta = %+v, want +3 honor +2 renown", deltas[0])
				}
			},
		},
		{
			name: "yield accepted",
			summary: DuelSummary{
				Outcome: combat.OutcomeYieldAccepted, WinnerID: "w", LoserID: "l",
				WinnerProwess: 5, LoserProwess: 3,
			},
			check: func(t *testing.T, deltas []Delta) {
				if len(deltas) != 2 {
					t.Fatalf("got %d deltas, want 2", len(deltas))
				}
				if deltas[0].CharacterID != "w" || deltas[0].Chivalry != 5 {
					t.Errorf("winner delta = %+v, want +5 chivalry", deltas[0])
				}
				if deltas[1].CharacterID != "l" || deltas[1].Honor != -5 {
					t.Errorf("loser delta = %+v, want -5 honor", deltas[1])
				}
			},
		},
		{
			name: "yield rejected slain",
			summary: DuelSummary{
				Outcome: combat.OutcomeYieldRejectedSlain, WinnerID: "w", LoserID: "l",
				WinnerProwess: 5, LoserProwess: 3,
			},
			check: func(t *testing.T, deltas []Delta) {
				if len(deltas) != 2 {
					t.Fatalf("got %d deltas, want 2", len(deltas))
				}
				if deltas[0].Honor != -20 || deltas[0].Dread != 20 {
					t.Errorf("winner delta = %+v, want -20 honor +20 dread", deltas[0])
				}
			},
		},
		{
			name: "desperate stand win",
			summary: DuelSummary{
				Outcome: combat.OutcomeDesperateStandWin, WinnerID: "w", LoserID: "l",
				WinnerProwess: 5, LoserProwess: 3,
			},
			check: func(t *testing.T, deltas []Delta) {
				if len(deltas) != 1 {
					t.Fatalf("got %d deltas, want 1", len(deltas))
				}
				if deltas[0].Honor != 5 || deltas[0].Renown != 5 {
					t.Errorf("winner delta = %+v, want +5 honor +5 renown", deltas[0])
				}
			},
		},
		{
			name: "draw moves nothing",
			summary: DuelSummary{
				Outcome: combat.OutcomeDraw, WinnerProwess: 5, LoserProwess: 3,
			},
			check: func(t *testing.T, deltas []Delta) {
				if len(deltas) != 0 {
					t.Errorf("got %d deltas, want 0", len(deltas))
				}
			},
		},
		{
			name: "upset bonus",
			summary: DuelSummary{
				Outcome: combat.OutcomeVictory, WinnerID: "w", LoserID: "l",
				WinnerProwess: 2, LoserProwess: 6,
			},
			check: func(t *testing.T, deltas []Delta) {
				if len(deltas) != 2 {
					t.Fatalf("got %d deltas, want 2", len(deltas))
				}
				upset := deltas[1]
				if upset.CharacterID != "w" || upset.Renown != 5 {
					t.Errorf("upset delta = %+v, want +5 renown to winner", upset)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Compute(tt.summary))
		})
	}
}
