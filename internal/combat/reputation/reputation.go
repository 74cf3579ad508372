// Package reputation computes honor, chivalry, dread, and renown deltas
// from completed duel outcomes. Deltas are additive: the caller applies
// them to a persistent reputation ledger, never overwriting totals.
package reputation

import "github.com/emberfall/crucible/internal/combat"

// Delta is one character's reputation change from a duel.
type Delta struct {
	CharacterID string
	Honor       int
	Chivalry    int
	Dread       int
	Renown      int
	Reason      string
}

// DuelSummary is the flat input Compute needs from a finished duel.
type DuelSummary struct {
	Outcome       combat.DuelOutcome
	WinnerID      string
	LoserID       string
	WinnerProwess int
	LoserProwess  int
}

// Compute maps a duel outcome to reputation deltas. A draw moves nothing.
func Compute(summary DuelSummary) []Delta {
	var deltas []Delta

	switch summary.Outcome {
	case combat.OutcomeVictory:
		deltas = append(deltas, Delta{
			CharacterID: summary.WinnerID,
			Honor:       3,
			Renown:      2,
			Reason:      "won a duel",
		})

	case combat.OutcomeYieldAccepted:
		deltas = append(deltas,
			Delta{
				CharacterID: summary.WinnerID,
				Chivalry:    5,
				Reason:      "granted mercy to a yielding opponent",
			},
			Delta{
				CharacterID: summary.LoserID,
				Honor:       -5,
				Reason:      "yielded in a duel",
			},
		)

	case combat.OutcomeYieldRejectedSlain:
		deltas = append(deltas,
			Delta{
				CharacterID: summary.WinnerID,
				Honor:       -20,
				Dread:       20,
				Reason:      "slew a yielding opponent",
			},
			Delta{
				CharacterID: summary.LoserID,
				Honor:       -5,
				Reason:      "yielded in a duel",
			},
		)

	case combat.OutcomeDesperateStandWin:
		deltas = append(deltas, Delta{
			CharacterID: summary.WinnerID,
			Honor:       5,
			Renown:      5,
			Reason:      "won a desperate stand",
		})

	default:
		return nil
	}

	// An upset win earns extra renown.
	if summary.WinnerProwess < summary.LoserProwess {
		deltas = append(deltas, Delta{
			CharacterID: summary.WinnerID,
			Renown:      5,
			Reason:      "defeated a superior fighter",
		})
	}

	return deltas
}
