package duel

import (
	"fmt"
	"strings"

	"github.com/emberfall/crucible/internal/combat"
)

// buildNarrative renders a round into prose. It is pure string formatting:
// no randomness beyond what the round already rolled.
func buildNarrative(attacker, defender *combat.CombatantStats, round *RoundResult) string {
	names := map[string]string{
		attacker.CharacterID: displayName(attacker),
		defender.CharacterID: displayName(defender),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Round %d.", round.Round)

	for _, exchange := range round.Exchanges {
		b.WriteString(" ")
		b.WriteString(describeAttack(names, &exchange.Attack))
	}

	if round.YieldAttempted {
		yielder := names[round.YieldAttemptedBy]
		if round.YieldAccepted {
			fmt.Fprintf(&b, " %s throws down their sword and yields; quarter is given.", yielder)
		} else {
			fmt.Fprintf(&b, " %s begs quarter and is refused.", yielder)
			if round.DesperateStand {
				fmt.Fprintf(&b, " Cornered, %s fights on with nothing left to lose.", yielder)
			}
		}
	}

	return b.String()
}

// describeAttack renders one exchange, including nested ripostes and
// counters one level deep.
func describeAttack(names map[string]string, attack *combat.AttackResult) string {
	actor := names[attack.AttackerID]
	target := names[attack.DefenderID]

	switch {
	case attack.Dodged:
		s := fmt.Sprintf("%s lunges but %s slips aside.", actor, target)
		if attack.DodgeRiposte != nil {
			s += " " + describeAttack(names, attack.DodgeRiposte)
		}
		return s

	case attack.DefenseReversal:
		s := fmt.Sprintf("%s attacks, but %s turns the blade and seizes the opening.", actor, target)
		if attack.CounterAttack != nil {
			s += " " + describeAttack(names, attack.CounterAttack)
		}
		return s

	case !attack.Hit:
		return fmt.Sprintf("%s swings at %s and finds only air.", actor, target)

	default:
		s := fmt.Sprintf("%s lands a %s blow on %s, the strike %s for %d damage.",
			actor, attack.Quality, target, attack.DamageLabel, attack.Damage)
		for _, crit := range attack.CritEffects {
			s += fmt.Sprintf(" The blow leaves %s.", crit)
		}
		if attack.DefenderHealthAfter <= 0 {
			s += fmt.Sprintf(" %s collapses.", target)
		}
		return s
	}
}

func displayName(stats *combat.CombatantStats) string {
	if stats.Name != "" {
		return stats.Name
	}
	return stats.CharacterID
}
