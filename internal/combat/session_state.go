package combat

// SessionStatus describes the lifecycle state of a combat session.
type SessionStatus int

const (
	// SessionStatusUnspecified represents an invalid session status value.
	SessionStatusUnspecified SessionStatus = iota
	// SessionStatusActive indicates the session is accepting actions.
	SessionStatusActive
	// SessionStatusCompleted indicates the session has reached a terminal
	// state.
	SessionStatusCompleted
)

// SessionCombatant is one fighter inside a live multi-actor session.
type SessionCombatant struct {
	Stats CombatantStats
	Team  int

	Yielded bool
	// Initiative is the total rolled at session creation; it fixes the
	// turn order for the whole session.
	Initiative int

	// BracedThisRound marks a brace action; cleared at round start.
	BracedThisRound bool
	// Disengaged marks a combatant who has left melee range.
	Disengaged bool
}

// Alive reports whether the combatant can still fight.
func (c *SessionCombatant) Alive() bool {
	return !c.Stats.IsDown()
}

// Standing reports whether the combatant still participates in turn order.
func (c *SessionCombatant) Standing() bool {
	return c.Alive() && !c.Yielded
}

// SessionState is a live, mutable multi-actor session. It is exclusively
// owned by the session manager's in-memory store and only touched through
// the manager's guarded entry points.
type SessionState struct {
	ID string
	// Combatants is ordered by initiative; Turn indexes into it.
	Combatants []*SessionCombatant
	Round      int
	Turn       int
	Status     SessionStatus

	// YieldNegotiatedThisRound caps yield negotiation at one per round,
	// matching the duel engine.
	YieldNegotiatedThisRound bool
}

// CombatantByID returns the combatant with the given character id, or nil.
func (s *SessionState) CombatantByID(characterID string) *SessionCombatant {
	for _, c := range s.Combatants {
		if c.Stats.CharacterID == characterID {
			return c
		}
	}
	return nil
}

// CurrentCombatant returns the combatant whose turn it is, or nil when the
// session is not active.
func (s *SessionState) CurrentCombatant() *SessionCombatant {
	if s.Status != SessionStatusActive {
		return nil
	}
	if s.Turn < 0 || s.Turn >= len(s.Combatants) {
		return nil
	}
	return s.Combatants[s.Turn]
}

// StandingTeams returns the distinct teams that still have a standing
// combatant.
func (s *SessionState) StandingTeams() []int {
	seen := make(map[int]bool)
	var teams []int
	for _, c := range s.Combatants {
		if c.Standing() && !seen[c.Team] {
			seen[c.Team] = true
			teams = append(teams, c.Team)
		}
	}
	return teams
}

// Hostiles returns the standing combatants on other teams.
func (s *SessionState) Hostiles(team int) []*SessionCombatant {
	var hostiles []*SessionCombatant
	for _, c := range s.Combatants {
		if c.Team != team && c.Standing() {
			hostiles = append(hostiles, c)
		}
	}
	return hostiles
}
