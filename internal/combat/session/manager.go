// Package session owns the lifecycle of multi-actor combat sessions: turn
// order, per-session mutual exclusion, action dispatch into the tactical
// engine, and disconnect handling. All session state lives in memory and
// is only ever touched through the manager's guarded entry points.
package session

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"sync"

	"github.com/emberfall/crucible/internal/combat"
	"github.com/emberfall/crucible/internal/combat/tactical"
	"github.com/emberfall/crucible/internal/content"
	"github.com/emberfall/crucible/internal/core/dice"
	apperrors "github.com/emberfall/crucible/internal/errors"
	"github.com/emberfall/crucible/internal/id"
	"github.com/emberfall/crucible/internal/telemetry"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrSessionNotFound indicates an unknown session id.
	ErrSessionNotFound = apperrors.New(apperrors.CodeSessionNotFound, "session not found")
	// ErrSessionBusy indicates a session already resolving another action.
	ErrSessionBusy = apperrors.New(apperrors.CodeSessionBusy, "session is resolving another action")
	// ErrTooFewFighters indicates a session that cannot produce a fight.
	ErrTooFewFighters = apperrors.New(apperrors.CodeSessionTooFewFighters, "a session needs at least two fighters on opposing teams")
	// ErrYieldAlreadyNegotiated indicates a second surrender offer within
	// the same round.
	ErrYieldAlreadyNegotiated = apperrors.New(apperrors.CodeSessionYieldNegotiated, "a yield was already negotiated this round")
	// ErrAlreadyEngaged indicates a character already registered to a live
	// session.
	ErrAlreadyEngaged = apperrors.New(apperrors.CodeCombatantAlreadyEngaged, "character is already in a live session")
)

// Participant is one fighter joining a new session.
type Participant struct {
	Stats combat.CombatantStats
	Team  int
}

// entry pairs a session with its guard and its own RNG-backed engine, so
// concurrent sessions never contend on a shared dice source.
type entry struct {
	mu     sync.Mutex
	state  *combat.SessionState
	engine *tactical.Engine
}

// Manager owns every active session. Construct one per process instance;
// it holds no global state.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	byCharacter map[string]string

	rng     *rand.Rand
	tables  *content.Tables
	emitter *telemetry.Emitter
	tracer  trace.Tracer

	newID func() (string, error)
}

// NewManager creates a session manager. A nil tables uses the embedded
// defaults; a nil emitter disables telemetry.
func NewManager(rng *rand.Rand, tables *content.Tables, emitter *telemetry.Emitter) *Manager {
	if tables == nil {
		tables = content.Default()
	}
	return &Manager{
		sessions:    make(map[string]*entry),
		byCharacter: make(map[string]string),
		rng:         rng,
		tables:      tables,
		emitter:     emitter,
		tracer:      telemetry.Tracer(),
		newID:       id.NewID,
	}
}

// CreateResult describes a newly created session.
type CreateResult struct {
	SessionID string
	// TurnOrder lists character ids in initiative order.
	TurnOrder []string
	// Initiatives maps character id to rolled initiative total.
	Initiatives map[string]int
}

// CreateSession validates the participants, rolls initiative to fix the
// turn order, and registers everyone in the character index atomically
// with creation.
func (m *Manager) CreateSession(ctx context.Context, participants []Participant) (*CreateResult, error) {
	ctx, span := m.tracer.Start(ctx, "session.create")
	defer span.End()

	if err := validateParticipants(participants); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range participants {
		if existing, ok := m.byCharacter[p.Stats.CharacterID]; ok {
			return nil, ErrAlreadyEngaged.WithMeta(map[string]string{
				"CharacterID": p.Stats.CharacterID,
				"SessionID":   existing,
			})
		}
	}

	sessionID, err := m.newID()
	if err != nil {
		return nil, err
	}

	// Each session gets its own RNG so sessions never contend on dice.
	sessionRNG := rand.New(rand.NewSource(m.rng.Int63()))

	combatants := make([]*combat.SessionCombatant, 0, len(participants))
	initiatives := make(map[string]int, len(participants))
	for _, p := range participants {
		roll := dice.RollInitiative(sessionRNG, p.Stats.Cunning, p.Stats.Prowess, -p.Stats.Encumbrance)
		combatants = append(combatants, &combat.SessionCombatant{
			Stats:      p.Stats,
			Team:       p.Team,
			Initiative: roll.Total,
		})
		initiatives[p.Stats.CharacterID] = roll.Total
	}
	sort.SliceStable(combatants, func(i, j int) bool {
		return combatants[i].Initiative > combatants[j].Initiative
	})

	state := &combat.SessionState{
		ID:         sessionID,
		Combatants: combatants,
		Round:      1,
		Status:     combat.SessionStatusActive,
	}
	m.sessions[sessionID] = &entry{
		state:  state,
		engine: tactical.New(sessionRNG, m.tables),
	}

	turnOrder := make([]string, len(combatants))
	for i, c := range combatants {
		m.byCharacter[c.Stats.CharacterID] = sessionID
		turnOrder[i] = c.Stats.CharacterID
	}

	m.emitter.EmitSessionCreated(ctx, sessionID, map[string]string{
		"combatants": strconv.Itoa(len(combatants)),
	})
	return &CreateResult{
		SessionID:   sessionID,
		TurnOrder:   turnOrder,
		Initiatives: initiatives,
	}, nil
}

func validateParticipants(participants []Participant) error {
	if len(participants) < 2 {
		return ErrTooFewFighters
	}
	seen := make(map[string]bool, len(participants))
	teams := make(map[int]bool)
	for _, p := range participants {
		if err := p.Stats.Validate(); err != nil {
			return err
		}
		if seen[p.Stats.CharacterID] {
			return ErrAlreadyEngaged.WithMeta(map[string]string{
				"CharacterID": p.Stats.CharacterID,
			})
		}
		seen[p.Stats.CharacterID] = true
		teams[p.Team] = true
	}
	if len(teams) < 2 {
		return ErrTooFewFighters.WithMeta(map[string]string{"Reason": "single team"})
	}
	return nil
}

// acquire looks up a session and takes its guard without blocking. A
// session already resolving an action rejects the caller instead of
// queueing it.
func (m *Manager) acquire(sessionID string) (*entry, error) {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound.WithMeta(map[string]string{"SessionID": sessionID})
	}
	if !e.mu.TryLock() {
		return nil, ErrSessionBusy.WithMeta(map[string]string{"SessionID": sessionID})
	}
	return e, nil
}

// ActionOutcome is the manager-level result of a processed action or turn
// skip.
type ActionOutcome struct {
	// Result is nil for skipped turns and yields.
	Result *tactical.ActionResult
	// RoundStart is set when the turn advance wrapped into a new round.
	RoundStart *tactical.RoundStartResult

	Round               int
	NextTurnCharacterID string

	Completed bool
	// WinningTeam is set when Completed; zero value is team 0, so check
	// Completed first.
	WinningTeam int
}

// ProcessAction resolves one actor's declared action under the session
// guard, advances the turn, and detects round wrap and completion.
func (m *Manager) ProcessAction(ctx context.Context, sessionID, actorID string, action tactical.Action) (*ActionOutcome, error) {
	ctx, span := m.tracer.Start(ctx, "session.process_action")
	defer span.End()

	e, err := m.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	result, err := e.engine.Resolve(e.state, actorID, action)
	if err != nil {
		return nil, err
	}

	outcome := m.finish(ctx, e)
	outcome.Result = result

	m.emitter.EmitActionResolved(ctx, sessionID, actorID, map[string]string{
		"kind": string(action.Kind),
	})
	return outcome, nil
}

// SkipTurn passes the actor's turn without acting.
func (m *Manager) SkipTurn(ctx context.Context, sessionID, actorID string) (*ActionOutcome, error) {
	ctx, span := m.tracer.Start(ctx, "session.skip_turn")
	defer span.End()

	e, err := m.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	if err := requireTurn(e.state, actorID); err != nil {
		return nil, err
	}

	outcome := m.finish(ctx, e)
	m.emitter.Emit(ctx, telemetry.Event{
		Type:        telemetry.TypeTurnSkipped,
		SessionID:   sessionID,
		CharacterID: actorID,
	})
	return outcome, nil
}

// HandleYield marks the actor as yielded on their turn. Yielded combatants
// leave the turn order; their team loses when nobody on it still stands.
// Each round allows at most one yield negotiation, matching the duel
// engine.
func (m *Manager) HandleYield(ctx context.Context, sessionID, actorID string) (*ActionOutcome, error) {
	ctx, span := m.tracer.Start(ctx, "session.handle_yield")
	defer span.End()

	e, err := m.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	if err := requireTurn(e.state, actorID); err != nil {
		return nil, err
	}
	if e.state.YieldNegotiatedThisRound {
		return nil, ErrYieldAlreadyNegotiated.WithMeta(map[string]string{
			"SessionID":   sessionID,
			"CharacterID": actorID,
		})
	}

	e.state.YieldNegotiatedThisRound = true
	e.state.CombatantByID(actorID).Yielded = true
	outcome := m.finish(ctx, e)
	m.emitter.Emit(ctx, telemetry.Event{
		Type:        telemetry.TypeYieldNegotiated,
		SessionID:   sessionID,
		CharacterID: actorID,
	})
	return outcome, nil
}

// HandleDisconnect treats a lost participant as a forced yield so the
// session keeps progressing for everyone else. Unlike player-facing
// actions it blocks on the guard rather than rejecting, and ignores turn
// ownership.
func (m *Manager) HandleDisconnect(ctx context.Context, characterID string) (*ActionOutcome, error) {
	ctx, span := m.tracer.Start(ctx, "session.handle_disconnect")
	defer span.End()

	m.mu.Lock()
	sessionID, ok := m.byCharacter[characterID]
	e := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok || e == nil {
		return nil, ErrSessionNotFound.WithMeta(map[string]string{"CharacterID": characterID})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.state.CombatantByID(characterID)
	if c == nil {
		return nil, ErrSessionNotFound.WithMeta(map[string]string{"CharacterID": characterID})
	}
	c.Yielded = true

	var outcome *ActionOutcome
	if current := e.state.CurrentCombatant(); current != nil && current.Stats.CharacterID == characterID {
		outcome = m.finish(ctx, e)
	} else {
		outcome = m.completeIfDecided(ctx, e)
	}

	m.emitter.EmitDisconnect(ctx, e.state.ID, characterID)
	return outcome, nil
}

// requireTurn checks that the actor exists, still stands, and holds the
// current turn.
func requireTurn(state *combat.SessionState, actorID string) error {
	if state.Status != combat.SessionStatusActive {
		return tactical.ErrSessionNotActive.WithMeta(map[string]string{"SessionID": state.ID})
	}
	c := state.CombatantByID(actorID)
	if c == nil {
		return tactical.ErrInvalidTarget.WithMeta(map[string]string{"CharacterID": actorID, "Role": "actor"})
	}
	if !c.Standing() {
		return tactical.ErrActorDown.WithMeta(map[string]string{"CharacterID": actorID})
	}
	if current := state.CurrentCombatant(); current == nil || current.Stats.CharacterID != actorID {
		return tactical.ErrOutOfTurn.WithMeta(map[string]string{"CharacterID": actorID})
	}
	return nil
}

// finish advances the turn and checks for completion. The check runs again
// after a round wrap, because round-start upkeep can bleed fighters out.
// Must be called with the entry guard held.
func (m *Manager) finish(ctx context.Context, e *entry) *ActionOutcome {
	outcome := m.completeIfDecided(ctx, e)
	if outcome.Completed {
		return outcome
	}

	outcome.RoundStart = advanceTurn(e)
	if outcome.RoundStart != nil {
		if wrapped := m.completeIfDecided(ctx, e); wrapped.Completed {
			wrapped.RoundStart = outcome.RoundStart
			return wrapped
		}
	}
	outcome.Round = e.state.Round
	if current := e.state.CurrentCombatant(); current != nil {
		outcome.NextTurnCharacterID = current.Stats.CharacterID
	}
	return outcome
}

// advanceTurn moves the turn pointer to the next standing combatant,
// wrapping into a new round (with its upkeep) as needed. Upkeep can down
// fighters, so the caller must re-check completion whenever a round start
// is reported.
func advanceTurn(e *entry) *tactical.RoundStartResult {
	state := e.state
	var roundStart *tactical.RoundStartResult

	for i := 0; i < len(state.Combatants)*2; i++ {
		state.Turn++
		if state.Turn >= len(state.Combatants) {
			state.Turn = 0
			state.Round++
			roundStart = e.engine.ProcessRoundStart(state)
			if len(state.StandingTeams()) == 0 {
				return roundStart
			}
		}
		if state.CurrentCombatant().Standing() {
			return roundStart
		}
	}
	return roundStart
}

// completeIfDecided transitions the session to completed when at most one
// team still stands, clearing the character index.
func (m *Manager) completeIfDecided(ctx context.Context, e *entry) *ActionOutcome {
	state := e.state
	outcome := &ActionOutcome{Round: state.Round}

	teams := state.StandingTeams()
	if len(teams) > 1 {
		return outcome
	}

	state.Status = combat.SessionStatusCompleted
	outcome.Completed = true
	if len(teams) == 1 {
		outcome.WinningTeam = teams[0]
	}

	// The session stays queryable until released; only the character index
	// is cleared, freeing everyone for new sessions.
	m.mu.Lock()
	for _, c := range state.Combatants {
		delete(m.byCharacter, c.Stats.CharacterID)
	}
	m.mu.Unlock()

	m.emitter.EmitSessionCompleted(ctx, state.ID, map[string]string{
		"winning_team": strconv.Itoa(outcome.WinningTeam),
		"rounds":       strconv.Itoa(state.Round),
	})
	return outcome
}

// ReleaseSession drops a completed session from memory. Active sessions
// are refused.
func (m *Manager) ReleaseSession(sessionID string) error {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound.WithMeta(map[string]string{"SessionID": sessionID})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Status != combat.SessionStatusCompleted {
		return ErrSessionBusy.WithMeta(map[string]string{
			"SessionID": sessionID,
			"Reason":    "still active",
		})
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// FindSessionByCharacter returns the live session a character belongs to.
func (m *Manager) FindSessionByCharacter(characterID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sessionID, ok := m.byCharacter[characterID]
	return sessionID, ok
}

// CurrentTurnCharacterID returns the character whose turn it is. It takes
// the session guard briefly, so it never observes a half-applied action,
// and never blocks callers asking about other sessions.
func (m *Manager) CurrentTurnCharacterID(sessionID string) (string, error) {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return "", ErrSessionNotFound.WithMeta(map[string]string{"SessionID": sessionID})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	current := e.state.CurrentCombatant()
	if current == nil {
		return "", tactical.ErrSessionNotActive.WithMeta(map[string]string{"SessionID": sessionID})
	}
	return current.Stats.CharacterID, nil
}
