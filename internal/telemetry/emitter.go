// Package telemetry records operational combat events through an injected
// sink. Domain packages stay silent; the session manager emits here so
// operators can follow session lifecycles without the engine logging
// directly.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this module's spans.
const tracerName = "github.com/emberfall/crucible"

// Tracer returns the module's otel tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event types emitted by the combat engine.
const (
	TypeSessionCreated   = "combat.session_created"
	TypeActionResolved   = "combat.action_resolved"
	TypeTurnSkipped      = "combat.turn_skipped"
	TypeYieldNegotiated  = "combat.yield_negotiated"
	TypeDisconnect       = "combat.disconnect"
	TypeSessionCompleted = "combat.session_completed"
)

// Event is one operational telemetry record.
type Event struct {
	Timestamp   time.Time
	Type        string
	Severity    Severity
	SessionID   string
	CharacterID string
	// Attributes carries small, event-specific detail values.
	Attributes map[string]string
}

// Sink receives telemetry events. Implementations must be safe for
// concurrent use.
type Sink interface {
	Record(ctx context.Context, evt Event) error
}

// Emitter records combat telemetry events. A nil emitter or nil sink is a
// no-op, so callers never guard their emit calls.
type Emitter struct {
	sink  Sink
	clock func() time.Time
}

// NewEmitter creates a telemetry emitter.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, clock: time.Now}
}

// Emit records a telemetry event, stamping the time if unset.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.sink == nil {
		return nil
	}
	if evt.Severity == "" {
		evt.Severity = SeverityInfo
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.sink.Record(ctx, evt)
}

// EmitSessionCreated records a combat.session_created event.
func (e *Emitter) EmitSessionCreated(ctx context.Context, sessionID string, attrs map[string]string) error {
	return e.Emit(ctx, Event{
		Type:       TypeSessionCreated,
		SessionID:  sessionID,
		Attributes: attrs,
	})
}

// EmitActionResolved records a combat.action_resolved event.
func (e *Emitter) EmitActionResolved(ctx context.Context, sessionID, characterID string, attrs map[string]string) error {
	return e.Emit(ctx, Event{
		Type:        TypeActionResolved,
		SessionID:   sessionID,
		CharacterID: characterID,
		Attributes:  attrs,
	})
}

// EmitDisconnect records a combat.disconnect event.
func (e *Emitter) EmitDisconnect(ctx context.Context, sessionID, characterID string) error {
	return e.Emit(ctx, Event{
		Type:        TypeDisconnect,
		Severity:    SeverityWarn,
		SessionID:   sessionID,
		CharacterID: characterID,
	})
}

// EmitSessionCompleted records a combat.session_completed event.
func (e *Emitter) EmitSessionCompleted(ctx context.Context, sessionID string, attrs map[string]string) error {
	return e.Emit(ctx, Event{
		Type:       TypeSessionCompleted,
		SessionID:  sessionID,
		Attributes: attrs,
	})
}
