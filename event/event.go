// Package event is the synchronous publish/subscribe bus that couples the
// game components. Dispatch is depth-first: a handler that publishes runs
// that nested dispatch to completion before the outer one continues.
package event

import "errors"

// ErrSealed is returned by SetPayload once the event has been published.
var ErrSealed = errors.New("event: payload is sealed after publish")

// Type keys subscriptions.
type Type string

const (
	ControlsType        Type = "controls_event"
	OutOfBoundsType     Type = "out_of_bounds"
	PositionChangedType Type = "block_position_changed"
	CycleEndedType      Type = "cycle_ended"
	BeforeClearType     Type = "pre_update_matrix"
	RowsClearedType     Type = "full_lines_found"
	NewFragmentType     Type = "new_block_generated"
	BeforeRenderType    Type = "pre_render_matrix"
	ScoreChangedType    Type = "score_changed"
	LevelUpdatedType    Type = "level_updated"
	SpeedChangedType    Type = "update_speed"
	StateChangedType    Type = "state_changed"
	GameOverType        Type = "game_over"
)

// Event is a single message. The payload may be replaced until the event is
// handed to Publish; after that it is read-only.
type Event struct {
	typ     Type
	payload any
	stopped bool
	sealed  bool
}

// New creates an event of type t.
func New(t Type, payload any) *Event {
	return &Event{typ: t, payload: payload}
}

// Type returns the event type.
func (e *Event) Type() Type { return e.typ }

// Payload returns the attached data.
func (e *Event) Payload() any { return e.payload }

// SetPayload replaces the attached data. It fails once the event has been
// published.
func (e *Event) SetPayload(payload any) error {
	if e.sealed {
		return ErrSealed
	}
	e.payload = payload
	return nil
}

// StopPropagation keeps the remaining handlers of the current dispatch from
// running. Nobody is unsubscribed.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether propagation was stopped.
func (e *Event) Stopped() bool { return e.stopped }

// PayloadOf returns the payload of e as a T.
func PayloadOf[T any](e *Event) (T, bool) {
	v, ok := e.payload.(T)
	return v, ok
}
