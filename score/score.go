// Package score turns cleared rows into points and points into gravity speed.
package score

import (
	"slices"

	"github.com/plus3/bricks/event"
)

// Points returns the score for clearing n rows in one pass. Each row is worth
// 10 and every row past the first adds a 5 point bonus.
func Points(n int) int {
	return 10*n + (n-1)*5
}

// Bus is the part of the event bus the policies need.
type Bus interface {
	Subscribe(event.Type, event.Handler) event.Subscription
	Unsubscribe(event.Subscription) bool
	Publish(*event.Event)
}

// Policy keeps the running score. It listens for full_lines_found and
// publishes score_changed.
type Policy struct {
	bus     Bus
	sub     event.Subscription
	score   int
	history []int
}

// NewPolicy subscribes a fresh score keeper to bus.
func NewPolicy(bus Bus) *Policy {
	p := &Policy{bus: bus}
	p.sub = bus.Subscribe(event.RowsClearedType, p.onRowsCleared)
	return p
}

func (p *Policy) onRowsCleared(e *event.Event) {
	rc, ok := event.PayloadOf[event.RowsCleared](e)
	if !ok || rc.Count < 1 {
		return
	}
	p.Add(rc.Count)
}

// Add records a clear of n rows and announces the new score.
func (p *Policy) Add(n int) int {
	delta := Points(n)
	p.score += delta
	p.history = append(p.history, delta)

	p.bus.Publish(event.New(event.ScoreChangedType, event.ScoreChanged{
		Score:   p.score,
		History: p.History(),
	}))
	return p.score
}

// Score returns the running total.
func (p *Policy) Score() int { return p.score }

// History returns every increment in the order it was earned.
func (p *Policy) History() []int { return slices.Clone(p.history) }

// Reset starts a new game. Nothing is published.
func (p *Policy) Reset() {
	p.score = 0
	p.history = nil
}

// Close detaches the policy from the bus.
func (p *Policy) Close() {
	p.bus.Unsubscribe(p.sub)
}
