package game_test

import (
	"errors"
	"time"

	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/grid"
	"github.com/plus3/bricks/shape"
)

var errExhausted = errors.New("script exhausted")

// script hands out bricks in a fixed order, cycling unless once is set.
type script struct {
	catalog *shape.Catalog
	names   []string
	once    bool
	drawn   int
}

func repeat(names ...string) *script {
	return &script{catalog: shape.Default(nil), names: names}
}

func (s *script) Next() (string, *grid.Grid, error) {
	if s.once && s.drawn >= len(s.names) {
		return "", nil, errExhausted
	}
	name := s.names[s.drawn%len(s.names)]
	s.drawn++
	g, err := s.catalog.Get(name)
	return name, g, err
}

// bars is a script over a single 1x2 vertical bar.
func bars() *script {
	c := shape.NewCatalog(nil).MustRegister(shape.Static{ID: "bar", Columns: [][]bool{{true, true}}})
	return &script{catalog: c, names: []string{"bar"}}
}

type clock struct {
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recorder keeps every event of the given types in publish order.
type recorder struct {
	events []*event.Event
}

func record(bus *event.Bus, types ...event.Type) *recorder {
	r := &recorder{}
	for _, t := range types {
		bus.Subscribe(t, func(e *event.Event) { r.events = append(r.events, e) })
	}
	return r
}

func (r *recorder) types() []event.Type {
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

func (r *recorder) states() []string {
	var out []string
	for _, e := range r.events {
		if sc, ok := event.PayloadOf[event.StateChanged](e); ok {
			out = append(out, sc.From+"->"+sc.To)
		}
	}
	return out
}

func (r *recorder) count(t event.Type) int {
	n := 0
	for _, e := range r.events {
		if e.Type() == t {
			n++
		}
	}
	return n
}
