package score

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/plus3/bricks/event"
)

// ErrInvalidTable is returned for speed tables with gaps, overlaps or
// non-positive speeds.
var ErrInvalidTable = errors.New("score: invalid speed table")

// Tier maps the score range [From, To] to a gravity period and level.
type Tier struct {
	From, To int
	Speed    time.Duration
	Level    int
}

// Table is an ordered list of tiers.
type Table []Tier

// DefaultTable returns the stock nine levels. The last tier is open ended.
func DefaultTable() Table {
	return Table{
		{From: 0, To: 499, Speed: 1000 * time.Millisecond, Level: 1},
		{From: 500, To: 999, Speed: 800 * time.Millisecond, Level: 2},
		{From: 1000, To: 1999, Speed: 600 * time.Millisecond, Level: 3},
		{From: 2000, To: 3999, Speed: 400 * time.Millisecond, Level: 4},
		{From: 4000, To: 5999, Speed: 300 * time.Millisecond, Level: 5},
		{From: 6000, To: 7999, Speed: 200 * time.Millisecond, Level: 6},
		{From: 8000, To: 8999, Speed: 150 * time.Millisecond, Level: 7},
		{From: 9000, To: 9999, Speed: 100 * time.Millisecond, Level: 8},
		{From: 10000, To: math.MaxInt, Speed: 20 * time.Millisecond, Level: 9},
	}
}

// Validate checks that the tiers start at zero, are contiguous and have
// positive speeds.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidTable)
	}
	if t[0].From != 0 {
		return fmt.Errorf("%w: first tier starts at %d", ErrInvalidTable, t[0].From)
	}

	for i, tier := range t {
		if tier.From > tier.To {
			return fmt.Errorf("%w: tier %d range %d..%d", ErrInvalidTable, i, tier.From, tier.To)
		}
		if tier.Speed <= 0 {
			return fmt.Errorf("%w: tier %d speed %s", ErrInvalidTable, i, tier.Speed)
		}
		if i > 0 && tier.From != t[i-1].To+1 {
			return fmt.Errorf("%w: tier %d starts at %d, want %d", ErrInvalidTable, i, tier.From, t[i-1].To+1)
		}
	}
	return nil
}

// Lookup returns the tier containing score. Scores past the last tier use
// the last tier.
func (t Table) Lookup(score int) Tier {
	for _, tier := range t {
		if score >= tier.From && score <= tier.To {
			return tier
		}
	}
	return t[len(t)-1]
}

// SpeedPolicy maps score changes onto gravity speed. Every score_changed
// produces a level_updated; update_speed follows only when the level differs
// from the one last announced.
type SpeedPolicy struct {
	bus   Bus
	sub   event.Subscription
	table Table
	level int
}

// NewSpeedPolicy validates table and subscribes the policy to bus.
func NewSpeedPolicy(bus Bus, table Table) (*SpeedPolicy, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	p := &SpeedPolicy{bus: bus, table: table}
	p.level = table.Lookup(0).Level
	p.sub = bus.Subscribe(event.ScoreChangedType, p.onScoreChanged)
	return p, nil
}

func (p *SpeedPolicy) onScoreChanged(e *event.Event) {
	sc, ok := event.PayloadOf[event.ScoreChanged](e)
	if !ok {
		return
	}
	p.Apply(sc.Score)
}

// Apply publishes the tier for score and reports whether the level changed.
func (p *SpeedPolicy) Apply(score int) bool {
	tier := p.table.Lookup(score)

	p.bus.Publish(event.New(event.LevelUpdatedType, event.LevelUpdated{
		Speed: tier.Speed,
		Level: tier.Level,
		Score: score,
	}))

	if tier.Level == p.level {
		return false
	}
	p.level = tier.Level

	p.bus.Publish(event.New(event.SpeedChangedType, event.SpeedChanged{
		Speed: tier.Speed,
		Level: tier.Level,
		Score: score,
	}))
	return true
}

// Level returns the last announced level.
func (p *SpeedPolicy) Level() int { return p.level }

// Speed returns the gravity period of the last announced level.
func (p *SpeedPolicy) Speed() time.Duration {
	for _, tier := range p.table {
		if tier.Level == p.level {
			return tier.Speed
		}
	}
	return p.table[0].Speed
}

// Reset returns to the first tier without publishing.
func (p *SpeedPolicy) Reset() {
	p.level = p.table.Lookup(0).Level
}

// Close detaches the policy from the bus.
func (p *SpeedPolicy) Close() {
	p.bus.Unsubscribe(p.sub)
}
