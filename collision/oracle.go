// Package collision decides whether a falling brick may move.
package collision

import (
	"errors"

	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/grid"
)

// Vector is a requested displacement in cells.
type Vector struct {
	DX, DY int
}

// Down is one gravity step.
var Down = Vector{DY: 1}

// Verdict is the outcome of a move check.
type Verdict struct {
	Movable bool

	// Violations lists the stage edges the candidate region crossed. It is
	// empty when the region fits.
	Violations []grid.Violation

	// Collisions lists stage cells, in stage coordinates, that are occupied
	// both by the stage and by the candidate fragment.
	Collisions []grid.Point
}

// OutOfBounds reports whether the candidate left the stage.
func (v Verdict) OutOfBounds() bool { return len(v.Violations) > 0 }

// BlockedBelow reports whether the candidate ran past the stage floor.
func (v Verdict) BlockedBelow() bool {
	for _, violation := range v.Violations {
		if violation.Axis == grid.AxisY && violation.Limit == grid.MaxExceeded {
			return true
		}
	}
	return false
}

// Publisher is the part of the event bus the oracle needs.
type Publisher interface {
	Publish(*event.Event)
}

// Oracle checks fragments against a stage. When a bus is attached every
// out-of-bounds check is also announced as an out_of_bounds event.
type Oracle struct {
	bus Publisher
}

// NewOracle creates an oracle. bus may be nil.
func NewOracle(bus Publisher) *Oracle {
	return &Oracle{bus: bus}
}

// Check evaluates moving f by v on stage. Neither argument is modified.
func (o *Oracle) Check(f grid.Fragment, stage *grid.Grid, v Vector) Verdict {
	region := f.Region(v.DX, v.DY)

	under, err := stage.Extract(region)
	if err != nil {
		var bounds *grid.BoundsError
		if !errors.As(err, &bounds) {
			// A fragment without a usable shape is a wiring bug.
			panic(err)
		}

		if o.bus != nil {
			o.bus.Publish(event.New(event.OutOfBoundsType, event.OutOfBounds{
				Fragment:   f.Moved(v.DX, v.DY),
				Violations: bounds.Violations,
			}))
		}
		return Verdict{Violations: bounds.Violations}
	}

	var hits []grid.Point
	for x := 0; x < region.Width; x++ {
		for y := 0; y < region.Height; y++ {
			if under.Get(x, y) && f.Shape.Get(x, y) {
				hits = append(hits, grid.Point{X: region.OffsetX + x, Y: region.OffsetY + y})
			}
		}
	}

	return Verdict{Movable: len(hits) == 0, Collisions: hits}
}

// CanMove reports whether f may move by v on stage.
func (o *Oracle) CanMove(f grid.Fragment, stage *grid.Grid, v Vector) bool {
	return o.Check(f, stage, v).Movable
}
