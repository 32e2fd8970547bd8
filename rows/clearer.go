// Package rows finds and removes completely filled stage rows.
package rows

import (
	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/grid"
)

// Detect returns the indices of every full row, top to bottom.
func Detect(g *grid.Grid) []int {
	var full []int
	for y := 0; y < g.Height(); y++ {
		complete := true
		for x := 0; x < g.Width(); x++ {
			if !g.Get(x, y) {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, y)
		}
	}
	return full
}

// Publisher is the part of the event bus the clearer needs.
type Publisher interface {
	Publish(*event.Event)
}

// Clearer compacts a stage after a brick locks.
type Clearer struct {
	bus Publisher
}

// NewClearer creates a clearer. bus may be nil.
func NewClearer(bus Publisher) *Clearer {
	return &Clearer{bus: bus}
}

// Update removes every full row of g in place and returns how many were
// removed. Rows above a removed row move down by one, whole cells at a time,
// and row 0 becomes empty. Processing top to bottom keeps the detected
// indices valid for the whole pass. A full_lines_found event is published
// when at least one row was removed.
func (c *Clearer) Update(g *grid.Grid) int {
	full := Detect(g)
	for _, row := range full {
		for y := row; y > 0; y-- {
			for x := 0; x < g.Width(); x++ {
				g.SetCell(x, y, g.Cell(x, y-1))
			}
		}
		for x := 0; x < g.Width(); x++ {
			g.SetCell(x, 0, grid.Cell{})
		}
	}

	if len(full) > 0 && c.bus != nil {
		c.bus.Publish(event.New(event.RowsClearedType, event.RowsCleared{
			Count: len(full),
			Rows:  full,
		}))
	}
	return len(full)
}
