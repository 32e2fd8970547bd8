// Package grid provides the fixed-size boolean field bricks fall into, together
// with the region algebra (extract, combine) the rest of the game is built on.
//
// Cells are stored column-major: a grid is a slice of columns and cell (x,y)
// lives at column x, row y, with (0,0) in the top-left corner.
package grid

import (
	"fmt"
	"maps"
	"strings"
)

// Tag is opaque per-cell metadata. Renderers use it to remember which shape a
// locked cell came from.
type Tag map[string]any

// Cell is a single grid position.
type Cell struct {
	Occupied bool
	Tag      Tag
}

func (c Cell) clone() Cell {
	return Cell{Occupied: c.Occupied, Tag: maps.Clone(c.Tag)}
}

// Point addresses a cell or an anchor offset.
type Point struct {
	X, Y int
}

// Grid is a rectangular field of cells. Width and height are fixed for the
// lifetime of a grid.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// New creates an empty width x height grid. It panics if either dimension is
// smaller than one.
func New(width, height int) *Grid {
	if width < 1 || height < 1 {
		panic(fmt.Errorf("%w: %dx%d grid", ErrMalformedShape, width, height))
	}

	cells := make([][]Cell, width)
	for x := range cells {
		cells[x] = make([]Cell, height)
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// FromMatrix builds a grid from column-major occupancy data. Every column must
// have the same, non-zero length.
func FromMatrix(columns [][]bool) (*Grid, error) {
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, fmt.Errorf("%w: matrix must be at least 1x1", ErrMalformedShape)
	}

	height := len(columns[0])
	for x, column := range columns {
		if len(column) != height {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrMalformedShape, x, len(column), height)
		}
	}

	g := New(len(columns), height)
	for x, column := range columns {
		for y, occupied := range column {
			g.cells[x][y].Occupied = occupied
		}
	}
	return g, nil
}

// Parse builds a grid from row-major text where '#' marks an occupied cell and
// any other rune an empty one. It is meant for fixtures and shape tables.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedShape)
	}

	width := len([]rune(rows[0]))
	for y, row := range rows {
		if n := len([]rune(row)); n != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedShape, y, n, width)
		}
	}

	g := New(width, len(rows))
	for y, row := range rows {
		for x, r := range []rune(row) {
			g.cells[x][y].Occupied = r == '#'
		}
	}
	return g, nil
}

// MustParse is Parse for static data; it panics on error.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

func (g *Grid) check(x, y int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		panic(&RangeError{X: x, Y: y, Width: g.width, Height: g.height})
	}
}

// Contains reports whether (x,y) addresses a cell of this grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Get returns the occupancy of cell (x,y).
func (g *Grid) Get(x, y int) bool {
	g.check(x, y)
	return g.cells[x][y].Occupied
}

// Set changes the occupancy of cell (x,y).
func (g *Grid) Set(x, y int, occupied bool) {
	g.check(x, y)
	g.cells[x][y].Occupied = occupied
}

// Toggle flips the occupancy of cell (x,y).
func (g *Grid) Toggle(x, y int) {
	g.check(x, y)
	g.cells[x][y].Occupied = !g.cells[x][y].Occupied
}

// Tag returns a copy of the metadata of cell (x,y). An unset tag reads as an
// empty map. Use SetTag to change it.
func (g *Grid) Tag(x, y int) Tag {
	g.check(x, y)
	if t := g.cells[x][y].Tag; t != nil {
		return maps.Clone(t)
	}
	return Tag{}
}

// SetTag replaces the metadata of cell (x,y) with a copy of tag.
func (g *Grid) SetTag(x, y int, tag Tag) {
	g.check(x, y)
	g.cells[x][y].Tag = maps.Clone(tag)
}

// Cell returns a copy of cell (x,y).
func (g *Grid) Cell(x, y int) Cell {
	g.check(x, y)
	return g.cells[x][y].clone()
}

// SetCell replaces cell (x,y).
func (g *Grid) SetCell(x, y int, c Cell) {
	g.check(x, y)
	g.cells[x][y] = c
}

// Clear marks every cell unoccupied. Tags are left untouched.
func (g *Grid) Clear() {
	for x := range g.cells {
		for y := range g.cells[x] {
			g.cells[x][y].Occupied = false
		}
	}
}

// Clone returns a deep copy of the grid, tags included.
func (g *Grid) Clone() *Grid {
	out := New(g.width, g.height)
	for x := range g.cells {
		for y := range g.cells[x] {
			out.cells[x][y] = g.cells[x][y].clone()
		}
	}
	return out
}

// Columns returns a column-major copy of the occupancy data.
func (g *Grid) Columns() [][]bool {
	out := make([][]bool, g.width)
	for x := range g.cells {
		out[x] = make([]bool, g.height)
		for y := range g.cells[x] {
			out[x][y] = g.cells[x][y].Occupied
		}
	}
	return out
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for x := range g.cells {
		for y := range g.cells[x] {
			if g.cells[x][y].Occupied {
				n++
			}
		}
	}
	return n
}

// Equal reports whether both grids have the same size and occupancy. Tags are
// not compared.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for x := range g.cells {
		for y := range g.cells[x] {
			if g.cells[x][y].Occupied != other.cells[x][y].Occupied {
				return false
			}
		}
	}
	return true
}

// String renders the grid row by row using '#' and '.'.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			if g.cells[x][y].Occupied {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
