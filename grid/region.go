package grid

import "fmt"

// Region addresses a rectangular area of a grid. It may describe an area that
// lies partly or fully outside the grid; Extract reports that as a BoundsError.
type Region struct {
	OffsetX, OffsetY int
	Width, Height    int
}

// Violations returns every edge of g the region crosses, in the order
// X min, Y min, X max, Y max. An empty result means the region fits.
func (r Region) Violations(g *Grid) []Violation {
	var out []Violation
	if r.OffsetX < 0 {
		out = append(out, Violation{Axis: AxisX, Limit: MinExceeded})
	}
	if r.OffsetY < 0 {
		out = append(out, Violation{Axis: AxisY, Limit: MinExceeded})
	}
	if r.OffsetX+r.Width > g.width {
		out = append(out, Violation{Axis: AxisX, Limit: MaxExceeded})
	}
	if r.OffsetY+r.Height > g.height {
		out = append(out, Violation{Axis: AxisY, Limit: MaxExceeded})
	}
	return out
}

// Extract copies the cells under r into a new grid. Cell (i,j) of the result
// is cell (r.OffsetX+i, r.OffsetY+j) of g, tags included.
func (g *Grid) Extract(r Region) (*Grid, error) {
	if r.Width < 1 || r.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d region", ErrMalformedShape, r.Width, r.Height)
	}
	if violations := r.Violations(g); len(violations) > 0 {
		return nil, &BoundsError{Region: r, Violations: violations}
	}

	out := New(r.Width, r.Height)
	for i := 0; i < r.Width; i++ {
		for j := 0; j < r.Height; j++ {
			out.cells[i][j] = g.cells[r.OffsetX+i][r.OffsetY+j].clone()
		}
	}
	return out, nil
}

// Combine returns a copy of base with overlay OR-ed onto it at the given
// offset. Overlay cells that fall outside base are skipped. Occupied overlay
// cells bring their tag with them.
func Combine(base, overlay *Grid, at Point) *Grid {
	out := base.Clone()
	for x := 0; x < overlay.width; x++ {
		dx := at.X + x
		for y := 0; y < overlay.height; y++ {
			dy := at.Y + y
			if !out.Contains(dx, dy) {
				continue
			}

			src := overlay.cells[x][y]
			if !src.Occupied {
				continue
			}

			out.cells[dx][dy].Occupied = true
			if len(src.Tag) > 0 {
				out.cells[dx][dy].Tag = src.clone().Tag
			}
		}
	}
	return out
}

// Diff lists the cells whose occupancy differs between a and b, column by
// column. Both grids must have the same size.
func Diff(a, b *Grid) []Point {
	if a.width != b.width || a.height != b.height {
		panic(fmt.Errorf("%w: diff of %dx%d and %dx%d", ErrMalformedShape, a.width, a.height, b.width, b.height))
	}

	var changed []Point
	for x := 0; x < a.width; x++ {
		for y := 0; y < a.height; y++ {
			if a.cells[x][y].Occupied != b.cells[x][y].Occupied {
				changed = append(changed, Point{X: x, Y: y})
			}
		}
	}
	return changed
}

// Center places g in the middle of an empty width x height grid. Parts of g
// that do not fit are cut off.
func Center(g *Grid, width, height int) *Grid {
	at := Point{
		X: (width - g.width) / 2,
		Y: (height - g.height) / 2,
	}
	return Combine(New(width, height), g, at)
}
