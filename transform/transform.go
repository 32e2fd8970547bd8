// Package transform rotates and mirrors brick grids. Every function returns a
// new grid and leaves its input untouched; cell tags move with their cells.
package transform

import "github.com/plus3/bricks/grid"

// RotateRight turns g a quarter turn clockwise. Each column's rows are
// reversed and the result transposed, so a w x h grid becomes h x w.
func RotateRight(g *grid.Grid) *grid.Grid {
	w, h := g.Width(), g.Height()
	out := grid.New(h, w)
	for x := 0; x < h; x++ {
		for y := 0; y < w; y++ {
			out.SetCell(x, y, g.Cell(y, h-1-x))
		}
	}
	return out
}

// RotateLeft turns g a quarter turn counter-clockwise: column order reversed,
// then transposed.
func RotateLeft(g *grid.Grid) *grid.Grid {
	w, h := g.Width(), g.Height()
	out := grid.New(h, w)
	for x := 0; x < h; x++ {
		for y := 0; y < w; y++ {
			out.SetCell(x, y, g.Cell(w-1-y, x))
		}
	}
	return out
}

// FlipVertical mirrors g top to bottom.
func FlipVertical(g *grid.Grid) *grid.Grid {
	w, h := g.Width(), g.Height()
	out := grid.New(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			out.SetCell(x, y, g.Cell(x, h-1-y))
		}
	}
	return out
}

// FlipHorizontal mirrors g left to right.
func FlipHorizontal(g *grid.Grid) *grid.Grid {
	w, h := g.Width(), g.Height()
	out := grid.New(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			out.SetCell(x, y, g.Cell(w-1-x, y))
		}
	}
	return out
}
