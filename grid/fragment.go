package grid

// Fragment anchors a shape's local grid on a stage. Fragments are values:
// every accepted move produces a new one.
type Fragment struct {
	X, Y  int
	Shape *Grid
}

// Position returns the anchor offset.
func (f Fragment) Position() Point {
	return Point{X: f.X, Y: f.Y}
}

// Region returns the stage area covered by the fragment after moving it by
// (dx,dy).
func (f Fragment) Region(dx, dy int) Region {
	return Region{
		OffsetX: f.X + dx,
		OffsetY: f.Y + dy,
		Width:   f.Shape.width,
		Height:  f.Shape.height,
	}
}

// Moved returns the fragment displaced by (dx,dy).
func (f Fragment) Moved(dx, dy int) Fragment {
	return Fragment{X: f.X + dx, Y: f.Y + dy, Shape: f.Shape}
}

// WithShape returns a fragment at the same anchor with a different shape.
func (f Fragment) WithShape(shape *Grid) Fragment {
	return Fragment{X: f.X, Y: f.Y, Shape: shape}
}

// Merge ORs the fragment into stage and returns the result; stage is not
// modified.
func (f Fragment) Merge(stage *Grid) *Grid {
	return Combine(stage, f.Shape, f.Position())
}
