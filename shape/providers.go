package shape

import "math/rand/v2"

// Static is a Provider backed by a fixed column-major matrix.
type Static struct {
	ID      string
	Columns [][]bool
}

func (s Static) Name() string { return s.ID }

// Matrix returns a copy so callers cannot alter the shape.
func (s Static) Matrix() [][]bool {
	out := make([][]bool, len(s.Columns))
	for x, column := range s.Columns {
		out[x] = append([]bool(nil), column...)
	}
	return out
}

const (
	LongLine    = "long_line"
	LShapeLeft  = "l_shape_left"
	LShapeRight = "l_shape_right"
	ZigZagZ     = "zigzag_shape_z"
	ZigZagS     = "zigzag_shape_s"
	FourByFour  = "four_by_four"
	TShape      = "t_shape"
)

// Defaults returns the seven canonical bricks. Matrices are listed column by
// column, so {{1,1,1,1}} is a single column four cells tall.
func Defaults() []Provider {
	return []Provider{
		// #
		// #
		// #
		// #
		Static{ID: LongLine, Columns: [][]bool{
			{true, true, true, true},
		}},
		// ###
		// ..#
		Static{ID: LShapeLeft, Columns: [][]bool{
			{true, false},
			{true, false},
			{true, true},
		}},
		// ###
		// #..
		Static{ID: LShapeRight, Columns: [][]bool{
			{true, true},
			{true, false},
			{true, false},
		}},
		Static{ID: ZigZagZ, Columns: [][]bool{
			{true, false},
			{true, true},
			{false, true},
		}},
		Static{ID: ZigZagS, Columns: [][]bool{
			{false, true},
			{true, true},
			{true, false},
		}},
		Static{ID: FourByFour, Columns: [][]bool{
			{true, true},
			{true, true},
		}},
		Static{ID: TShape, Columns: [][]bool{
			{true, false},
			{true, true},
			{true, false},
		}},
	}
}

// Default returns a catalog holding the canonical bricks.
func Default(rng *rand.Rand) *Catalog {
	return NewCatalog(rng).MustRegister(Defaults()...)
}
