package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is the sentinel behind every RangeError.
	ErrOutOfRange = errors.New("grid: cell out of range")

	// ErrOutOfBounds is the sentinel behind every BoundsError.
	ErrOutOfBounds = errors.New("grid: region out of bounds")

	// ErrMalformedShape reports an empty or ragged source matrix.
	ErrMalformedShape = errors.New("grid: malformed shape")
)

// RangeError describes a single-cell access outside the grid. It is raised
// as a panic value; addressing a cell that does not exist is a caller bug.
type RangeError struct {
	X, Y          int
	Width, Height int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("grid: cell (%d,%d) outside %dx%d", e.X, e.Y, e.Width, e.Height)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// Axis names the coordinate a bounds violation happened on.
type Axis string

const (
	AxisX Axis = "X"
	AxisY Axis = "Y"
)

// Limit names which edge of an axis was crossed.
type Limit string

const (
	MinExceeded Limit = "min_value_exceeded"
	MaxExceeded Limit = "max_value_exceeded"
)

// Violation is one crossed edge of a region.
type Violation struct {
	Axis  Axis
	Limit Limit
}

func (v Violation) String() string {
	return string(v.Axis) + ":" + string(v.Limit)
}

// BoundsError lists every edge a region crosses, not only the first.
type BoundsError struct {
	Region     Region
	Violations []Violation
}

func (e *BoundsError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("grid: region %+v out of bounds [%s]", e.Region, strings.Join(parts, ", "))
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Has reports whether the error contains the given violation.
func (e *BoundsError) Has(axis Axis, limit Limit) bool {
	for _, v := range e.Violations {
		if v.Axis == axis && v.Limit == limit {
			return true
		}
	}
	return false
}
