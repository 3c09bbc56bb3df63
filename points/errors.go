package points

import "fmt"

// ErrInvalidCoordinate indicates a NaN or infinite coordinate at construction.
type ErrInvalidCoordinate struct {
	Index int
	Point Point
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("points: non-finite coordinate at index %d: (%v, %v, %v)",
		e.Index, e.Point.X, e.Point.Y, e.Point.Z)
}

// ErrLengthMismatch indicates a per-point attribute whose length does not
// match the point count.
type ErrLengthMismatch struct {
	Expected  int
	Actual    int
	Attribute string
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("points: %s length mismatch: expected %d, got %d",
		e.Attribute, e.Expected, e.Actual)
}
