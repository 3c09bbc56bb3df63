package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidZMax is returned when the SOR threshold is not positive.
	ErrInvalidZMax = errors.New("filter: z_max must be positive")

	// ErrInvalidRadius is returned when the ROR radius is not positive.
	ErrInvalidRadius = errors.New("filter: radius must be positive")

	// ErrInvalidNeighborCount is returned when k is below 1.
	ErrInvalidNeighborCount = errors.New("filter: k must be at least 1")

	// ErrInvalidBounds is returned when a pass-through box has a minimum
	// above its maximum.
	ErrInvalidBounds = errors.New("filter: lower bound exceeds upper bound")
)

// ErrMaskLengthMismatch indicates a combination of masks over different
// point counts.
type ErrMaskLengthMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrMaskLengthMismatch) Error() string {
	return fmt.Sprintf("filter: mask length mismatch: expected %d, got %d", e.Expected, e.Actual)
}
