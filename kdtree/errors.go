package kdtree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("kdtree: k must be positive")

	// ErrInvalidBound is returned when an upper distance bound is not a
	// positive number.
	ErrInvalidBound = errors.New("kdtree: upper distance bound must be positive")
)

// ErrCapacityExceeded indicates a request for more neighbors than there are
// indexed points.
type ErrCapacityExceeded struct {
	Requested int
	Available int
}

func (e *ErrCapacityExceeded) Error() string {
	return fmt.Sprintf("kdtree: requested %d neighbors but only %d points are indexed",
		e.Requested, e.Available)
}
