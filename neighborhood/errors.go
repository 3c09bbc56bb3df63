package neighborhood

import "fmt"

// ErrNotEnoughPoints indicates a neighbor count that cannot be satisfied by
// the point set: the k+1 self-inclusive query needs more points than exist.
type ErrNotEnoughPoints struct {
	K int
	N int
}

func (e *ErrNotEnoughPoints) Error() string {
	return fmt.Sprintf("neighborhood: k=%d requires at least %d points, point set has %d",
		e.K, e.K+1, e.N)
}

// ErrLabelMismatch indicates a group label field whose length does not match
// the point count.
type ErrLabelMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrLabelMismatch) Error() string {
	return fmt.Sprintf("neighborhood: label field length mismatch: expected %d, got %d",
		e.Expected, e.Actual)
}
