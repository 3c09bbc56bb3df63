package octree

import "fmt"

// ErrInvalidMaxLevel indicates a non-positive maximum depth.
type ErrInvalidMaxLevel struct {
	MaxLevel int
}

func (e *ErrInvalidMaxLevel) Error() string {
	return fmt.Sprintf("octree: max level must be positive, got %d", e.MaxLevel)
}

// ErrLevelOutOfRange indicates a query for a level beyond the effective
// depth. The depth can be smaller than the requested maximum when the build
// stopped early.
type ErrLevelOutOfRange struct {
	Level int
	Depth int
}

func (e *ErrLevelOutOfRange) Error() string {
	return fmt.Sprintf("octree: level %d out of range, effective depth is %d", e.Level, e.Depth)
}
