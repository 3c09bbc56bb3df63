package voxelgrid

import "fmt"

// ErrInvalidBinSpec indicates an unusable per-axis partition spec.
type ErrInvalidBinSpec struct {
	Reason string
}

func (e *ErrInvalidBinSpec) Error() string {
	return fmt.Sprintf("voxelgrid: invalid bin spec: %s", e.Reason)
}

// ErrIndexOutOfRange indicates a point or voxel index outside the grid.
type ErrIndexOutOfRange struct {
	Index int
	Size  int
	What  string
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("voxelgrid: %s index %d out of range [0, %d)", e.What, e.Index, e.Size)
}
