// Package voxelgrid provides a regular 3D grid partition of a PointSet.
//
// Each axis is split into bins, either uniformly by count or along explicit
// edge sequences. Every point is assigned integer voxel coordinates and a
// flattened voxel id, and the grid exposes an occupancy vector covering all
// voxels, empty ones included.
package voxelgrid

import (
	"fmt"
	"sort"

	"github.com/hupe1980/pointgo/points"
)

// boundsEpsilon pads the bounding box on both ends of every axis so points
// lying exactly on the outer boundary bin into the last valid bin instead of
// overflowing.
const boundsEpsilon = 0.001

// BinSpec describes how one axis is partitioned: either a positive bin count
// (uniform split over the bounding box) or an explicit non-decreasing edge
// sequence, clipped to the bounding box.
type BinSpec struct {
	count int
	edges []float64
}

// Count specifies n equal-width bins.
func Count(n int) BinSpec { return BinSpec{count: n} }

// Edges specifies explicit bin edges. The sequence must be non-decreasing
// and contain at least two values.
func Edges(edges []float64) BinSpec { return BinSpec{edges: edges} }

// Uniform is a convenience for the same bin count on all three axes.
func Uniform(n int) [3]BinSpec { return [3]BinSpec{Count(n), Count(n), Count(n)} }

// Options contains configuration options for grid construction.
type Options struct {
	// ForceCube pads the shorter sides of the bounding box so all three
	// extents match the longest one before bins are computed.
	ForceCube bool
}

// DefaultOptions contains the default configuration options for the grid.
var DefaultOptions = Options{
	ForceCube: false,
}

// Voxel identifies one cell of the grid.
type Voxel struct {
	IX, IY, IZ int

	// Linear is the flattened id: IX + nx*(IY + ny*IZ).
	Linear int
}

// Grid is an immutable voxel partition of a PointSet. Rebuild, don't mutate,
// when parameters change.
type Grid struct {
	ps    *points.PointSet
	edges [3][]float64
	shape [3]int

	voxels    []Voxel // per point
	occupancy []int   // per voxel, length nx*ny*nz
}

// Build bins every point of ps into the grid described by the per-axis specs.
func Build(ps *points.PointSet, bins [3]BinSpec, optFns ...func(o *Options)) (*Grid, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	box := ps.Bounds().Pad(boundsEpsilon)
	if opts.ForceCube {
		box = box.Cube()
	}

	g := &Grid{ps: ps}
	for axis := 0; axis < 3; axis++ {
		edges, err := bins[axis].materialize(box.Min[axis], box.Max[axis])
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", axis, err)
		}
		g.edges[axis] = edges
		g.shape[axis] = len(edges) - 1
	}

	nx, ny := g.shape[0], g.shape[1]
	g.voxels = make([]Voxel, ps.Len())
	g.occupancy = make([]int, g.NumVoxels())
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		ix := binOf(g.edges[0], p.X)
		iy := binOf(g.edges[1], p.Y)
		iz := binOf(g.edges[2], p.Z)
		v := Voxel{IX: ix, IY: iy, IZ: iz, Linear: ix + nx*(iy+ny*iz)}
		g.voxels[i] = v
		g.occupancy[v.Linear]++
	}
	return g, nil
}

func (s BinSpec) materialize(min, max float64) ([]float64, error) {
	if s.edges == nil {
		if s.count < 1 {
			return nil, &ErrInvalidBinSpec{Reason: fmt.Sprintf("bin count must be positive, got %d", s.count)}
		}
		edges := make([]float64, s.count+1)
		step := (max - min) / float64(s.count)
		for i := range edges {
			edges[i] = min + float64(i)*step
		}
		edges[s.count] = max
		return edges, nil
	}

	if len(s.edges) < 2 {
		return nil, &ErrInvalidBinSpec{Reason: "edge sequence needs at least two values"}
	}
	edges := make([]float64, len(s.edges))
	for i, e := range s.edges {
		if i > 0 && e < s.edges[i-1] {
			return nil, &ErrInvalidBinSpec{Reason: "edge sequence must be non-decreasing"}
		}
		// clip in case the given edges exceed the bounding box
		switch {
		case e < min:
			e = min
		case e > max:
			e = max
		}
		edges[i] = e
	}
	return edges, nil
}

// binOf returns the index of the edge immediately below v, clamped to the
// valid bin range.
func binOf(edges []float64, v float64) int {
	i := sort.SearchFloat64s(edges, v) - 1
	if i < 0 {
		i = 0
	}
	if max := len(edges) - 2; i > max {
		i = max
	}
	return i
}

// Shape returns the number of bins per axis (nx, ny, nz).
func (g *Grid) Shape() [3]int { return g.shape }

// NumVoxels returns nx*ny*nz.
func (g *Grid) NumVoxels() int { return g.shape[0] * g.shape[1] * g.shape[2] }

// Edges returns the bin edges of the given axis. Read-only.
func (g *Grid) Edges(axis int) []float64 { return g.edges[axis] }

// VoxelOf returns the voxel containing the point at the given index.
func (g *Grid) VoxelOf(pointIndex int) (Voxel, error) {
	if pointIndex < 0 || pointIndex >= len(g.voxels) {
		return Voxel{}, &ErrIndexOutOfRange{Index: pointIndex, Size: len(g.voxels), What: "point"}
	}
	return g.voxels[pointIndex], nil
}

// Occupancy returns the number of points in the given voxel. Voxels without
// points report 0.
func (g *Grid) Occupancy(voxelID int) (int, error) {
	if voxelID < 0 || voxelID >= len(g.occupancy) {
		return 0, &ErrIndexOutOfRange{Index: voxelID, Size: len(g.occupancy), What: "voxel"}
	}
	return g.occupancy[voxelID], nil
}

// OccupancyVector returns the per-voxel point counts, one entry per voxel in
// linear-id order. Read-only.
func (g *Grid) OccupancyVector() []int { return g.occupancy }

// VoxelX returns the per-point x bin index scalar field.
func (g *Grid) VoxelX() []int { return g.field(func(v Voxel) int { return v.IX }) }

// VoxelY returns the per-point y bin index scalar field.
func (g *Grid) VoxelY() []int { return g.field(func(v Voxel) int { return v.IY }) }

// VoxelZ returns the per-point z bin index scalar field.
func (g *Grid) VoxelZ() []int { return g.field(func(v Voxel) int { return v.IZ }) }

// VoxelN returns the per-point flattened voxel id scalar field.
func (g *Grid) VoxelN() []int { return g.field(func(v Voxel) int { return v.Linear }) }

func (g *Grid) field(f func(Voxel) int) []int {
	out := make([]int, len(g.voxels))
	for i, v := range g.voxels {
		out[i] = f(v)
	}
	return out
}

// Downsample returns a new PointSet with one point per occupied voxel: the
// centroid of the voxel's members. Output order follows increasing voxel id,
// so identical input yields identical output.
func (g *Grid) Downsample() (*points.PointSet, error) {
	type acc struct {
		sx, sy, sz float64
		n          int
	}
	sums := make(map[int]*acc, len(g.occupancy))
	for i, v := range g.voxels {
		a := sums[v.Linear]
		if a == nil {
			a = &acc{}
			sums[v.Linear] = a
		}
		p := g.ps.At(i)
		a.sx += p.X
		a.sy += p.Y
		a.sz += p.Z
		a.n++
	}

	ids := make([]int, 0, len(sums))
	for id := range sums {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	pts := make([]points.Point, 0, len(ids))
	for _, id := range ids {
		a := sums[id]
		n := float64(a.n)
		pts = append(pts, points.Point{X: a.sx / n, Y: a.sy / n, Z: a.sz / n})
	}
	return points.New(pts)
}
