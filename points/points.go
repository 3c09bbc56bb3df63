// Package points provides the in-memory point-cloud model shared by all
// spatial structures. A PointSet is an ordered, read-only view of N points;
// the index position of a point is its stable identity, and every derived
// array (scalar fields, filter masks) is aligned to it.
package points

import (
	"fmt"
	"math"
)

// Point is a single 3D point.
type Point struct {
	X, Y, Z float64
}

// Coord returns the coordinate along the given axis (0=x, 1=y, 2=z).
func (p Point) Coord(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Color is an optional per-point RGB attribute with 8-bit channels.
type Color struct {
	R, G, B uint8
}

// Bounds is the axis-aligned bounding box of a PointSet.
type Bounds struct {
	Min, Max [3]float64
}

// Extent returns Max-Min per axis.
func (b Bounds) Extent() [3]float64 {
	return [3]float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float64 {
	return [3]float64{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2, (b.Min[2] + b.Max[2]) / 2}
}

// Cube returns a copy of b symmetrically padded on the shorter axes so that
// all three extents match the longest one.
func (b Bounds) Cube() Bounds {
	ext := b.Extent()
	longest := math.Max(ext[0], math.Max(ext[1], ext[2]))
	out := b
	for i := 0; i < 3; i++ {
		diff := (longest - ext[i]) / 2
		out.Min[i] -= diff
		out.Max[i] += diff
	}
	return out
}

// Pad returns a copy of b grown by eps on both ends of every axis.
func (b Bounds) Pad(eps float64) Bounds {
	out := b
	for i := 0; i < 3; i++ {
		out.Min[i] -= eps
		out.Max[i] += eps
	}
	return out
}

// PointSet is an ordered sequence of points with optional per-point colors.
// It is owned by the caller and treated as read-only by every structure
// built from it; rebuilding, not mutation, is how parameters change.
type PointSet struct {
	pts    []Point
	colors []Color // nil when the cloud carries no RGB attribute
}

// New creates a PointSet from a coordinate slice. The slice is retained, not
// copied; the caller must not mutate it while derived structures are alive.
func New(pts []Point) (*PointSet, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("points: empty point set")
	}
	for i, p := range pts {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return nil, &ErrInvalidCoordinate{Index: i, Point: p}
		}
	}
	return &PointSet{pts: pts}, nil
}

// NewWithColors creates a PointSet carrying a per-point RGB attribute.
// The colors slice must match the point count exactly.
func NewWithColors(pts []Point, colors []Color) (*PointSet, error) {
	ps, err := New(pts)
	if err != nil {
		return nil, err
	}
	if len(colors) != len(pts) {
		return nil, &ErrLengthMismatch{Expected: len(pts), Actual: len(colors), Attribute: "colors"}
	}
	ps.colors = colors
	return ps, nil
}

// NewFromColumns creates a PointSet from parallel x, y, z columns.
func NewFromColumns(x, y, z []float64) (*PointSet, error) {
	if len(y) != len(x) {
		return nil, &ErrLengthMismatch{Expected: len(x), Actual: len(y), Attribute: "y"}
	}
	if len(z) != len(x) {
		return nil, &ErrLengthMismatch{Expected: len(x), Actual: len(z), Attribute: "z"}
	}
	pts := make([]Point, len(x))
	for i := range x {
		pts[i] = Point{X: x[i], Y: y[i], Z: z[i]}
	}
	return New(pts)
}

// Len returns the number of points.
func (ps *PointSet) Len() int { return len(ps.pts) }

// At returns the point at index i.
func (ps *PointSet) At(i int) Point { return ps.pts[i] }

// Points returns the underlying point slice. Read-only by convention.
func (ps *PointSet) Points() []Point { return ps.pts }

// HasColors reports whether the cloud carries an RGB attribute.
func (ps *PointSet) HasColors() bool { return ps.colors != nil }

// ColorAt returns the color of point i. Only valid when HasColors is true.
func (ps *PointSet) ColorAt(i int) Color { return ps.colors[i] }

// Bounds computes the axis-aligned bounding box over all points.
func (ps *PointSet) Bounds() Bounds {
	b := Bounds{
		Min: [3]float64{ps.pts[0].X, ps.pts[0].Y, ps.pts[0].Z},
		Max: [3]float64{ps.pts[0].X, ps.pts[0].Y, ps.pts[0].Z},
	}
	for _, p := range ps.pts[1:] {
		for i, v := range [3]float64{p.X, p.Y, p.Z} {
			if v < b.Min[i] {
				b.Min[i] = v
			}
			if v > b.Max[i] {
				b.Max[i] = v
			}
		}
	}
	return b
}

// Centroid returns the mean position of all points.
func (ps *PointSet) Centroid() Point {
	var sx, sy, sz float64
	for _, p := range ps.pts {
		sx += p.X
		sy += p.Y
		sz += p.Z
	}
	n := float64(len(ps.pts))
	return Point{X: sx / n, Y: sy / n, Z: sz / n}
}

// Select returns a new PointSet containing the points where keep[i] is true,
// in original order. Colors are carried along when present. The input set is
// left untouched.
func (ps *PointSet) Select(keep []bool) (*PointSet, error) {
	if len(keep) != len(ps.pts) {
		return nil, &ErrLengthMismatch{Expected: len(ps.pts), Actual: len(keep), Attribute: "mask"}
	}
	out := &PointSet{}
	for i, k := range keep {
		if !k {
			continue
		}
		out.pts = append(out.pts, ps.pts[i])
		if ps.colors != nil {
			out.colors = append(out.colors, ps.colors[i])
		}
	}
	if len(out.pts) == 0 {
		return nil, fmt.Errorf("points: mask keeps no points")
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
