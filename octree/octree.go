// Package octree provides a hierarchical recursive-bisection partition of a
// PointSet.
//
// Instead of materializing tree nodes, the octree records, per point and per
// level, a 3-bit octant code identifying which child of the current cell the
// point fell into. The code sequence through level L is the point's cell at
// that depth, so grouping by code prefix recovers the tree's occupancy at any
// level.
package octree

import (
	"github.com/hupe1980/pointgo/points"
)

// Options contains configuration options for octree construction.
type Options struct {
	// ForceCube pads the shorter sides of the bounding box so all three
	// extents match the longest one before bisection starts.
	ForceCube bool

	// EarlyStop halts the build at the first level whose code-prefix
	// grouping has a mean group size below this threshold. Levels beyond
	// the halt are discarded. Set to 0 to disable.
	EarlyStop float64
}

// DefaultOptions contains the default configuration options for the octree.
var DefaultOptions = Options{
	ForceCube: true,
	EarlyStop: 2,
}

// Octree is an immutable per-level octant coding of a PointSet.
type Octree struct {
	ps     *points.PointSet
	bounds points.Bounds

	// codes[l][i] is the 3-bit octant code of point i at level l+1
	// (x occupies bit 0, y bit 1, z bit 2).
	codes [][]uint8
}

// Build computes octant codes for up to maxLevel levels.
func Build(ps *points.PointSet, maxLevel int, optFns ...func(o *Options)) (*Octree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if maxLevel < 1 {
		return nil, &ErrInvalidMaxLevel{MaxLevel: maxLevel}
	}

	box := ps.Bounds()
	if opts.ForceCube {
		box = box.Cube()
	}

	o := &Octree{ps: ps, bounds: box}

	n := ps.Len()
	center := box.Center()
	mid := make([][3]float64, n)
	for i := range mid {
		mid[i] = center
	}
	half := box.Extent()

	for level := 1; level <= maxLevel; level++ {
		for a := 0; a < 3; a++ {
			half[a] /= 2
		}

		codes := make([]uint8, n)
		for i := 0; i < n; i++ {
			p := ps.At(i)
			var code uint8
			for a, v := range [3]float64{p.X, p.Y, p.Z} {
				// Being greater than the cell midpoint on an axis sets
				// that axis's bit; the midpoint then shifts by half the
				// current half-extent toward the point's side.
				if v > mid[i][a] {
					code |= 1 << a
					mid[i][a] += half[a] / 2
				} else {
					mid[i][a] -= half[a] / 2
				}
			}
			codes[i] = code
		}
		o.codes = append(o.codes, codes)

		if opts.EarlyStop > 0 && level >= 2 {
			if o.meanGroupSize(level) < opts.EarlyStop {
				// The level that broke the threshold is discarded; the
				// structure's effective depth is the previous level.
				o.codes = o.codes[:level-1]
				break
			}
		}
	}
	return o, nil
}

// Depth returns the effective depth: the deepest level that may be queried.
// It can be smaller than the requested maxLevel when the build stopped early.
func (o *Octree) Depth() int { return len(o.codes) }

// Bounds returns the (possibly cubed) bounding box bisection started from.
func (o *Octree) Bounds() points.Bounds { return o.bounds }

// Codes returns the per-point octant codes of the given level. Read-only.
func (o *Octree) Codes(level int) ([]uint8, error) {
	if level < 1 || level > len(o.codes) {
		return nil, &ErrLevelOutOfRange{Level: level, Depth: len(o.codes)}
	}
	return o.codes[level-1], nil
}

// GroupIndices returns the points grouped by their code prefix through the
// given level, one group per distinct prefix. Groups appear in
// first-encountered order over the point sequence, so identical input yields
// an identical grouping.
func (o *Octree) GroupIndices(level int) ([][]int, error) {
	if level < 1 || level > len(o.codes) {
		return nil, &ErrLevelOutOfRange{Level: level, Depth: len(o.codes)}
	}

	groups := make([][]int, 0)
	slot := make(map[string]int)
	key := make([]byte, level)
	for i := 0; i < o.ps.Len(); i++ {
		for l := 0; l < level; l++ {
			key[l] = o.codes[l][i]
		}
		s, ok := slot[string(key)]
		if !ok {
			s = len(groups)
			slot[string(key)] = s
			groups = append(groups, nil)
		}
		groups[s] = append(groups[s], i)
	}
	return groups, nil
}

// NodeIDs returns a per-point scalar field labeling each point with the id of
// its cell at the given level. Ids are assigned in first-encountered order.
func (o *Octree) NodeIDs(level int) ([]int, error) {
	groups, err := o.GroupIndices(level)
	if err != nil {
		return nil, err
	}
	out := make([]int, o.ps.Len())
	for id, g := range groups {
		for _, i := range g {
			out[i] = id
		}
	}
	return out, nil
}

// Siblings returns, per point, the indices of the other points sharing its
// cell at the given level.
func (o *Octree) Siblings(level int) ([][]int, error) {
	groups, err := o.GroupIndices(level)
	if err != nil {
		return nil, err
	}
	out := make([][]int, o.ps.Len())
	for _, g := range groups {
		for _, i := range g {
			sib := make([]int, 0, len(g)-1)
			for _, j := range g {
				if j != i {
					sib = append(sib, j)
				}
			}
			out[i] = sib
		}
	}
	return out, nil
}

func (o *Octree) meanGroupSize(level int) float64 {
	distinct := make(map[string]struct{})
	key := make([]byte, level)
	for i := 0; i < o.ps.Len(); i++ {
		for l := 0; l < level; l++ {
			key[l] = o.codes[l][i]
		}
		distinct[string(key)] = struct{}{}
	}
	return float64(o.ps.Len()) / float64(len(distinct))
}
