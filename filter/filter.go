package filter

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/pointgo/kdtree"
	"github.com/hupe1980/pointgo/neighborhood"
	"github.com/hupe1980/pointgo/points"
)

// DefaultZMax is the default statistical-outlier threshold.
const DefaultZMax = 2.0

// SOR computes a statistical outlier removal mask from an existing
// Neighborhood: each point's mean distance to its k neighbors is z-scored
// across the whole cloud (sample standard deviation) and points with
// |z| < zMax are kept.
//
// A lower zMax normally trims more points.
func SOR(nb *neighborhood.Neighborhood, zMax float64) (Mask, error) {
	if zMax <= 0 || math.IsNaN(zMax) {
		return Mask{}, ErrInvalidZMax
	}

	means := nb.MeanDistances()
	mu, sigma := stat.MeanStdDev(means, nil)

	keep := make([]bool, len(means))
	for i, m := range means {
		z := (m - mu) / sigma
		keep[i] = math.Abs(z) < zMax
	}
	return NewMask(keep), nil
}

// ROROptions contains configuration options for the radius filter.
type ROROptions struct {
	// LeafSize is passed through to the k-d tree build.
	LeafSize int
}

// DefaultROROptions contains the default configuration options.
var DefaultROROptions = ROROptions{
	LeafSize: kdtree.DefaultOptions.LeafSize,
}

// ROR computes a radius outlier removal mask: every point must find its k
// nearest neighbors (the point itself included, as the original filter
// counts it) within radius r. A neighbor slot left unreachable inside r
// comes back with an infinite distance and marks the point for removal.
//
// A higher k or a lower r normally trims more points.
func ROR(ps *points.PointSet, k int, r float64, optFns ...func(o *ROROptions)) (Mask, error) {
	if k < 1 {
		return Mask{}, ErrInvalidNeighborCount
	}
	if r <= 0 || math.IsNaN(r) {
		return Mask{}, ErrInvalidRadius
	}
	opts := DefaultROROptions
	for _, fn := range optFns {
		fn(&opts)
	}

	tree, err := kdtree.New(ps, func(o *kdtree.Options) {
		o.LeafSize = opts.LeafSize
	})
	if err != nil {
		return Mask{}, err
	}

	keep := make([]bool, ps.Len())
	for i := 0; i < ps.Len(); i++ {
		found, err := tree.KNNSearchBounded(ps.At(i), k, r)
		if err != nil {
			return Mask{}, err
		}
		keep[i] = true
		for _, f := range found {
			if math.IsInf(f.Distance, 1) {
				keep[i] = false
				break
			}
		}
	}
	return NewMask(keep), nil
}

// Bounds is an axis-aligned pass-through box. Every limit defaults to
// unbounded and may be set independently.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// DefaultBounds contains the default (fully unbounded) pass-through box.
var DefaultBounds = Bounds{
	MinX: math.Inf(-1), MaxX: math.Inf(1),
	MinY: math.Inf(-1), MaxY: math.Inf(1),
	MinZ: math.Inf(-1), MaxZ: math.Inf(1),
}

// PassThrough computes a mask keeping the points inside the box:
// min_x <= x <= max_x, and analogously for y and z.
func PassThrough(ps *points.PointSet, optFns ...func(b *Bounds)) (Mask, error) {
	b := DefaultBounds
	for _, fn := range optFns {
		fn(&b)
	}
	if b.MinX > b.MaxX || b.MinY > b.MaxY || b.MinZ > b.MaxZ {
		return Mask{}, ErrInvalidBounds
	}

	keep := make([]bool, ps.Len())
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		keep[i] = p.X >= b.MinX && p.X <= b.MaxX &&
			p.Y >= b.MinY && p.Y <= b.MaxY &&
			p.Z >= b.MinZ && p.Z <= b.MaxZ
	}
	return NewMask(keep), nil
}
