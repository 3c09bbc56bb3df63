// Package neighborhood derives per-point local statistics from the k nearest
// neighbors of every point in a PointSet: neighbor indices and distances, the
// 3x3 covariance of each neighborhood, and its eigendecomposition sorted by
// descending eigenvalue.
//
// The descending order is the contract every downstream feature formula
// depends on: lambda1 is the dominant in-plane spread, lambda3 the smallest,
// and the eigenvector of lambda3 approximates the local surface normal for
// near-planar neighborhoods.
package neighborhood

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/kdtree"
	"github.com/hupe1980/pointgo/points"
)

// Eigen holds the sorted eigendecomposition of one 3x3 covariance matrix.
type Eigen struct {
	// Values are the eigenvalues sorted descending: Values[0] >= Values[1] >= Values[2].
	Values [3]float64

	// Vectors[j] is the unit eigenvector belonging to Values[j].
	Vectors [3][3]float64
}

// Options contains configuration options for building a Neighborhood.
type Options struct {
	// Metric is the distance metric for the k-NN query.
	Metric distance.Metric

	// Parallelism bounds the number of concurrent workers for the per-point
	// query and eigendecomposition loops. Defaults to GOMAXPROCS.
	Parallelism int

	// LeafSize is passed through to the k-d tree build.
	LeafSize int
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Metric:      distance.MetricEuclidean,
	Parallelism: 0,
	LeafSize:    kdtree.DefaultOptions.LeafSize,
}

// Neighborhood is the immutable result of a k-NN pass over a whole PointSet.
// Safe for concurrent use once built.
type Neighborhood struct {
	ps     *points.PointSet
	k      int
	metric distance.Metric

	indices   [][]int     // per point, k neighbor indices
	distances [][]float64 // per point, k neighbor distances
	eigen     []Eigen
}

// Build queries the k nearest other points of every point (the point itself,
// always the closest match at distance 0, is excluded) and eigendecomposes
// each neighborhood's covariance.
//
// A neighborhood of one point cannot support a full-rank 3x3 covariance, so
// k < 2 is silently promoted to 2. k+1 > ps.Len() fails with a capacity
// error.
func Build(ctx context.Context, ps *points.PointSet, k int, optFns ...func(o *Options)) (*Neighborhood, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}
	if k < 2 {
		k = 2
	}
	if k+1 > ps.Len() {
		return nil, &ErrNotEnoughPoints{K: k, N: ps.Len()}
	}

	tree, err := kdtree.New(ps, func(o *kdtree.Options) {
		o.Metric = opts.Metric
		o.LeafSize = opts.LeafSize
	})
	if err != nil {
		return nil, err
	}

	nb := &Neighborhood{
		ps:        ps,
		k:         k,
		metric:    opts.Metric,
		indices:   make([][]int, ps.Len()),
		distances: make([][]float64, ps.Len()),
		eigen:     make([]Eigen, ps.Len()),
	}

	// Per-point work is independent; workers write disjoint output slots.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for start := 0; start < ps.Len(); start += chunkSize {
		start := start
		end := start + chunkSize
		if end > ps.Len() {
			end = ps.Len()
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				if err := nb.buildPoint(tree, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nb, nil
}

const chunkSize = 256

func (nb *Neighborhood) buildPoint(tree *kdtree.Tree, i int) error {
	found, err := tree.KNNSearch(nb.ps.At(i), nb.k+1)
	if err != nil {
		return err
	}

	// Drop the self-match. With duplicate points the zero-distance ties are
	// ordered by index, so locate the query point by identity instead of
	// assuming slot 0.
	idx := make([]int, 0, nb.k)
	dst := make([]float64, 0, nb.k)
	for _, r := range found {
		if r.Index == i {
			continue
		}
		if len(idx) == nb.k {
			break
		}
		idx = append(idx, r.Index)
		dst = append(dst, r.Distance)
	}
	nb.indices[i] = idx
	nb.distances[i] = dst
	nb.eigen[i] = eigenOf(nb.ps, idx)
	return nil
}

// eigenOf computes the population covariance of the given member positions
// about their centroid and returns its sorted eigendecomposition.
func eigenOf(ps *points.PointSet, members []int) Eigen {
	var cx, cy, cz float64
	for _, j := range members {
		p := ps.At(j)
		cx += p.X
		cy += p.Y
		cz += p.Z
	}
	n := float64(len(members))
	cx, cy, cz = cx/n, cy/n, cz/n

	var xx, xy, xz, yy, yz, zz float64
	for _, j := range members {
		p := ps.At(j)
		dx, dy, dz := p.X-cx, p.Y-cy, p.Z-cz
		xx += dx * dx
		xy += dx * dy
		xz += dx * dz
		yy += dy * dy
		yz += dy * dz
		zz += dz * dz
	}

	cov := mat.NewSymDense(3, []float64{
		xx / n, xy / n, xz / n,
		xy / n, yy / n, yz / n,
		xz / n, yz / n, zz / n,
	})
	return decompose(cov)
}

// decompose eigendecomposes a symmetric 3x3 matrix and reorders the result
// descending by eigenvalue, permuting eigenvectors identically.
func decompose(cov *mat.SymDense) Eigen {
	var es mat.EigenSym
	if !es.Factorize(cov, true) {
		// Factorization of a finite symmetric matrix does not fail in
		// practice; a degenerate all-zero result keeps downstream formulas
		// in NaN territory instead of panicking.
		return Eigen{}
	}

	vals := es.Values(nil) // ascending
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	var out Eigen
	for j := 0; j < 3; j++ {
		src := 2 - j // descending
		out.Values[j] = vals[src]
		for r := 0; r < 3; r++ {
			out.Vectors[j][r] = vecs.At(r, src)
		}
	}
	return out
}

// Len returns the number of points.
func (nb *Neighborhood) Len() int { return nb.ps.Len() }

// K returns the neighbor count per point, after self-exclusion.
func (nb *Neighborhood) K() int { return nb.k }

// Metric returns the distance metric used for the query.
func (nb *Neighborhood) Metric() distance.Metric { return nb.metric }

// Points returns the PointSet the neighborhood was built from.
func (nb *Neighborhood) Points() *points.PointSet { return nb.ps }

// Indices returns the neighbor indices of point i. Read-only.
func (nb *Neighborhood) Indices(i int) []int { return nb.indices[i] }

// Distances returns the neighbor distances of point i. Read-only.
func (nb *Neighborhood) Distances(i int) []float64 { return nb.distances[i] }

// Eigen returns the sorted eigendecomposition of point i's neighborhood.
func (nb *Neighborhood) Eigen(i int) Eigen { return nb.eigen[i] }

// MeanDistances returns, per point, the mean distance to its k neighbors.
func (nb *Neighborhood) MeanDistances() []float64 {
	out := make([]float64, len(nb.distances))
	for i, ds := range nb.distances {
		var sum float64
		for _, d := range ds {
			sum += d
		}
		out[i] = sum / float64(len(ds))
	}
	return out
}

// Normals returns, per point, the eigenvector of the smallest eigenvalue:
// the approximate local surface normal.
func (nb *Neighborhood) Normals() [][3]float64 {
	out := make([][3]float64, len(nb.eigen))
	for i, e := range nb.eigen {
		out[i] = e.Vectors[2]
	}
	return out
}

// IsDegenerate reports whether point i's neighborhood has effectively zero
// variance (all eigenvalues at or below tol).
func (nb *Neighborhood) IsDegenerate(i int, tol float64) bool {
	return math.Abs(nb.eigen[i].Values[0]) <= tol
}
