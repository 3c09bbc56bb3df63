// Package testutil provides testing utilities for pointgo.
//
// This package is intended for use in tests and benchmarks only. It provides
// deterministic random cloud generation and exact brute-force nearest
// neighbors as ground truth for the k-d tree.
package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/points"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// UniformCloud generates n points uniformly distributed in the unit cube.
func (r *RNG) UniformCloud(n int) []points.Point {
	pts := make([]points.Point, n)
	for i := range pts {
		pts[i] = points.Point{X: r.Float64(), Y: r.Float64(), Z: r.Float64()}
	}
	return pts
}

// PlanarCloud generates n points on the z=0 plane with a small Gaussian
// jitter out of plane. Near-planar neighborhoods have lambda3 close to zero.
func (r *RNG) PlanarCloud(n int, jitter float64) []points.Point {
	pts := make([]points.Point, n)
	for i := range pts {
		pts[i] = points.Point{X: r.Float64(), Y: r.Float64(), Z: jitter * r.NormFloat64()}
	}
	return pts
}

// LinearCloud generates n points along the x axis with small Gaussian
// jitter on y and z. Near-linear neighborhoods have lambda2 and lambda3
// close to zero.
func (r *RNG) LinearCloud(n int, jitter float64) []points.Point {
	pts := make([]points.Point, n)
	for i := range pts {
		pts[i] = points.Point{X: r.Float64(), Y: jitter * r.NormFloat64(), Z: jitter * r.NormFloat64()}
	}
	return pts
}

// ClusterWithOutlier generates n-1 points tightly clustered around the
// origin and one point offset far along x. The outlier's index is n-1.
func (r *RNG) ClusterWithOutlier(n int, spread, offset float64) []points.Point {
	pts := make([]points.Point, n)
	for i := 0; i < n-1; i++ {
		pts[i] = points.Point{
			X: spread * r.NormFloat64(),
			Y: spread * r.NormFloat64(),
			Z: spread * r.NormFloat64(),
		}
	}
	pts[n-1] = points.Point{X: offset}
	return pts
}

// ExactKNN computes the exact k nearest neighbors of q over ps by linear
// scan, excluding excludeIndex (pass -1 to exclude nothing). Results are
// sorted by distance, ties by index.
func ExactKNN(ps *points.PointSet, q points.Point, k int, m distance.Metric, excludeIndex int) []int {
	fn, err := distance.Provider(m)
	if err != nil {
		panic(err)
	}
	type cand struct {
		idx int
		d   float64
	}
	cands := make([]cand, 0, ps.Len())
	for i := 0; i < ps.Len(); i++ {
		if i == excludeIndex {
			continue
		}
		cands = append(cands, cand{idx: i, d: fn(q, ps.At(i))})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].d != cands[j].d {
			return cands[i].d < cands[j].d
		}
		return cands[i].idx < cands[j].idx
	})
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = cands[i].idx
	}
	return out
}
