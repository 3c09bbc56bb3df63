// Package kdtree provides an in-memory k-d tree over a PointSet for
// k-nearest-neighbor queries.
package kdtree

import (
	"math"
	"sort"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/internal/queue"
	"github.com/hupe1980/pointgo/points"
)

// Result represents a single neighbor found by a search.
type Result struct {
	// Index is the position of the neighbor in the source PointSet.
	// A value of -1 marks a missing neighbor in bounded searches.
	Index int

	// Distance is the distance between the query point and the neighbor,
	// in the units of the tree's metric. Missing neighbors carry +Inf.
	Distance float64
}

// Options contains configuration options for the tree.
type Options struct {
	// Metric is the distance metric used for queries.
	Metric distance.Metric

	// LeafSize is the maximum number of points held in a leaf bucket.
	// Larger leaves trade tree depth for linear scans.
	LeafSize int
}

// DefaultOptions contains the default configuration options for the tree.
var DefaultOptions = Options{
	Metric:   distance.MetricEuclidean,
	LeafSize: 16,
}

type node struct {
	axis  int
	split float64
	left  *node
	right *node

	// leaf bucket; nil for interior nodes
	bucket []int
}

// Tree is an immutable k-d tree. Build once, query concurrently.
type Tree struct {
	ps     *points.PointSet
	root   *node
	metric distance.Metric
	dist   distance.Func
}

// New builds a tree over the given point set.
func New(ps *points.PointSet, optFns ...func(o *Options)) (*Tree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.LeafSize < 1 {
		opts.LeafSize = 1
	}
	dist, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	idx := make([]int, ps.Len())
	for i := range idx {
		idx[i] = i
	}
	t := &Tree{ps: ps, metric: opts.Metric, dist: dist}
	t.root = t.build(idx, 0, opts.LeafSize)
	return t, nil
}

// Len returns the number of indexed points.
func (t *Tree) Len() int { return t.ps.Len() }

// Metric returns the metric the tree was built with.
func (t *Tree) Metric() distance.Metric { return t.metric }

func (t *Tree) build(idx []int, depth, leafSize int) *node {
	if len(idx) <= leafSize {
		return &node{bucket: idx}
	}

	axis := depth % 3
	mid := len(idx) / 2
	selectByAxis(t.ps, idx, mid, axis)

	n := &node{
		axis:  axis,
		split: t.ps.At(idx[mid]).Coord(axis),
	}
	n.left = t.build(idx[:mid], depth+1, leafSize)
	n.right = t.build(idx[mid:], depth+1, leafSize)
	return n
}

// selectByAxis partially sorts idx so that idx[mid] holds the median element
// along the given axis, with smaller elements before it and larger after.
func selectByAxis(ps *points.PointSet, idx []int, mid, axis int) {
	lo, hi := 0, len(idx)-1
	for lo < hi {
		p := partition(ps, idx, lo, hi, axis)
		switch {
		case p == mid:
			return
		case p < mid:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

func partition(ps *points.PointSet, idx []int, lo, hi, axis int) int {
	// median-of-three pivot to dodge worst cases on sorted input
	m := lo + (hi-lo)/2
	a, b, c := ps.At(idx[lo]).Coord(axis), ps.At(idx[m]).Coord(axis), ps.At(idx[hi]).Coord(axis)
	if (a < b) != (a < c) {
		idx[lo], idx[hi] = idx[hi], idx[lo]
	} else if (b < a) != (b < c) {
		idx[m], idx[hi] = idx[hi], idx[m]
	}
	pivot := ps.At(idx[hi]).Coord(axis)

	i := lo
	for j := lo; j < hi; j++ {
		if ps.At(idx[j]).Coord(axis) < pivot {
			idx[i], idx[j] = idx[j], idx[i]
			i++
		}
	}
	idx[i], idx[hi] = idx[hi], idx[i]
	return i
}

// KNNSearch returns the k nearest indexed points to q, sorted from nearest to
// farthest. k must be in [1, Len].
func (t *Tree) KNNSearch(q points.Point, k int) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if k > t.ps.Len() {
		return nil, &ErrCapacityExceeded{Requested: k, Available: t.ps.Len()}
	}
	return t.search(q, k, math.Inf(1)), nil
}

// KNNSearchBounded returns the k nearest indexed points to q within the given
// upper distance bound. Slots for which no neighbor exists within the bound
// are filled with {Index: -1, Distance: +Inf}, mirroring a bounded KD query
// that reports unreachable neighbors as infinite.
func (t *Tree) KNNSearchBounded(q points.Point, k int, upperBound float64) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if k > t.ps.Len() {
		return nil, &ErrCapacityExceeded{Requested: k, Available: t.ps.Len()}
	}
	if upperBound <= 0 || math.IsNaN(upperBound) {
		return nil, ErrInvalidBound
	}

	found := t.search(q, k, upperBound)
	if len(found) < k {
		for len(found) < k {
			found = append(found, Result{Index: -1, Distance: math.Inf(1)})
		}
	}
	return found, nil
}

func (t *Tree) search(q points.Point, k int, upperBound float64) []Result {
	top := queue.NewMax(k)
	t.walk(t.root, q, k, upperBound, top)

	results := make([]Result, top.Len())
	for i := top.Len() - 1; i >= 0; i-- {
		item, _ := top.Pop()
		results[i] = Result{Index: item.Index, Distance: item.Distance}
	}
	// The heap gives no stable order for ties; sort ties by index so query
	// output is deterministic for identical input.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Index < results[j].Index
	})
	return results
}

func (t *Tree) walk(n *node, q points.Point, k int, upperBound float64, top *queue.PriorityQueue) {
	if n == nil {
		return
	}

	if n.bucket != nil {
		for _, i := range n.bucket {
			d := t.dist(q, t.ps.At(i))
			if d > upperBound {
				continue
			}
			if top.Len() < k {
				top.Push(queue.Item{Index: i, Distance: d})
				continue
			}
			if worst, _ := top.Top(); d < worst.Distance {
				top.Pop()
				top.Push(queue.Item{Index: i, Distance: d})
			}
		}
		return
	}

	gap := q.Coord(n.axis) - n.split
	near, far := n.left, n.right
	if gap >= 0 {
		near, far = n.right, n.left
	}

	t.walk(near, q, k, upperBound, top)

	// The far subtree can only contain closer candidates if the splitting
	// plane is within the current worst distance (and the fixed bound).
	worst := upperBound
	if top.Len() == k {
		if item, ok := top.Top(); ok && item.Distance < worst {
			worst = item.Distance
		}
	}
	if !distance.AxisGapExceeds(t.metric, math.Abs(gap), worst) {
		t.walk(far, q, k, upperBound, top)
	}
}
