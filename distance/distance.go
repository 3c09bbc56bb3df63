package distance

import (
	"fmt"
	"math"

	"github.com/hupe1980/pointgo/points"
)

// Euclidean calculates the Euclidean (L2) distance between two points.
func Euclidean(a, b points.Point) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// SquaredEuclidean calculates the squared Euclidean distance between two
// points. It ranks identically to Euclidean while skipping the sqrt.
func SquaredEuclidean(a, b points.Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

// Manhattan calculates the Manhattan (L1) distance between two points.
func Manhattan(a, b points.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y) + math.Abs(a.Z-b.Z)
}

// Chebyshev calculates the Chebyshev (L-infinity) distance between two points.
func Chebyshev(a, b points.Point) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Max(math.Abs(a.Y-b.Y), math.Abs(a.Z-b.Z)))
}

// Metric represents the distance metric used for neighbor queries.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
	MetricManhattan
	MetricChebyshev
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricSquaredEuclidean:
		return "SquaredEuclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Func is a function type for distance calculation.
type Func func(a, b points.Point) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// AxisGapExceeds reports whether a single-axis gap alone already exceeds the
// distance d under metric m. The axis gap lower-bounds every supported metric,
// so search trees may prune a subtree when this returns true. For
// SquaredEuclidean, d is in squared units and the gap is squared before
// comparing.
func AxisGapExceeds(m Metric, axisGap, d float64) bool {
	if m == MetricSquaredEuclidean {
		return axisGap*axisGap > d
	}
	return axisGap > d
}
