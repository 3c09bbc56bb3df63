// Package distance provides point-to-point distance calculations for
// neighborhood queries.
//
// # Supported Metrics
//
//   - MetricEuclidean: Euclidean (L2) distance (default)
//   - MetricSquaredEuclidean: squared Euclidean distance (ranking-equivalent, no sqrt)
//   - MetricManhattan: Manhattan (L1) distance
//   - MetricChebyshev: Chebyshev (L-infinity) distance
//
// # Usage
//
//	fn, err := distance.Provider(distance.MetricEuclidean)
//	d := fn(a, b)
package distance
