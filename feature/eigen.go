// Package feature turns the sorted eigen statistics of a point's
// neighborhood into scalar geometric descriptors, and derives color and
// orientation fields from per-point attributes.
//
// All eigen formulas assume the descending order lambda1 >= lambda2 >=
// lambda3 established by the neighborhood package. Formulas dividing by
// lambda1 return NaN for perfectly degenerate neighborhoods (lambda1 == 0)
// instead of failing; callers filter such points afterwards if needed.
package feature

import (
	"math"

	"github.com/hupe1980/pointgo/neighborhood"
)

// Normal returns the eigenvector of the smallest eigenvalue, the approximate
// local surface normal.
func Normal(e neighborhood.Eigen) [3]float64 {
	return e.Vectors[2]
}

// EigenSum returns lambda1 + lambda2 + lambda3.
func EigenSum(e neighborhood.Eigen) float64 {
	return e.Values[0] + e.Values[1] + e.Values[2]
}

// Omnivariance returns the cube root of the eigenvalue product. Eigenvalues
// are clamped to >= 0 first: numerical noise can push a rank-deficient
// covariance marginally negative, and a negative product has no real cube
// root of the intended magnitude.
func Omnivariance(e neighborhood.Eigen) float64 {
	return math.Cbrt(clamp(e.Values[0]) * clamp(e.Values[1]) * clamp(e.Values[2]))
}

// Eigenentropy returns -sum(lambda_i * ln(lambda_i)) with eigenvalues
// clamped to >= 0. A zero eigenvalue's term is taken as 0, its limit, since
// ln(0) is undefined.
func Eigenentropy(e neighborhood.Eigen) float64 {
	var sum float64
	for _, v := range e.Values {
		v = clamp(v)
		if v == 0 {
			continue
		}
		sum += v * math.Log(v)
	}
	return -sum
}

// Anisotropy returns (lambda1 - lambda3) / lambda1.
func Anisotropy(e neighborhood.Eigen) float64 {
	return (e.Values[0] - e.Values[2]) / e.Values[0]
}

// Planarity returns (lambda2 - lambda3) / lambda1.
func Planarity(e neighborhood.Eigen) float64 {
	return (e.Values[1] - e.Values[2]) / e.Values[0]
}

// Linearity returns (lambda1 - lambda2) / lambda1.
func Linearity(e neighborhood.Eigen) float64 {
	return (e.Values[0] - e.Values[1]) / e.Values[0]
}

// Curvature returns lambda3 / (lambda1 + lambda2 + lambda3).
func Curvature(e neighborhood.Eigen) float64 {
	return e.Values[2] / EigenSum(e)
}

// Sphericity returns lambda3 / lambda1.
func Sphericity(e neighborhood.Eigen) float64 {
	return e.Values[2] / e.Values[0]
}

// Verticality returns 1 - |normal . (0,0,1)|: 0 for a horizontal surface,
// 1 for a vertical one.
func Verticality(e neighborhood.Eigen) float64 {
	return 1 - math.Abs(e.Vectors[2][2])
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
