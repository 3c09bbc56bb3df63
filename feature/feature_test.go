package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointgo/neighborhood"
	"github.com/hupe1980/pointgo/points"
)

func eigenWith(l1, l2, l3 float64) neighborhood.Eigen {
	return neighborhood.Eigen{
		Values: [3]float64{l1, l2, l3},
		Vectors: [3][3]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
}

func TestEigenFormulas(t *testing.T) {
	e := eigenWith(4, 2, 1)

	assert.InDelta(t, 7.0, EigenSum(e), 1e-12)
	assert.InDelta(t, 0.75, Anisotropy(e), 1e-12)
	assert.InDelta(t, 0.25, Planarity(e), 1e-12)
	assert.InDelta(t, 0.5, Linearity(e), 1e-12)
	assert.InDelta(t, 1.0/7.0, Curvature(e), 1e-12)
	assert.InDelta(t, 0.25, Sphericity(e), 1e-12)
	assert.InDelta(t, 2.0, Omnivariance(e), 1e-12)
	assert.InDelta(t, -(4*math.Log(4)+2*math.Log(2)), Eigenentropy(e), 1e-12)
}

func TestAnisotropyIsPlanarityPlusLinearity(t *testing.T) {
	cases := [][3]float64{
		{4, 2, 1},
		{1, 1, 1},
		{10, 0.5, 0.1},
		{3, 3, 0},
	}
	for _, c := range cases {
		e := eigenWith(c[0], c[1], c[2])
		assert.InDelta(t, Anisotropy(e), Planarity(e)+Linearity(e), 1e-12)
	}
}

func TestDegenerateEigenYieldsNaN(t *testing.T) {
	e := eigenWith(0, 0, 0)

	assert.True(t, math.IsNaN(Anisotropy(e)))
	assert.True(t, math.IsNaN(Planarity(e)))
	assert.True(t, math.IsNaN(Linearity(e)))
	assert.True(t, math.IsNaN(Curvature(e)))
	assert.True(t, math.IsNaN(Sphericity(e)))

	// These stay finite for a zero decomposition.
	assert.Equal(t, 0.0, EigenSum(e))
	assert.Equal(t, 0.0, Omnivariance(e))
	assert.Equal(t, 0.0, Eigenentropy(e))
}

func TestOmnivarianceClampsNegativeNoise(t *testing.T) {
	// A rank-deficient covariance can come back with lambda3 marginally
	// below zero; the product must not flip sign.
	e := eigenWith(4, 2, -1e-15)
	assert.Equal(t, 0.0, Omnivariance(e))

	e = eigenWith(8, 1e-16, -1e-16)
	assert.GreaterOrEqual(t, Omnivariance(e), 0.0)
}

func TestEigenentropyZeroTerm(t *testing.T) {
	// 0*ln(0) is taken as 0, so a zero eigenvalue contributes nothing.
	e := eigenWith(0.5, 0.5, 0)
	assert.InDelta(t, -2*0.5*math.Log(0.5), Eigenentropy(e), 1e-12)
	assert.False(t, math.IsNaN(Eigenentropy(e)))
}

func TestVerticality(t *testing.T) {
	horizontal := neighborhood.Eigen{Vectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
	assert.InDelta(t, 0.0, Verticality(horizontal), 1e-12)

	vertical := neighborhood.Eigen{Vectors: [3][3]float64{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}}
	assert.InDelta(t, 1.0, Verticality(vertical), 1e-12)

	flipped := neighborhood.Eigen{Vectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}}}
	assert.InDelta(t, 0.0, Verticality(flipped), 1e-12)

	assert.Equal(t, [3]float64{0, 0, -1}, Normal(flipped))
}

func TestInclination(t *testing.T) {
	assert.InDelta(t, 0.0, InclinationDeg([3]float64{0, 0, 1}), 1e-9)
	assert.InDelta(t, 90.0, InclinationDeg([3]float64{1, 0, 0}), 1e-9)
	assert.InDelta(t, 180.0, InclinationDeg([3]float64{0, 0, -1}), 1e-9)
	assert.InDelta(t, math.Pi/2, InclinationRad([3]float64{0, 1, 0}), 1e-12)
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		name   string
		normal [3]float64
		deg    float64
	}{
		{name: "north", normal: [3]float64{0, 1, 0}, deg: 0},
		{name: "east", normal: [3]float64{1, 0, 0}, deg: 90},
		{name: "south", normal: [3]float64{0, -1, 0}, deg: 180},
		{name: "west", normal: [3]float64{-1, 0, 0}, deg: 270},
		{name: "northeast", normal: [3]float64{1, 1, 0}, deg: 45},
		{name: "northwest", normal: [3]float64{-1, 1, 0}, deg: 315},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrientationDeg(tt.normal)
			assert.InDelta(t, tt.deg, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestRGBIntensity(t *testing.T) {
	ri, gi, bi := RGBIntensity(points.Color{R: 100, G: 60, B: 40})
	assert.InDelta(t, 0.5, ri, 1e-12)
	assert.InDelta(t, 0.3, gi, 1e-12)
	assert.InDelta(t, 0.2, bi, 1e-12)

	ri, gi, bi = RGBIntensity(points.Color{})
	assert.True(t, math.IsNaN(ri))
	assert.True(t, math.IsNaN(gi))
	assert.True(t, math.IsNaN(bi))
}

func TestRelativeLuminance(t *testing.T) {
	assert.InDelta(t, 255.0, RelativeLuminance(points.Color{R: 255, G: 255, B: 255}), 1e-9)
	assert.InDelta(t, 0.0, RelativeLuminance(points.Color{}), 1e-12)
	assert.InDelta(t, 0.7154*255, RelativeLuminance(points.Color{G: 255}), 1e-9)
}

func TestHSV(t *testing.T) {
	tests := []struct {
		name    string
		c       points.Color
		h, s, v float64
	}{
		{name: "red", c: points.Color{R: 255}, h: 0, s: 1, v: 100},
		{name: "green", c: points.Color{G: 255}, h: 120, s: 1, v: 100},
		{name: "blue", c: points.Color{B: 255}, h: 240, s: 1, v: 100},
		{name: "white", c: points.Color{R: 255, G: 255, B: 255}, h: 0, s: 0, v: 100},
		{name: "black", c: points.Color{}, h: 0, s: 0, v: 0},
		{name: "gray", c: points.Color{R: 128, G: 128, B: 128}, h: 0, s: 0, v: 128.0 / 255 * 100},
		{name: "magenta", c: points.Color{R: 255, B: 255}, h: 300, s: 1, v: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := HSV(tt.c)
			assert.InDelta(t, tt.h, h, 1e-9)
			assert.InDelta(t, tt.s, s, 1e-9)
			assert.InDelta(t, tt.v, v, 1e-9)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "planarity", KindPlanarity.String())
	assert.Equal(t, "voxel_n", KindVoxelN.String())
	assert.Equal(t, "hsv", KindHSV.String())
}

func TestScalarEigen(t *testing.T) {
	e := eigenWith(4, 2, 1)

	tests := []struct {
		kind Kind
		want float64
	}{
		{kind: KindAnisotropy, want: 0.75},
		{kind: KindPlanarity, want: 0.25},
		{kind: KindLinearity, want: 0.5},
		{kind: KindCurvature, want: 1.0 / 7.0},
		{kind: KindSphericity, want: 0.25},
		{kind: KindEigenSum, want: 7},
		{kind: KindOmnivariance, want: 2},
		{kind: KindVerticality, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := ScalarEigen(tt.kind, e)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}

	_, err := ScalarEigen(KindNormal, e)
	assert.Error(t, err)
}
