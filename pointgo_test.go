package pointgo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/feature"
	"github.com/hupe1980/pointgo/filter"
	"github.com/hupe1980/pointgo/points"
	"github.com/hupe1980/pointgo/testutil"
	"github.com/hupe1980/pointgo/voxelgrid"
)

func newTestEngine(t *testing.T, n int, optFns ...Option) *Engine {
	t.Helper()
	ps, err := points.New(testutil.NewRNG(31).UniformCloud(n))
	require.NoError(t, err)
	e, err := New(ps, optFns...)
	require.NoError(t, err)
	return e
}

func newColorEngine(t *testing.T) *Engine {
	t.Helper()
	pts := testutil.NewRNG(32).UniformCloud(10)
	colors := make([]points.Color, len(pts))
	for i := range colors {
		colors[i] = points.Color{R: uint8(20 * i), G: 100, B: 200}
	}
	ps, err := points.NewWithColors(pts, colors)
	require.NoError(t, err)
	e, err := New(ps)
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t, 20)
	assert.Equal(t, 20, e.Points().Len())

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyPointSet)
}

func TestNeighborhoodCaching(t *testing.T) {
	e := newTestEngine(t, 50)
	ctx := context.Background()

	nb1, err := e.Neighborhood(ctx, 5, distance.MetricEuclidean)
	require.NoError(t, err)

	nb2, err := e.Neighborhood(ctx, 5, distance.MetricEuclidean)
	require.NoError(t, err)
	assert.Same(t, nb1, nb2)

	hits, misses := e.CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	// A different metric is a different cache entry.
	nb3, err := e.Neighborhood(ctx, 5, distance.MetricManhattan)
	require.NoError(t, err)
	assert.NotSame(t, nb1, nb3)
}

func TestNeighborhoodKPromotionSharesEntry(t *testing.T) {
	e := newTestEngine(t, 30)
	ctx := context.Background()

	nb1, err := e.Neighborhood(ctx, 1, distance.MetricEuclidean)
	require.NoError(t, err)
	nb2, err := e.Neighborhood(ctx, 2, distance.MetricEuclidean)
	require.NoError(t, err)
	assert.Same(t, nb1, nb2)
	assert.Equal(t, 2, nb1.K())
}

func TestNeighborhoodErrors(t *testing.T) {
	e := newTestEngine(t, 5)
	ctx := context.Background()

	_, err := e.Neighborhood(ctx, 0, distance.MetricEuclidean)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = e.Neighborhood(ctx, 10, distance.MetricEuclidean)
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestBuildStructures(t *testing.T) {
	e := newTestEngine(t, 100)
	ctx := context.Background()

	grid, err := e.BuildVoxelGrid(ctx, voxelgrid.Uniform(3))
	require.NoError(t, err)
	assert.Equal(t, 27, grid.NumVoxels())

	tree, err := e.BuildOctree(ctx, 2)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, tree.Depth(), 1)
}

func TestExtractScalarEigenFeature(t *testing.T) {
	e := newTestEngine(t, 60)
	ctx := context.Background()

	fields, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindAnisotropy, K: 5})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "anisotropy", fields[0].Name)
	require.Len(t, fields[0].Values, 60)
	for i, v := range fields[0].Values {
		assert.False(t, math.IsNaN(v), "point %d", i)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestExtractNormalFeature(t *testing.T) {
	e := newTestEngine(t, 60)
	ctx := context.Background()

	fields, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindNormal, K: 8})
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "nx", fields[0].Name)
	assert.Equal(t, "ny", fields[1].Name)
	assert.Equal(t, "nz", fields[2].Name)

	for i := 0; i < 60; i++ {
		norm := fields[0].Values[i]*fields[0].Values[i] +
			fields[1].Values[i]*fields[1].Values[i] +
			fields[2].Values[i]*fields[2].Values[i]
		assert.InDelta(t, 1.0, norm, 1e-9, "point %d", i)
	}
}

func TestExtractEigenValuesFeature(t *testing.T) {
	e := newTestEngine(t, 40)
	ctx := context.Background()

	fields, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindEigenValues, K: 6})
	require.NoError(t, err)
	require.Len(t, fields, 3)

	for i := 0; i < 40; i++ {
		assert.GreaterOrEqual(t, fields[0].Values[i], fields[1].Values[i])
		assert.GreaterOrEqual(t, fields[1].Values[i], fields[2].Values[i])
	}
}

func TestExtractAngularFeature(t *testing.T) {
	e := newTestEngine(t, 3)
	ctx := context.Background()

	normals := [][3]float64{
		{0, 0, 1},
		{1, 0, 0},
		{0, 1, 0},
	}
	fields, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindInclinationDeg, Normals: normals})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.InDelta(t, 0.0, fields[0].Values[0], 1e-9)
	assert.InDelta(t, 90.0, fields[0].Values[1], 1e-9)

	fields, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindOrientationDeg, Normals: normals})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, fields[0].Values[1], 1e-9)
	assert.InDelta(t, 0.0, fields[0].Values[2], 1e-9)

	// No normals and no neighborhood parameters to fall back to.
	_, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindInclinationDeg})
	assert.ErrorIs(t, err, ErrMissingStructure)

	// Misaligned normals.
	_, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindInclinationDeg, Normals: normals[:1]})
	assert.ErrorIs(t, err, ErrMissingStructure)
}

func TestExtractColorFeatures(t *testing.T) {
	e := newColorEngine(t)
	ctx := context.Background()

	fields, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindRGBIntensity})
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "Ri", fields[0].Name)
	assert.Equal(t, "Gi", fields[1].Name)
	assert.Equal(t, "Bi", fields[2].Name)

	fields, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindHSV})
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "H", fields[0].Name)

	fields, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindRelativeLuminance})
	require.NoError(t, err)
	require.Len(t, fields, 1)

	// Without an RGB attribute every color kind fails.
	plain := newTestEngine(t, 10)
	_, err = plain.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindHSV})
	assert.ErrorIs(t, err, ErrNoColors)
}

func TestExtractStructureFeatures(t *testing.T) {
	e := newTestEngine(t, 80)
	ctx := context.Background()

	_, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindVoxelN})
	assert.ErrorIs(t, err, ErrMissingStructure)

	grid, err := e.BuildVoxelGrid(ctx, voxelgrid.Uniform(2))
	require.NoError(t, err)

	fields, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindVoxelN, Grid: grid})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "voxel_n", fields[0].Name)
	want := grid.VoxelN()
	for i, v := range fields[0].Values {
		assert.Equal(t, float64(want[i]), v)
	}

	_, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindOctreeNodeID})
	assert.ErrorIs(t, err, ErrMissingStructure)

	tree, err := e.BuildOctree(ctx, 1)
	require.NoError(t, err)
	fields, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindOctreeNodeID, Octree: tree, Level: 1})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Len(t, fields[0].Values, 80)
}

func TestExtractGroupEigenFeature(t *testing.T) {
	e := newTestEngine(t, 30)
	ctx := context.Background()

	labels := make([]int, 30)
	for i := range labels {
		labels[i] = i % 2
	}
	fields, err := e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindGroupEigenValues, Labels: labels})
	require.NoError(t, err)
	require.Len(t, fields, 3)

	// Members of the same group share the broadcast eigenvalues.
	assert.Equal(t, fields[0].Values[0], fields[0].Values[2])
	assert.Equal(t, fields[0].Values[1], fields[0].Values[3])

	_, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindGroupEigenValues})
	assert.ErrorIs(t, err, ErrMissingStructure)
}

func TestExtractUnknownFeature(t *testing.T) {
	e := newTestEngine(t, 10)

	_, err := e.ExtractFeature(context.Background(), FeatureRequest{Kind: feature.Kind(999)})
	var unknownErr *ErrUnknownFeature
	require.True(t, errors.As(err, &unknownErr))
}

func TestEngineFilters(t *testing.T) {
	ps, err := points.New(testutil.NewRNG(33).ClusterWithOutlier(20, 0.01, 10))
	require.NoError(t, err)
	e, err := New(ps)
	require.NoError(t, err)
	ctx := context.Background()

	mask, err := e.FilterSOR(ctx, 4, distance.MetricEuclidean, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 19, mask.CountKept())
	assert.False(t, mask.Keep(19))

	mask, err = e.FilterROR(ctx, 2, 1.0)
	require.NoError(t, err)
	assert.False(t, mask.Keep(19)) // the outlier sits alone

	mask, err = e.FilterPassThrough(ctx, func(b *filter.Bounds) { b.MaxX = 5 })
	require.NoError(t, err)
	assert.Equal(t, 19, mask.CountKept())
	assert.False(t, mask.Keep(19))
}

func TestEngineMetrics(t *testing.T) {
	collector := &BasicMetricsCollector{}
	e := newTestEngine(t, 40, WithMetricsCollector(collector))
	ctx := context.Background()

	_, err := e.BuildVoxelGrid(ctx, voxelgrid.Uniform(2))
	require.NoError(t, err)

	_, err = e.Neighborhood(ctx, 4, distance.MetricEuclidean)
	require.NoError(t, err)
	_, err = e.Neighborhood(ctx, 4, distance.MetricEuclidean)
	require.NoError(t, err)

	_, err = e.ExtractFeature(ctx, FeatureRequest{Kind: feature.KindPlanarity, K: 4})
	require.NoError(t, err)

	_, err = e.FilterPassThrough(ctx)
	require.NoError(t, err)

	// The feature extraction reuses the cached neighborhood, which still
	// records as a (cached) neighborhood query.
	assert.Equal(t, int64(1), collector.StructureBuilds.Load())
	assert.Equal(t, int64(3), collector.NeighborhoodCount.Load())
	assert.Equal(t, int64(2), collector.NeighborhoodHits.Load())
	assert.Equal(t, int64(1), collector.FeatureCount.Load())
	assert.Equal(t, int64(1), collector.FilterCount.Load())
	assert.Equal(t, int64(0), collector.FeatureErrors.Load())
}

func TestEngineContextCanceled(t *testing.T) {
	e := newTestEngine(t, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.BuildVoxelGrid(ctx, voxelgrid.Uniform(2))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.FilterROR(ctx, 2, 0.5)
	assert.ErrorIs(t, err, context.Canceled)
}
