package pointgo

import (
	"context"
	"time"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/filter"
	"github.com/hupe1980/pointgo/internal/cache"
	"github.com/hupe1980/pointgo/neighborhood"
	"github.com/hupe1980/pointgo/octree"
	"github.com/hupe1980/pointgo/points"
	"github.com/hupe1980/pointgo/voxelgrid"
)

// DefaultCacheSize is the default capacity of the neighborhood cache.
const DefaultCacheSize = 8

// Engine binds a PointSet to the module's spatial structures, feature
// extraction and filters. It borrows the point set read-only; every
// operation returns fresh arrays or masks aligned to the point order.
//
// An Engine is safe for concurrent use: all operations are batch and
// stateless across calls, and the neighborhood cache is internally
// synchronized.
type Engine struct {
	ps      *points.PointSet
	logger  *Logger
	metrics MetricsCollector
	nbCache *cache.LRU

	parallelism int
}

// New creates an engine over the given point set.
func New(ps *points.PointSet, optFns ...Option) (*Engine, error) {
	opts := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		cacheSize:        DefaultCacheSize,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if ps == nil || ps.Len() == 0 {
		return nil, ErrEmptyPointSet
	}

	return &Engine{
		ps:          ps,
		logger:      opts.logger,
		metrics:     opts.metricsCollector,
		nbCache:     cache.NewLRU(opts.cacheSize),
		parallelism: opts.parallelism,
	}, nil
}

// Points returns the engine's point set.
func (e *Engine) Points() *points.PointSet { return e.ps }

// BuildVoxelGrid bins the points into a regular grid.
func (e *Engine) BuildVoxelGrid(ctx context.Context, bins [3]voxelgrid.BinSpec, optFns ...func(o *voxelgrid.Options)) (*voxelgrid.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	grid, err := voxelgrid.Build(e.ps, bins, optFns...)
	e.metrics.RecordStructureBuild("voxelgrid", time.Since(start), err)
	e.logger.LogStructureBuild(ctx, "voxelgrid", e.ps.Len(), err)
	return grid, translateError(err)
}

// BuildOctree computes per-level octant codes down to maxLevel, subject to
// the early-stop threshold.
func (e *Engine) BuildOctree(ctx context.Context, maxLevel int, optFns ...func(o *octree.Options)) (*octree.Octree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	tree, err := octree.Build(e.ps, maxLevel, optFns...)
	e.metrics.RecordStructureBuild("octree", time.Since(start), err)
	e.logger.LogStructureBuild(ctx, "octree", e.ps.Len(), err)
	return tree, translateError(err)
}

// Neighborhood returns the k-nearest neighborhood of every point under the
// given metric, reusing a cached result when the same (k, metric) pair was
// built before. k below 2 is promoted to 2, matching the build semantics, so
// requests for k=1 and k=2 share a cache entry.
func (e *Engine) Neighborhood(ctx context.Context, k int, metric distance.Metric) (*neighborhood.Neighborhood, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if k < 2 {
		k = 2
	}

	key := cache.Key{K: k, Metric: metric}
	if nb, ok := e.nbCache.Get(key); ok {
		e.metrics.RecordNeighborhood(k, true, 0, nil)
		e.logger.LogNeighborhood(ctx, k, metric.String(), true, nil)
		return nb, nil
	}

	start := time.Now()
	nb, err := neighborhood.Build(ctx, e.ps, k, func(o *neighborhood.Options) {
		o.Metric = metric
		o.Parallelism = e.parallelism
	})
	e.metrics.RecordNeighborhood(k, false, time.Since(start), err)
	e.logger.LogNeighborhood(ctx, k, metric.String(), false, err)
	if err != nil {
		return nil, translateError(err)
	}
	e.nbCache.Set(key, nb)
	return nb, nil
}

// FilterSOR removes statistical outliers: points whose mean distance to
// their k neighbors z-scores beyond zMax.
func (e *Engine) FilterSOR(ctx context.Context, k int, metric distance.Metric, zMax float64) (filter.Mask, error) {
	nb, err := e.Neighborhood(ctx, k, metric)
	if err != nil {
		return filter.Mask{}, err
	}
	start := time.Now()
	mask, err := filter.SOR(nb, zMax)
	e.metrics.RecordFilter("sor", mask.CountKept(), time.Since(start), err)
	e.logger.LogFilter(ctx, "sor", mask.CountKept(), e.ps.Len(), err)
	return mask, translateError(err)
}

// FilterROR removes radius outliers: points without k neighbors (self
// included) inside radius r.
func (e *Engine) FilterROR(ctx context.Context, k int, r float64) (filter.Mask, error) {
	if err := ctx.Err(); err != nil {
		return filter.Mask{}, err
	}
	start := time.Now()
	mask, err := filter.ROR(e.ps, k, r)
	e.metrics.RecordFilter("ror", mask.CountKept(), time.Since(start), err)
	e.logger.LogFilter(ctx, "ror", mask.CountKept(), e.ps.Len(), err)
	return mask, translateError(err)
}

// FilterPassThrough keeps the points inside an axis-aligned box; every bound
// defaults to unbounded.
func (e *Engine) FilterPassThrough(ctx context.Context, optFns ...func(b *filter.Bounds)) (filter.Mask, error) {
	if err := ctx.Err(); err != nil {
		return filter.Mask{}, err
	}
	start := time.Now()
	mask, err := filter.PassThrough(e.ps, optFns...)
	e.metrics.RecordFilter("pass_through", mask.CountKept(), time.Since(start), err)
	e.logger.LogFilter(ctx, "pass_through", mask.CountKept(), e.ps.Len(), err)
	return mask, translateError(err)
}

// CacheStats returns neighborhood cache hit and miss counts.
func (e *Engine) CacheStats() (hits, misses int64) {
	return e.nbCache.Stats()
}
