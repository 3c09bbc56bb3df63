package pointgo

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/feature"
	"github.com/hupe1980/pointgo/neighborhood"
	"github.com/hupe1980/pointgo/octree"
	"github.com/hupe1980/pointgo/voxelgrid"
)

// Field is a named per-point array produced by feature extraction. The
// caller merges fields back onto its own point table.
type Field struct {
	Name   string
	Values []float64
}

// FeatureRequest selects one feature kind together with its typed
// parameters. Which parameters are consulted depends on the kind:
//
//   - eigen kinds use K and Metric (the neighborhood is built or reused)
//   - angular kinds use Normals, falling back to the K/Metric neighborhood
//     normals when Normals is nil
//   - color kinds need a PointSet with RGB
//   - structure kinds use Grid, or Octree with Level
//   - KindGroupEigenValues uses Labels, falling back to Grid voxel ids or
//     Octree node ids at Level
type FeatureRequest struct {
	Kind feature.Kind

	K      int
	Metric distance.Metric

	Normals [][3]float64

	Grid   *voxelgrid.Grid
	Octree *octree.Octree
	Level  int

	Labels []int
}

// ExtractFeature computes the requested feature and returns its fields, one
// per output component, each of length Points().Len().
func (e *Engine) ExtractFeature(ctx context.Context, req FeatureRequest) ([]Field, error) {
	start := time.Now()
	fields, err := e.extractFeature(ctx, req)
	e.metrics.RecordFeature(req.Kind.String(), time.Since(start), err)
	e.logger.LogFeature(ctx, req.Kind.String(), len(fields), err)
	return fields, translateError(err)
}

func (e *Engine) extractFeature(ctx context.Context, req FeatureRequest) ([]Field, error) {
	switch req.Kind {
	case feature.KindEigenSum, feature.KindOmnivariance, feature.KindEigenentropy,
		feature.KindAnisotropy, feature.KindPlanarity, feature.KindLinearity,
		feature.KindCurvature, feature.KindSphericity, feature.KindVerticality:
		return e.scalarEigenField(ctx, req)

	case feature.KindNormal:
		nb, err := e.Neighborhood(ctx, req.K, req.Metric)
		if err != nil {
			return nil, err
		}
		return componentFields([]string{"nx", "ny", "nz"}, nb.Normals()), nil

	case feature.KindEigenValues:
		nb, err := e.Neighborhood(ctx, req.K, req.Metric)
		if err != nil {
			return nil, err
		}
		triplets := make([][3]float64, nb.Len())
		for i := range triplets {
			triplets[i] = nb.Eigen(i).Values
		}
		return componentFields([]string{"eigval_1", "eigval_2", "eigval_3"}, triplets), nil

	case feature.KindInclinationDeg, feature.KindInclinationRad,
		feature.KindOrientationDeg, feature.KindOrientationRad:
		return e.angularField(ctx, req)

	case feature.KindRGBIntensity, feature.KindRelativeLuminance, feature.KindHSV:
		return e.colorField(req)

	case feature.KindVoxelX, feature.KindVoxelY, feature.KindVoxelZ, feature.KindVoxelN:
		if req.Grid == nil {
			return nil, ErrMissingStructure
		}
		var values []int
		switch req.Kind {
		case feature.KindVoxelX:
			values = req.Grid.VoxelX()
		case feature.KindVoxelY:
			values = req.Grid.VoxelY()
		case feature.KindVoxelZ:
			values = req.Grid.VoxelZ()
		default:
			values = req.Grid.VoxelN()
		}
		return []Field{{Name: req.Kind.String(), Values: intsToFloats(values)}}, nil

	case feature.KindOctreeNodeID:
		if req.Octree == nil {
			return nil, ErrMissingStructure
		}
		ids, err := req.Octree.NodeIDs(req.Level)
		if err != nil {
			return nil, err
		}
		return []Field{{Name: req.Kind.String(), Values: intsToFloats(ids)}}, nil

	case feature.KindGroupEigenValues:
		labels, err := e.groupLabels(req)
		if err != nil {
			return nil, err
		}
		eigs, err := neighborhood.GroupEigen(e.ps, labels)
		if err != nil {
			return nil, err
		}
		triplets := make([][3]float64, len(eigs))
		for i, eig := range eigs {
			triplets[i] = eig.Values
		}
		return componentFields([]string{"eigval_1", "eigval_2", "eigval_3"}, triplets), nil

	default:
		return nil, &ErrUnknownFeature{Kind: req.Kind}
	}
}

func (e *Engine) scalarEigenField(ctx context.Context, req FeatureRequest) ([]Field, error) {
	nb, err := e.Neighborhood(ctx, req.K, req.Metric)
	if err != nil {
		return nil, err
	}

	values := make([]float64, nb.Len())
	if err := e.parallelRange(ctx, nb.Len(), func(i int) error {
		v, err := feature.ScalarEigen(req.Kind, nb.Eigen(i))
		if err != nil {
			return err
		}
		values[i] = v
		return nil
	}); err != nil {
		return nil, err
	}
	return []Field{{Name: req.Kind.String(), Values: values}}, nil
}

func (e *Engine) angularField(ctx context.Context, req FeatureRequest) ([]Field, error) {
	normals := req.Normals
	if normals == nil {
		if req.K == 0 {
			return nil, ErrMissingStructure
		}
		nb, err := e.Neighborhood(ctx, req.K, req.Metric)
		if err != nil {
			return nil, err
		}
		normals = nb.Normals()
	}
	if len(normals) != e.ps.Len() {
		return nil, ErrMissingStructure
	}

	values := make([]float64, len(normals))
	for i, n := range normals {
		switch req.Kind {
		case feature.KindInclinationDeg:
			values[i] = feature.InclinationDeg(n)
		case feature.KindInclinationRad:
			values[i] = feature.InclinationRad(n)
		case feature.KindOrientationDeg:
			values[i] = feature.OrientationDeg(n)
		default:
			values[i] = feature.OrientationRad(n)
		}
	}
	return []Field{{Name: req.Kind.String(), Values: values}}, nil
}

func (e *Engine) colorField(req FeatureRequest) ([]Field, error) {
	if !e.ps.HasColors() {
		return nil, ErrNoColors
	}
	n := e.ps.Len()

	switch req.Kind {
	case feature.KindRelativeLuminance:
		values := make([]float64, n)
		for i := 0; i < n; i++ {
			values[i] = feature.RelativeLuminance(e.ps.ColorAt(i))
		}
		return []Field{{Name: req.Kind.String(), Values: values}}, nil

	case feature.KindRGBIntensity:
		ri := make([]float64, n)
		gi := make([]float64, n)
		bi := make([]float64, n)
		for i := 0; i < n; i++ {
			ri[i], gi[i], bi[i] = feature.RGBIntensity(e.ps.ColorAt(i))
		}
		return []Field{{Name: "Ri", Values: ri}, {Name: "Gi", Values: gi}, {Name: "Bi", Values: bi}}, nil

	default: // KindHSV
		h := make([]float64, n)
		s := make([]float64, n)
		v := make([]float64, n)
		for i := 0; i < n; i++ {
			h[i], s[i], v[i] = feature.HSV(e.ps.ColorAt(i))
		}
		return []Field{{Name: "H", Values: h}, {Name: "S", Values: s}, {Name: "V", Values: v}}, nil
	}
}

func (e *Engine) groupLabels(req FeatureRequest) ([]int, error) {
	switch {
	case req.Labels != nil:
		return req.Labels, nil
	case req.Grid != nil:
		return req.Grid.VoxelN(), nil
	case req.Octree != nil:
		return req.Octree.NodeIDs(req.Level)
	default:
		return nil, ErrMissingStructure
	}
}

// parallelRange runs fn for every index in [0, n), fanning out over bounded
// workers. Each index is visited exactly once, so workers may write to
// disjoint output slots without locking.
func (e *Engine) parallelRange(ctx context.Context, n int, fn func(i int) error) error {
	parallelism := e.parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	const chunk = 512
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func intsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func componentFields(names []string, vecs [][3]float64) []Field {
	fields := make([]Field, len(names))
	for c := range names {
		values := make([]float64, len(vecs))
		for i, v := range vecs {
			values[i] = v[c]
		}
		fields[c] = Field{Name: names[c], Values: values}
	}
	return fields
}
