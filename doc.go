// Package pointgo provides the computational core of a point-cloud toolkit.
//
// Pointgo organizes an unordered set of 3D points into spatial partitions
// (voxel grid, octree), derives per-point geometric descriptors (normals,
// curvature, planarity, linearity, sphericity, anisotropy, verticality) from
// the covariance structure of each point's k-nearest-neighborhood, and
// filters outliers by neighborhood statistics.
//
// # Quick Start
//
//	ctx := context.Background()
//	ps, _ := points.NewFromColumns(xs, ys, zs)
//	eng, _ := pointgo.New(ps)
//
//	// Spatial structures
//	grid, _ := eng.BuildVoxelGrid(ctx, voxelgrid.Uniform(8))
//	tree, _ := eng.BuildOctree(ctx, 3)
//
//	// Per-point geometric features
//	fields, _ := eng.ExtractFeature(ctx, pointgo.FeatureRequest{
//	    Kind: feature.KindPlanarity,
//	    K:    16,
//	})
//
//	// Outlier filtering
//	mask, _ := eng.FilterSOR(ctx, 16, distance.MetricEuclidean, 2.0)
//	clean, _ := ps.Select(mask.Bools())
//
// # Design
//
// The engine borrows the PointSet read-only and returns arrays and masks of
// matching length; merging results back into a richer table representation
// is the caller's concern, as is file decoding and plotting. All operations
// are batch, deterministic and stateless across calls; neighborhoods are
// cached by (k, metric) and safely shared once built.
package pointgo
