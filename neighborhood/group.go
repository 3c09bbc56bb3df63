package neighborhood

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/pointgo/points"
)

// GroupEigen eigendecomposes the covariance of every group of points and
// broadcasts each group's sorted result to its members. labels assigns every
// point to a group (any integer labeling works, e.g. flattened voxel ids or
// octree node ids); the returned slice is aligned to the point order.
//
// Group covariance uses the sample estimator (divide by n-1). Groups of
// fewer than three points cannot support a full-rank 3x3 covariance and
// yield a zero Eigen, which downstream formulas surface as NaN rather than
// an error.
func GroupEigen(ps *points.PointSet, labels []int) ([]Eigen, error) {
	if len(labels) != ps.Len() {
		return nil, &ErrLabelMismatch{Expected: ps.Len(), Actual: len(labels)}
	}

	groups := make(map[int][]int)
	for i, l := range labels {
		groups[l] = append(groups[l], i)
	}

	out := make([]Eigen, ps.Len())
	for _, members := range groups {
		if len(members) < 3 {
			continue
		}
		e := decompose(sampleCovariance(ps, members))
		for _, i := range members {
			out[i] = e
		}
	}
	return out, nil
}

func sampleCovariance(ps *points.PointSet, members []int) *mat.SymDense {
	var cx, cy, cz float64
	for _, j := range members {
		p := ps.At(j)
		cx += p.X
		cy += p.Y
		cz += p.Z
	}
	n := float64(len(members))
	cx, cy, cz = cx/n, cy/n, cz/n

	var xx, xy, xz, yy, yz, zz float64
	for _, j := range members {
		p := ps.At(j)
		dx, dy, dz := p.X-cx, p.Y-cy, p.Z-cz
		xx += dx * dx
		xy += dx * dy
		xz += dx * dz
		yy += dy * dy
		yz += dy * dz
		zz += dz * dz
	}

	m := n - 1
	return mat.NewSymDense(3, []float64{
		xx / m, xy / m, xz / m,
		xy / m, yy / m, yz / m,
		xz / m, yz / m, zz / m,
	})
}
