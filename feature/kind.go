package feature

import (
	"fmt"

	"github.com/hupe1980/pointgo/neighborhood"
)

// Kind enumerates the scalar fields this package can derive. The set is
// closed: dispatch happens through exhaustive switches, not name lookup.
type Kind int

const (
	// Eigen-derived kinds, computed from a Neighborhood.
	KindNormal Kind = iota
	KindEigenValues
	KindEigenSum
	KindOmnivariance
	KindEigenentropy
	KindAnisotropy
	KindPlanarity
	KindLinearity
	KindCurvature
	KindSphericity
	KindVerticality

	// Angular kinds, computed from externally supplied normals.
	KindInclinationDeg
	KindInclinationRad
	KindOrientationDeg
	KindOrientationRad

	// Color kinds, computed from the cloud's RGB attribute.
	KindRGBIntensity
	KindRelativeLuminance
	KindHSV

	// Structure-derived kinds, computed from a VoxelGrid or Octree.
	KindVoxelX
	KindVoxelY
	KindVoxelZ
	KindVoxelN
	KindOctreeNodeID
	KindGroupEigenValues
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindEigenValues:
		return "eigen_values"
	case KindEigenSum:
		return "eigen_sum"
	case KindOmnivariance:
		return "omnivariance"
	case KindEigenentropy:
		return "eigenentropy"
	case KindAnisotropy:
		return "anisotropy"
	case KindPlanarity:
		return "planarity"
	case KindLinearity:
		return "linearity"
	case KindCurvature:
		return "curvature"
	case KindSphericity:
		return "sphericity"
	case KindVerticality:
		return "verticality"
	case KindInclinationDeg:
		return "inclination_deg"
	case KindInclinationRad:
		return "inclination_rad"
	case KindOrientationDeg:
		return "orientation_deg"
	case KindOrientationRad:
		return "orientation_rad"
	case KindRGBIntensity:
		return "rgb_intensity"
	case KindRelativeLuminance:
		return "relative_luminance"
	case KindHSV:
		return "hsv"
	case KindVoxelX:
		return "voxel_x"
	case KindVoxelY:
		return "voxel_y"
	case KindVoxelZ:
		return "voxel_z"
	case KindVoxelN:
		return "voxel_n"
	case KindOctreeNodeID:
		return "octree_node_id"
	case KindGroupEigenValues:
		return "group_eigen_values"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ScalarEigen computes a single-valued eigen kind for one neighborhood.
// Multi-valued kinds (KindNormal, KindEigenValues) and non-eigen kinds
// return an error.
func ScalarEigen(k Kind, e neighborhood.Eigen) (float64, error) {
	switch k {
	case KindEigenSum:
		return EigenSum(e), nil
	case KindOmnivariance:
		return Omnivariance(e), nil
	case KindEigenentropy:
		return Eigenentropy(e), nil
	case KindAnisotropy:
		return Anisotropy(e), nil
	case KindPlanarity:
		return Planarity(e), nil
	case KindLinearity:
		return Linearity(e), nil
	case KindCurvature:
		return Curvature(e), nil
	case KindSphericity:
		return Sphericity(e), nil
	case KindVerticality:
		return Verticality(e), nil
	default:
		return 0, fmt.Errorf("feature: %v is not a scalar eigen kind", k)
	}
}
