package pointgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pointgo/kdtree"
	"github.com/hupe1980/pointgo/neighborhood"
)

var (
	// ErrInvalidK is returned when a neighbor count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyPointSet is returned when an engine is created without points.
	ErrEmptyPointSet = errors.New("point set must not be empty")

	// ErrCapacity is returned when a request needs more neighbors than the
	// point set can provide.
	ErrCapacity = errors.New("not enough points for requested neighborhood")

	// ErrMissingStructure is returned when a feature request needs a
	// structure (voxel grid, octree, normals, labels) that was not supplied.
	ErrMissingStructure = errors.New("feature request is missing a required structure")

	// ErrNoColors is returned when a color feature is requested on a point
	// set without an RGB attribute.
	ErrNoColors = errors.New("point set carries no RGB attribute")
)

// ErrUnknownFeature indicates a feature kind outside the closed enumeration.
type ErrUnknownFeature struct {
	Kind fmt.Stringer
}

func (e *ErrUnknownFeature) Error() string {
	return fmt.Sprintf("unknown feature kind: %v", e.Kind)
}

// translateError normalizes subpackage errors into the root vocabulary so
// callers can match with errors.Is regardless of which component failed.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var nep *neighborhood.ErrNotEnoughPoints
	if errors.As(err, &nep) {
		return fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	var cap *kdtree.ErrCapacityExceeded
	if errors.As(err, &cap) {
		return fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	if errors.Is(err, kdtree.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	return err
}
