// Package filter provides neighborhood-driven and coordinate-driven outlier
// filters. Every filter returns a keep-mask aligned to the point order; the
// input PointSet is never mutated.
package filter

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is a boolean keep-decision per point: true means the point is
// retained. Masks are produced fresh by every filter and never mutated;
// combination operators return new masks.
type Mask struct {
	keep []bool
}

// NewMask wraps a boolean slice as a Mask. The slice is retained.
func NewMask(keep []bool) Mask { return Mask{keep: keep} }

// Len returns the number of points the mask covers.
func (m Mask) Len() int { return len(m.keep) }

// Keep reports whether point i is retained.
func (m Mask) Keep(i int) bool { return m.keep[i] }

// Bools returns the underlying boolean slice. Read-only.
func (m Mask) Bools() []bool { return m.keep }

// CountKept returns the number of retained points.
func (m Mask) CountKept() int {
	n := 0
	for _, k := range m.keep {
		if k {
			n++
		}
	}
	return n
}

// Bitmap returns the kept indices as a roaring bitmap.
func (m Mask) Bitmap() *roaring.Bitmap {
	bm := roaring.New()
	for i, k := range m.keep {
		if k {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// FromBitmap builds a Mask of length n keeping the indices set in bm.
func FromBitmap(bm *roaring.Bitmap, n int) Mask {
	keep := make([]bool, n)
	it := bm.Iterator()
	for it.HasNext() {
		if i := int(it.Next()); i < n {
			keep[i] = true
		}
	}
	return Mask{keep: keep}
}

// And returns the intersection of two masks: points kept by both.
func (m Mask) And(other Mask) (Mask, error) {
	if other.Len() != m.Len() {
		return Mask{}, &ErrMaskLengthMismatch{Expected: m.Len(), Actual: other.Len()}
	}
	bm := m.Bitmap()
	bm.And(other.Bitmap())
	return FromBitmap(bm, m.Len()), nil
}

// Or returns the union of two masks: points kept by either.
func (m Mask) Or(other Mask) (Mask, error) {
	if other.Len() != m.Len() {
		return Mask{}, &ErrMaskLengthMismatch{Expected: m.Len(), Actual: other.Len()}
	}
	bm := m.Bitmap()
	bm.Or(other.Bitmap())
	return FromBitmap(bm, m.Len()), nil
}

// AndNot returns the points kept by m but not by other.
func (m Mask) AndNot(other Mask) (Mask, error) {
	if other.Len() != m.Len() {
		return Mask{}, &ErrMaskLengthMismatch{Expected: m.Len(), Actual: other.Len()}
	}
	bm := m.Bitmap()
	bm.AndNot(other.Bitmap())
	return FromBitmap(bm, m.Len()), nil
}
