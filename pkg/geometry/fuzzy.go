package geometry

import "math"

// FuzzyEqual reports whether two scalars agree within eps.
// The tolerance is always passed explicitly so callers (and tests) control
// exactly where the boundary sits.
func FuzzyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// FuzzyZero reports whether a scalar is within eps of zero
func FuzzyZero(a, eps float64) bool {
	return math.Abs(a) < eps
}

// FuzzyPoint is a quantized point usable as a map key. Points whose
// coordinates agree within the quantization step collapse to the same key,
// which is how vertex welding and facet grouping get tolerance-based
// equality out of ordinary Go maps.
type FuzzyPoint struct {
	X, Y, Z int64
}

// NewFuzzyPoint quantizes a point onto a grid of cell size eps
func NewFuzzyPoint(v Vector3, eps float64) FuzzyPoint {
	return FuzzyPoint{
		X: quantize(v.X, eps),
		Y: quantize(v.Y, eps),
		Z: quantize(v.Z, eps),
	}
}

func quantize(a, eps float64) int64 {
	return int64(math.Round(a / eps))
}

// PlanarKey identifies a carrier plane by its quantized unit normal and
// signed origin distance. Triangles whose planes agree within eps map to
// the same key and are candidates for facet merging.
type PlanarKey struct {
	Normal FuzzyPoint
	D      int64
}

// NewPlanarKey builds a grouping key from a plane.
// Opposite-facing coplanar planes yield distinct keys on purpose: faces
// with opposite orientation must never merge.
func NewPlanarKey(p Plane, eps float64) PlanarKey {
	return PlanarKey{
		Normal: NewFuzzyPoint(p.Normal, eps),
		D:      quantize(p.D, eps),
	}
}
