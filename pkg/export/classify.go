package export

import (
	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
)

// IsPlanarPolygonal reports whether every face of the solid is planar with
// straight polygonal edges. Such solids take the fast path: their faces
// convert to IFC poly loops directly from the edge loops, with no
// tessellation round trip.
func IsPlanarPolygonal(s *bim.Solid, eps float64) bool {
	for _, f := range s.Faces {
		if !planarPolygonalFace(f, eps) {
			return false
		}
	}
	return len(s.Faces) > 0
}

func planarPolygonalFace(f *bim.Face, eps float64) bool {
	if f.Outer == nil || f.Outer.HasCurvedEdges() {
		return false
	}
	points := f.Outer.Points()
	if len(points) < 3 {
		return false
	}
	plane, ok := geometry.PlaneFromPolygon(points, eps)
	if !ok {
		return false
	}
	if !plane.ContainsAll(points, eps) {
		return false
	}
	for _, inner := range f.Inner {
		if inner.HasCurvedEdges() {
			return false
		}
		innerPoints := inner.Points()
		if len(innerPoints) < 3 || !plane.ContainsAll(innerPoints, eps) {
			return false
		}
	}
	return true
}

// FacePlane returns the carrier plane of a planar face
func FacePlane(f *bim.Face, eps float64) (geometry.Plane, bool) {
	return geometry.PlaneFromPolygon(f.Outer.Points(), eps)
}
