package geometry

// RigidTransform is a rotation plus translation expressed as an orthonormal
// target frame: a point p maps to Origin + p.X*XAxis + p.Y*YAxis + p.Z*ZAxis
// after being expressed in the source frame. Used to place mapped geometry
// instances relative to a shared representation.
type RigidTransform struct {
	XAxis, YAxis, ZAxis Vector3
	Origin              Vector3
}

// IdentityTransform returns the identity rigid transform
func IdentityTransform() RigidTransform {
	return RigidTransform{
		XAxis: Vector3{X: 1},
		YAxis: Vector3{Y: 1},
		ZAxis: Vector3{Z: 1},
	}
}

// Apply maps a point through the transform
func (t RigidTransform) Apply(p Vector3) Vector3 {
	return t.Origin.
		Add(t.XAxis.Mul(p.X)).
		Add(t.YAxis.Mul(p.Y)).
		Add(t.ZAxis.Mul(p.Z))
}

// IsIdentity reports whether the transform moves nothing, within eps
func (t RigidTransform) IsIdentity(eps float64) bool {
	id := IdentityTransform()
	return t.XAxis.FuzzyEquals(id.XAxis, eps) &&
		t.YAxis.FuzzyEquals(id.YAxis, eps) &&
		t.ZAxis.FuzzyEquals(id.ZAxis, eps) &&
		t.Origin.IsZero(eps)
}
