package geometry

// Plane is an oriented plane in Hessian normal form: all points p with
// p·Normal = D, Normal a unit vector.
type Plane struct {
	Normal Vector3
	D      float64
}

// PlaneFromPoints computes the oriented plane through three points, with the
// normal following the right-hand rule of the point order. It fails for
// degenerate (collinear or coincident) points whose edge cross product is
// below eps.
func PlaneFromPoints(a, b, c Vector3, eps float64) (Plane, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.IsZero(eps) {
		return Plane{}, false
	}
	n = n.Normalize()
	return Plane{Normal: n, D: n.Dot(a)}, true
}

// PlaneFromPolygon fits a plane to an ordered polygon using the Newell
// normal, which stays stable for slightly concave or noisy boundaries where
// a single corner cross product would not.
func PlaneFromPolygon(points []Vector3, eps float64) (Plane, bool) {
	if len(points) < 3 {
		return Plane{}, false
	}
	var n Vector3
	var centroid Vector3
	for i, p := range points {
		q := points[(i+1)%len(points)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
		centroid = centroid.Add(p)
	}
	if n.IsZero(eps) {
		return Plane{}, false
	}
	n = n.Normalize()
	centroid = centroid.Mul(1.0 / float64(len(points)))
	return Plane{Normal: n, D: n.Dot(centroid)}, true
}

// SignedDistance returns the signed distance from a point to the plane
func (p Plane) SignedDistance(v Vector3) float64 {
	return p.Normal.Dot(v) - p.D
}

// Contains reports whether a point lies on the plane within eps
func (p Plane) Contains(v Vector3, eps float64) bool {
	return FuzzyZero(p.SignedDistance(v), eps)
}

// ContainsAll reports whether every point lies on the plane within eps
func (p Plane) ContainsAll(points []Vector3, eps float64) bool {
	for _, v := range points {
		if !p.Contains(v, eps) {
			return false
		}
	}
	return true
}

// Basis returns two unit vectors spanning the plane, orthogonal to each
// other and to the normal
func (p Plane) Basis() (Vector3, Vector3) {
	u := p.Normal.Cross(Vector3{X: 1})
	if u.Length() < 0.5 {
		u = p.Normal.Cross(Vector3{Y: 1})
	}
	u = u.Normalize()
	return u, p.Normal.Cross(u)
}

// Project maps a 3D point to 2D coordinates within the plane's basis
func (p Plane) Project(v Vector3, u, w Vector3) (float64, float64) {
	return v.Dot(u), v.Dot(w)
}
