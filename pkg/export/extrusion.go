package export

import (
	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
)

// ExtrusionCandidate describes a solid re-expressed as a swept profile: the
// base profile boundary (with nested opening loops), a unit direction and a
// length. Produced by DetectExtrusion, consumed once per export call.
type ExtrusionCandidate struct {
	// Outer is the base profile boundary in 3D, wound counter-clockwise
	// around Direction
	Outer []geometry.Vector3
	// Inner are opening loops nested inside Outer
	Inner [][]geometry.Vector3
	// Direction is the unit extrusion direction
	Direction geometry.Vector3
	// Length is the extrusion depth along Direction
	Length float64

	sideFaces int
}

// worldAxes are the default candidate directions, tried in priority order
// after any caller-preferred axis
var worldAxes = []geometry.Vector3{
	{X: 1}, {Y: 1}, {Z: 1},
}

// DetectExtrusion tries to express a solid as a single extrusion along one
// of the candidate axes: the caller's preferred axis first, then world X, Y
// and Z. When several axes succeed, the one producing the fewest side faces
// wins (the simplest profile), earlier axes breaking ties.
//
// Detection fails (nil, false) on any non-planar or curved face, mismatched
// end profiles, more than one disjoint profile, or inner profile loops when
// the context does not allow treating them as openings.
func DetectExtrusion(s *bim.Solid, ectx *ExtrusionContext, eps float64) (*ExtrusionCandidate, bool) {
	if s.IsEmpty() {
		return nil, false
	}

	axes := make([]geometry.Vector3, 0, 4)
	openingsOK := false
	if ectx != nil {
		openingsOK = ectx.InnerLoopsAsOpenings
		if ectx.PreferredAxis != nil && !ectx.PreferredAxis.IsZero(eps) {
			axes = append(axes, ectx.PreferredAxis.Normalize())
		}
	}
	for _, axis := range worldAxes {
		duplicate := false
		for _, seen := range axes {
			if axis.Parallel(seen, eps) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			axes = append(axes, axis)
		}
	}

	var best *ExtrusionCandidate
	for _, axis := range axes {
		if c, ok := detectAlongAxis(s, axis, openingsOK, eps); ok {
			if best == nil || c.sideFaces < best.sideFaces {
				best = c
			}
		}
	}
	return best, best != nil
}

// DetectExtrusionFromFaces runs extrusion detection over a bare face list
// treated as one combined boundary (used when a body's geometry arrives as
// faces rather than a solid).
func DetectExtrusionFromFaces(faces []*bim.Face, ectx *ExtrusionContext, eps float64) (*ExtrusionCandidate, bool) {
	return DetectExtrusion(&bim.Solid{Name: "faces", Faces: faces}, ectx, eps)
}

func detectAlongAxis(s *bim.Solid, axis geometry.Vector3, openingsOK bool, eps float64) (*ExtrusionCandidate, bool) {
	var base, top *bim.Face
	var basePlane, topPlane geometry.Plane
	sideFaces := 0

	for _, f := range s.Faces {
		if !planarPolygonalFace(f, eps) {
			return nil, false
		}
		plane, ok := FacePlane(f, eps)
		if !ok {
			return nil, false
		}

		along := plane.Normal.Dot(axis)
		switch {
		case geometry.FuzzyEqual(along, -1, eps):
			if base != nil {
				// two bottom caps means two disjoint profiles
				return nil, false
			}
			base, basePlane = f, plane
		case geometry.FuzzyEqual(along, 1, eps):
			if top != nil {
				return nil, false
			}
			top, topPlane = f, plane
		case geometry.FuzzyZero(along, eps):
			sideFaces++
		default:
			// slanted face: no consistent cross-section along this axis
			return nil, false
		}
	}
	if base == nil || top == nil {
		return nil, false
	}

	// signed distance between the end planes along the axis
	baseOffset := axis.Dot(base.Outer.Points()[0])
	topOffset := axis.Dot(top.Outer.Points()[0])
	depth := topOffset - baseOffset
	if depth < eps {
		return nil, false
	}

	if !profilesCongruent(base, top, axis.Mul(depth), eps) {
		return nil, false
	}
	if !sideFacesSpanEnds(s, base, top, basePlane, topPlane, eps) {
		return nil, false
	}

	if len(base.Inner) > 0 && !openingsOK {
		// solid islands / unrequested holes are not supported: fail and
		// let the caller fall back
		return nil, false
	}

	outer, inner, ok := orientProfile(base, axis, eps)
	if !ok {
		return nil, false
	}
	return &ExtrusionCandidate{
		Outer:     outer,
		Inner:     inner,
		Direction: axis,
		Length:    depth,
		sideFaces: sideFaces,
	}, true
}

// profilesCongruent checks that the top boundary is exactly the base
// boundary translated by offset, holes included
func profilesCongruent(base, top *bim.Face, offset geometry.Vector3, eps float64) bool {
	topPoints := make(map[geometry.FuzzyPoint]int)
	count := 0
	for _, loop := range faceLoops(top) {
		for _, p := range loop.Points() {
			topPoints[geometry.NewFuzzyPoint(p, eps)]++
			count++
		}
	}

	if len(base.Inner) != len(top.Inner) {
		return false
	}
	baseCount := 0
	for _, loop := range faceLoops(base) {
		for _, p := range loop.Points() {
			key := geometry.NewFuzzyPoint(p.Add(offset), eps)
			if topPoints[key] == 0 {
				return false
			}
			topPoints[key]--
			baseCount++
		}
	}
	return baseCount == count
}

// sideFacesSpanEnds verifies every side-face vertex lies on one of the two
// end planes, i.e. the sides connect corresponding boundary vertices
func sideFacesSpanEnds(s *bim.Solid, base, top *bim.Face, basePlane, topPlane geometry.Plane, eps float64) bool {
	for _, f := range s.Faces {
		if f == base || f == top {
			continue
		}
		for _, loop := range faceLoops(f) {
			for _, p := range loop.Points() {
				if !basePlane.Contains(p, eps) && !topPlane.Contains(p, eps) {
					return false
				}
			}
		}
	}
	return true
}

// orientProfile rewinds the base boundary counter-clockwise around the
// extrusion direction (the base face's outward normal opposes it) and
// verifies every inner loop nests inside the outer boundary. Inner loops
// come out clockwise.
func orientProfile(base *bim.Face, direction geometry.Vector3, eps float64) ([]geometry.Vector3, [][]geometry.Vector3, bool) {
	plane := geometry.Plane{Normal: direction, D: direction.Dot(base.Outer.Points()[0])}
	u, w := plane.Basis()

	project := func(points []geometry.Vector3) [][2]float64 {
		out := make([][2]float64, len(points))
		for i, p := range points {
			x, y := plane.Project(p, u, w)
			out[i] = [2]float64{x, y}
		}
		return out
	}

	outer := base.Outer.Points()
	outer2D := project(outer)
	if signedArea2D(outer2D) < 0 {
		outer = reversePoints(outer)
		outer2D = project(outer)
	}

	var inner [][]geometry.Vector3
	for _, loop := range base.Inner {
		points := loop.Points()
		points2D := project(points)
		for _, p := range points2D {
			if !pointInPolygon(p, outer2D) {
				return nil, nil, false
			}
		}
		if signedArea2D(points2D) > 0 {
			points = reversePoints(points)
		}
		inner = append(inner, points)
	}
	return outer, inner, true
}

// ProfilePlacement returns the profile plane origin, basis and direction
// needed to position the swept solid in 3D
func (c *ExtrusionCandidate) ProfilePlacement() (origin, refDir geometry.Vector3) {
	return c.Outer[0], c.profileBasisU()
}

// Profile2D projects the profile loops into the 2D sweep coordinate system
// anchored at the first outer vertex
func (c *ExtrusionCandidate) Profile2D() (outer [][2]float64, inner [][][2]float64) {
	u := c.profileBasisU()
	w := c.Direction.Cross(u)
	origin := c.Outer[0]

	project := func(points []geometry.Vector3) [][2]float64 {
		out := make([][2]float64, len(points))
		for i, p := range points {
			d := p.Sub(origin)
			out[i] = [2]float64{d.Dot(u), d.Dot(w)}
		}
		return out
	}

	outer = project(c.Outer)
	for _, loop := range c.Inner {
		inner = append(inner, project(loop))
	}
	return outer, inner
}

func (c *ExtrusionCandidate) profileBasisU() geometry.Vector3 {
	plane := geometry.Plane{Normal: c.Direction, D: c.Direction.Dot(c.Outer[0])}
	u, _ := plane.Basis()
	return u
}

func faceLoops(f *bim.Face) []*bim.Loop {
	return append([]*bim.Loop{f.Outer}, f.Inner...)
}

func reversePoints(points []geometry.Vector3) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// signedArea2D is positive for counter-clockwise polygons
func signedArea2D(poly [][2]float64) float64 {
	area := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		area += p[0]*q[1] - q[0]*p[1]
	}
	return area / 2
}

// pointInPolygon is a standard even-odd ray cast in 2D
func pointInPolygon(pt [2]float64, poly [][2]float64) bool {
	inside := false
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if (a[1] > pt[1]) != (b[1] > pt[1]) {
			x := a[0] + (pt[1]-a[1])/(b[1]-a[1])*(b[0]-a[0])
			if pt[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}
