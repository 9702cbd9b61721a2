// Package bim holds the read-only building-model geometry consumed by the
// exporter: solids with face/edge/vertex topology and flat triangle meshes.
// The exporter never mutates these; splitting produces new solids that
// share the original faces.
package bim

import "github.com/vipasu/goifc/pkg/geometry"

// MaterialID tags a face or mesh with a host-model material.
// The zero value means "no material".
type MaterialID int

// MaterialNone is the absent material tag
const MaterialNone MaterialID = 0

// GeometryObject is one input item of a body export: either a *Solid or a
// *Mesh from the host model.
type GeometryObject interface {
	// IsEmpty reports whether the object carries no geometry at all,
	// e.g. because clipping subtracted everything away.
	IsEmpty() bool
}

// Solid is a closed volumetric region described by its boundary faces.
// Face normals point out of the material.
type Solid struct {
	Name  string
	Faces []*Face
}

// Face is one boundary face: an outer loop plus zero or more inner loops
// (holes), with an optional material tag.
type Face struct {
	Outer    *Loop
	Inner    []*Loop
	Material MaterialID
}

// Loop is an ordered, closed sequence of edges. The end vertex of each edge
// is the start vertex of the next.
type Loop struct {
	Edges []Edge
}

// Edge runs from Start to End. A curved underlying curve is carried as a
// polyline approximation in Approx (intermediate points, exclusive of the
// endpoints); straight edges leave Approx nil.
type Edge struct {
	Start, End geometry.Vector3
	Approx     []geometry.Vector3
}

// Curved reports whether the edge's underlying curve is not a straight line
func (e Edge) Curved() bool {
	return len(e.Approx) > 0
}

// IsEmpty reports whether the solid has no faces
func (s *Solid) IsEmpty() bool {
	return s == nil || len(s.Faces) == 0
}

// BoundingBox returns the axis-aligned bounds of all face vertices
func (s *Solid) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, f := range s.Faces {
		bbox.ExtendAll(f.Outer.Points())
		for _, inner := range f.Inner {
			bbox.ExtendAll(inner.Points())
		}
	}
	return bbox
}

// Points returns the loop boundary as an ordered vertex sequence, with
// curved edges flattened through their approximation points. The closing
// vertex is not repeated.
func (l *Loop) Points() []geometry.Vector3 {
	var points []geometry.Vector3
	for _, e := range l.Edges {
		points = append(points, e.Start)
		points = append(points, e.Approx...)
	}
	return points
}

// HasCurvedEdges reports whether any edge of the loop is curved
func (l *Loop) HasCurvedEdges() bool {
	for _, e := range l.Edges {
		if e.Curved() {
			return true
		}
	}
	return false
}

// LoopFromPoints builds a loop of straight edges through the given points,
// closing back to the first
func LoopFromPoints(points []geometry.Vector3) *Loop {
	loop := &Loop{Edges: make([]Edge, 0, len(points))}
	for i, p := range points {
		loop.Edges = append(loop.Edges, Edge{
			Start: p,
			End:   points[(i+1)%len(points)],
		})
	}
	return loop
}

// HasInnerLoops reports whether any face of the solid carries holes
func (s *Solid) HasInnerLoops() bool {
	for _, f := range s.Faces {
		if len(f.Inner) > 0 {
			return true
		}
	}
	return false
}
