package bim

import "github.com/vipasu/goifc/pkg/geometry"

// TriangleShell is the tessellation output format: an indexed vertex array
// plus triangle index triples, counter-clockwise seen from outside.
type TriangleShell struct {
	Vertices  []geometry.Vector3
	Triangles [][3]int
}

// Triangle materializes triangle i as a value with computed normal
func (s *TriangleShell) Triangle(i int) geometry.Triangle {
	tri := s.Triangles[i]
	t := geometry.Triangle{
		V1: s.Vertices[tri[0]],
		V2: s.Vertices[tri[1]],
		V3: s.Vertices[tri[2]],
	}
	t.Normal = t.CalculateNormal()
	return t
}

// BoundingBox returns the axis-aligned bounds of the shell vertices
func (s *TriangleShell) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	bbox.ExtendAll(s.Vertices)
	return bbox
}
