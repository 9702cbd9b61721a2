package bim

import (
	"fmt"

	"github.com/vipasu/goifc/pkg/geometry"
)

// Tessellate converts the solid's boundary into a triangle shell. Vertices
// are welded at tolerance eps so triangles from neighbouring faces share
// indices. Each face is fan-triangulated from its first boundary vertex;
// faces with inner loops are rejected because a fan cannot represent holes
// (callers recover by falling back to a less compact representation).
func (s *Solid) Tessellate(eps float64) (*TriangleShell, error) {
	builder := NewMeshBuilder(s.Name, eps)
	for i, f := range s.Faces {
		if len(f.Inner) > 0 {
			return nil, fmt.Errorf("face %d of solid %q has holes, not tessellatable", i, s.Name)
		}
		points := f.Outer.Points()
		if len(points) < 3 {
			return nil, fmt.Errorf("face %d of solid %q has a degenerate boundary", i, s.Name)
		}
		if err := fanTriangulate(builder, points); err != nil {
			return nil, fmt.Errorf("face %d of solid %q: %w", i, s.Name, err)
		}
	}
	return &builder.Mesh().Shell, nil
}

// fanTriangulate emits a triangle fan anchored at the first vertex.
// Correct for convex boundaries; concave planar boundaries keep working as
// long as the anchor sees every other vertex.
func fanTriangulate(builder *MeshBuilder, points []geometry.Vector3) error {
	anchor := points[0]
	for i := 1; i < len(points)-1; i++ {
		builder.Add(anchor, points[i], points[i+1])
	}
	return nil
}
