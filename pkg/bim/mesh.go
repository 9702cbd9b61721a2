package bim

import "github.com/vipasu/goifc/pkg/geometry"

// Mesh is a flat triangle soup with no topology and at most one material
// tag for the whole mesh.
type Mesh struct {
	Name     string
	Material MaterialID
	Shell    TriangleShell
}

// IsEmpty reports whether the mesh has no triangles
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Shell.Triangles) == 0
}

// BoundingBox returns the axis-aligned bounds of the mesh vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	bbox.ExtendAll(m.Shell.Vertices)
	return bbox
}

// MeshBuilder accumulates loose triangles into an indexed mesh, welding
// vertices that coincide within eps so shared edges become detectable.
type MeshBuilder struct {
	mesh  *Mesh
	eps   float64
	index map[geometry.FuzzyPoint]int
}

// NewMeshBuilder creates a builder welding vertices at tolerance eps
func NewMeshBuilder(name string, eps float64) *MeshBuilder {
	return &MeshBuilder{
		mesh:  &Mesh{Name: name},
		eps:   eps,
		index: make(map[geometry.FuzzyPoint]int),
	}
}

// Add appends one triangle, reusing previously seen vertices
func (b *MeshBuilder) Add(v1, v2, v3 geometry.Vector3) {
	b.mesh.Shell.Triangles = append(b.mesh.Shell.Triangles, [3]int{
		b.vertex(v1), b.vertex(v2), b.vertex(v3),
	})
}

func (b *MeshBuilder) vertex(v geometry.Vector3) int {
	key := geometry.NewFuzzyPoint(v, b.eps)
	if i, ok := b.index[key]; ok {
		return i
	}
	i := len(b.mesh.Shell.Vertices)
	b.mesh.Shell.Vertices = append(b.mesh.Shell.Vertices, v)
	b.index[key] = i
	return i
}

// Mesh returns the accumulated mesh
func (b *MeshBuilder) Mesh() *Mesh {
	return b.mesh
}
