package bim

import (
	"testing"

	"github.com/vipasu/goifc/pkg/geometry"
)

func TestBoxTessellate(t *testing.T) {
	box := Box("cube", geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1), MaterialNone)

	shell, err := box.Tessellate(1e-6)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(shell.Triangles) != 12 {
		t.Errorf("expected 12 triangles, got %d", len(shell.Triangles))
	}
	if len(shell.Vertices) != 8 {
		t.Errorf("expected 8 welded vertices, got %d", len(shell.Vertices))
	}
}

func TestTessellateRejectsHoles(t *testing.T) {
	face := &Face{
		Outer: LoopFromPoints([]geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(4, 0, 0),
			geometry.NewVector3(4, 4, 0),
			geometry.NewVector3(0, 4, 0),
		}),
		Inner: []*Loop{LoopFromPoints([]geometry.Vector3{
			geometry.NewVector3(1, 1, 0),
			geometry.NewVector3(3, 1, 0),
			geometry.NewVector3(3, 3, 0),
			geometry.NewVector3(1, 3, 0),
		})},
	}
	s := &Solid{Name: "holed", Faces: []*Face{face}}

	if _, err := s.Tessellate(1e-6); err == nil {
		t.Error("expected an error for a face with holes")
	}
}

func TestMeshBuilderWelding(t *testing.T) {
	b := NewMeshBuilder("m", 1e-3)
	a := geometry.NewVector3(0, 0, 0)
	c := geometry.NewVector3(1, 0, 0)
	d := geometry.NewVector3(0, 1, 0)
	// within welding distance of a
	aJittered := geometry.NewVector3(1e-5, -1e-5, 0)

	b.Add(a, c, d)
	b.Add(aJittered, d, geometry.NewVector3(-1, 0, 0))

	mesh := b.Mesh()
	if len(mesh.Shell.Vertices) != 4 {
		t.Errorf("expected 4 vertices after welding, got %d", len(mesh.Shell.Vertices))
	}
	if mesh.Shell.Triangles[0][0] != mesh.Shell.Triangles[1][0] {
		t.Error("jittered vertex should weld onto the first vertex")
	}
}

func TestLoopPointsFlattenCurves(t *testing.T) {
	loop := &Loop{Edges: []Edge{
		{
			Start:  geometry.NewVector3(0, 0, 0),
			End:    geometry.NewVector3(2, 0, 0),
			Approx: []geometry.Vector3{geometry.NewVector3(1, 0.5, 0)},
		},
		{Start: geometry.NewVector3(2, 0, 0), End: geometry.NewVector3(1, 2, 0)},
		{Start: geometry.NewVector3(1, 2, 0), End: geometry.NewVector3(0, 0, 0)},
	}}

	points := loop.Points()
	if len(points) != 4 {
		t.Fatalf("expected 4 boundary points, got %d", len(points))
	}
	if !loop.HasCurvedEdges() {
		t.Error("loop with approximation points must report curved edges")
	}
}
