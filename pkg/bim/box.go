package bim

import "github.com/vipasu/goifc/pkg/geometry"

// Box builds an axis-aligned box solid with outward face normals. Handy for
// programmatic geometry and as the canonical closed-shell fixture.
func Box(name string, min, max geometry.Vector3, material MaterialID) *Solid {
	v := func(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

	p000 := v(min.X, min.Y, min.Z)
	p100 := v(max.X, min.Y, min.Z)
	p110 := v(max.X, max.Y, min.Z)
	p010 := v(min.X, max.Y, min.Z)
	p001 := v(min.X, min.Y, max.Z)
	p101 := v(max.X, min.Y, max.Z)
	p111 := v(max.X, max.Y, max.Z)
	p011 := v(min.X, max.Y, max.Z)

	quads := [][]geometry.Vector3{
		{p000, p010, p110, p100}, // bottom, normal -z
		{p001, p101, p111, p011}, // top, normal +z
		{p000, p100, p101, p001}, // front, normal -y
		{p110, p010, p011, p111}, // back, normal +y
		{p010, p000, p001, p011}, // left, normal -x
		{p100, p110, p111, p101}, // right, normal +x
	}

	solid := &Solid{Name: name}
	for _, quad := range quads {
		solid.Faces = append(solid.Faces, &Face{
			Outer:    LoopFromPoints(quad),
			Material: material,
		})
	}
	return solid
}
