package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
	"github.com/vipasu/goifc/pkg/ifc"
)

func newTestExporter(opts Options) (*ifc.File, *BodyExporter) {
	file := ifc.NewFile("test.ifc")
	session := NewSession(file, ifc.Nil, opts.Tolerance)
	return file, NewBodyExporter(session, opts)
}

func stepOutput(t *testing.T, file *ifc.File) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, file.WriteSTEP(&buf))
	return buf.String()
}

func TestExportEmptyInput(t *testing.T) {
	_, exporter := newTestExporter(DefaultOptions())

	result, err := exporter.Export("empty", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestExportCompletelyClipped(t *testing.T) {
	file, exporter := newTestExporter(DefaultOptions())

	_, err := exporter.Export("clipped", []bim.GeometryObject{&bim.Solid{Name: "gone"}}, nil)
	assert.ErrorIs(t, err, ErrCompletelyClipped)
	assert.Zero(t, file.Count(), "a clipped body must leave no entities behind")
}

func TestExportCubeExtrusion(t *testing.T) {
	file, exporter := newTestExporter(DefaultOptions())
	box := bim.Box("cube", v3(0, 0, 0), v3(2, 2, 2), bim.MaterialNone)

	result, err := exporter.Export("cube", []bim.GeometryObject{box}, nil)
	require.NoError(t, err)

	assert.Equal(t, KindSweptSolid, result.Kind)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, geometry.Vector3{}, result.Offset, "extrusions are never recentered")

	out := stepOutput(t, file)
	assert.Contains(t, out, "IFCEXTRUDEDAREASOLID")
	assert.NotContains(t, out, "IFCFACETEDBREP")
	assert.Contains(t, out, "'SweptSolid'")
}

func TestExportCubeBrep(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	file, exporter := newTestExporter(opts)
	box := bim.Box("cube", v3(0, 0, 0), v3(2, 2, 2), bim.MaterialNone)

	result, err := exporter.Export("cube", []bim.GeometryObject{box}, nil)
	require.NoError(t, err)

	assert.Equal(t, KindBrep, result.Kind)
	assert.True(t, result.Offset.FuzzyEquals(v3(1, 1, 1), DefaultTolerance),
		"faceted geometry is recentered on its bounding-box center")

	out := stepOutput(t, file)
	assert.Contains(t, out, "IFCFACETEDBREP")
	assert.Equal(t, 6, strings.Count(out, "IFCFACE("))
	assert.Equal(t, 1, strings.Count(out, "IFCCLOSEDSHELL("))
}

func TestExportMeshBrep(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	file, exporter := newTestExporter(opts)

	shell, err := bim.Box("cube", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone).Tessellate(DefaultTolerance)
	require.NoError(t, err)
	mesh := &bim.Mesh{Name: "cube", Shell: *shell}

	result, err := exporter.Export("cube", []bim.GeometryObject{mesh}, nil)
	require.NoError(t, err)

	// 12 triangles merge back into the 6 quads of the cube
	assert.Equal(t, KindBrep, result.Kind)
	out := stepOutput(t, file)
	assert.Equal(t, 6, strings.Count(out, "IFCPOLYLOOP("))
}

func TestExportMeshUnmerged(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	opts.MergeCoplanarFacets = false
	file, exporter := newTestExporter(opts)

	shell, err := bim.Box("cube", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone).Tessellate(DefaultTolerance)
	require.NoError(t, err)
	mesh := &bim.Mesh{Name: "cube", Shell: *shell}

	_, err = exporter.Export("cube", []bim.GeometryObject{mesh}, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, strings.Count(stepOutput(t, file), "IFCPOLYLOOP("))
}

func TestExportAllOrNothing(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	file, exporter := newTestExporter(opts)

	open := &bim.Solid{
		Name:  "open",
		Faces: bim.Box("tmp", v3(10, 0, 0), v3(11, 1, 1), bim.MaterialNone).Faces[:5],
	}
	objects := []bim.GeometryObject{
		bim.Box("a", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone),
		bim.Box("b", v3(5, 0, 0), v3(6, 1, 1), bim.MaterialNone),
		open,
	}

	result, err := exporter.Export("trio", objects, nil)
	require.NoError(t, err)

	// one open shell demotes every sibling to a surface model
	assert.Equal(t, KindSurfaceModel, result.Kind)
	assert.Len(t, result.Items, 3)

	out := stepOutput(t, file)
	assert.Equal(t, 3, strings.Count(out, "IFCFACEBASEDSURFACEMODEL("))
	assert.NotContains(t, out, "IFCFACETEDBREP")
	assert.NotContains(t, out, "IFCCLOSEDSHELL")
}

func TestExportMixedRepresentationsDisallowed(t *testing.T) {
	file, exporter := newTestExporter(DefaultOptions())

	objects := []bim.GeometryObject{
		bim.Box("box", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone),
		testTetrahedron(),
	}

	result, err := exporter.Export("pair", objects, nil)
	require.NoError(t, err)

	// the tetrahedron cannot extrude, so the box must not either
	assert.Equal(t, KindBrep, result.Kind)
	assert.Len(t, result.Items, 2)

	out := stepOutput(t, file)
	assert.NotContains(t, out, "IFCEXTRUDEDAREASOLID")
	assert.Equal(t, 2, strings.Count(out, "IFCFACETEDBREP("))
}

func TestExportMixedRepresentationsAllowed(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowMixedRepresentations = true
	file, exporter := newTestExporter(opts)

	objects := []bim.GeometryObject{
		bim.Box("box", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone),
		testTetrahedron(),
	}

	result, err := exporter.Export("pair", objects, nil)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, geometry.Vector3{}, result.Offset, "mixed bodies stay in world coordinates")

	out := stepOutput(t, file)
	assert.Contains(t, out, "IFCEXTRUDEDAREASOLID")
	assert.Contains(t, out, "IFCFACETEDBREP")
	assert.Contains(t, out, "'SolidModel'")
}

func TestExportDeduplication(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	opts.EnableMapping = true
	file, exporter := newTestExporter(opts)

	objects := []bim.GeometryObject{
		bim.Box("a", v3(0, 0, 0), v3(2, 1, 1), bim.MaterialNone),
		bim.Box("b", v3(10, 10, 0), v3(12, 11, 1), bim.MaterialNone),
	}

	result, err := exporter.Export("twins", objects, nil)
	require.NoError(t, err)

	assert.Equal(t, KindMappedItem, result.Kind)
	assert.Len(t, result.Items, 2)

	out := stepOutput(t, file)
	assert.Equal(t, 1, strings.Count(out, "IFCREPRESENTATIONMAP("), "twins share one map")
	assert.Equal(t, 2, strings.Count(out, "IFCMAPPEDITEM("))
	assert.Equal(t, 1, strings.Count(out, "IFCFACETEDBREP("))
	assert.Contains(t, out, "'MappedRepresentation'")
}

func TestExportSurfaceStyles(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	file, exporter := newTestExporter(opts)
	exporter.session.RegisterMaterial(matSteel, MaterialDef{Name: "Steel", R: 0.4, G: 0.4, B: 0.45})

	box := bim.Box("beam", v3(0, 0, 0), v3(1, 1, 1), matSteel)
	result, err := exporter.Export("beam", []bim.GeometryObject{box}, nil)
	require.NoError(t, err)

	assert.Equal(t, []bim.MaterialID{matSteel}, result.Materials)

	out := stepOutput(t, file)
	assert.Contains(t, out, "IFCSTYLEDITEM")
	assert.Contains(t, out, "IFCSURFACESTYLE")
	assert.Contains(t, out, "'Steel'")
}

func TestExportUnregisteredMaterialHasNoStyle(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	file, exporter := newTestExporter(opts)

	box := bim.Box("beam", v3(0, 0, 0), v3(1, 1, 1), matGlass)
	result, err := exporter.Export("beam", []bim.GeometryObject{box}, nil)
	require.NoError(t, err)

	assert.Equal(t, []bim.MaterialID{matGlass}, result.Materials)
	assert.NotContains(t, stepOutput(t, file), "IFCSTYLEDITEM")
}

func TestExportCavityBecomesVoid(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	file, exporter := newTestExporter(opts)

	outer := bim.Box("outer", v3(0, 0, 0), v3(4, 4, 4), bim.MaterialNone)
	cavity := invertSolid(bim.Box("cavity", v3(1, 1, 1), v3(3, 3, 3), bim.MaterialNone))
	hollow := &bim.Solid{Name: "hollow", Faces: append(append([]*bim.Face{}, outer.Faces...), cavity.Faces...)}

	result, err := exporter.Export("hollow", []bim.GeometryObject{hollow}, nil)
	require.NoError(t, err)

	// the inward-oriented inner shell is carved out, not emitted standalone
	assert.Equal(t, KindBrep, result.Kind)
	assert.Len(t, result.Items, 1)

	out := stepOutput(t, file)
	assert.Equal(t, 1, strings.Count(out, "IFCFACETEDBREPWITHVOIDS("))
	assert.Equal(t, 2, strings.Count(out, "IFCCLOSEDSHELL("))
}

func TestExportSkipsUnbuildableItem(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	file, exporter := newTestExporter(opts)

	// a curved face with a hole survives neither the planar fast path nor
	// fan triangulation; the sibling box must still export
	arc := bim.Edge{
		Start:  v3(0, 0, 0),
		End:    v3(2, 0, 0),
		Approx: []geometry.Vector3{v3(1, 0, 1)},
	}
	bad := &bim.Solid{Name: "bad", Faces: []*bim.Face{{
		Outer: &bim.Loop{Edges: []bim.Edge{arc, {Start: v3(2, 0, 0), End: v3(0, 0, 0)}}},
		Inner: []*bim.Loop{bim.LoopFromPoints([]geometry.Vector3{v3(0.5, 0, 0.1), v3(1, 0, 0.2), v3(1.5, 0, 0.1)})},
	}}}

	objects := []bim.GeometryObject{
		bad,
		bim.Box("good", v3(10, 0, 0), v3(11, 1, 1), bim.MaterialNone),
	}

	result, err := exporter.Export("partial", objects, nil)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 1, strings.Count(stepOutput(t, file), "IFCFACETEDBREP("))
}

func TestExportRecentersFarGeometry(t *testing.T) {
	opts := DefaultOptions()
	opts.TryExtrusion = false
	_, exporter := newTestExporter(opts)

	box := bim.Box("far", v3(1000, 2000, 0), v3(1001, 2001, 1), bim.MaterialNone)
	result, err := exporter.Export("far", []bim.GeometryObject{box}, nil)
	require.NoError(t, err)

	assert.True(t, result.Offset.FuzzyEquals(v3(1000.5, 2000.5, 0.5), DefaultTolerance))
}

func testTetrahedron() *bim.Solid {
	return &bim.Solid{Name: "tetra", Faces: []*bim.Face{
		{Outer: bim.LoopFromPoints([]geometry.Vector3{v3(0, 0, 0), v3(0, 1, 0), v3(1, 0, 0)})},
		{Outer: bim.LoopFromPoints([]geometry.Vector3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 0, 1)})},
		{Outer: bim.LoopFromPoints([]geometry.Vector3{v3(0, 0, 0), v3(0, 0, 1), v3(0, 1, 0)})},
		{Outer: bim.LoopFromPoints([]geometry.Vector3{v3(1, 0, 0), v3(0, 1, 0), v3(0, 0, 1)})},
	}}
}

// invertSolid flips every face of a solid inside out
func invertSolid(s *bim.Solid) *bim.Solid {
	return transformSolidLoops(s, func(points []geometry.Vector3) []geometry.Vector3 {
		return reversePoints(points)
	})
}

func transformSolidLoops(s *bim.Solid, f func([]geometry.Vector3) []geometry.Vector3) *bim.Solid {
	result := &bim.Solid{Name: s.Name}
	for _, face := range s.Faces {
		mapped := &bim.Face{Outer: bim.LoopFromPoints(f(face.Outer.Points())), Material: face.Material}
		for _, inner := range face.Inner {
			mapped.Inner = append(mapped.Inner, bim.LoopFromPoints(f(inner.Points())))
		}
		result.Faces = append(result.Faces, mapped)
	}
	return result
}
