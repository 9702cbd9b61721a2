package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/export"
	"github.com/vipasu/goifc/pkg/geometry"
	"github.com/vipasu/goifc/pkg/stl"
)

func cubeMesh(t *testing.T) *bim.Mesh {
	t.Helper()
	shell, err := bim.Box("cube", geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1), bim.MaterialNone).
		Tessellate(export.DefaultTolerance)
	require.NoError(t, err)
	return &bim.Mesh{Name: "cube", Shell: *shell}
}

func TestMeshProducesStepDocument(t *testing.T) {
	var buf bytes.Buffer
	summary, err := Mesh(&buf, cubeMesh(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, export.KindBrep, summary.Kind)
	assert.Equal(t, 12, summary.Triangles)
	assert.Equal(t, 1, summary.Items)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ISO-10303-21;"))
	assert.Contains(t, out, "IFCPROJECT")
	assert.Contains(t, out, "IFCBUILDINGELEMENTPROXY")
	assert.Contains(t, out, "IFCRELCONTAINEDINSPATIALSTRUCTURE")
	assert.Contains(t, out, "IFCFACETEDBREP")
	assert.Contains(t, out, "'Converted model'")
}

func TestMeshWithMaterial(t *testing.T) {
	opts := DefaultOptions()
	opts.Material = 1
	opts.MaterialDef = export.MaterialDef{Name: "Concrete", R: 0.7, G: 0.7, B: 0.65}

	var buf bytes.Buffer
	_, err := Mesh(&buf, cubeMesh(t), opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "IFCSURFACESTYLE")
	assert.Contains(t, buf.String(), "'Concrete'")
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cube.stl")
	output := filepath.Join(dir, "cube.ifc")

	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, stl.WriteBinary(f, cubeMesh(t)))
	require.NoError(t, f.Close())

	summary, err := File(input, output, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, export.KindBrep, summary.Kind)
	assert.Positive(t, summary.Entities)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "END-ISO-10303-21;")
}

func TestObjectsExtrusion(t *testing.T) {
	box := bim.Box("beam", geometry.NewVector3(0, 0, 0), geometry.NewVector3(4, 1, 1), bim.MaterialNone)

	var buf bytes.Buffer
	summary, err := Objects(&buf, "beam", []bim.GeometryObject{box}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, export.KindSweptSolid, summary.Kind)
	assert.Contains(t, buf.String(), "IFCEXTRUDEDAREASOLID")
}

func TestMeshNothingExportable(t *testing.T) {
	// a lone open triangle is still a surface model, but an empty object
	// list has nothing to say
	var buf bytes.Buffer
	_, err := Objects(&buf, "void", nil, DefaultOptions())
	assert.ErrorContains(t, err, "nothing exportable")
}
