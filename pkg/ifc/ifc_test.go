package ifc

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vipasu/goifc/pkg/geometry"
)

func TestGlobalIDFormat(t *testing.T) {
	id := NewGlobalID()
	assert.Len(t, id, 22)
	for _, c := range id {
		assert.Contains(t, ifcBase64, string(c))
	}
}

func TestCompressGUIDLeadingDigit(t *testing.T) {
	// 22 base64 digits hold 132 bits; the top digit only ever carries the
	// 2 high bits of the 128-bit UUID, so it stays in "0123".
	var max uuid.UUID
	for i := range max {
		max[i] = 0xFF
	}
	got := compressGUID(max)
	assert.Equal(t, "3", got[:1])
	assert.Equal(t, strings.Repeat("$", 21), got[1:])

	assert.Equal(t, strings.Repeat("0", 22), compressGUID(uuid.UUID{}))
}

func TestMarkRollback(t *testing.T) {
	f := NewFile("test")
	f.CartesianPoint(geometry.NewVector3(0, 0, 0))

	mark := f.Mark()
	f.CartesianPoint(geometry.NewVector3(1, 1, 1))
	f.Direction(geometry.NewVector3(0, 0, 1))
	require.Equal(t, 3, f.Count())

	f.Rollback(mark)
	assert.Equal(t, 1, f.Count())

	// handles allocated after a rollback reuse the discarded ids
	h := f.CartesianPoint(geometry.NewVector3(2, 2, 2))
	assert.Equal(t, Handle(2), h)
}

func TestWriteSTEPCube(t *testing.T) {
	f := NewFile("cube.ifc")
	skeleton := f.NewSkeleton("Test Project", 1e-9)

	loop := f.PolyLoop([]geometry.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	})
	face := f.Face([]Handle{f.FaceOuterBound(loop, true)})
	shell := f.ClosedShell([]Handle{face})
	brep := f.FacetedBrep(shell)
	shape := f.ShapeRepresentation(skeleton.Context, "Body", "Brep", []Handle{brep})
	pds := f.ProductDefinitionShape([]Handle{shape})
	skeleton.AddProxyElement(f, "box", pds, geometry.Vector3{})
	skeleton.Finish(f)

	var sb strings.Builder
	err := f.writeSTEP(&sb, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "ISO-10303-21;\n"))
	assert.True(t, strings.HasSuffix(out, "END-ISO-10303-21;\n"))
	assert.Contains(t, out, "FILE_SCHEMA(('IFC4'));")
	assert.Contains(t, out, "'2026-01-02T03:04:05'")
	assert.Contains(t, out, "IFCFACETEDBREP(")
	assert.Contains(t, out, "IFCPROJECT(")
	assert.Contains(t, out, "IFCRELCONTAINEDINSPATIALSTRUCTURE(")
	// entity ids are dense and 1-based
	assert.Contains(t, out, "#1=")
}

func TestEncodeValue(t *testing.T) {
	assert.Equal(t, "$", encodeValue(nil))
	assert.Equal(t, "*", encodeValue(derived{}))
	assert.Equal(t, "$", encodeValue(Nil))
	assert.Equal(t, "#42", encodeValue(Handle(42)))
	assert.Equal(t, ".T.", encodeValue(true))
	assert.Equal(t, ".AREA.", encodeValue(enum("AREA")))
	assert.Equal(t, "'it''s'", encodeValue("it's"))
	assert.Equal(t, "1.", encodeValue(1.0))
	assert.Equal(t, "0.5", encodeValue(0.5))
	assert.Equal(t, "(1.,2.5)", encodeValue([]any{1.0, 2.5}))
}
