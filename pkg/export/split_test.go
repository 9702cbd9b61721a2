package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipasu/goifc/pkg/bim"
)

func TestSplitDisjointVolumesConnected(t *testing.T) {
	box := bim.Box("one", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone)

	pieces := SplitDisjointVolumes(box, DefaultTolerance)
	require.Len(t, pieces, 1)
	assert.Same(t, box, pieces[0], "a connected solid passes through untouched")
}

func TestSplitDisjointVolumesTwoCubes(t *testing.T) {
	a := bim.Box("a", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone)
	b := bim.Box("b", v3(5, 0, 0), v3(6, 1, 1), bim.MaterialNone)
	combined := &bim.Solid{Name: "pair", Faces: append(append([]*bim.Face{}, a.Faces...), b.Faces...)}

	pieces := SplitDisjointVolumes(combined, DefaultTolerance)
	require.Len(t, pieces, 2)
	assert.Equal(t, "pair/0", pieces[0].Name)
	assert.Equal(t, "pair/1", pieces[1].Name)
	assert.Len(t, pieces[0].Faces, 6)
	assert.Len(t, pieces[1].Faces, 6)
	assert.Equal(t, a.Faces[0], pieces[0].Faces[0])
	assert.Equal(t, b.Faces[0], pieces[1].Faces[0])
}

func TestSplitDisjointVolumesTouchingCorner(t *testing.T) {
	// cubes sharing only a corner vertex share no edge, so they split
	a := bim.Box("a", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone)
	b := bim.Box("b", v3(1, 1, 1), v3(2, 2, 2), bim.MaterialNone)
	combined := &bim.Solid{Name: "corner", Faces: append(append([]*bim.Face{}, a.Faces...), b.Faces...)}

	pieces := SplitDisjointVolumes(combined, DefaultTolerance)
	assert.Len(t, pieces, 2)
}

func TestSplitDisjointVolumesSingleFace(t *testing.T) {
	s := &bim.Solid{Name: "flat", Faces: bim.Box("x", v3(0, 0, 0), v3(1, 1, 1), bim.MaterialNone).Faces[:1]}
	pieces := SplitDisjointVolumes(s, DefaultTolerance)
	require.Len(t, pieces, 1)
	assert.Same(t, s, pieces[0])
}
