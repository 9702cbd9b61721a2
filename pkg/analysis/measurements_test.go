package analysis

import (
	"math"
	"testing"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
)

func unitBoxShell(t *testing.T) *bim.TriangleShell {
	t.Helper()
	box := bim.Box("box", geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 3, 4), bim.MaterialNone)
	shell, err := box.Tessellate(1e-9)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	return shell
}

func TestMeasureShellBox(t *testing.T) {
	shell := unitBoxShell(t)
	m := MeasureShell(shell)

	if m.TriangleCount != 12 {
		t.Errorf("TriangleCount failed: expected 12, got %d", m.TriangleCount)
	}

	// 2x3x4 box: area 2*(6+8+12) = 52, volume 24
	if math.Abs(m.SurfaceArea-52.0) > 1e-9 {
		t.Errorf("SurfaceArea failed: expected 52, got %v", m.SurfaceArea)
	}
	if math.Abs(m.Volume-24.0) > 1e-9 {
		t.Errorf("Volume failed: expected 24, got %v", m.Volume)
	}
}

func TestMeasureShellInwardOrientation(t *testing.T) {
	shell := unitBoxShell(t)
	for i, tri := range shell.Triangles {
		shell.Triangles[i] = [3]int{tri[0], tri[2], tri[1]}
	}

	m := MeasureShell(shell)
	if m.Volume >= 0 {
		t.Errorf("Volume failed: inward shell should be negative, got %v", m.Volume)
	}
}

func TestSolidCounts(t *testing.T) {
	box := bim.Box("box", geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1), bim.MaterialNone)
	faces, edges := SolidCounts(box)

	if faces != 6 {
		t.Errorf("faces failed: expected 6, got %d", faces)
	}
	if edges != 24 {
		t.Errorf("edges failed: expected 24, got %d", edges)
	}
}
