package geometry

import (
	"math"
	"testing"
)

func TestPlaneFromPoints(t *testing.T) {
	p, ok := PlaneFromPoints(
		NewVector3(0, 0, 2),
		NewVector3(1, 0, 2),
		NewVector3(0, 1, 2),
		1e-9,
	)
	if !ok {
		t.Fatal("PlaneFromPoints failed on a valid triangle")
	}

	expected := NewVector3(0, 0, 1)
	if !p.Normal.FuzzyEquals(expected, 1e-10) {
		t.Errorf("Normal failed: expected %v, got %v", expected, p.Normal)
	}
	if math.Abs(p.D-2.0) > 1e-10 {
		t.Errorf("D failed: expected 2, got %v", p.D)
	}
}

func TestPlaneFromPointsCollinear(t *testing.T) {
	_, ok := PlaneFromPoints(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(2, 0, 0),
		1e-9,
	)
	if ok {
		t.Error("PlaneFromPoints should fail for collinear points")
	}
}

func TestPlaneFromPolygonNewell(t *testing.T) {
	// unit square in the z=1 plane, counter-clockwise seen from +z
	square := []Vector3{
		NewVector3(0, 0, 1),
		NewVector3(1, 0, 1),
		NewVector3(1, 1, 1),
		NewVector3(0, 1, 1),
	}

	p, ok := PlaneFromPolygon(square, 1e-9)
	if !ok {
		t.Fatal("PlaneFromPolygon failed on a valid square")
	}
	if !p.Normal.FuzzyEquals(NewVector3(0, 0, 1), 1e-10) {
		t.Errorf("Normal failed: got %v", p.Normal)
	}
	if !p.ContainsAll(square, 1e-10) {
		t.Error("ContainsAll failed for the square's own vertices")
	}
	if p.Contains(NewVector3(0, 0, 1.1), 1e-9) {
		t.Error("Contains failed: point off the plane reported on it")
	}
}

func TestPlanarKeyGroupsNearCoplanar(t *testing.T) {
	a, _ := PlaneFromPoints(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0), 1e-9)
	b, _ := PlaneFromPoints(NewVector3(0, 0, 1e-9), NewVector3(1, 0, 0), NewVector3(0, 1, 1e-9), 1e-9)

	if NewPlanarKey(a, 1e-6) != NewPlanarKey(b, 1e-6) {
		t.Error("PlanarKey failed: near-coplanar planes should share a key")
	}

	// opposite orientation must not share a key
	c := Plane{Normal: a.Normal.Negate(), D: -a.D}
	if NewPlanarKey(a, 1e-6) == NewPlanarKey(c, 1e-6) {
		t.Error("PlanarKey failed: opposite-facing planes must not share a key")
	}
}

func TestFuzzyPointWelding(t *testing.T) {
	a := NewFuzzyPoint(NewVector3(1, 2, 3), 1e-6)
	b := NewFuzzyPoint(NewVector3(1+1e-8, 2, 3-1e-8), 1e-6)
	c := NewFuzzyPoint(NewVector3(1.001, 2, 3), 1e-6)

	if a != b {
		t.Error("FuzzyPoint failed: points within eps should collapse")
	}
	if a == c {
		t.Error("FuzzyPoint failed: distinct points should not collapse")
	}
}
