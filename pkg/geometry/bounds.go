package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// ExtendAll expands the bounding box to include every point
func (b *BoundingBox) ExtendAll(points []Vector3) {
	for _, p := range points {
		b.Extend(p)
	}
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Contains reports whether another box lies entirely inside this one,
// with eps slack on every side
func (b BoundingBox) Contains(other BoundingBox, eps float64) bool {
	return other.Min.X >= b.Min.X-eps && other.Min.Y >= b.Min.Y-eps && other.Min.Z >= b.Min.Z-eps &&
		other.Max.X <= b.Max.X+eps && other.Max.Y <= b.Max.Y+eps && other.Max.Z <= b.Max.Z+eps
}

// Empty reports whether the box has never been extended
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X
}
