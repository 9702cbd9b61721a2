// Package analysis measures solids and triangle shells: surface area,
// enclosed volume and edge statistics. The exporter uses these numbers as
// deduplication fingerprints; the CLI prints them for inspection.
package analysis

import (
	"math"

	"github.com/vipasu/goifc/pkg/bim"
)

// ShellMeasurements contains the aggregate measurements of a triangle shell
type ShellMeasurements struct {
	TriangleCount int
	EdgeCount     int
	SurfaceArea   float64
	Volume        float64
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// MeasureShell computes area, enclosed volume and edge statistics for a
// triangle shell. Volume uses the divergence theorem over signed tetrahedra
// against the origin, so it is only meaningful for closed shells; an
// inward-oriented shell yields a negative volume.
func MeasureShell(shell *bim.TriangleShell) ShellMeasurements {
	result := ShellMeasurements{
		TriangleCount: len(shell.Triangles),
		MinEdgeLength: math.MaxFloat64,
	}

	totalLength := 0.0
	for i := range shell.Triangles {
		tri := shell.Triangle(i)
		result.SurfaceArea += tri.Area()
		result.Volume += tri.V1.Dot(tri.V2.Cross(tri.V3)) / 6.0

		for _, length := range tri.EdgeLengths() {
			result.EdgeCount++
			totalLength += length
			if length < result.MinEdgeLength {
				result.MinEdgeLength = length
			}
			if length > result.MaxEdgeLength {
				result.MaxEdgeLength = length
			}
		}
	}

	if result.EdgeCount > 0 {
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	} else {
		result.MinEdgeLength = 0
	}
	return result
}

// SolidCounts returns the face and edge counts of a solid's topology,
// counting inner-loop edges as well
func SolidCounts(s *bim.Solid) (faces, edges int) {
	faces = len(s.Faces)
	for _, f := range s.Faces {
		edges += len(f.Outer.Edges)
		for _, inner := range f.Inner {
			edges += len(inner.Edges)
		}
	}
	return faces, edges
}
