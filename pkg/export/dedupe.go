package export

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
	"github.com/vipasu/goifc/pkg/ifc"
)

// SolidMetrics is a cheap geometric fingerprint: shapes that differ in any
// component are certainly different, shapes that agree are candidates for
// instancing. Pure value type, compared with fuzzy equality.
type SolidMetrics struct {
	FaceCount   int
	EdgeCount   int
	SurfaceArea float64
	Volume      float64
}

// MetricsEqual compares two fingerprints: counts exactly, measures within a
// relative eps
func MetricsEqual(a, b SolidMetrics, eps float64) bool {
	return a.FaceCount == b.FaceCount &&
		a.EdgeCount == b.EdgeCount &&
		relEqual(a.SurfaceArea, b.SurfaceArea, eps) &&
		relEqual(a.Volume, b.Volume, eps)
}

func relEqual(a, b, eps float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return geometry.FuzzyEqual(a, b, eps*scale)
}

// Deduplicator detects geometrically identical shells differing only by a
// rigid transform, so repeated shapes share one representation map.
// Experimental and off by default: a miss costs nothing but file size.
type Deduplicator struct {
	eps     float64
	entries []*DedupeEntry
}

// DedupeEntry is one registered reference shape
type DedupeEntry struct {
	Metrics SolidMetrics
	Shell   *bim.TriangleShell
	// MapHandle is the IfcRepresentationMap for this shape, filled in by
	// the exporter after the first instance is written
	MapHandle ifc.Handle

	frame shellFrame
}

// NewDeduplicator creates an empty deduplicator with tolerance eps
func NewDeduplicator(eps float64) *Deduplicator {
	return &Deduplicator{eps: eps}
}

// Match looks for a registered shape identical to the given shell up to a
// rigid transform. On success it returns the matching entry and the
// transform placing the registered shape at this instance.
func (d *Deduplicator) Match(metrics SolidMetrics, shell *bim.TriangleShell) (*DedupeEntry, geometry.RigidTransform, bool) {
	frame, ok := newShellFrame(shell, d.eps)
	if !ok {
		return nil, geometry.RigidTransform{}, false
	}
	for _, entry := range d.entries {
		if !MetricsEqual(entry.Metrics, metrics, d.eps) {
			continue
		}
		transform := frameTransform(entry.frame, frame)
		if verifyTransform(entry.Shell, shell, transform, d.eps) {
			return entry, transform, true
		}
	}
	return nil, geometry.RigidTransform{}, false
}

// Register adds a shell as a new reference shape
func (d *Deduplicator) Register(metrics SolidMetrics, shell *bim.TriangleShell) *DedupeEntry {
	frame, ok := newShellFrame(shell, d.eps)
	if !ok {
		return nil
	}
	entry := &DedupeEntry{Metrics: metrics, Shell: shell, frame: frame}
	d.entries = append(d.entries, entry)
	return entry
}

// shellFrame is a canonical orthonormal frame attached to a shell: its
// vertex centroid plus a basis derived from the first well-formed triangle.
// Two rigid copies of the same shell yield frames related by exactly the
// rigid transform between the copies.
type shellFrame struct {
	origin  r3.Vec
	x, y, z r3.Vec
}

func newShellFrame(shell *bim.TriangleShell, eps float64) (shellFrame, bool) {
	if len(shell.Vertices) == 0 {
		return shellFrame{}, false
	}

	var centroid r3.Vec
	for _, v := range shell.Vertices {
		centroid = r3.Add(centroid, vec(v))
	}
	centroid = r3.Scale(1/float64(len(shell.Vertices)), centroid)

	for _, tri := range shell.Triangles {
		a := vec(shell.Vertices[tri[0]])
		b := vec(shell.Vertices[tri[1]])
		c := vec(shell.Vertices[tri[2]])

		ab := r3.Sub(b, a)
		ac := r3.Sub(c, a)
		n := r3.Cross(ab, ac)
		if r3.Norm(n) < eps {
			continue
		}
		x := r3.Unit(ab)
		z := r3.Unit(n)
		return shellFrame{origin: centroid, x: x, y: r3.Cross(z, x), z: z}, true
	}
	return shellFrame{}, false
}

// frameTransform returns the rigid transform carrying frame a onto frame b
func frameTransform(a, b shellFrame) geometry.RigidTransform {
	// rotation R = [b.x b.y b.z] * [a.x a.y a.z]^T; column i of R is the
	// image of world axis i
	col := func(ax, ay, az float64) geometry.Vector3 {
		v := r3.Add(r3.Scale(ax, b.x), r3.Add(r3.Scale(ay, b.y), r3.Scale(az, b.z)))
		return geometry.NewVector3(v.X, v.Y, v.Z)
	}
	t := geometry.RigidTransform{
		XAxis: col(a.x.X, a.y.X, a.z.X),
		YAxis: col(a.x.Y, a.y.Y, a.z.Y),
		ZAxis: col(a.x.Z, a.y.Z, a.z.Z),
	}
	rotatedOrigin := t.Apply(geometry.NewVector3(a.origin.X, a.origin.Y, a.origin.Z))
	t.Origin = geometry.NewVector3(b.origin.X, b.origin.Y, b.origin.Z).Sub(rotatedOrigin)
	return t
}

// verifyTransform checks vertex-by-vertex that the transform maps the
// reference shell onto the candidate. Welded duplicates produced from the
// same construction order keep their vertex order, so pairwise comparison
// suffices; any reordering simply fails the match and skips deduplication.
func verifyTransform(ref, candidate *bim.TriangleShell, t geometry.RigidTransform, eps float64) bool {
	if len(ref.Vertices) != len(candidate.Vertices) || len(ref.Triangles) != len(candidate.Triangles) {
		return false
	}
	for i, v := range ref.Vertices {
		if !t.Apply(v).FuzzyEquals(candidate.Vertices[i], eps) {
			return false
		}
	}
	return true
}

func vec(v geometry.Vector3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
