package export

import (
	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
)

// Facet is one polygonal face reconstructed from triangles: an ordered
// cycle of vertex indices into the originating shell.
type Facet struct {
	Indices []int
}

// MergeCoplanarFacets reduces a triangulated shell to maximal planar
// polygonal facets. Triangles are grouped by their carrier plane (quantized
// normal and origin distance, so near-coplanar triangles group together),
// then each group is grown greedily: starting from an unvisited triangle,
// adjacent triangles sharing a boundary edge are spliced into the facet's
// boundary cycle one at a time.
//
// Growing is abandoned for a whole planar group the moment a splice would
// insert a vertex already on the boundary, which signals a non-simple
// polygon; the group's original triangles are emitted unmerged instead.
// Degenerate triangles whose plane cannot be computed are always emitted as
// single-triangle facets.
//
// The traversal order is fixed by triangle index, so output is
// deterministic and repeated runs produce identical facets.
func MergeCoplanarFacets(shell *bim.TriangleShell, eps float64) []Facet {
	groups := make(map[geometry.PlanarKey][]int)
	var groupOrder []geometry.PlanarKey
	var degenerate []int

	for i, tri := range shell.Triangles {
		plane, ok := geometry.PlaneFromPoints(
			shell.Vertices[tri[0]],
			shell.Vertices[tri[1]],
			shell.Vertices[tri[2]],
			eps,
		)
		if !ok {
			degenerate = append(degenerate, i)
			continue
		}
		key := geometry.NewPlanarKey(plane, eps)
		if _, seen := groups[key]; !seen {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], i)
	}

	var facets []Facet
	for _, key := range groupOrder {
		facets = append(facets, mergeGroup(shell, groups[key])...)
	}
	for _, i := range degenerate {
		facets = append(facets, triangleFacet(shell.Triangles[i]))
	}
	return facets
}

// mergeGroup grows polygonal facets within one coplanar triangle group,
// falling back to the raw triangles if any facet turns non-simple
func mergeGroup(shell *bim.TriangleShell, tris []int) []Facet {
	if len(tris) == 1 {
		return []Facet{triangleFacet(shell.Triangles[tris[0]])}
	}

	// a neighbour of boundary edge (a,b) is the triangle holding the
	// directed edge (b,a); same-direction duplicates never merge
	type dedge struct{ a, b int }
	byEdge := make(map[dedge][]int, len(tris)*3)
	for _, ti := range tris {
		tri := shell.Triangles[ti]
		for k := 0; k < 3; k++ {
			byEdge[dedge{tri[k], tri[(k+1)%3]}] = append(byEdge[dedge{tri[k], tri[(k+1)%3]}], ti)
		}
	}

	used := make(map[int]bool, len(tris))
	takeNeighbour := func(a, b int) (int, bool) {
		for _, ti := range byEdge[dedge{b, a}] {
			if !used[ti] {
				return ti, true
			}
		}
		return 0, false
	}

	var merged []Facet
	for _, seed := range tris {
		if used[seed] {
			continue
		}
		used[seed] = true
		tri := shell.Triangles[seed]
		ring := newBoundaryRing(tri[0], tri[1], tri[2])

		for grown := true; grown; {
			grown = false
			for i := 0; i < ring.len(); i++ {
				a, b := ring.edge(i)
				ti, ok := takeNeighbour(a, b)
				if !ok {
					continue
				}
				v := thirdVertex(shell.Triangles[ti], a, b)
				if ring.contains(v) {
					// splicing v would pinch the boundary into a
					// non-simple polygon: give up on this whole plane
					return rawTriangles(shell, tris)
				}
				used[ti] = true
				ring.spliceAfter(i, v)
				grown = true
			}
		}
		merged = append(merged, Facet{Indices: ring.indices()})
	}
	return merged
}

func rawTriangles(shell *bim.TriangleShell, tris []int) []Facet {
	facets := make([]Facet, len(tris))
	for i, ti := range tris {
		facets[i] = triangleFacet(shell.Triangles[ti])
	}
	return facets
}

func triangleFacet(tri [3]int) Facet {
	return Facet{Indices: []int{tri[0], tri[1], tri[2]}}
}

// thirdVertex returns the vertex of tri that is neither a nor b
func thirdVertex(tri [3]int, a, b int) int {
	for _, v := range tri {
		if v != a && v != b {
			return v
		}
	}
	return tri[0]
}
