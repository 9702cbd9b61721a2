package export

import (
	"fmt"

	"github.com/vipasu/goifc/pkg/bim"
	"github.com/vipasu/goifc/pkg/geometry"
)

// SplitDisjointVolumes separates a solid into its connected components: a
// single input solid from the host may represent several disconnected
// pieces (e.g. after clipping), and each piece must become its own shell.
// Faces are connected when they share an edge, with endpoints welded at
// tolerance eps. Returns the original solid untouched when it is already
// connected; otherwise new solids sharing the original's faces.
func SplitDisjointVolumes(s *bim.Solid, eps float64) []*bim.Solid {
	if len(s.Faces) < 2 {
		return []*bim.Solid{s}
	}

	parent := make([]int, len(s.Faces))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	// weld edge endpoints into fuzzy keys; faces sharing an undirected
	// edge belong to the same volume
	type edgeKey struct{ a, b geometry.FuzzyPoint }
	firstFace := make(map[edgeKey]int)
	for fi, f := range s.Faces {
		loops := append([]*bim.Loop{f.Outer}, f.Inner...)
		for _, loop := range loops {
			for _, e := range loop.Edges {
				a := geometry.NewFuzzyPoint(e.Start, eps)
				b := geometry.NewFuzzyPoint(e.End, eps)
				if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
					a, b = b, a
				}
				key := edgeKey{a, b}
				if other, ok := firstFace[key]; ok {
					union(fi, other)
				} else {
					firstFace[key] = fi
				}
			}
		}
	}

	components := make(map[int][]*bim.Face)
	var order []int
	for fi, f := range s.Faces {
		root := find(fi)
		if _, seen := components[root]; !seen {
			order = append(order, root)
		}
		components[root] = append(components[root], f)
	}

	if len(order) == 1 {
		return []*bim.Solid{s}
	}

	pieces := make([]*bim.Solid, 0, len(order))
	for i, root := range order {
		pieces = append(pieces, &bim.Solid{
			Name:  fmt.Sprintf("%s/%d", s.Name, i),
			Faces: components[root],
		})
	}
	return pieces
}
