package export

// boundaryRing is the mutable cyclic vertex sequence a facet boundary grows
// on: an index-based doubly linked structure over a flat node slice, so
// splicing a vertex into the middle of the cycle is O(1) and no pointers
// escape.
type boundaryRing struct {
	nodes   []ringNode
	head    int
	present map[int]bool
}

type ringNode struct {
	vertex     int
	prev, next int
}

// newBoundaryRing starts a cycle from a triangle's three vertices
func newBoundaryRing(a, b, c int) *boundaryRing {
	r := &boundaryRing{
		nodes: []ringNode{
			{vertex: a, prev: 2, next: 1},
			{vertex: b, prev: 0, next: 2},
			{vertex: c, prev: 1, next: 0},
		},
		present: map[int]bool{a: true, b: true, c: true},
	}
	return r
}

func (r *boundaryRing) len() int {
	return len(r.nodes)
}

// edge returns the i-th directed boundary edge, counted from the head node
func (r *boundaryRing) edge(i int) (int, int) {
	n := r.node(i)
	return r.nodes[n].vertex, r.nodes[r.nodes[n].next].vertex
}

// node returns the slice position of the i-th node along the cycle
func (r *boundaryRing) node(i int) int {
	n := r.head
	for ; i > 0; i-- {
		n = r.nodes[n].next
	}
	return n
}

// contains reports whether a vertex is already on the boundary
func (r *boundaryRing) contains(vertex int) bool {
	return r.present[vertex]
}

// spliceAfter inserts a vertex into the cycle between the i-th node and its
// successor, replacing boundary edge i with two edges through the vertex
func (r *boundaryRing) spliceAfter(i, vertex int) {
	a := r.node(i)
	b := r.nodes[a].next

	pos := len(r.nodes)
	r.nodes = append(r.nodes, ringNode{vertex: vertex, prev: a, next: b})
	r.nodes[a].next = pos
	r.nodes[b].prev = pos
	r.present[vertex] = true
}

// indices flattens the cycle into an ordered vertex-index slice
func (r *boundaryRing) indices() []int {
	out := make([]int, 0, len(r.nodes))
	n := r.head
	for range r.nodes {
		out = append(out, r.nodes[n].vertex)
		n = r.nodes[n].next
	}
	return out
}
