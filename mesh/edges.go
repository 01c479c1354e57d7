package mesh

import "sort"

// Edge is a unique undirected mesh edge. A and B are the endpoint ids with
// A < B. Polys lists the polygons using this edge; a boundary edge is used
// by exactly one polygon, an interior manifold edge by two.
type Edge struct {
	A, B  int
	Polys []int
}

// IsBoundary reports whether the edge is used by exactly one polygon.
func (e Edge) IsBoundary() bool {
	return len(e.Polys) == 1
}

// EdgeTable holds the unique undirected edges of a surface, in the
// deterministic order of first appearance during polygon traversal.
type EdgeTable struct {
	edges []Edge
	index map[int64]int // packed (A,B) key to position in edges
}

// edgeKey packs two point ids into a single map key, smaller id first.
func edgeKey(i, j int) int64 {
	if i > j {
		i, j = j, i
	}
	return int64(i)<<32 | int64(j)
}

// NewEdgeTable extracts the unique undirected edges of the surface's
// polygonal cells, recording for each edge the polygons that use it.
func NewEdgeTable(s *Surface) *EdgeTable {
	t := &EdgeTable{
		index: make(map[int64]int),
	}
	for c, poly := range s.Polys {
		for v := 0; v < len(poly); v++ {
			i := poly[v]
			j := poly[(v+1)%len(poly)]
			key := edgeKey(i, j)
			pos, ok := t.index[key]
			if !ok {
				pos = len(t.edges)
				t.index[key] = pos
				if i > j {
					i, j = j, i
				}
				t.edges = append(t.edges, Edge{A: i, B: j})
			}
			t.edges[pos].Polys = append(t.edges[pos].Polys, c)
		}
	}
	return t
}

// NumEdges returns the number of unique undirected edges.
func (t *EdgeTable) NumEdges() int {
	return len(t.edges)
}

// Edges returns the unique undirected edges. The returned slice is owned by
// the table and must not be modified.
func (t *EdgeTable) Edges() []Edge {
	return t.edges
}

// Lookup returns the edge connecting points i and j and whether it exists.
func (t *EdgeTable) Lookup(i, j int) (Edge, bool) {
	pos, ok := t.index[edgeKey(i, j)]
	if !ok {
		return Edge{}, false
	}
	return t.edges[pos], true
}

// BoundaryPoints returns the sorted ids of all points incident to at least
// one boundary edge.
func (t *EdgeTable) BoundaryPoints() []int {
	seen := make(map[int]bool)
	for _, e := range t.edges {
		if e.IsBoundary() {
			seen[e.A] = true
			seen[e.B] = true
		}
	}
	ptIds := make([]int, 0, len(seen))
	for ptID := range seen {
		ptIds = append(ptIds, ptID)
	}
	sort.Ints(ptIds)
	return ptIds
}
