package graph

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Same reports whether x and y belong to one set.
func (uf *UnionFind) Same(x, y uint32) bool { return uf.Find(x) == uf.Find(y) }

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 { return uf.size[uf.Find(x)] }

// WeakComponents groups the vertices of g into weakly connected components
// (edges treated as undirected). End is left out: every path links to it.
func WeakComponents(g *Graph) *UnionFind {
	uf := NewUnionFind(g.NumNodes)
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			if v := g.Head[e]; v != g.End {
				uf.Union(u, v)
			}
		}
	}
	return uf
}

// Unreachable returns the targets none of whose covering paths shares a weak
// component with Start. Stranded targets are included. A non-empty result
// means no walk can cover every target.
func Unreachable(g *Graph) []uint32 {
	uf := WeakComponents(g)
	out := append([]uint32(nil), g.Stranded...)
	for i, t := range g.Targets {
		if t.Visitors[0] == NoSegment && t.Visitors[1] == NoSegment {
			continue // already stranded
		}
		reached := false
		for _, seg := range t.Visitors {
			if seg != NoSegment && uf.Same(g.Segments[seg].Owner, g.Start) {
				reached = true
			}
		}
		if !reached {
			out = append(out, uint32(i))
		}
	}
	return out
}
