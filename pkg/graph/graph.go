// Package graph reduces maze walls to segments, groups them into branchless
// paths and connects those paths into a directed graph with a virtual Start
// and End vertex.
package graph

import (
	"fmt"
	"math"

	"tilt_maze/pkg/maze"
)

// Target is a cell to visit together with the segments passing over it.
type Target struct {
	Coord    maze.Coord
	Visitors [2]uint32 // horizontal, vertical; NoSegment when absent
}

// Graph represents the path graph in CSR (Compressed Sparse Row) format.
// Vertices 0..len(Paths)-1 are paths; Start and End follow them.
type Graph struct {
	Maze     *maze.Maze
	Segments []Segment
	Paths    []Path
	Targets  []Target
	Stranded []uint32 // targets no segment passes over

	NumNodes uint32
	NumEdges uint32
	FirstOut []uint32 // len: NumNodes + 1
	Head     []uint32 // len: NumEdges
	Start    uint32
	End      uint32

	index segmentIndex
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// IsPath reports whether vertex v stands for a branchless path.
func (g *Graph) IsPath(v uint32) bool { return v < g.Start }

// MaxUnvisited is the number of targets allowed to remain unvisited when a
// walk enters v: none for End, any for the rest.
func (g *Graph) MaxUnvisited(v uint32) int {
	if v == g.End {
		return 0
	}
	return math.MaxInt
}

// SegmentsAt returns the horizontal and vertical segments covering c.
func (g *Graph) SegmentsAt(c maze.Coord) (h, v uint32) {
	return g.index.at(g.Segments, c)
}

// PathContains reports whether path p passes over c.
func (g *Graph) PathContains(p uint32, c maze.Coord) bool {
	h, v := g.SegmentsAt(c)
	return (h != NoSegment && g.Segments[h].Owner == p) ||
		(v != NoSegment && g.Segments[v].Owner == p)
}

// TargetsBetween returns the targets on segment seg lying between a and b
// inclusive, ordered along the segment.
func (g *Graph) TargetsBetween(seg uint32, a, b maze.Coord) []uint32 {
	s := &g.Segments[seg]
	lo, hi := s.Var(a), s.Var(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	var out []uint32
	for _, t := range s.Targets {
		v := s.Var(g.Targets[t].Coord)
		if v > hi {
			break
		}
		if v >= lo {
			out = append(out, t)
		}
	}
	return out
}

// VertexName labels a vertex for logs and exports.
func (g *Graph) VertexName(v uint32) string {
	switch v {
	case g.Start:
		return "Start"
	case g.End:
		return "End"
	}
	return fmt.Sprintf("BP%d", v)
}

// Summary holds size figures of a built graph.
type Summary struct {
	Segments int `json:"segments"`
	Paths    int `json:"paths"`
	Cycles   int `json:"cycles"`
	Edges    int `json:"edges"`
	Targets  int `json:"targets"`
	Stranded int `json:"stranded"`
}

func (g *Graph) Summary() Summary {
	s := Summary{
		Segments: len(g.Segments),
		Paths:    len(g.Paths),
		Edges:    int(g.NumEdges),
		Targets:  len(g.Targets),
		Stranded: len(g.Stranded),
	}
	for i := range g.Paths {
		if g.Paths[i].IsCycle() {
			s.Cycles++
		}
	}
	return s
}
