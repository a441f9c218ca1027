package graph

import (
	"errors"
	"fmt"
	"slices"

	"tilt_maze/pkg/maze"
)

var (
	ErrStartIsolated = errors.New("graph: no segment covers the start location")
	ErrNotCollinear  = errors.New("graph: segment ends are not collinear")
)

// Build reduces a maze to its path graph.
func Build(m *maze.Maze) (*Graph, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{Maze: m}

	// Step 1: One segment per open run longer than one cell, rows first.
	for r, line := range m.RowOpenings {
		for _, iv := range line {
			if iv.Len() < 2 {
				continue
			}
			if err := g.addSegment(maze.Coord{Row: r, Col: iv.Lo}, maze.Coord{Row: r, Col: iv.Hi - 1}); err != nil {
				return nil, err
			}
		}
	}
	for c, line := range m.ColOpenings {
		for _, iv := range line {
			if iv.Len() < 2 {
				continue
			}
			if err := g.addSegment(maze.Coord{Row: iv.Lo, Col: c}, maze.Coord{Row: iv.Hi - 1, Col: c}); err != nil {
				return nil, err
			}
		}
	}

	if h, v := g.SegmentsAt(m.Start); h == NoSegment && v == NoSegment {
		return nil, fmt.Errorf("%w: %v", ErrStartIsolated, m.Start)
	}

	// Step 2: Attach targets to the segments passing over them.
	g.Targets = make([]Target, len(m.Targets))
	for i, c := range m.Targets {
		id := uint32(i)
		h, v := g.SegmentsAt(c)
		g.Targets[i] = Target{Coord: c, Visitors: [2]uint32{h, v}}
		if h == NoSegment && v == NoSegment {
			g.Stranded = append(g.Stranded, id)
			continue
		}
		for _, seg := range [2]uint32{h, v} {
			if seg != NoSegment {
				g.Segments[seg].Targets = append(g.Segments[seg].Targets, id)
			}
		}
	}
	for i := range g.Segments {
		s := &g.Segments[i]
		slices.SortFunc(s.Targets, func(a, b uint32) int {
			return s.Var(g.Targets[a].Coord) - s.Var(g.Targets[b].Coord)
		})
	}

	// Step 3: Grow a branchless path from every segment not yet claimed.
	for i := range g.Segments {
		if g.Segments[i].Owner == NoPath {
			g.growPath(uint32(i))
		}
	}

	// Step 4: Adjacency in CSR form.
	g.buildEdges()

	return g, nil
}

func (g *Graph) addSegment(a, b maze.Coord) error {
	s, err := newSegment(uint32(len(g.Segments)), a, b)
	if err != nil {
		return err
	}
	g.Segments = append(g.Segments, s)
	g.index.insert(&g.Segments[len(g.Segments)-1])
	return nil
}

func (g *Graph) segmentAt(c maze.Coord, o Orientation) uint32 {
	h, v := g.SegmentsAt(c)
	if o == Horizontal {
		return h
	}
	return v
}

// growPath claims seed for a new path and extends it from the lower end of
// the seed, then from the upper end.
func (g *Graph) growPath(seed uint32) {
	id := uint32(len(g.Paths))
	s := &g.Segments[seed]
	s.Owner = id
	lower, upper := s.Lower(), s.Upper()

	front, frontCorners, frontLink := g.extend(id, seed, lower)
	back, backCorners, backLink := g.extend(id, seed, upper)

	p := Path{
		ID:       id,
		Segments: make([]uint32, 0, len(front)+len(back)+1),
		Corners:  make([]maze.Coord, 0, len(front)+len(back)+2),
		Links:    [2]uint32{frontLink, backLink},
	}
	for i := len(front) - 1; i >= 0; i-- {
		p.Segments = append(p.Segments, front[i])
		p.Corners = append(p.Corners, frontCorners[i])
	}
	p.Segments = append(p.Segments, seed)
	p.Corners = append(p.Corners, lower, upper)
	p.Segments = append(p.Segments, back...)
	p.Corners = append(p.Corners, backCorners...)

	g.Paths = append(g.Paths, p)
}

// extend follows the corridor beyond end of segment from. A perpendicular
// segment is claimed only when end is one of its own ends. The walk stops at
// a dead end, at a segment that passes through end (the link), or at a
// segment this path already owns.
func (g *Graph) extend(id, from uint32, end maze.Coord) (segs []uint32, corners []maze.Coord, link uint32) {
	orient := g.Segments[from].Orient
	for {
		orient = orient.Flip()
		next := g.segmentAt(end, orient)
		if next == NoSegment {
			return segs, corners, NoSegment
		}
		s := &g.Segments[next]
		if !s.IsEnd(end) {
			return segs, corners, next
		}
		if s.Owner != NoPath {
			return segs, corners, NoSegment
		}
		s.Owner = id
		end = s.OtherEnd(end)
		segs = append(segs, next)
		corners = append(corners, end)
	}
}

func (g *Graph) buildEdges() {
	n := uint32(len(g.Paths))
	g.Start, g.End = n, n+1
	g.NumNodes = n + 2

	adj := make([][]uint32, g.NumNodes)
	h, v := g.SegmentsAt(g.Maze.Start)
	for _, seg := range [2]uint32{h, v} {
		if seg != NoSegment {
			adj[g.Start] = appendUnique(adj[g.Start], g.Segments[seg].Owner)
		}
	}
	for i := range g.Paths {
		for _, seg := range g.Paths[i].Links {
			if seg != NoSegment {
				adj[i] = appendUnique(adj[i], g.Segments[seg].Owner)
			}
		}
		adj[i] = append(adj[i], g.End)
	}

	g.FirstOut = make([]uint32, g.NumNodes+1)
	for u, out := range adj {
		g.FirstOut[u+1] = g.FirstOut[u] + uint32(len(out))
	}
	g.NumEdges = g.FirstOut[g.NumNodes]
	g.Head = make([]uint32, 0, g.NumEdges)
	for _, out := range adj {
		g.Head = append(g.Head, out...)
	}
}

func appendUnique(s []uint32, v uint32) []uint32 {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
