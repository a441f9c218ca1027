// Package realize turns a walk over branchless paths into concrete slide
// moves, deciding inside each path which way to go first.
package realize

import (
	"fmt"
	"slices"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/maze"
)

// Drawer is told about every slide move as it is realized.
type Drawer interface {
	DrawMove(from, to maze.Coord)
}

// DrawerFunc adapts a function to Drawer.
type DrawerFunc func(from, to maze.Coord)

func (f DrawerFunc) DrawMove(from, to maze.Coord) { f(from, to) }

// Move is one slide. From and To lie on the same segment.
type Move struct {
	From    maze.Coord
	To      maze.Coord
	Segment uint32
}

// position locates the token on a path. An even at is corner at/2; an odd at
// is the cell c strictly inside segment at/2.
type position struct {
	at int
	c  maze.Coord
}

// step slides along segment seg from one cell to another; end is the
// position reached.
type step struct {
	seg      uint32
	from, to maze.Coord
	end      int
}

type realizer struct {
	g       *graph.Graph
	visited []bool
	drawer  Drawer
	moves   []Move
	dry     bool
}

// Realize converts walk, a sequence of path ids starting at the path holding
// the maze start, into slide moves. Each move is passed to d (which may be
// nil) as it is made. It panics if a target is left unvisited, which means
// the walk did not come from a successful search.
func Realize(g *graph.Graph, walk []uint32, d Drawer) []Move {
	if len(walk) == 0 {
		panic("realize: empty walk")
	}
	r := &realizer{
		g:       g,
		visited: make([]bool, len(g.Targets)),
		drawer:  d,
	}

	// The token rests on the start cell before moving.
	for i, t := range g.Targets {
		if t.Coord == g.Maze.Start {
			r.visited[i] = true
		}
	}

	last := make(map[uint32]int, len(walk))
	for i, p := range walk {
		last[p] = i
	}

	at := g.Maze.Start
	for i, id := range walk {
		p := &g.Paths[id]
		pos := locate(g, p, at)
		if i == len(walk)-1 {
			r.finish(p, pos)
			break
		}
		at = r.pass(p, pos, exitAt(g, p, walk[i+1]), last[id] == i)
	}

	for i, ok := range r.visited {
		if !ok {
			panic(fmt.Sprintf("realize: target %v left unvisited", g.Targets[i].Coord))
		}
	}
	return r.moves
}

// locate finds c on p, preferring a segment interior over a corner: a token
// arriving from another path stops inside one of p's segments.
func locate(g *graph.Graph, p *graph.Path, c maze.Coord) position {
	for i, seg := range p.Segments {
		if g.Segments[seg].IsInterior(c) {
			return position{at: 2*i + 1, c: c}
		}
	}
	for j, corner := range p.Corners {
		if corner == c {
			return position{at: 2 * j, c: c}
		}
	}
	panic(fmt.Sprintf("realize: %v is not on %v", c, p))
}

// exitAt returns the end position (0 or the last corner) through which p
// hands over to next.
func exitAt(g *graph.Graph, p *graph.Path, next uint32) int {
	for end, seg := range p.Links {
		if seg != graph.NoSegment && g.Segments[seg].Owner == next {
			return end * 2 * len(p.Segments)
		}
	}
	panic(fmt.Sprintf("realize: %v does not lead to BP%d", p, next))
}

// pass crosses p from pos to the exit end. On the last visit of p it first
// sweeps the far side up to the farthest unvisited target.
func (r *realizer) pass(p *graph.Path, pos position, exit int, lastVisit bool) maze.Coord {
	dir := 1
	if exit == 0 {
		dir = -1
	}
	if lastVisit {
		away := r.steps(p, pos, -dir)
		if n := r.farthest(away); n >= 0 {
			pos = r.apply(pos, away[:n+1])
		}
	}
	pos = r.apply(pos, r.steps(p, pos, dir))
	return pos.c
}

// finish handles the final path of the walk: visit what is left on both
// sides of pos, starting with whichever side makes the whole job cheaper in
// segments crossed. Ties go to the side away from the first end.
func (r *realizer) finish(p *graph.Path, pos position) {
	awayFirst := r.plan(p, pos, 1, -1)
	towardFirst := r.plan(p, pos, -1, 1)
	chosen := awayFirst
	if len(towardFirst) < len(awayFirst) {
		chosen = towardFirst
	}
	r.apply(pos, chosen)
}

// plan simulates going dir first up to the last unvisited target that way,
// then back in the opposite direction up to the last one left there.
func (r *realizer) plan(p *graph.Path, pos position, first, then int) []step {
	sim := &realizer{g: r.g, visited: slices.Clone(r.visited), dry: true}
	var out []step
	for _, dir := range [2]int{first, then} {
		st := sim.steps(p, pos, dir)
		n := sim.farthest(st)
		if n < 0 {
			continue
		}
		out = append(out, st[:n+1]...)
		pos = sim.apply(pos, st[:n+1])
	}
	return out
}

// steps lists the slides from pos toward the second end (dir > 0) or the
// first end (dir < 0). On a cycle the list wraps around once.
func (r *realizer) steps(p *graph.Path, pos position, dir int) []step {
	k := len(p.Segments)
	limit := k
	if pos.at%2 == 1 {
		limit = k + 1
	}
	i := pos.at / 2
	if dir < 0 {
		i = (pos.at+1)/2 - 1
	}

	cycle := p.IsCycle()
	c := pos.c
	var out []step
	for len(out) < limit {
		if i < 0 || i >= k {
			if !cycle {
				break
			}
			i = (i + k) % k
		}
		st := step{seg: p.Segments[i], from: c}
		if dir > 0 {
			st.to, st.end = p.Corners[i+1], 2*(i+1)
		} else {
			st.to, st.end = p.Corners[i], 2*i
		}
		out = append(out, st)
		c = st.to
		i += dir
	}
	return out
}

// farthest returns the index of the last step that passes an unvisited
// target, or -1. A corner shared by consecutive steps counts for the first.
func (r *realizer) farthest(steps []step) int {
	best := -1
	for i, st := range steps {
		for _, t := range r.g.TargetsBetween(st.seg, st.from, st.to) {
			if r.visited[t] || (i > 0 && r.g.Targets[t].Coord == st.from) {
				continue
			}
			best = i
			break
		}
	}
	return best
}

// apply performs steps, marking the targets they pass and reporting each
// move. It returns the position reached.
func (r *realizer) apply(pos position, steps []step) position {
	for _, st := range steps {
		for _, t := range r.g.TargetsBetween(st.seg, st.from, st.to) {
			r.visited[t] = true
		}
		pos = position{at: st.end, c: st.to}
		if r.dry {
			continue
		}
		r.moves = append(r.moves, Move{From: st.from, To: st.to, Segment: st.seg})
		if r.drawer != nil {
			r.drawer.DrawMove(st.from, st.to)
		}
	}
	return pos
}
