package graph

import (
	"fmt"

	"tilt_maze/pkg/maze"
)

// Orientation tells whether a Segment runs along a row or a column.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// Flip returns the perpendicular orientation.
func (o Orientation) Flip() Orientation { return 1 - o }

func (o Orientation) String() string {
	if o == Horizontal {
		return "H"
	}
	return "V"
}

const (
	NoSegment = ^uint32(0) // sentinel for "no segment"
	NoPath    = ^uint32(0) // sentinel for "not owned by any path"
)

// Segment is a straight corridor between two walls: row Fixed, columns Lo..Hi
// when horizontal; column Fixed, rows Lo..Hi when vertical. Lo < Hi always.
type Segment struct {
	ID      uint32
	Orient  Orientation
	Fixed   int
	Lo, Hi  int
	Owner   uint32   // BranchlessPath id
	Targets []uint32 // target ids, sorted by variable coordinate
}

// At returns the cell at variable coordinate v.
func (s *Segment) At(v int) maze.Coord {
	if s.Orient == Horizontal {
		return maze.Coord{Row: s.Fixed, Col: v}
	}
	return maze.Coord{Row: v, Col: s.Fixed}
}

// Var projects c onto the variable axis.
func (s *Segment) Var(c maze.Coord) int {
	if s.Orient == Horizontal {
		return c.Col
	}
	return c.Row
}

func (s *Segment) fixedOf(c maze.Coord) int {
	if s.Orient == Horizontal {
		return c.Row
	}
	return c.Col
}

func (s *Segment) Lower() maze.Coord { return s.At(s.Lo) }
func (s *Segment) Upper() maze.Coord { return s.At(s.Hi) }

// Contains reports whether c lies on the segment.
func (s *Segment) Contains(c maze.Coord) bool {
	v := s.Var(c)
	return s.fixedOf(c) == s.Fixed && v >= s.Lo && v <= s.Hi
}

// IsEnd reports whether c is one of the two ends.
func (s *Segment) IsEnd(c maze.Coord) bool {
	return c == s.Lower() || c == s.Upper()
}

// IsInterior reports whether c lies strictly between the ends.
func (s *Segment) IsInterior(c maze.Coord) bool {
	return s.Contains(c) && !s.IsEnd(c)
}

// OtherEnd returns the end opposite to end.
func (s *Segment) OtherEnd(end maze.Coord) maze.Coord {
	if end == s.Lower() {
		return s.Upper()
	}
	if end != s.Upper() {
		panic(fmt.Sprintf("graph: %v is not an end of segment %v", end, s))
	}
	return s.Lower()
}

func (s *Segment) String() string {
	return fmt.Sprintf("%s%d[%d..%d]", s.Orient, s.Fixed, s.Lo, s.Hi)
}

// newSegment builds a segment from two collinear cells.
func newSegment(id uint32, a, b maze.Coord) (Segment, error) {
	switch {
	case a.Row == b.Row && a.Col != b.Col:
		lo, hi := min(a.Col, b.Col), max(a.Col, b.Col)
		return Segment{ID: id, Orient: Horizontal, Fixed: a.Row, Lo: lo, Hi: hi, Owner: NoPath}, nil
	case a.Col == b.Col && a.Row != b.Row:
		lo, hi := min(a.Row, b.Row), max(a.Row, b.Row)
		return Segment{ID: id, Orient: Vertical, Fixed: a.Col, Lo: lo, Hi: hi, Owner: NoPath}, nil
	}
	return Segment{}, fmt.Errorf("%w: %v-%v", ErrNotCollinear, a, b)
}
