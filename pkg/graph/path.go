package graph

import (
	"fmt"
	"strings"

	"tilt_maze/pkg/maze"
)

// Path is a branchless path: a chain of perpendicular segments with no choice
// point except at its two ends. Segment i joins Corners[i] and Corners[i+1],
// so Corners[0] is the first end and the last corner the second end.
type Path struct {
	ID       uint32
	Segments []uint32
	Corners  []maze.Coord
	Links    [2]uint32 // segment of another path touched by the first / second end
}

func (p *Path) First() maze.Coord  { return p.Corners[0] }
func (p *Path) Second() maze.Coord { return p.Corners[len(p.Corners)-1] }

// IsCycle reports whether the chain closes on itself.
func (p *Path) IsCycle() bool {
	return len(p.Segments) > 1 && p.First() == p.Second()
}

func (p *Path) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "BP%d %v", p.ID, p.Corners[0])
	for _, c := range p.Corners[1:] {
		fmt.Fprintf(&sb, "-%v", c)
	}
	return sb.String()
}
