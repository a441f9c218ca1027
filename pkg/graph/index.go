package graph

import (
	"github.com/tidwall/rtree"

	"tilt_maze/pkg/maze"
)

// segmentIndex answers "which segments cover this cell" with an R-tree over
// segment extents. Each cell is covered by at most one horizontal and one
// vertical segment.
type segmentIndex struct {
	tr rtree.RTreeG[uint32]
}

func point(c maze.Coord) [2]float64 {
	return [2]float64{float64(c.Row), float64(c.Col)}
}

func (ix *segmentIndex) insert(s *Segment) {
	ix.tr.Insert(point(s.Lower()), point(s.Upper()), s.ID)
}

// at returns the horizontal and vertical segments covering c, or NoSegment.
func (ix *segmentIndex) at(segs []Segment, c maze.Coord) (h, v uint32) {
	h, v = NoSegment, NoSegment
	p := point(c)
	ix.tr.Search(p, p, func(_, _ [2]float64, id uint32) bool {
		if segs[id].Orient == Horizontal {
			h = id
		} else {
			v = id
		}
		return true
	})
	return h, v
}

func (ix *segmentIndex) len() int { return ix.tr.Len() }
