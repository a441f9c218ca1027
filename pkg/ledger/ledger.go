// Package ledger maps every target to the branchless paths whose traversal
// visits it, and counts the targets a set of traversed paths leaves behind.
package ledger

import (
	"errors"
	"fmt"
	"slices"

	"tilt_maze/pkg/graph"
)

// ErrUncovered is returned by Validate for a target without covering paths.
var ErrUncovered = errors.New("ledger: target has no covering path")

// Set is the read side of a set of path ids.
type Set interface {
	Has(id uint32) bool
}

// Ledger is immutable once built. It never looks at live visited flags.
type Ledger struct {
	covering [][]uint32 // per target, sorted path ids
	stranded []uint32
}

// New returns an empty ledger for n targets.
func New(n int) *Ledger {
	return &Ledger{covering: make([][]uint32, n)}
}

// FromGraph registers every target under the paths owning its segments.
// Targets no segment passes over are kept as stranded.
func FromGraph(g *graph.Graph) *Ledger {
	l := New(len(g.Targets))
	for i, t := range g.Targets {
		for _, seg := range t.Visitors {
			if seg != graph.NoSegment {
				l.Add(uint32(i), g.Segments[seg].Owner)
			}
		}
	}
	l.stranded = append(l.stranded, g.Stranded...)
	return l
}

// Add records that traversing path covers target.
func (l *Ledger) Add(target, path uint32) {
	cur := l.covering[target]
	i, found := slices.BinarySearch(cur, path)
	if !found {
		l.covering[target] = slices.Insert(cur, i, path)
	}
}

// Covering returns the paths covering target.
func (l *Ledger) Covering(target uint32) []uint32 { return l.covering[target] }

// Len returns the number of targets.
func (l *Ledger) Len() int { return len(l.covering) }

// Stranded returns the number of targets that can never be visited.
func (l *Ledger) Stranded() int { return len(l.stranded) }

// Unvisited counts the targets none of whose covering paths is in traversed.
// Stranded targets always count.
func (l *Ledger) Unvisited(traversed Set) int {
	n := 0
	for _, cover := range l.covering {
		if !intersects(cover, traversed) {
			n++
		}
	}
	return n
}

// UnvisitedTargets lists the targets Unvisited counts.
func (l *Ledger) UnvisitedTargets(traversed Set) []uint32 {
	var out []uint32
	for t, cover := range l.covering {
		if !intersects(cover, traversed) {
			out = append(out, uint32(t))
		}
	}
	return out
}

// Validate checks that every target outside the stranded list is covered.
func (l *Ledger) Validate() error {
	for t, cover := range l.covering {
		if len(cover) == 0 && !slices.Contains(l.stranded, uint32(t)) {
			return fmt.Errorf("%w: target %d", ErrUncovered, t)
		}
	}
	return nil
}

func intersects(cover []uint32, s Set) bool {
	for _, p := range cover {
		if s.Has(p) {
			return true
		}
	}
	return false
}
