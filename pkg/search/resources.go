package search

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/ledger"
)

// Resources is the state carried by a label: the walk so far and the set of
// distinct vertices on it. Unique is always the deduplication of Walk.
type Resources struct {
	Walk   []uint32
	Unique mapset.Set[uint32]
}

// NewResources returns the empty state of the Start label.
func NewResources() Resources {
	return Resources{Unique: mapset.New[uint32]()}
}

// Extend returns a copy of r with v appended. r is left untouched.
func (r Resources) Extend(v uint32) Resources {
	walk := make([]uint32, len(r.Walk), len(r.Walk)+1)
	copy(walk, r.Walk)
	unique := mapset.New[uint32]()
	r.Unique.Each(func(id uint32) { unique.Put(id) })

	unique.Put(v)
	return Resources{Walk: append(walk, v), Unique: unique}
}

// ExtendFunc builds the state of a label pushed across an edge into to.
// It reports false when the new label is infeasible.
type ExtendFunc func(r Resources, to uint32) (Resources, bool)

// Extender returns the extension rule of the walk search: a label may enter
// a vertex only while the targets left uncovered by its paths do not exceed
// the vertex bound, which is zero for End.
func Extender(g *graph.Graph, l *ledger.Ledger) ExtendFunc {
	return func(r Resources, to uint32) (Resources, bool) {
		next := r.Extend(to)
		bound := g.MaxUnvisited(to)
		if bound == math.MaxInt {
			return next, true
		}
		return next, l.Unvisited(next.Unique) <= bound
	}
}

// Dominance is the outcome of comparing two labels at one vertex.
type Dominance int8

// Dominates means the first label makes the second redundant, Dominated
// the reverse.
const (
	Incomparable Dominance = iota
	Dominates
	Dominated
)

func (d Dominance) String() string {
	switch d {
	case Dominates:
		return "dominates"
	case Dominated:
		return "dominated"
	}
	return "incomparable"
}

// DominanceFunc compares two labels resident at the same vertex.
type DominanceFunc func(a, b *Resources) Dominance

// Compare only culls labels that cover the same set of paths: the shorter
// walk wins, equal lengths fall back to the lexicographically smaller walk.
// Labels with different sets are incomparable, since either may still
// complete through a common suffix.
func Compare(a, b *Resources) Dominance {
	if !sameSet(a.Unique, b.Unique) {
		return Incomparable
	}
	switch {
	case len(a.Walk) < len(b.Walk):
		return Dominates
	case len(a.Walk) > len(b.Walk):
		return Dominated
	case slices.Compare(a.Walk, b.Walk) <= 0:
		return Dominates
	}
	return Dominated
}

func sameSet(a, b mapset.Set[uint32]) bool {
	if a.Size() != b.Size() {
		return false
	}
	same := true
	a.Each(func(id uint32) {
		if same && !b.Has(id) {
			same = false
		}
	})
	return same
}
