// Package search finds walks through the path graph, from Start to End, that
// traverse every path needed to cover all targets. It is a best-first
// label-setting search with a deliberately partial dominance rule.
package search

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/ledger"
)

// ErrNoWalk is returned when no walk covers every target.
var ErrNoWalk = errors.New("search: no walk covers every target")

const noLabel = int32(-1) // sentinel for "no predecessor"

// Stats counts the work done by one search.
type Stats struct {
	Labels     int `json:"labels"`
	Popped     int `json:"popped"`
	Dominated  int `json:"dominated"`
	Infeasible int `json:"infeasible"`
}

// Result holds the walks found, as path ids without Start and End.
type Result struct {
	Walks [][]uint32
	Stats Stats
}

type options struct {
	all      bool
	extend   ExtendFunc
	dominate DominanceFunc
	logger   *slog.Logger
}

// Option configures Search.
type Option func(*options)

// WithAllSolutions runs the search to exhaustion and returns every walk that
// survives dominance at End.
func WithAllSolutions() Option {
	return func(o *options) { o.all = true }
}

// WithExtender replaces the extension rule.
func WithExtender(f ExtendFunc) Option {
	return func(o *options) { o.extend = f }
}

// WithDominance replaces the dominance rule.
func WithDominance(f DominanceFunc) Option {
	return func(o *options) { o.dominate = f }
}

// WithLogger sets the logger used for search progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// label is one partial walk. Labels live in an arena and are never freed
// during the search, so predecessor handles stay valid.
type label struct {
	res       Resources
	vertex    uint32
	pred      int32
	seq       uint64
	processed bool
	dominated bool
}

// cursor remembers how far the labels of one vertex were compared against
// each other. Labels up to pos are pairwise checked.
type cursor struct {
	pos        int
	checked    bool
	checkedLen int
}

type searcher struct {
	g        *graph.Graph
	opts     options
	labels   []label
	frontier labelHeap
	resident [][]int32 // live label handles per vertex, in arrival order
	cursors  []cursor
	stats    Stats
}

// Search looks for a walk from Start to End covering every target.
// Only one walk is returned unless WithAllSolutions is given.
func Search(ctx context.Context, g *graph.Graph, l *ledger.Ledger, opts ...Option) (*Result, error) {
	o := options{
		extend:   Extender(g, l),
		dominate: Compare,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &searcher{
		g:        g,
		opts:     o,
		resident: make([][]int32, g.NumNodes),
		cursors:  make([]cursor, g.NumNodes),
	}
	s.push(NewResources(), g.Start, noLabel)

	iterations := 0
	for s.frontier.Len() > 0 {
		// Check context cancellation periodically.
		iterations++
		if iterations%100 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		h := s.frontier.Pop().handle
		s.stats.Popped++
		if s.labels[h].dominated {
			continue
		}

		u := s.labels[h].vertex
		s.prune(u)

		if !o.all && u == g.End {
			break
		}
		if s.labels[h].dominated {
			continue
		}

		s.labels[h].processed = true
		res := s.labels[h].res
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head[e]
			next, ok := o.extend(res, v)
			if !ok {
				s.stats.Infeasible++
				continue
			}
			s.push(next, v, h)
		}
	}

	result := &Result{Stats: s.stats}
	for _, h := range s.resident[g.End] {
		if s.labels[h].dominated {
			continue
		}
		result.Walks = append(result.Walks, s.unwind(h))
		if !o.all {
			break
		}
	}

	o.logger.Debug("walk search finished",
		"walks", len(result.Walks),
		"labels", s.stats.Labels,
		"popped", s.stats.Popped,
		"dominated", s.stats.Dominated,
		"infeasible", s.stats.Infeasible)

	if len(result.Walks) == 0 {
		return result, ErrNoWalk
	}
	return result, nil
}

func (s *searcher) push(res Resources, v uint32, pred int32) {
	h := int32(len(s.labels))
	seq := uint64(len(s.labels))
	s.labels = append(s.labels, label{res: res, vertex: v, pred: pred, seq: seq})
	s.resident[v] = append(s.resident[v], h)
	s.frontier.Push(heapItem{handle: h, size: res.Unique.Size(), seq: seq})
	s.stats.Labels++
}

// prune compares the labels resident at v pairwise and drops the dominated
// ones. Pairs already compared by an earlier pass are skipped.
func (s *searcher) prune(v uint32) {
	list := s.resident[v]
	c := &s.cursors[v]
	if len(list) < 2 || c.checkedLen >= len(list) {
		return
	}

	removed := make([]bool, len(list))
	for i := range list {
		if removed[i] {
			continue
		}
		j := i + 1
		if c.checked && i < c.pos {
			j = c.pos + 1
		}
		for ; j < len(list) && !removed[i]; j++ {
			if removed[j] {
				continue
			}
			switch s.opts.dominate(&s.labels[list[i]].res, &s.labels[list[j]].res) {
			case Dominates:
				removed[j] = true
				s.markDominated(list[j])
			case Dominated:
				removed[i] = true
				s.markDominated(list[i])
			}
		}
	}

	kept := list[:0]
	for i, h := range list {
		if !removed[i] {
			kept = append(kept, h)
		}
	}
	s.resident[v] = kept
	c.pos = len(kept) - 1
	c.checked = true
	c.checkedLen = len(kept)
}

func (s *searcher) markDominated(h int32) {
	s.labels[h].dominated = true
	s.stats.Dominated++
}

// unwind follows predecessor handles back to Start and returns the paths
// visited on the way, in walk order.
func (s *searcher) unwind(h int32) []uint32 {
	var walk []uint32
	for ; h != noLabel; h = s.labels[h].pred {
		if v := s.labels[h].vertex; s.g.IsPath(v) {
			walk = append(walk, v)
		}
	}
	slices.Reverse(walk)
	return walk
}
