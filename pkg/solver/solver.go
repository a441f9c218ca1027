// Package solver answers whether a tilt maze can be solved and produces the
// moves of a solution.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/ledger"
	"tilt_maze/pkg/maze"
	"tilt_maze/pkg/realize"
	"tilt_maze/pkg/search"
)

// ErrTooLarge is returned by New for mazes above the configured cell limit.
var ErrTooLarge = errors.New("solver: maze too large")

type options struct {
	logger   *slog.Logger
	maxCells int
}

type Option func(*options)

// WithLogger sets the logger for build and search progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxCells rejects mazes with more than n cells. Zero means no limit.
func WithMaxCells(n int) Option {
	return func(o *options) { o.maxCells = n }
}

// Solver holds the path graph of one maze. The walk search runs at most
// once; later calls reuse its outcome.
type Solver struct {
	g      *graph.Graph
	ledger *ledger.Ledger
	logger *slog.Logger

	searched    bool
	solvable    bool
	walk        []uint32
	stats       search.Stats
	unreachable []uint32
	moves       []realize.Move
}

// New validates m and builds its path graph.
func New(m *maze.Maze, opts ...Option) (*Solver, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxCells > 0 && m.Rows*m.Cols > o.maxCells {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrTooLarge, m.Rows, m.Cols, o.maxCells)
	}

	g, err := graph.Build(m)
	if err != nil {
		return nil, err
	}
	l := ledger.FromGraph(g)
	if err := l.Validate(); err != nil {
		return nil, err
	}

	sum := g.Summary()
	o.logger.Debug("path graph built",
		"segments", sum.Segments,
		"paths", sum.Paths,
		"cycles", sum.Cycles,
		"edges", sum.Edges,
		"stranded", sum.Stranded)

	return &Solver{g: g, ledger: l, logger: o.logger}, nil
}

// Graph returns the path graph.
func (s *Solver) Graph() *graph.Graph { return s.g }

// IsSolvable reports whether one walk can visit every target. A context
// error aborts the search and is returned; the search is retried next call.
func (s *Solver) IsSolvable(ctx context.Context) (bool, error) {
	if s.searched {
		return s.solvable, nil
	}

	// Targets outside Start's component can never be reached.
	if un := graph.Unreachable(s.g); len(un) > 0 {
		s.logger.Debug("targets unreachable from start", "count", len(un))
		s.searched, s.unreachable = true, un
		return false, nil
	}

	res, err := search.Search(ctx, s.g, s.ledger, search.WithLogger(s.logger))
	switch {
	case errors.Is(err, search.ErrNoWalk):
		s.stats = res.Stats
		s.searched = true
		return false, nil
	case err != nil:
		return false, err
	}
	s.searched, s.solvable = true, true
	s.walk, s.stats = res.Walks[0], res.Stats
	return true, nil
}

// Solve searches if needed and realizes the walk into moves, passing each
// to d. It returns false when the maze has no solution.
func (s *Solver) Solve(ctx context.Context, d realize.Drawer) (bool, error) {
	ok, err := s.IsSolvable(ctx)
	if err != nil || !ok {
		return false, err
	}
	s.moves = realize.Realize(s.g, s.walk, d)
	s.logger.Debug("walk realized", "paths", len(s.walk), "moves", len(s.moves))
	return true, nil
}

// Moves returns the moves of the last Solve.
func (s *Solver) Moves() []realize.Move { return s.moves }

// Walk returns the path ids of the walk found, or nil.
func (s *Solver) Walk() []uint32 { return s.walk }

// Stats returns the counters of the search, zero if it was skipped.
func (s *Solver) Stats() search.Stats { return s.stats }

// Unreachable returns the targets rejected before searching.
func (s *Solver) Unreachable() []maze.Coord {
	out := make([]maze.Coord, len(s.unreachable))
	for i, t := range s.unreachable {
		out[i] = s.g.Targets[t].Coord
	}
	return out
}

// AllWalks runs an exhaustive search and returns every non-dominated walk.
func (s *Solver) AllWalks(ctx context.Context) ([][]uint32, error) {
	if len(graph.Unreachable(s.g)) > 0 {
		return nil, nil
	}
	res, err := search.Search(ctx, s.g, s.ledger,
		search.WithAllSolutions(), search.WithLogger(s.logger))
	if errors.Is(err, search.ErrNoWalk) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res.Walks, nil
}
