package solver

import (
	"context"
	"time"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/maze"
	"tilt_maze/pkg/realize"
	"tilt_maze/pkg/search"
)

// Outcome is the result of one engine run.
type Outcome struct {
	Solvable    bool
	Walk        []uint32
	Moves       []realize.Move
	Unreachable []maze.Coord
	Stats       search.Stats
	Summary     graph.Summary
	Elapsed     time.Duration
}

// Runner is the interface for solving independent mazes.
type Runner interface {
	Run(ctx context.Context, m *maze.Maze, checkOnly bool) (*Outcome, error)
}

// Engine implements Runner with a fixed set of solver options.
type Engine struct {
	opts    []Option
	timeout time.Duration
}

// NewEngine creates an engine. A positive timeout bounds each run whose
// context carries no deadline.
func NewEngine(timeout time.Duration, opts ...Option) *Engine {
	return &Engine{opts: opts, timeout: timeout}
}

// Run builds m, decides solvability and, unless checkOnly, realizes the moves.
func (e *Engine) Run(ctx context.Context, m *maze.Maze, checkOnly bool) (*Outcome, error) {
	start := time.Now()
	if _, ok := ctx.Deadline(); !ok && e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// Step 1: Build the path graph.
	s, err := New(m, e.opts...)
	if err != nil {
		return nil, err
	}

	// Step 2: Search, and realize unless only the verdict is wanted.
	var ok bool
	if checkOnly {
		ok, err = s.IsSolvable(ctx)
	} else {
		ok, err = s.Solve(ctx, nil)
	}
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Solvable:    ok,
		Walk:        s.Walk(),
		Moves:       s.Moves(),
		Unreachable: s.Unreachable(),
		Stats:       s.Stats(),
		Summary:     s.Graph().Summary(),
		Elapsed:     time.Since(start),
	}, nil
}
