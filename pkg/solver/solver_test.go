package solver

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/logging"
	"tilt_maze/pkg/maze"
	"tilt_maze/pkg/realize"
)

func c(r, col int) maze.Coord { return maze.Coord{Row: r, Col: col} }

func parse(t *testing.T, text string) *maze.Maze {
	t.Helper()
	m, err := maze.Parse(strings.NewReader(text))
	require.NoError(t, err)
	return m
}

func newSolver(t *testing.T, m *maze.Maze, opts ...Option) *Solver {
	t.Helper()
	s, err := New(m, append([]Option{WithLogger(logging.Discard())}, opts...)...)
	require.NoError(t, err)
	return s
}

func TestSolveOpen2x2(t *testing.T) {
	s := newSolver(t, parse(t, "2 2\n0 0\n1 1\n"))

	ok, err := s.Solve(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, ok)

	moves := s.Moves()
	require.NotEmpty(t, moves)
	assert.Equal(t, c(1, 1), moves[len(moves)-1].To)
	assert.Positive(t, s.Stats().Labels)
}

func TestSolveOpen3x3DrawsTwoMoves(t *testing.T) {
	s := newSolver(t, parse(t, "3 3\n0 0\n2 2\n"))

	var drawn [][2]maze.Coord
	ok, err := s.Solve(context.Background(), realize.DrawerFunc(func(from, to maze.Coord) {
		drawn = append(drawn, [2]maze.Coord{from, to})
	}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [][2]maze.Coord{{c(0, 0), c(0, 2)}, {c(0, 2), c(2, 2)}}, drawn)
}

func TestEnclosedTargetIsUnsolvable(t *testing.T) {
	s := newSolver(t, parse(t, `; the centre cell is walled in
3 3
row 1 : 0 1
column 1 : 0 1
0 0
1 1
`))

	ok, err := s.IsSolvable(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []maze.Coord{c(1, 1)}, s.Unreachable())
	assert.Zero(t, s.Stats().Labels, "search skipped")

	ok, err = s.Solve(context.Background(), realize.DrawerFunc(func(_, _ maze.Coord) {
		t.Fatal("no move expected")
	}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.Moves())
}

func TestSearchRunsOnce(t *testing.T) {
	s := newSolver(t, parse(t, "3 3\n1 0\n1 1\n2 2\n"))

	ok, err := s.IsSolvable(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	first := s.Stats()

	// A cancelled context is not consulted once the outcome is known.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err = s.IsSolvable(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, s.Stats())
	assert.Equal(t, []uint32{1, 0}, s.Walk())
}

func TestAllWalks(t *testing.T) {
	s := newSolver(t, parse(t, "3 3\n1 0\n2 2\n"))

	walks, err := s.AllWalks(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]uint32{{1, 0}, {0}}, walks)
}

func TestNewErrors(t *testing.T) {
	m, err := maze.New(3, 3)
	require.NoError(t, err)
	m.Start = c(0, 0)
	_, err = New(m)
	assert.ErrorIs(t, err, maze.ErrNoTargets)

	m.Targets = []maze.Coord{c(2, 2)}
	_, err = New(m, WithMaxCells(8))
	assert.ErrorIs(t, err, ErrTooLarge)

	// A 1×1 maze has no segment at all.
	one, err := maze.New(1, 1)
	require.NoError(t, err)
	one.Start, one.Targets = c(0, 0), []maze.Coord{c(0, 0)}
	_, err = New(one)
	assert.ErrorIs(t, err, graph.ErrStartIsolated)
}

// randomMaze places each possible interior wall with probability 1/4.
func randomMaze(rng *rand.Rand, rows, cols, targets int) *maze.Maze {
	m, _ := maze.New(rows, cols)
	for r := range rows {
		for after := 0; after < cols-1; after++ {
			if rng.IntN(4) == 0 {
				_ = m.AddRowWall(r, after)
			}
		}
	}
	for col := range cols {
		for after := 0; after < rows-1; after++ {
			if rng.IntN(4) == 0 {
				_ = m.AddColumnWall(col, after)
			}
		}
	}
	cells := rng.Perm(rows * cols)
	m.Start = c(cells[0]/cols, cells[0]%cols)
	for _, k := range cells[1 : targets+1] {
		m.Targets = append(m.Targets, c(k/cols, k%cols))
	}
	return m
}

// onMove reports whether t lies on the slide mv.
func onMove(g *graph.Graph, mv realize.Move, t maze.Coord) bool {
	seg := &g.Segments[mv.Segment]
	if !seg.Contains(t) {
		return false
	}
	a, b := seg.Var(mv.From), seg.Var(mv.To)
	if a > b {
		a, b = b, a
	}
	v := seg.Var(t)
	return v >= a && v <= b
}

func TestSolvedMovesVisitEveryTarget(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	solved := 0
	for i := range 60 {
		m := randomMaze(rng, 3+rng.IntN(3), 3+rng.IntN(3), 1+rng.IntN(3))
		s, err := New(m, WithLogger(logging.Discard()))
		if errors.Is(err, graph.ErrStartIsolated) {
			continue
		}
		require.NoError(t, err, "maze %d", i)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		ok, err := s.Solve(ctx, nil)
		cancel()
		if err != nil || !ok {
			continue
		}
		solved++

		g := s.Graph()
		at := m.Start
		for j, mv := range s.Moves() {
			require.Equal(t, at, mv.From, "maze %d move %d", i, j)
			seg := &g.Segments[mv.Segment]
			require.True(t, seg.Contains(mv.From) && seg.Contains(mv.To),
				"maze %d move %d leaves %v", i, j, seg)
			at = mv.To
		}
		for _, target := range m.Targets {
			seen := target == m.Start
			for _, mv := range s.Moves() {
				seen = seen || onMove(g, mv, target)
			}
			assert.True(t, seen, "maze %d target %v not visited", i, target)
		}
	}
	assert.Positive(t, solved)
}

func TestEngineRun(t *testing.T) {
	e := NewEngine(time.Second, WithLogger(logging.Discard()))

	out, err := e.Run(context.Background(), parse(t, "3 3\n0 0\n2 2\n"), false)
	require.NoError(t, err)
	assert.True(t, out.Solvable)
	assert.Len(t, out.Moves, 2)
	assert.Equal(t, 1, out.Summary.Paths)

	out, err = e.Run(context.Background(), parse(t, "3 3\n0 0\n2 2\n"), true)
	require.NoError(t, err)
	assert.True(t, out.Solvable)
	assert.Empty(t, out.Moves, "check only")
}

func TestEngineRunInvalid(t *testing.T) {
	m, err := maze.New(2, 2)
	require.NoError(t, err)
	m.Start = c(5, 5)
	m.Targets = []maze.Coord{c(1, 1)}

	_, err = NewEngine(0).Run(context.Background(), m, false)
	assert.ErrorIs(t, err, maze.ErrStartOutOfRange)
}
