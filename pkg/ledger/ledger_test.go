package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/maze"
)

func build(t *testing.T, rows, cols int, start maze.Coord, targets ...maze.Coord) *graph.Graph {
	t.Helper()
	m, err := maze.New(rows, cols)
	require.NoError(t, err)
	m.Start = start
	m.Targets = targets
	g, err := graph.Build(m)
	require.NoError(t, err)
	return g
}

func setOf(ids ...uint32) mapset.Set[uint32] {
	s := mapset.New[uint32]()
	for _, id := range ids {
		s.Put(id)
	}
	return s
}

func TestAddKeepsSortedUniquePaths(t *testing.T) {
	l := New(2)
	l.Add(0, 3)
	l.Add(0, 1)
	l.Add(0, 3)
	l.Add(1, 2)

	assert.Equal(t, []uint32{1, 3}, l.Covering(0))
	assert.Equal(t, []uint32{2}, l.Covering(1))
	assert.Equal(t, 2, l.Len())
}

func TestUnvisited(t *testing.T) {
	l := New(3)
	l.Add(0, 0)
	l.Add(0, 1)
	l.Add(1, 1)
	l.Add(2, 2)

	assert.Equal(t, 3, l.Unvisited(mapset.New[uint32]()))
	assert.Equal(t, 1, l.Unvisited(setOf(1)))
	assert.Equal(t, []uint32{2}, l.UnvisitedTargets(setOf(1)))
	assert.Equal(t, 0, l.Unvisited(setOf(1, 2)))
	assert.Equal(t, 2, l.Unvisited(setOf(0)))
}

func TestFromGraphCoverage(t *testing.T) {
	// 3x3 open maze: the ring (BP0), the middle row (BP1), the middle column (BP2).
	g := build(t, 3, 3, maze.Coord{Row: 0, Col: 0},
		maze.Coord{Row: 2, Col: 2}, maze.Coord{Row: 1, Col: 1}, maze.Coord{Row: 1, Col: 0})
	l := FromGraph(g)

	require.NoError(t, l.Validate())
	assert.Equal(t, []uint32{0}, l.Covering(0), "corner lies on ring segments only")
	assert.Equal(t, []uint32{1, 2}, l.Covering(1), "center is crossed by the middle row and column")
	assert.Equal(t, []uint32{0, 1}, l.Covering(2), "(1,0) is on the ring and the middle row")

	for i := range l.Len() {
		assert.NotEmpty(t, l.Covering(uint32(i)), "target %d", i)
	}
}

func TestStrandedTargetsStayUnvisited(t *testing.T) {
	m, err := maze.New(3, 3)
	require.NoError(t, err)
	for _, after := range []int{0, 1} {
		require.NoError(t, m.AddRowWall(1, after))
		require.NoError(t, m.AddColumnWall(1, after))
	}
	m.Start = maze.Coord{Row: 0, Col: 0}
	m.Targets = []maze.Coord{{Row: 1, Col: 1}}
	g, err := graph.Build(m)
	require.NoError(t, err)

	l := FromGraph(g)
	require.NoError(t, l.Validate())
	assert.Equal(t, 1, l.Stranded())

	all := mapset.New[uint32]()
	for i := range g.Paths {
		all.Put(uint32(i))
	}
	assert.Equal(t, 1, l.Unvisited(all))
}

func TestValidateReportsUncovered(t *testing.T) {
	l := New(2)
	l.Add(0, 0)
	assert.ErrorIs(t, l.Validate(), ErrUncovered)
}
