package graph

import (
	"bytes"
	"strings"
	"testing"

	"tilt_maze/pkg/maze"
)

func TestWriteDOT(t *testing.T) {
	g := mustBuild(t, openMaze(t, 3, 3, maze.Coord{Row: 0, Col: 0}, maze.Coord{Row: 2, Col: 2}))

	var buf bytes.Buffer
	if err := WriteDOT(g, &buf); err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"digraph", "Start (0,0)", "End", "BP1 (1,0)-(1,2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "->"); got != int(g.NumEdges) {
		t.Errorf("edges in DOT = %d, want %d", got, g.NumEdges)
	}
}
