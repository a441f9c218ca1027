package graph

import (
	"errors"
	"fmt"
	"io"

	dgraph "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// WriteDOT renders the path graph in Graphviz DOT format. Paths are labelled
// with their corners, Start with the start cell.
func WriteDOT(g *Graph, w io.Writer) error {
	dg := dgraph.New(dgraph.IntHash, dgraph.Directed())

	for v := uint32(0); v < g.NumNodes; v++ {
		label := g.VertexName(v)
		switch {
		case v == g.Start:
			label = fmt.Sprintf("Start %v", g.Maze.Start)
		case g.IsPath(v):
			label = g.Paths[v].String()
		}
		if err := dg.AddVertex(int(v), dgraph.VertexAttribute("label", label)); err != nil {
			return fmt.Errorf("add vertex %s: %w", g.VertexName(v), err)
		}
	}

	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			err := dg.AddEdge(int(u), int(g.Head[e]))
			if err != nil && !errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
				return fmt.Errorf("add edge %s->%s: %w", g.VertexName(u), g.VertexName(g.Head[e]), err)
			}
		}
	}

	return draw.DOT(dg, w)
}
