package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tilt_maze/pkg/graph"
)

func newGraphCmd(g *globalFlags) *cobra.Command {
	var dot bool
	cmd := &cobra.Command{
		Use:   "graph <maze-file>",
		Short: "Print the branchless paths of a maze, or their graph in DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := g.setup(cmd); err != nil {
				return err
			}
			m, err := loadMaze(cmd, args[0])
			if err != nil {
				return err
			}
			pg, err := graph.Build(m)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dot {
				return graph.WriteDOT(pg, out)
			}

			sum := pg.Summary()
			fmt.Fprintf(out, "%d segments, %d paths (%d cycles), %d edges, %d targets (%d stranded)\n",
				sum.Segments, sum.Paths, sum.Cycles, sum.Edges, sum.Targets, sum.Stranded)
			for i := range pg.Paths {
				fmt.Fprintln(out, pg.Paths[i].String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "write Graphviz DOT instead of a listing")
	return cmd
}
