package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tilt_maze/pkg/display"
	"tilt_maze/pkg/realize"
	"tilt_maze/pkg/solver"
)

type solveFlags struct {
	show bool
	step bool
	all  bool
}

func newSolveCmd(g *globalFlags) *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve <maze-file>",
		Short: "Solve a maze and print its moves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, g, f, args[0])
		},
	}
	cmd.Flags().BoolVar(&f.show, "show", false, "draw the board after every move")
	cmd.Flags().BoolVar(&f.step, "step", false, "wait for Enter after every move (implies --show)")
	cmd.Flags().BoolVar(&f.all, "all", false, "also list every non-dominated walk")
	return cmd
}

func runSolve(cmd *cobra.Command, g *globalFlags, f *solveFlags, path string) error {
	cfg, logger, err := g.setup(cmd)
	if err != nil {
		return err
	}
	m, err := loadMaze(cmd, path)
	if err != nil {
		return err
	}
	s, err := solver.New(m, solver.WithLogger(logger), solver.WithMaxCells(cfg.Solver.MaxCells))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var drawer realize.Drawer
	if f.show || f.step {
		var opts []display.Option
		if f.step {
			opts = append(opts, display.WithStep(cmd.InOrStdin()))
		}
		con := display.NewConsole(m, out, opts...)
		fmt.Fprintln(out, con.Render())
		drawer = con
	}

	ok, err := s.Solve(ctx, drawer)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "no solution")
		for _, c := range s.Unreachable() {
			fmt.Fprintf(out, "unreachable target %v\n", c)
		}
		return errUnsolvable
	}

	fmt.Fprintf(out, "solved in %d moves over %d paths\n", len(s.Moves()), len(s.Walk()))
	for i, mv := range s.Moves() {
		fmt.Fprintf(out, "%3d  %v -> %v\n", i+1, mv.From, mv.To)
	}

	if f.all {
		walks, err := s.AllWalks(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d non-dominated walks\n", len(walks))
		for _, w := range walks {
			fmt.Fprintln(out, formatWalk(w))
		}
	}
	return nil
}

func formatWalk(w []uint32) string {
	s := "Start"
	for _, p := range w {
		s += fmt.Sprintf(" -> BP%d", p)
	}
	return s + " -> End"
}
