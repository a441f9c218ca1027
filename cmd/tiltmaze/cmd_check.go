package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tilt_maze/pkg/solver"
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <maze-file>",
		Short: "Report whether a maze can be solved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			m, err := loadMaze(cmd, args[0])
			if err != nil {
				return err
			}
			s, err := solver.New(m, solver.WithLogger(logger), solver.WithMaxCells(cfg.Solver.MaxCells))
			if err != nil {
				return err
			}
			ok, err := s.IsSolvable(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "unsolvable")
				return errUnsolvable
			}
			fmt.Fprintln(cmd.OutOrStdout(), "solvable")
			return nil
		},
	}
}
