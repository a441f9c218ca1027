package main

import (
	"github.com/spf13/cobra"

	"tilt_maze/pkg/api"
	"tilt_maze/pkg/solver"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			engine := solver.NewEngine(cfg.Solver.Timeout,
				solver.WithLogger(logger), solver.WithMaxCells(cfg.Solver.MaxCells))
			handlers := api.NewHandlers(engine, cfg.Solver.MaxCells, cfg.Server.MaxBodyBytes, logger)
			return api.ListenAndServe(api.NewServer(cfg.Server, handlers, logger), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config)")
	return cmd
}
