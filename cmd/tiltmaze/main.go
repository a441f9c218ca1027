// Command tiltmaze solves tilt maze puzzles from the command line and can
// serve the solver over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tilt_maze/pkg/config"
	"tilt_maze/pkg/logging"
	"tilt_maze/pkg/maze"
)

// errUnsolvable makes the process exit with status 2.
var errUnsolvable = errors.New("maze has no solution")

type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	switch {
	case errors.Is(err, errUnsolvable):
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "tiltmaze:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "tiltmaze",
		Short:         "Solve tilt maze puzzles",
		Long:          "tiltmaze decides whether a single sliding token can visit every target of a maze and prints the slides that do it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides the config)")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(
		newSolveCmd(g),
		newCheckCmd(g),
		newGraphCmd(g),
		newServeCmd(g),
	)
	return root
}

// setup loads the configuration and builds the logger. Flags win over the file.
func (g *globalFlags) setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return cfg, nil, err
		}
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logJSON {
		cfg.Log.JSON = true
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	logger := logging.New(logging.Config{Level: level, JSON: cfg.Log.JSON, Output: cmd.ErrOrStderr()})
	return cfg, logger, nil
}

// loadMaze parses the maze in path, or standard input for "-".
func loadMaze(cmd *cobra.Command, path string) (*maze.Maze, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	m, err := maze.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
