package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tilt_maze/pkg/api"
	"tilt_maze/pkg/config"
	"tilt_maze/pkg/logging"
	"tilt_maze/pkg/solver"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration (defaults apply when empty)")
	port := flag.Int("port", 0, "HTTP port (overrides server.addr)")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	// Load configuration.
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *port != 0 {
		cfg.Server.Addr = fmt.Sprintf(":%d", *port)
	}
	if *corsOrigin != "" {
		cfg.Server.CORSOrigin = *corsOrigin
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: level, JSON: cfg.Log.JSON})

	// Build solver engine.
	engine := solver.NewEngine(cfg.Solver.Timeout,
		solver.WithLogger(logger), solver.WithMaxCells(cfg.Solver.MaxCells))
	logger.Info("engine ready",
		"max_cells", cfg.Solver.MaxCells,
		"timeout", cfg.Solver.Timeout,
		"startup", time.Since(start).Round(time.Millisecond))

	// Setup HTTP server.
	handlers := api.NewHandlers(engine, cfg.Solver.MaxCells, cfg.Server.MaxBodyBytes, logger)
	srv := api.NewServer(cfg.Server, handlers, logger)

	if err := api.ListenAndServe(srv, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
