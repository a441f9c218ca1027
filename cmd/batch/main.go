// Command batch solves every maze file in a directory and writes a YAML report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"tilt_maze/pkg/logging"
	"tilt_maze/pkg/maze"
	"tilt_maze/pkg/solver"
)

// Report is the document written to --output.
type Report struct {
	Generated  time.Time `yaml:"generated"`
	Solved     int       `yaml:"solved"`
	Unsolvable int       `yaml:"unsolvable"`
	Failed     int       `yaml:"failed"`
	Mazes      []Entry   `yaml:"mazes"`
}

// Entry is the outcome for one file.
type Entry struct {
	File      string  `yaml:"file"`
	Size      string  `yaml:"size,omitempty"`
	Solvable  bool    `yaml:"solvable"`
	Moves     int     `yaml:"moves,omitempty"`
	Paths     int     `yaml:"paths,omitempty"`
	Labels    int     `yaml:"labels,omitempty"`
	ElapsedMs float64 `yaml:"elapsed_ms"`
	Error     string  `yaml:"error,omitempty"`
}

func main() {
	input := flag.String("input", "", "Directory of maze files")
	pattern := flag.String("pattern", "*.maze", "File name pattern inside --input")
	output := flag.String("output", "report.yaml", "Output YAML report path")
	workers := flag.Int("workers", runtime.NumCPU(), "Mazes solved concurrently")
	timeout := flag.Duration("timeout", 30*time.Second, "Time limit per maze")
	checkOnly := flag.Bool("check", false, "Only decide solvability, skip move generation")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: level})

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: batch --input <dir> [--pattern '*.maze'] [--output report.yaml] [--workers N] [--timeout 30s] [--check]")
		os.Exit(1)
	}

	start := time.Now()

	// Step 1: Collect maze files.
	files, err := filepath.Glob(filepath.Join(*input, *pattern))
	if err != nil {
		logger.Error("bad pattern", "pattern", *pattern, "error", err)
		os.Exit(1)
	}
	slices.Sort(files)
	logger.Info("Step 1: collected maze files", "count", len(files), "dir", *input)

	// Step 2: Solve them.
	engine := solver.NewEngine(*timeout, solver.WithLogger(logger))
	report, err := solveAll(context.Background(), engine, files, *workers, *checkOnly, logger)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		os.Exit(1)
	}
	logger.Info("Step 2: solved",
		"solved", report.Solved, "unsolvable", report.Unsolvable, "failed", report.Failed)

	// Step 3: Write the report.
	if err := writeReport(*output, report); err != nil {
		logger.Error("write report", "error", err)
		os.Exit(1)
	}
	logger.Info("Step 3: report written", "path", *output, "elapsed", time.Since(start).Round(time.Millisecond))
}

// solveAll runs engine over files with at most workers in flight. A file
// that fails to parse or solve is recorded, not fatal; only cancellation of
// ctx aborts the batch.
func solveAll(ctx context.Context, engine solver.Runner, files []string, workers int, checkOnly bool, logger *slog.Logger) (*Report, error) {
	entries := make([]Entry, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = solveFile(ctx, engine, path, checkOnly)
			logger.Debug("maze done", "file", path, "solvable", entries[i].Solvable, "error", entries[i].Error)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Report{Generated: time.Now().UTC(), Mazes: entries}
	for _, e := range entries {
		switch {
		case e.Error != "":
			r.Failed++
		case e.Solvable:
			r.Solved++
		default:
			r.Unsolvable++
		}
	}
	return r, nil
}

func solveFile(ctx context.Context, engine solver.Runner, path string, checkOnly bool) (e Entry) {
	e.File = filepath.Base(path)
	start := time.Now()
	defer func() { e.ElapsedMs = float64(time.Since(start)) / float64(time.Millisecond) }()

	m, err := readMaze(path)
	if err != nil {
		e.Error = err.Error()
		return e
	}
	e.Size = fmt.Sprintf("%dx%d", m.Rows, m.Cols)

	out, err := engine.Run(ctx, m, checkOnly)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			e.Error = "timeout"
		} else {
			e.Error = err.Error()
		}
		return e
	}
	e.Solvable = out.Solvable
	e.Moves = len(out.Moves)
	e.Paths = out.Summary.Paths
	e.Labels = out.Stats.Labels
	return e
}

func readMaze(path string) (*maze.Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return maze.Parse(f)
}

func writeReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
