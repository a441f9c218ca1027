package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"sync/atomic"
	"time"

	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/maze"
	"tilt_maze/pkg/solver"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	runner       solver.Runner
	maxCells     int
	maxBodyBytes int64
	logger       *slog.Logger

	solved     atomic.Uint64
	unsolvable atomic.Uint64
	rejected   atomic.Uint64
}

// NewHandlers creates handlers around runner. Mazes with more than maxCells
// cells are refused before they are built; zero disables the limit.
func NewHandlers(runner solver.Runner, maxCells int, maxBodyBytes int64, logger *slog.Logger) *Handlers {
	return &Handlers{
		runner:       runner,
		maxCells:     maxCells,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// requestError names the offending request field.
type requestError struct {
	field string
	err   error
}

func (e *requestError) Error() string { return fmt.Sprintf("%s: %v", e.field, e.err) }
func (e *requestError) Unwrap() error { return e.err }

// HandleSolve handles POST /api/v1/solve.
func (h *Handlers) HandleSolve(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "", "")
		return
	}

	// Parse request.
	var req SolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "", "")
		return
	}
	if req.Mode != "" && req.Mode != "solve" && req.Mode != "check" {
		writeError(w, http.StatusBadRequest, "invalid_request", "mode", "")
		return
	}
	if h.maxCells > 0 && req.Rows > 0 && req.Cols > 0 && req.Rows > h.maxCells/req.Cols {
		h.reject("too_large")
		writeError(w, http.StatusRequestEntityTooLarge, "maze_too_large", "", "")
		return
	}

	// Build the maze.
	m, err := req.toMaze()
	if err != nil {
		h.reject("invalid")
		var re *requestError
		field := ""
		if errors.As(err, &re) {
			field = re.field
		}
		writeError(w, http.StatusBadRequest, "invalid_maze", field, err.Error())
		return
	}

	// Solve.
	out, err := h.runner.Run(r.Context(), m, req.Mode == "check")
	if err != nil {
		switch {
		case errors.Is(err, solver.ErrTooLarge):
			h.reject("too_large")
			writeError(w, http.StatusRequestEntityTooLarge, "maze_too_large", "", "")
		case errors.Is(err, graph.ErrStartIsolated):
			h.reject("invalid")
			writeError(w, http.StatusUnprocessableEntity, "start_isolated", "start", "")
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			h.reject("timeout")
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "", "")
		default:
			h.reject("error")
			h.logger.Error("solve failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "", "")
		}
		return
	}

	if out.Solvable {
		h.solved.Add(1)
		solveOutcomes.WithLabelValues("solved").Inc()
	} else {
		h.unsolvable.Add(1)
		solveOutcomes.WithLabelValues("unsolvable").Inc()
	}
	if out.Stats.Labels > 0 {
		searchLabels.Observe(float64(out.Stats.Labels))
	}

	writeJSON(w, http.StatusOK, newSolveResponse(out))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{
		Solved:     h.solved.Load(),
		Unsolvable: h.unsolvable.Load(),
		Rejected:   h.rejected.Load(),
		MaxCells:   h.maxCells,
	})
}

func (h *Handlers) reject(outcome string) {
	h.rejected.Add(1)
	solveOutcomes.WithLabelValues(outcome).Inc()
}

func (req *SolveRequest) toMaze() (*maze.Maze, error) {
	m, err := maze.New(req.Rows, req.Cols)
	if err != nil {
		return nil, &requestError{field: "rows", err: err}
	}
	for _, line := range req.RowWalls {
		for _, after := range line.After {
			if err := m.AddRowWall(line.Index, after); err != nil {
				return nil, &requestError{field: "row_walls", err: err}
			}
		}
	}
	for _, line := range req.ColumnWalls {
		for _, after := range line.After {
			if err := m.AddColumnWall(line.Index, after); err != nil {
				return nil, &requestError{field: "column_walls", err: err}
			}
		}
	}
	m.Start = maze.Coord{Row: req.Start.Row, Col: req.Start.Col}
	for _, t := range req.Targets {
		m.Targets = append(m.Targets, maze.Coord{Row: t.Row, Col: t.Col})
	}

	if err := m.Validate(); err != nil {
		field := "targets"
		if errors.Is(err, maze.ErrStartOutOfRange) {
			field = "start"
		}
		return nil, &requestError{field: field, err: err}
	}
	return m, nil
}

func newSolveResponse(out *solver.Outcome) SolveResponse {
	resp := SolveResponse{
		Solvable: out.Solvable,
		Walk:     out.Walk,
		Graph: GraphJSON{
			Segments: out.Summary.Segments,
			Paths:    out.Summary.Paths,
			Cycles:   out.Summary.Cycles,
			Edges:    out.Summary.Edges,
			Stranded: out.Summary.Stranded,
		},
		Search: SearchJSON{
			Labels:     out.Stats.Labels,
			Popped:     out.Stats.Popped,
			Dominated:  out.Stats.Dominated,
			Infeasible: out.Stats.Infeasible,
		},
		ElapsedMs: float64(out.Elapsed) / float64(time.Millisecond),
	}
	for _, mv := range out.Moves {
		resp.Moves = append(resp.Moves, MoveJSON{
			From: CoordJSON{Row: mv.From.Row, Col: mv.From.Col},
			To:   CoordJSON{Row: mv.To.Row, Col: mv.To.Col},
		})
	}
	for _, c := range out.Unreachable {
		resp.Unreachable = append(resp.Unreachable, CoordJSON{Row: c.Row, Col: c.Col})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field, detail string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field, Detail: detail})
}
