package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"tilt_maze/pkg/config"
	"tilt_maze/pkg/graph"
	"tilt_maze/pkg/logging"
	"tilt_maze/pkg/maze"
	"tilt_maze/pkg/solver"
)

// mockRunner implements solver.Runner for testing.
type mockRunner struct {
	out       *solver.Outcome
	err       error
	checkOnly bool
}

func (m *mockRunner) Run(ctx context.Context, mz *maze.Maze, checkOnly bool) (*solver.Outcome, error) {
	m.checkOnly = checkOnly
	return m.out, m.err
}

func newHandlers(r solver.Runner) *Handlers {
	return NewHandlers(r, 10_000, 1<<16, logging.Discard())
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/solve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

const open3x3 = `{"rows":3,"cols":3,"start":{"row":0,"col":0},"targets":[{"row":2,"col":2}]}`

func TestHandleSolve_Success(t *testing.T) {
	h := newHandlers(solver.NewEngine(time.Second, solver.WithLogger(logging.Discard())))

	w := post(h.HandleSolve, open3x3)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp SolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Solvable {
		t.Fatal("Solvable = false, want true")
	}
	want := []MoveJSON{
		{From: CoordJSON{0, 0}, To: CoordJSON{0, 2}},
		{From: CoordJSON{0, 2}, To: CoordJSON{2, 2}},
	}
	if len(resp.Moves) != len(want) {
		t.Fatalf("Moves length = %d, want %d", len(resp.Moves), len(want))
	}
	for i := range want {
		if resp.Moves[i] != want[i] {
			t.Errorf("Moves[%d] = %+v, want %+v", i, resp.Moves[i], want[i])
		}
	}
	if resp.Graph.Paths != 1 || resp.Graph.Cycles != 1 {
		t.Errorf("Graph = %+v, want one cyclic path", resp.Graph)
	}
}

func TestHandleSolve_Walls(t *testing.T) {
	h := newHandlers(solver.NewEngine(time.Second, solver.WithLogger(logging.Discard())))

	body := `{"rows":3,"cols":3,
		"row_walls":[{"index":1,"after":[0,1]}],
		"column_walls":[{"index":1,"after":[0,1]}],
		"start":{"row":0,"col":0},"targets":[{"row":1,"col":1}],"mode":"check"}`
	w := post(h.HandleSolve, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	var resp SolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Solvable {
		t.Error("Solvable = true for a walled-in target")
	}
	if len(resp.Unreachable) != 1 || resp.Unreachable[0] != (CoordJSON{1, 1}) {
		t.Errorf("Unreachable = %+v, want [(1,1)]", resp.Unreachable)
	}
}

func TestHandleSolve_CheckMode(t *testing.T) {
	mock := &mockRunner{out: &solver.Outcome{Solvable: true}}
	h := newHandlers(mock)

	body := strings.Replace(open3x3, `}]}`, `}],"mode":"check"}`, 1)
	if w := post(h.HandleSolve, body); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !mock.checkOnly {
		t.Error("checkOnly = false, want true")
	}
}

func TestHandleSolve_InvalidJSON(t *testing.T) {
	h := newHandlers(&mockRunner{})

	w := post(h.HandleSolve, `{"rows":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleSolve_MissingContentType(t *testing.T) {
	h := newHandlers(&mockRunner{})

	req := httptest.NewRequest("POST", "/api/v1/solve", strings.NewReader(open3x3))
	w := httptest.NewRecorder()
	h.HandleSolve(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleSolve_InvalidMaze(t *testing.T) {
	h := newHandlers(&mockRunner{})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"zero size", `{"rows":0,"cols":3,"start":{"row":0,"col":0},"targets":[{"row":0,"col":1}]}`, "rows"},
		{"wall out of range", `{"rows":3,"cols":3,"row_walls":[{"index":0,"after":[2]}],"start":{"row":0,"col":0},"targets":[{"row":0,"col":1}]}`, "row_walls"},
		{"start out of range", `{"rows":3,"cols":3,"start":{"row":3,"col":0},"targets":[{"row":0,"col":1}]}`, "start"},
		{"no targets", `{"rows":3,"cols":3,"start":{"row":0,"col":0},"targets":[]}`, "targets"},
		{"duplicate target", `{"rows":3,"cols":3,"start":{"row":0,"col":0},"targets":[{"row":1,"col":1},{"row":1,"col":1}]}`, "targets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(h.HandleSolve, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if resp := decodeError(t, w); resp.Error != "invalid_maze" || resp.Field != tt.field {
				t.Errorf("error = %+v, want invalid_maze on %q", resp, tt.field)
			}
		})
	}
}

func TestHandleSolve_TooLarge(t *testing.T) {
	h := NewHandlers(&mockRunner{}, 100, 1<<16, logging.Discard())

	w := post(h.HandleSolve, `{"rows":1000000,"cols":1000000,"start":{"row":0,"col":0},"targets":[{"row":1,"col":1}]}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

func TestHandleSolve_RunnerErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
		want string
	}{
		{graph.ErrStartIsolated, http.StatusUnprocessableEntity, "start_isolated"},
		{context.DeadlineExceeded, http.StatusServiceUnavailable, "request_timeout"},
		{solver.ErrTooLarge, http.StatusRequestEntityTooLarge, "maze_too_large"},
	}
	for _, tt := range tests {
		h := newHandlers(&mockRunner{err: tt.err})
		w := post(h.HandleSolve, open3x3)
		if w.Code != tt.code {
			t.Errorf("%v: status = %d, want %d", tt.err, w.Code, tt.code)
			continue
		}
		if resp := decodeError(t, w); resp.Error != tt.want {
			t.Errorf("%v: error = %q, want %q", tt.err, resp.Error, tt.want)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	h := newHandlers(&mockRunner{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want 'ok'", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	h := newHandlers(&mockRunner{out: &solver.Outcome{Solvable: true}})
	post(h.HandleSolve, open3x3)
	post(h.HandleSolve, `{"rows":0}`)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	h.HandleStats(w, req)

	var resp StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Solved != 1 || resp.Rejected != 1 || resp.Unsolvable != 0 {
		t.Errorf("stats = %+v, want 1 solved and 1 rejected", resp)
	}
	if resp.MaxCells != 10_000 {
		t.Errorf("MaxCells = %d, want 10000", resp.MaxCells)
	}
}

func testConfig() config.ServerConfig {
	cfg := config.Default().Server
	cfg.MaxConcurrent = 1
	return cfg
}

func TestMiddleware_RequestID(t *testing.T) {
	var seen string
	h := withMiddleware("test", func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}, semaphore.NewWeighted(1), testConfig(), logging.Discard())

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("request id %q is not a UUID", seen)
	}
	if got := w.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("X-Request-ID = %q, want %q", got, seen)
	}

	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", id)
	h(httptest.NewRecorder(), req)
	if seen != id {
		t.Errorf("request id = %q, want caller's %q", seen, id)
	}
}

func TestMiddleware_Busy(t *testing.T) {
	sem := semaphore.NewWeighted(1)
	sem.TryAcquire(1)
	called := false
	h := withMiddleware("test", func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, sem, testConfig(), logging.Discard())

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	if called {
		t.Error("handler ran while the limit was reached")
	}
}

func TestMiddleware_Recover(t *testing.T) {
	sem := semaphore.NewWeighted(1)
	h := withMiddleware("test", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, sem, testConfig(), logging.Discard())

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !sem.TryAcquire(1) {
		t.Error("semaphore not released after panic")
	}
}

func TestServerRoutes(t *testing.T) {
	h := newHandlers(&mockRunner{})
	srv := httptest.NewServer(NewServer(testConfig(), h, logging.Discard()).Handler)
	defer srv.Close()

	for _, path := range []string{"/api/v1/health", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}
