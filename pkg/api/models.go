package api

// SolveRequest is the JSON body for POST /api/v1/solve.
type SolveRequest struct {
	Rows        int         `json:"rows"`
	Cols        int         `json:"cols"`
	RowWalls    []WallsJSON `json:"row_walls,omitempty"`
	ColumnWalls []WallsJSON `json:"column_walls,omitempty"`
	Start       CoordJSON   `json:"start"`
	Targets     []CoordJSON `json:"targets"`
	// Mode is "solve" (default) or "check".
	Mode string `json:"mode,omitempty"`
}

// WallsJSON lists the walls of one row or column. Each entry w separates
// cells w and w+1.
type WallsJSON struct {
	Index int   `json:"index"`
	After []int `json:"after"`
}

// CoordJSON represents a cell in JSON.
type CoordJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SolveResponse is the JSON response for a solve or check request.
type SolveResponse struct {
	Solvable    bool        `json:"solvable"`
	Walk        []uint32    `json:"walk,omitempty"`
	Moves       []MoveJSON  `json:"moves,omitempty"`
	Unreachable []CoordJSON `json:"unreachable,omitempty"`
	Graph       GraphJSON   `json:"graph"`
	Search      SearchJSON  `json:"search"`
	ElapsedMs   float64     `json:"elapsed_ms"`
}

// MoveJSON is one slide.
type MoveJSON struct {
	From CoordJSON `json:"from"`
	To   CoordJSON `json:"to"`
}

// GraphJSON summarises the path graph.
type GraphJSON struct {
	Segments int `json:"segments"`
	Paths    int `json:"paths"`
	Cycles   int `json:"cycles"`
	Edges    int `json:"edges"`
	Stranded int `json:"stranded"`
}

// SearchJSON carries the search counters.
type SearchJSON struct {
	Labels     int `json:"labels"`
	Popped     int `json:"popped"`
	Dominated  int `json:"dominated"`
	Infeasible int `json:"infeasible"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	Solved     uint64 `json:"solved"`
	Unsolvable uint64 `json:"unsolvable"`
	Rejected   uint64 `json:"rejected"`
	MaxCells   int    `json:"max_cells"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
