// Package maze holds the wall geometry, start cell and targets of a tilt maze.
package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize      = errors.New("maze: rows and columns must be positive")
	ErrIndexOutOfRange  = errors.New("maze: row or column index out of range")
	ErrWallOutOfRange   = errors.New("maze: wall index out of range")
	ErrBadOpenings      = errors.New("maze: open intervals must tile each line")
	ErrStartOutOfRange  = errors.New("maze: start location out of range")
	ErrNoTargets        = errors.New("maze: no targets")
	ErrTargetOutOfRange = errors.New("maze: target out of range")
	ErrDuplicateTarget  = errors.New("maze: duplicate target")
)

// Maze is a rectangular, fully enclosed grid. RowOpenings[r] lists the
// wall-free runs of row r; ColOpenings[c] those of column c.
type Maze struct {
	Rows        int
	Cols        int
	RowOpenings [][]Interval
	ColOpenings [][]Interval
	Start       Coord
	Targets     []Coord
}

// New returns a rows×cols maze without interior walls. Start is left Unset.
func New(rows, cols int) (*Maze, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	m := &Maze{
		Rows:        rows,
		Cols:        cols,
		RowOpenings: make([][]Interval, rows),
		ColOpenings: make([][]Interval, cols),
		Start:       Unset,
	}
	for r := range rows {
		m.RowOpenings[r] = []Interval{{Lo: 0, Hi: cols}}
	}
	for c := range cols {
		m.ColOpenings[c] = []Interval{{Lo: 0, Hi: rows}}
	}
	return m, nil
}

// AddRowWall places a wall in row between columns after and after+1.
func (m *Maze) AddRowWall(row, after int) error {
	if row < 0 || row >= m.Rows {
		return fmt.Errorf("%w: row %d", ErrIndexOutOfRange, row)
	}
	line, err := split(m.RowOpenings[row], m.Cols, after)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	m.RowOpenings[row] = line
	return nil
}

// AddColumnWall places a wall in col between rows after and after+1.
func (m *Maze) AddColumnWall(col, after int) error {
	if col < 0 || col >= m.Cols {
		return fmt.Errorf("%w: column %d", ErrIndexOutOfRange, col)
	}
	line, err := split(m.ColOpenings[col], m.Rows, after)
	if err != nil {
		return fmt.Errorf("column %d: %w", col, err)
	}
	m.ColOpenings[col] = line
	return nil
}

// WallEast reports whether a wall (or the border) lies right of c.
func (m *Maze) WallEast(c Coord) bool {
	if c.Col+1 >= m.Cols {
		return true
	}
	return !m.RowOpenings[c.Row][find(m.RowOpenings[c.Row], c.Col)].Contains(c.Col + 1)
}

// WallSouth reports whether a wall (or the border) lies below c.
func (m *Maze) WallSouth(c Coord) bool {
	if c.Row+1 >= m.Rows {
		return true
	}
	return !m.ColOpenings[c.Col][find(m.ColOpenings[c.Col], c.Row)].Contains(c.Row + 1)
}

// IsTarget reports whether c is one of the targets.
func (m *Maze) IsTarget(c Coord) bool {
	for _, t := range m.Targets {
		if t == c {
			return true
		}
	}
	return false
}

// Validate checks the maze is consistent with its declared dimensions.
func (m *Maze) Validate() error {
	if m.Rows <= 0 || m.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, m.Rows, m.Cols)
	}
	if len(m.RowOpenings) != m.Rows || len(m.ColOpenings) != m.Cols {
		return fmt.Errorf("%w: %d row and %d column lines for a %dx%d maze",
			ErrBadOpenings, len(m.RowOpenings), len(m.ColOpenings), m.Rows, m.Cols)
	}
	for r, line := range m.RowOpenings {
		if err := checkLine(line, m.Cols); err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
	}
	for c, line := range m.ColOpenings {
		if err := checkLine(line, m.Rows); err != nil {
			return fmt.Errorf("column %d: %w", c, err)
		}
	}
	if !m.Start.In(m.Rows, m.Cols) {
		return fmt.Errorf("%w: %v", ErrStartOutOfRange, m.Start)
	}
	if len(m.Targets) == 0 {
		return ErrNoTargets
	}
	seen := make(map[Coord]bool, len(m.Targets))
	for _, t := range m.Targets {
		if !t.In(m.Rows, m.Cols) {
			return fmt.Errorf("%w: %v", ErrTargetOutOfRange, t)
		}
		if seen[t] {
			return fmt.Errorf("%w: %v", ErrDuplicateTarget, t)
		}
		seen[t] = true
	}
	return nil
}
