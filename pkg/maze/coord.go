package maze

import "fmt"

// Coord is a (row, column) cell position.
type Coord struct {
	Row int
	Col int
}

// Unset marks a Coord that was never assigned.
var Unset = Coord{Row: -1, Col: -1}

// IsSet reports whether c differs from Unset.
func (c Coord) IsSet() bool { return c != Unset }

// Less orders coordinates row first, then column.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// In reports whether c lies inside a rows×cols grid.
func (c Coord) In(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Distance returns the Manhattan distance between two cells.
func Distance(a, b Coord) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
