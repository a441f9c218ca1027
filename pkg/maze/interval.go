package maze

import "fmt"

// Interval is a half-open range [Lo, Hi) of wall-free cells along one row or column.
type Interval struct {
	Lo int
	Hi int
}

// Len returns the number of cells in the interval.
func (iv Interval) Len() int { return iv.Hi - iv.Lo }

// Contains reports whether x falls in [Lo, Hi).
func (iv Interval) Contains(x int) bool { return x >= iv.Lo && x < iv.Hi }

func (iv Interval) String() string { return fmt.Sprintf("[%d,%d)", iv.Lo, iv.Hi) }

// find returns the index of the interval containing x, or -1.
func find(line []Interval, x int) int {
	for i, iv := range line {
		if iv.Contains(x) {
			return i
		}
	}
	return -1
}

// split places a wall between cells after and after+1 of a line of the given length.
func split(line []Interval, length, after int) ([]Interval, error) {
	if after < 0 || after+1 >= length {
		return nil, fmt.Errorf("%w: %d (line length %d)", ErrWallOutOfRange, after, length)
	}
	i := find(line, after)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d not covered", ErrBadOpenings, after)
	}
	iv := line[i]
	if iv.Hi == after+1 {
		return line, nil // wall already there
	}
	out := make([]Interval, 0, len(line)+1)
	out = append(out, line[:i]...)
	out = append(out, Interval{Lo: iv.Lo, Hi: after + 1}, Interval{Lo: after + 1, Hi: iv.Hi})
	out = append(out, line[i+1:]...)
	return out, nil
}

// checkLine verifies that intervals are sorted, disjoint, and tile [0, length).
func checkLine(line []Interval, length int) error {
	next := 0
	for _, iv := range line {
		if iv.Lo != next || iv.Hi <= iv.Lo || iv.Hi > length {
			return fmt.Errorf("%w: %v in line of length %d", ErrBadOpenings, line, length)
		}
		next = iv.Hi
	}
	if next != length {
		return fmt.Errorf("%w: %v does not reach %d", ErrBadOpenings, line, length)
	}
	return nil
}
