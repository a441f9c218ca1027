package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrMissingSize  = errors.New("maze: file ended before the maze size")
	ErrMissingStart = errors.New("maze: file specifies neither a start location nor any target")
	ErrSyntax       = errors.New("maze: syntax error")
)

// Parse reads a maze in the line-oriented text format:
//
//	; comment
//	<rows> <cols>
//	row <i> : <wall> <wall> ...
//	column <j> : <wall> ...
//	<startRow> <startCol>
//	<targetRow> <targetCol>
//
// A wall index w separates cells w and w+1 of that row or column.
// Blank lines and lines starting with ';' are ignored.
func Parse(r io.Reader) (*Maze, error) {
	p := &parser{sc: bufio.NewScanner(r)}

	// Size.
	line, ok := p.next()
	if !ok {
		return nil, p.fail(ErrMissingSize)
	}
	nums, err := p.ints(line, 2)
	if err != nil {
		return nil, err
	}
	m, err := New(nums[0], nums[1])
	if err != nil {
		return nil, p.fail(err)
	}

	// Wall declarations, terminated by the first line that is not one.
	for {
		line, ok = p.next()
		if !ok {
			return nil, p.fail(ErrMissingStart)
		}
		fields := strings.Fields(strings.ReplaceAll(line, ":", " : "))
		kind := fields[0]
		if kind != "row" && kind != "column" {
			break
		}
		if len(fields) < 3 || fields[2] != ":" {
			return nil, p.fail(fmt.Errorf("%w: expected '<%s> <index> :'", ErrSyntax, kind))
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, p.fail(fmt.Errorf("%w: bad %s index %q", ErrSyntax, kind, fields[1]))
		}
		for _, f := range fields[3:] {
			w, err := strconv.Atoi(f)
			if err != nil {
				return nil, p.fail(fmt.Errorf("%w: bad wall index %q", ErrSyntax, f))
			}
			if kind == "row" {
				err = m.AddRowWall(index, w)
			} else {
				err = m.AddColumnWall(index, w)
			}
			if err != nil {
				return nil, p.fail(err)
			}
		}
	}

	// Start location is the line that ended the wall declarations.
	nums, err = p.ints(line, 2)
	if err != nil {
		return nil, err
	}
	m.Start = Coord{Row: nums[0], Col: nums[1]}
	if !m.Start.In(m.Rows, m.Cols) {
		return nil, p.fail(fmt.Errorf("%w: %v", ErrStartOutOfRange, m.Start))
	}

	// Targets until EOF.
	for {
		line, ok = p.next()
		if !ok {
			break
		}
		nums, err = p.ints(line, 2)
		if err != nil {
			return nil, err
		}
		t := Coord{Row: nums[0], Col: nums[1]}
		if !t.In(m.Rows, m.Cols) {
			return nil, p.fail(fmt.Errorf("%w: %v", ErrTargetOutOfRange, t))
		}
		if m.IsTarget(t) {
			return nil, p.fail(fmt.Errorf("%w: %v", ErrDuplicateTarget, t))
		}
		m.Targets = append(m.Targets, t)
	}
	if err := p.sc.Err(); err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}
	if len(m.Targets) == 0 {
		return nil, ErrNoTargets
	}

	return m, nil
}

type parser struct {
	sc     *bufio.Scanner
	lineNo int
}

// next returns the next line that is neither blank nor a comment.
func (p *parser) next() (string, bool) {
	for p.sc.Scan() {
		p.lineNo++
		line := strings.TrimSpace(p.sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		return line, true
	}
	return "", false
}

// ints parses exactly n whitespace-separated integers.
func (p *parser) ints(line string, n int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, p.fail(fmt.Errorf("%w: expected %d integers, got %q", ErrSyntax, n, line))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, p.fail(fmt.Errorf("%w: %q is not an integer", ErrSyntax, f))
		}
		out[i] = v
	}
	return out, nil
}

func (p *parser) fail(err error) error {
	return fmt.Errorf("line %d: %w", p.lineNo, err)
}
