// Package display draws a maze and the moves of its solution on a terminal.
package display

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tilt_maze/pkg/maze"
	"tilt_maze/pkg/realize"
)

const (
	glyphWall   = '█'
	glyphOpen   = ' '
	glyphTarget = '$'
	glyphStart  = '@'
	glyphTrail  = '*'
)

// Move colours, cycled per move.
var palette = []lipgloss.Color{
	lipgloss.Color("#2CD7C7"),
	lipgloss.Color("#F4D03F"),
	lipgloss.Color("#E74C3C"),
	lipgloss.Color("#9B59B6"),
	lipgloss.Color("#3498DB"),
	lipgloss.Color("#2ECC71"),
}

var _ realize.Drawer = (*Console)(nil)

// Console renders the maze on a (2R+1)×(2C+1) grid where cell (r,c) sits at
// (2r+1, 2c+1) and the odd/even positions in between hold walls.
type Console struct {
	out    io.Writer
	in     *bufio.Reader
	glyphs [][]rune
	paint  [][]int // palette index per position, -1 for none
	moves  int

	plain  lipgloss.Style
	wall   lipgloss.Style
	target lipgloss.Style
	trails []lipgloss.Style
}

type Option func(*Console)

// WithStep makes DrawMove wait for a line on in after each redraw.
func WithStep(in io.Reader) Option {
	return func(c *Console) { c.in = bufio.NewReader(in) }
}

// NewConsole prepares the board for m. Colours follow what out supports.
func NewConsole(m *maze.Maze, out io.Writer, opts ...Option) *Console {
	r := lipgloss.NewRenderer(out)
	c := &Console{
		out:    out,
		plain:  r.NewStyle(),
		wall:   r.NewStyle().Foreground(lipgloss.Color("#2C4A54")),
		target: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4D03F")),
	}
	for _, col := range palette {
		c.trails = append(c.trails, r.NewStyle().Bold(true).Foreground(col))
	}
	for _, opt := range opts {
		opt(c)
	}

	h, w := 2*m.Rows+1, 2*m.Cols+1
	c.glyphs = make([][]rune, h)
	c.paint = make([][]int, h)
	for y := range h {
		c.glyphs[y] = make([]rune, w)
		c.paint[y] = make([]int, w)
		for x := range w {
			c.paint[y][x] = -1
			if y%2 == 0 || x%2 == 0 {
				c.glyphs[y][x] = glyphWall
			} else {
				c.glyphs[y][x] = glyphOpen
			}
		}
	}

	// Open the gaps between cells that share no wall.
	for r := range m.Rows {
		for col := range m.Cols {
			cell := maze.Coord{Row: r, Col: col}
			if !m.WallEast(cell) {
				c.glyphs[2*r+1][2*col+2] = glyphOpen
			}
			if !m.WallSouth(cell) {
				c.glyphs[2*r+2][2*col+1] = glyphOpen
			}
		}
	}
	for _, t := range m.Targets {
		c.glyphs[2*t.Row+1][2*t.Col+1] = glyphTarget
	}
	if m.Start.IsSet() {
		c.glyphs[2*m.Start.Row+1][2*m.Start.Col+1] = glyphStart
	}
	return c
}

// DrawMove paints the slide from one cell to another and redraws.
func (c *Console) DrawMove(from, to maze.Coord) {
	color := c.moves % len(c.trails)
	c.moves++

	y0, x0 := 2*from.Row+1, 2*from.Col+1
	y1, x1 := 2*to.Row+1, 2*to.Col+1
	dy, dx := sign(y1-y0), sign(x1-x0)
	for y, x := y0, x0; ; y, x = y+dy, x+dx {
		if c.glyphs[y][x] == glyphOpen {
			c.glyphs[y][x] = glyphTrail
		}
		c.paint[y][x] = color
		if y == y1 && x == x1 {
			break
		}
	}

	fmt.Fprintf(c.out, "move %d: %v -> %v\n%s\n", c.moves, from, to, c.Render())
	if c.in != nil {
		fmt.Fprint(c.out, "press Enter to continue")
		_, _ = c.in.ReadString('\n')
	}
}

// Moves returns how many moves were drawn.
func (c *Console) Moves() int { return c.moves }

// Render returns the board, one line per grid row.
func (c *Console) Render() string {
	var b strings.Builder
	for y, row := range c.glyphs {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, g := range row {
			b.WriteString(c.style(g, c.paint[y][x]).Render(string(g)))
		}
	}
	return b.String()
}

func (c *Console) style(g rune, paint int) lipgloss.Style {
	switch {
	case g == glyphWall:
		return c.wall
	case paint >= 0:
		return c.trails[paint]
	case g == glyphTarget:
		return c.target
	}
	return c.plain
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
