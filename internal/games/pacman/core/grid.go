package core

import (
	"errors"
	"fmt"
)

// Cell classifies one maze tile.
type Cell uint8

const (
	Floor Cell = iota // walkable, still holds a pellet
	Empty             // walkable, pellet eaten (or never had one)
	Wall
	Gate // passable for pursuers only
)

// String returns the cell name.
func (c Cell) String() string {
	switch c {
	case Floor:
		return "floor"
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Gate:
		return "gate"
	default:
		return "unknown"
	}
}

// Layout glyphs understood by ParseLayout.
const (
	GlyphWall  = '#'
	GlyphFloor = '.'
	GlyphGate  = '-'
	GlyphEmpty = ' '
)

// DefaultLayout is the stock 21x19 maze. Row 0 is the top of the screen.
// The two bottom rows are solid wall.
var DefaultLayout = []string{
	"###################",
	"#......#....#.....#",
	"#.###..#.##.#..##.#",
	"#.#.............#.#",
	"#.#.##.######.#.#.#",
	"#...#.........#...#",
	"###.#.#######.#.###",
	"#.....#.....#.....#",
	"#.###.#.###.#.#.#.#",
	"#...#...#-#...#...#",
	"###.###.#.#.###.###",
	"#.................#",
	"#.###.#######.#.#.#",
	"#...#.........#...#",
	"#.#.##.######.#.#.#",
	"#.#.............#.#",
	"#.###..#.##.#..##.#",
	"#......#....#.....#",
	"###################",
	"###################",
	"###################",
}

// ErrEmptyLayout is returned when a layout has no rows or no columns.
var ErrEmptyLayout = errors.New("pacman: empty layout")

// CellPos addresses a grid cell. Row 0 is the top row.
type CellPos struct {
	Row int
	Col int
}

// Step returns the neighbouring cell in direction h.
// Positive DY moves up the screen, which is a smaller row index.
func (p CellPos) Step(h Heading) CellPos {
	return CellPos{Row: p.Row - h.DY, Col: p.Col + h.DX}
}

// Grid is the maze: a live cell array plus the template it resets to.
// Cells are stored row-major: index = row*cols + col.
type Grid struct {
	rows     int
	cols     int
	cells    []Cell
	template []Cell
}

// ParseLayout builds a grid from text rows.
func ParseLayout(layout []string) (*Grid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	rows := len(layout)
	cols := len([]rune(layout[0]))
	tmpl := make([]Cell, 0, rows*cols)

	for r, line := range layout {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("pacman: layout row %d has %d columns, expected %d", r, len(runes), cols)
		}
		for c, ch := range runes {
			cell, err := cellFromGlyph(ch)
			if err != nil {
				return nil, fmt.Errorf("pacman: layout row %d col %d: %w", r, c, err)
			}
			tmpl = append(tmpl, cell)
		}
	}

	g := &Grid{
		rows:     rows,
		cols:     cols,
		template: tmpl,
		cells:    make([]Cell, len(tmpl)),
	}
	g.Reset()
	return g, nil
}

// NewDefaultGrid returns a fresh grid built from DefaultLayout.
func NewDefaultGrid() *Grid {
	g, err := ParseLayout(DefaultLayout)
	if err != nil {
		panic(err) // DefaultLayout is a compile-time constant
	}
	return g
}

func cellFromGlyph(ch rune) (Cell, error) {
	switch ch {
	case GlyphWall:
		return Wall, nil
	case GlyphFloor:
		return Floor, nil
	case GlyphGate:
		return Gate, nil
	case GlyphEmpty:
		return Empty, nil
	default:
		return Wall, fmt.Errorf("unknown glyph %q", ch)
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell at (row, col). Out-of-range reads are walls.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Wall
	}
	return g.cells[row*g.cols+col]
}

// Set overwrites a live cell. Out-of-range writes are ignored.
func (g *Grid) Set(row, col int, c Cell) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row*g.cols+col] = c
}

// BlockedForPlayer reports whether the player may not enter (row, col).
func (g *Grid) BlockedForPlayer(row, col int) bool {
	c := g.At(row, col)
	return c == Wall || c == Gate
}

// BlockedForPursuer reports whether a pursuer may not enter (row, col).
// Pursuers pass through the gate.
func (g *Grid) BlockedForPursuer(row, col int) bool {
	return g.At(row, col) == Wall
}

// ConsumePelletAt clears the pellet at (row, col) and reports whether one
// was there.
func (g *Grid) ConsumePelletAt(row, col int) bool {
	if g.At(row, col) != Floor {
		return false
	}
	g.cells[row*g.cols+col] = Empty
	return true
}

// RemainingPellets counts cells that still hold a pellet.
func (g *Grid) RemainingPellets() int {
	n := 0
	for _, c := range g.cells {
		if c == Floor {
			n++
		}
	}
	return n
}

// Reset restores every cell from the template.
func (g *Grid) Reset() {
	copy(g.cells, g.template)
}

// Clone returns a deep copy sharing nothing with g.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		rows:     g.rows,
		cols:     g.cols,
		cells:    make([]Cell, len(g.cells)),
		template: make([]Cell, len(g.template)),
	}
	copy(c.cells, g.cells)
	copy(c.template, g.template)
	return c
}
