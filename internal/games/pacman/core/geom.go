package core

import "math"

// World coordinates are continuous: x grows to the right and y grows up.
// Cell (row, col) covers x in [col, col+1) and y in [rows-1-row, rows-row).

// DefaultCenterEpsilon is the tolerance used for the cell-center test.
const DefaultCenterEpsilon = 0.06

// Point is a position in world coordinates.
type Point struct {
	X float64
	Y float64
}

// Heading is an axis-aligned unit direction, or zero when stationary.
type Heading struct {
	DX int
	DY int
}

var (
	Right = Heading{DX: 1, DY: 0}
	Left  = Heading{DX: -1, DY: 0}
	Up    = Heading{DX: 0, DY: 1}
	Down  = Heading{DX: 0, DY: -1}
)

// Reverse returns the opposite heading. The zero heading is its own reverse.
func (h Heading) Reverse() Heading {
	return Heading{DX: -h.DX, DY: -h.DY}
}

// IsZero reports whether h is stationary.
func (h Heading) IsZero() bool {
	return h.DX == 0 && h.DY == 0
}

// String returns a short name for the heading.
func (h Heading) String() string {
	switch h {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// RowAt maps a world y to a row index.
func (g *Grid) RowAt(y float64) int {
	return g.rows - 1 - int(math.Floor(y))
}

// ColAt maps a world x to a column index.
func (g *Grid) ColAt(x float64) int {
	return int(math.Floor(x))
}

// CellOf returns the cell containing world point (x, y).
func (g *Grid) CellOf(x, y float64) CellPos {
	return CellPos{Row: g.RowAt(y), Col: g.ColAt(x)}
}

// CenterX returns the world x of a column's center.
func (g *Grid) CenterX(col int) float64 {
	return float64(col) + 0.5
}

// CenterY returns the world y of a row's center.
func (g *Grid) CenterY(row int) float64 {
	return float64(g.rows-1-row) + 0.5
}

// Center returns the world center of a cell.
func (g *Grid) Center(p CellPos) Point {
	return Point{X: g.CenterX(p.Col), Y: g.CenterY(p.Row)}
}

// AtCellCenter reports whether (x, y) is within eps of the center of
// (row, col) on both axes.
func (g *Grid) AtCellCenter(x, y float64, row, col int, eps float64) bool {
	return math.Abs(x-g.CenterX(col)) < eps && math.Abs(y-g.CenterY(row)) < eps
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// distSq is the squared distance between two points.
func distSq(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}
