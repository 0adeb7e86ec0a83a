package pacman

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-pacman/internal/core"
	pcore "github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
)

const (
	cellW     = 2 // terminal columns per maze cell
	hudHeight = 2
)

var pursuerColors = [pcore.PursuerCount]core.Color{
	core.ColorRed,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorOrange,
}

// Render draws the HUD, the maze, the actors and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		grid := g.world.Grid()
		renderOverlay(dst, core.ColorYellow,
			"Window too small",
			fmt.Sprintf("Need %dx%d", grid.Cols()*cellW, grid.Rows()+hudHeight))
		return
	}

	g.renderMaze(dst)
	g.renderItems(dst)
	g.renderPursuers(dst)
	g.renderPlayer(dst)
	g.renderPhase(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.world.Session()
	hud := fmt.Sprintf(" SCORE %d  LIVES %s  TIME %s  PELLETS %d/%d",
		s.Score,
		strings.Repeat("♥", s.Lives),
		formatClock(g.world.Elapsed()),
		s.PelletsEaten, s.PelletsTotal)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// formatClock renders a duration as mm:ss.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (g *Game) renderMaze(dst *core.Screen) {
	grid := g.world.Grid()
	for row := range grid.Rows() {
		y := g.offsetY + row
		for col := range grid.Cols() {
			x := g.offsetX + col*cellW
			switch grid.At(row, col) {
			case pcore.Wall:
				dst.DrawTextColored(x, y, "██", core.ColorBlue)
			case pcore.Gate:
				dst.DrawTextColored(x, y, "--", core.ColorBrightMagenta)
			case pcore.Floor:
				dst.SetColored(x, y, '·', core.ColorWhite)
			}
		}
	}
}

func (g *Game) renderItems(dst *core.Screen) {
	pu := g.world.PowerUps()
	for _, b := range pu.Bonuses {
		if b.Active {
			dst.SetColored(g.offsetX+b.Col*cellW, g.offsetY+b.Row, '%', core.ColorGreen)
		}
	}
	if pu.Life.Active {
		dst.SetColored(g.offsetX+pu.Life.Col*cellW, g.offsetY+pu.Life.Row, '♥', core.ColorBrightRed)
	}
}

func (g *Game) renderPursuers(dst *core.Screen) {
	for i, pu := range g.world.Pursuers() {
		x, y := g.screenPos(pu.X, pu.Y)
		dst.SetColored(x, y, 'M', pursuerColors[i])
	}
}

func (g *Game) renderPlayer(dst *core.Screen) {
	p := g.world.Player()
	s := g.world.Session()
	x, y := g.screenPos(p.X, p.Y)

	glyph := facingGlyph(s.FacingDeg)
	if s.DeathActive {
		glyph = '*'
	}
	dst.SetColored(x, y, glyph, core.ColorBrightYellow)
}

// screenPos maps world coordinates to a terminal cell. Horizontal
// positions keep half-cell resolution since each cell is two columns.
func (g *Game) screenPos(wx, wy float64) (int, int) {
	x := g.offsetX + int(math.Floor((wx-0.5)*cellW+0.5))
	y := g.offsetY + g.world.Grid().RowAt(wy)
	return x, y
}

// facingGlyph returns a mouth opening toward the facing direction.
func facingGlyph(deg float64) rune {
	d := math.Mod(deg+360, 360)
	switch {
	case d < 45 || d >= 315:
		return '<'
	case d < 135:
		return 'v'
	case d < 225:
		return '>'
	default:
		return '^'
	}
}

func (g *Game) renderPhase(dst *core.Screen) {
	s := g.world.Session()
	score := fmt.Sprintf("Score: %d", s.Score)

	switch s.Phase() {
	case pcore.PhasePaused:
		renderOverlay(dst, core.ColorCyan, "PAUSED", "P: resume  B: menu")
	case pcore.PhaseWon:
		renderOverlay(dst, core.ColorBrightGreen, "YOU WIN!", score, "R: play again  B: menu  Q: quit")
	case pcore.PhaseGameOver:
		if s.PostMenuShown {
			renderOverlay(dst, core.ColorBrightRed, "GAME OVER", score, "R: play again  B: menu  Q: quit")
		} else {
			renderOverlay(dst, core.ColorBrightRed, "GAME OVER")
		}
	}
}

// renderOverlay draws a bordered box with centered lines.
func renderOverlay(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), width+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	for i, l := range lines {
		dst.DrawTextCenteredColored(box.Y+1+i, l, c)
	}
}
