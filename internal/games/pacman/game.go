// Package pacman adapts the maze simulation in pacman/core to the arcade
// platform: it maps input actions to player velocity, drives a fixed-step
// clock and draws the world into a screen buffer.
package pacman

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	pcore "github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// ID is the registry key and the score key of the game.
const ID = "pacman"

var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom config file, used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to every new world.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game for Pac-Man.
type Game struct {
	cfg   config.PacmanConfig
	world *pcore.World
	clock *pcore.ManualClock
	tick  time.Duration
	subs  int // world steps per tick
	seed  int64

	screenW, screenH int
	offsetX, offsetY int
	tooSmall         bool
}

// New creates a game. Reset must be called before Step or Render.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Pac-Man" }

// epoch anchors the manual clock so equal seeds give equal runs.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Reset loads the configuration and starts a fresh world.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gc, err := config.LoadPacman(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "path", configPath, "err", err)
		gc = config.DefaultPacmanConfig()
	}
	g.cfg = gc
	g.seed = cfg.Seed
	g.tick = cfg.TickInterval()
	g.subs = subStepsFor(g.tick)
	g.clock = pcore.NewManualClock(epoch)
	g.world = pcore.NewWorld(paramsFromConfig(gc),
		pcore.WithRNG(pcore.NewRNG(cfg.Seed)),
		pcore.WithClock(g.clock),
		pcore.WithLogger(logger.With("seed", cfg.Seed)),
	)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize lays the maze out for a new terminal size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
	grid := g.world.Grid()
	mazeW := grid.Cols() * cellW
	g.tooSmall = width < mazeW || height < grid.Rows()+hudHeight
	g.offsetX = max((width-mazeW)/2, 0)
	g.offsetY = hudHeight
}

// Step applies one frame of input and advances the world by one tick.
// Nothing moves while the window is too small.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.world.TogglePause()
	}
	if vx, vy, ok := velocityFor(in); ok {
		g.world.SetPlayerVelocity(vx, vy)
	}

	g.advance()

	if !g.world.Session().PostMenuShown && g.world.GameOverHeld(g.cfg.Shell.GameOverHold) {
		g.world.MarkPostMenuShown()
	}
	return core.StepResult{State: g.State()}
}

// simRate is the slowest rate the world may be stepped at. Pursuers only
// turn within CenterEpsilon of a cell center, so one world step must move
// them less than twice that.
const simRate = 60

// subStepsFor returns how many world steps of at most 1/simRate split a
// tick of length tick.
func subStepsFor(tick time.Duration) int {
	n := int((tick*simRate + time.Second - 1) / time.Second)
	return max(n, 1)
}

// advance moves the clock forward one tick in sub-steps, stepping the world
// after each. The last sub-step takes the rounding remainder.
func (g *Game) advance() {
	sub := g.tick / time.Duration(g.subs)
	for i := range g.subs {
		if i == g.subs-1 {
			sub = g.tick - sub*time.Duration(g.subs-1)
		}
		g.clock.Advance(sub)
		g.world.Step()
	}
}

// velocityFor maps the first direction action in the frame to a unit
// velocity. World y grows upward, so Up is +1.
func velocityFor(in core.InputFrame) (vx, vy float64, ok bool) {
	switch {
	case in.Has(core.ActionUp):
		return 0, 1, true
	case in.Has(core.ActionDown):
		return 0, -1, true
	case in.Has(core.ActionLeft):
		return -1, 0, true
	case in.Has(core.ActionRight):
		return 1, 0, true
	}
	return 0, 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.world.Session()
	return core.GameState{
		Score:    s.Score,
		GameOver: s.Finished(),
		Paused:   s.Paused && !s.Finished(),
	}
}

// Summary describes the run so far for the run history.
func (g *Game) Summary() core.RunSummary {
	s := g.world.Session()
	outcome := core.OutcomeAbandoned
	switch {
	case s.Won:
		outcome = core.OutcomeWon
	case s.GameOver:
		outcome = core.OutcomeLost
	}
	return core.RunSummary{
		Score:    s.Score,
		Progress: s.PelletsEaten,
		Outcome:  outcome,
		Duration: g.world.Elapsed(),
	}
}

// Snapshot captures the world for determinism checks.
func (g *Game) Snapshot() pcore.Snapshot {
	return g.world.Snapshot()
}

// paramsFromConfig converts the YAML tuning into world parameters.
func paramsFromConfig(c config.PacmanConfig) pcore.Params {
	p := pcore.DefaultParams()

	p.PlayerSpeed = c.Player.Speed
	p.ActorRadius = c.Player.Radius
	p.PlayerStart = pcore.Point{X: c.Player.Start.X, Y: c.Player.Start.Y}

	p.PursuerBaseSpeed = c.Pursuers.BaseSpeed
	p.PursuerSpeedStep = c.Pursuers.SpeedStep
	p.PursuerStepEvery = c.Pursuers.StepEvery
	p.PursuerSpeedCap = c.Pursuers.SpeedMargin
	p.CollisionSlack = c.Pursuers.CollisionSlack
	p.ChaseJitter = c.Pursuers.ChaseJitter
	for i := range p.PursuerStarts {
		if i < len(c.Pursuers.Starts) {
			p.PursuerStarts[i] = pcore.Point{X: c.Pursuers.Starts[i].X, Y: c.Pursuers.Starts[i].Y}
		}
	}

	p.StartLives = c.Session.Lives
	p.MaxLives = c.Session.MaxLives
	p.DeathHold = c.Session.DeathHold
	p.PelletPoints = c.Session.PelletPoints

	p.BonusPoints = c.PowerUps.BonusPoints
	p.BonusCapacity = c.PowerUps.BonusCapacity
	p.BonusInterval = c.PowerUps.BonusInterval
	p.BonusPickupRadius = c.PowerUps.BonusPickupRadius
	p.LifeInterval = c.PowerUps.LifeInterval
	p.LifePickupRadius = c.PowerUps.LifePickupRadius
	p.SpawnAttempts = c.PowerUps.SpawnAttempts

	return p
}
