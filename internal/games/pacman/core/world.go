// Package core is the Pac-Man simulation: maze, actors, power-ups and the
// session state machine. It has no terminal or rendering dependencies; the
// game adapter one level up drives it tick by tick.
package core

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// World aggregates everything one game needs. Worlds share no state.
type World struct {
	grid     *Grid
	player   Actor
	pursuers [PursuerCount]Pursuer
	powerups *PowerUps
	session  Session

	params Params
	rng    RNG
	clock  Clock
	logger *log.Logger
}

// Option configures a World.
type Option func(*World)

// WithGrid replaces the default maze.
func WithGrid(g *Grid) Option {
	return func(w *World) { w.grid = g }
}

// WithRNG sets the random source.
func WithRNG(r RNG) Option {
	return func(w *World) { w.rng = r }
}

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(w *World) { w.clock = c }
}

// WithLogger sets the logger for life, spawn and outcome events.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld creates a world and starts a new game in it.
func NewWorld(params Params, opts ...Option) *World {
	w := &World{
		params: params,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.grid == nil {
		w.grid = NewDefaultGrid()
	}
	if w.rng == nil {
		w.rng = NewRNG(time.Now().UnixNano())
	}
	if w.clock == nil {
		w.clock = SystemClock{}
	}
	w.powerups = NewPowerUps(w.grid, w.rng, w, &w.params)
	w.StartNewGame()
	return w
}

// StartNewGame resets the session, the maze, the actors and the power-ups.
func (w *World) StartNewGame() {
	now := w.clock.Now()

	w.grid.Reset()
	w.session = Session{
		PelletsTotal: w.grid.RemainingPellets(),
		Lives:        w.params.StartLives,
		StartedAt:    now,
		LastTickAt:   now,
	}
	w.resetActors()
	w.randomizeHeadings()
	w.powerups.Reset()

	w.logger.Debug("new game", "pellets", w.session.PelletsTotal, "lives", w.session.Lives)
}

// Step advances the world to the clock's current time.
func (w *World) Step() {
	now := w.clock.Now()
	dt := now.Sub(w.session.LastTickAt).Seconds()
	w.session.LastTickAt = now

	if w.session.DeathActive {
		if now.Sub(w.session.DeathStartedAt) >= w.params.DeathHold {
			w.finalizeDeath(now)
		}
		return
	}
	if w.session.Paused {
		return
	}

	elapsed := now.Sub(w.session.StartedAt).Seconds()
	if w.powerups.MaybeSpawnBonus(&w.session, elapsed) {
		w.logger.Debug("bonus spawned", "active", w.powerups.ActiveBonuses())
	}
	if w.powerups.MaybeSpawnLife(&w.session, elapsed) {
		w.logger.Debug("life spawned", "row", w.powerups.Life.Row, "col", w.powerups.Life.Col)
	}

	w.updatePlayer(dt)
	w.updatePursuers(dt, elapsed)
}

// TriggerDeath starts the death hold. It does nothing while a death is
// already in progress or the run has ended.
func (w *World) TriggerDeath() {
	s := &w.session
	if s.DeathActive || s.GameOver || s.Won {
		return
	}
	s.DeathActive = true
	s.DeathStartedAt = w.clock.Now()
	w.player.VX, w.player.VY = 0, 0
	w.logger.Debug("player caught", "lives", s.Lives)
}

func (w *World) finalizeDeath(now time.Time) {
	s := &w.session
	s.Lives--
	s.DeathActive = false

	if s.Lives <= 0 {
		s.Lives = 0
		s.GameOver = true
		s.Paused = true
		s.GameOverAt = now
		s.PostMenuShown = false
		w.logger.Debug("game over", "score", s.Score, "pellets", s.PelletsEaten)
		return
	}

	w.resetActors()
	w.randomizeHeadings()
	w.logger.Debug("life lost", "lives", s.Lives)
}

// SetPlayerVelocity sets the player's direction of travel. Components are
// expected in {-1, 0, 1}. Ignored while dying or after the run ended.
func (w *World) SetPlayerVelocity(vx, vy float64) {
	if !w.session.acceptsInput() {
		return
	}
	w.player.VX, w.player.VY = vx, vy
	if w.player.Moving() {
		w.session.FacingDeg = math.Atan2(vy, vx) * 180 / math.Pi
	}
}

// TogglePause flips the pause flag. Refused while dying or after the run
// ended.
func (w *World) TogglePause() {
	if !w.session.acceptsInput() {
		return
	}
	w.session.Paused = !w.session.Paused
}

// GameOverHeld reports whether the game has been over for at least d.
func (w *World) GameOverHeld(d time.Duration) bool {
	return w.session.GameOver && w.clock.Now().Sub(w.session.GameOverAt) >= d
}

// MarkPostMenuShown records that the post-game screen is up.
func (w *World) MarkPostMenuShown() {
	w.session.PostMenuShown = true
}

// Elapsed returns session time. It stops counting once the run ends.
func (w *World) Elapsed() time.Duration {
	end := w.clock.Now()
	switch {
	case w.session.GameOver:
		end = w.session.GameOverAt
	case w.session.Won:
		end = w.session.WonAt
	}
	return end.Sub(w.session.StartedAt)
}

// ActorCells returns the cells of the player and every pursuer.
func (w *World) ActorCells() []CellPos {
	cells := make([]CellPos, 0, 1+PursuerCount)
	cells = append(cells, w.grid.CellOf(w.player.X, w.player.Y))
	for _, pu := range w.pursuers {
		cells = append(cells, w.grid.CellOf(pu.X, pu.Y))
	}
	return cells
}

// Grid returns the live maze. Callers must not modify it.
func (w *World) Grid() *Grid { return w.grid }

// Player returns a copy of the player actor.
func (w *World) Player() Actor { return w.player }

// Pursuers returns a copy of the pursuers.
func (w *World) Pursuers() [PursuerCount]Pursuer { return w.pursuers }

// PowerUps returns the power-up manager. Callers must not modify it.
func (w *World) PowerUps() *PowerUps { return w.powerups }

// Session returns a copy of the session.
func (w *World) Session() Session { return w.session }

// Params returns the world's tuning.
func (w *World) Params() Params { return w.params }
