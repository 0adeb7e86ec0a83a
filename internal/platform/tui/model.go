package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
	"github.com/vovakirdan/tui-pacman/internal/telemetry"
)

// Options configures a Model.
type Options struct {
	Store  *storage.Store // nil disables score and run history
	Logger *log.Logger
	Tracer trace.Tracer
	Player string // recorded with each run, empty for local play

	// Embedded models keep the program running on Back so a parent model
	// can switch views.
	Embedded bool
}

// Model is the Bubble Tea model that drives one game: it ticks the
// simulation, maps keys to actions and records finished runs.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	span      trace.Span
	startedAt time.Time
	recorded  bool // current run has been finished and stored

	quitting   bool
	backToMenu bool
}

// NewModel creates a model for the given game and starts its first run.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Tracer("tui")
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	m.startRun()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Quit, back, restart and screenshots
// are handled here; everything else is queued for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)

	switch {
	case isQuit:
		m.finishRun()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.finishRun()
		m.backToMenu = true
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit

	case action == core.ActionRestart:
		m.restart()

	case action == core.ActionScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in place
// are restarted unless their run is already over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick advances the simulation by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// startRun resets the game and opens a trace span for the new run.
func (m *Model) startRun() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.startedAt = time.Now()
	m.recorded = false

	_, m.span = m.opts.Tracer.Start(context.Background(), "run",
		trace.WithAttributes(
			attribute.String("game", m.game.ID()),
			attribute.Int64("seed", m.config.Seed),
			attribute.String("player", m.opts.Player),
		),
	)
	m.opts.Logger.Debug("run started", "game", m.game.ID(), "seed", m.config.Seed)
}

// restart finishes the current run and starts a fresh one with a new seed.
func (m *Model) restart() {
	m.finishRun()
	m.config.Seed = time.Now().UnixNano()
	m.inputFrame.Clear()
	m.startRun()
}

// summary describes the current run, asking the game when it can tell.
func (m *Model) summary() core.RunSummary {
	if s, ok := m.game.(registry.Summarizer); ok {
		return s.Summary()
	}
	outcome := core.OutcomeAbandoned
	if m.gameState.GameOver {
		outcome = core.OutcomeLost
	}
	return core.RunSummary{
		Score:    m.gameState.Score,
		Outcome:  outcome,
		Duration: time.Since(m.startedAt),
	}
}

// finishRun ends the run span and stores the result once. Untouched
// abandoned runs are not stored.
func (m *Model) finishRun() {
	if m.recorded {
		return
	}
	m.recorded = true

	sum := m.summary()
	m.span.SetAttributes(
		attribute.Int("score", sum.Score),
		attribute.Int("pellets", sum.Progress),
		attribute.String("outcome", string(sum.Outcome)),
		attribute.Int64("duration_ms", sum.Duration.Milliseconds()),
	)
	m.span.End()
	m.opts.Logger.Info("run finished",
		"game", m.game.ID(), "score", sum.Score, "outcome", sum.Outcome, "duration", sum.Duration)

	if m.opts.Store == nil {
		return
	}
	if sum.Outcome != core.OutcomeAbandoned && sum.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.opts.Store.SaveScore(m.game.ID(), sum.Score)
	}
	if sum.Outcome == core.OutcomeAbandoned && sum.Score == 0 && sum.Progress == 0 {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.RunRecord{
		GameID:   m.game.ID(),
		Player:   m.opts.Player,
		Seed:     m.config.Seed,
		Score:    sum.Score,
		Pellets:  sum.Progress,
		Outcome:  string(sum.Outcome),
		Duration: sum.Duration,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "err", err)
	}
}

// saveScreenshot writes the current screen to ~/.arcade/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunResult tells the caller where the player went after a game.
type RunResult struct {
	BackToMenu bool
}

// Run starts a Bubble Tea program for the game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (RunResult, error) {
	opts.Embedded = false
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return RunResult{}, nil
	}
	return RunResult{BackToMenu: m.BackToMenu()}, nil
}
