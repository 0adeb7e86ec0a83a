// Package config loads the Pac-Man tuning from YAML.
package config

import (
	"errors"
	"fmt"
	"time"

	pcore "github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
)

// PacmanConfig contains every tunable of a Pac-Man world and its shell.
type PacmanConfig struct {
	Player   PlayerConfig  `yaml:"player"`
	Pursuers PursuerConfig `yaml:"pursuers"`
	Session  SessionConfig `yaml:"session"`
	PowerUps PowerUpConfig `yaml:"powerups"`
	Shell    ShellConfig   `yaml:"shell"`
}

// Position is a point in maze world coordinates (cells, y up).
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlayerConfig defines the player actor.
type PlayerConfig struct {
	Speed  float64  `yaml:"speed"`  // cells per second
	Radius float64  `yaml:"radius"` // shared by every actor
	Start  Position `yaml:"start"`
}

// PursuerConfig defines the pursuers and their speed ramp.
type PursuerConfig struct {
	BaseSpeed      float64       `yaml:"base_speed"`
	SpeedStep      float64       `yaml:"speed_step"`
	StepEvery      time.Duration `yaml:"step_every"`
	SpeedMargin    float64       `yaml:"speed_margin"` // ramp stops this far below the player speed
	CollisionSlack float64       `yaml:"collision_slack"`
	ChaseJitter    float64       `yaml:"chase_jitter"`
	Starts         []Position    `yaml:"starts"`
}

// SessionConfig defines lives, scoring and the death sequence.
type SessionConfig struct {
	Lives        int           `yaml:"lives"`
	MaxLives     int           `yaml:"max_lives"`
	DeathHold    time.Duration `yaml:"death_hold"`
	PelletPoints int           `yaml:"pellet_points"`
}

// PowerUpConfig defines the bonus pool and the extra-life item.
type PowerUpConfig struct {
	BonusPoints       int           `yaml:"bonus_points"`
	BonusCapacity     int           `yaml:"bonus_capacity"`
	BonusInterval     time.Duration `yaml:"bonus_interval"`
	BonusPickupRadius float64       `yaml:"bonus_pickup_radius"`
	LifeInterval      time.Duration `yaml:"life_interval"`
	LifePickupRadius  float64       `yaml:"life_pickup_radius"`
	SpawnAttempts     int           `yaml:"spawn_attempts"`
}

// ShellConfig defines presentation timings.
type ShellConfig struct {
	GameOverHold time.Duration `yaml:"game_over_hold"` // before the post-game panel
}

// PursuerCount is the number of pursuer start positions required.
const PursuerCount = 4

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid pacman config")

// Validate checks that the configuration describes a playable game.
func (c PacmanConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Player.Speed > 0, "player.speed must be positive, got %v", c.Player.Speed)
	check(c.Player.Radius > 0, "player.radius must be positive, got %v", c.Player.Radius)
	check(c.Pursuers.BaseSpeed > 0, "pursuers.base_speed must be positive, got %v", c.Pursuers.BaseSpeed)
	check(c.Pursuers.SpeedStep >= 0, "pursuers.speed_step must not be negative, got %v", c.Pursuers.SpeedStep)
	check(c.Pursuers.StepEvery > 0, "pursuers.step_every must be positive, got %v", c.Pursuers.StepEvery)
	check(c.Player.Speed-c.Pursuers.SpeedMargin > c.Pursuers.BaseSpeed,
		"speed ceiling %v must exceed pursuers.base_speed %v",
		c.Player.Speed-c.Pursuers.SpeedMargin, c.Pursuers.BaseSpeed)
	check(len(c.Pursuers.Starts) == PursuerCount, "pursuers.starts needs %d entries, got %d", PursuerCount, len(c.Pursuers.Starts))
	check(c.Session.Lives > 0, "session.lives must be positive, got %d", c.Session.Lives)
	check(c.Session.MaxLives >= c.Session.Lives, "session.max_lives %d is below session.lives %d", c.Session.MaxLives, c.Session.Lives)
	check(c.Session.DeathHold > 0, "session.death_hold must be positive, got %v", c.Session.DeathHold)
	check(c.PowerUps.BonusCapacity >= 0, "powerups.bonus_capacity must not be negative, got %d", c.PowerUps.BonusCapacity)
	check(c.PowerUps.BonusInterval > 0, "powerups.bonus_interval must be positive, got %v", c.PowerUps.BonusInterval)
	check(c.PowerUps.LifeInterval > 0, "powerups.life_interval must be positive, got %v", c.PowerUps.LifeInterval)
	check(c.PowerUps.SpawnAttempts > 0, "powerups.spawn_attempts must be positive, got %d", c.PowerUps.SpawnAttempts)
	check(c.Shell.GameOverHold >= 0, "shell.game_over_hold must not be negative, got %v", c.Shell.GameOverHold)

	maze := pcore.NewDefaultGrid()
	check(startOpen(maze, c.Player.Start, maze.BlockedForPlayer),
		"player.start (%v, %v) is not an open maze cell", c.Player.Start.X, c.Player.Start.Y)
	for i, p := range c.Pursuers.Starts {
		check(startOpen(maze, p, maze.BlockedForPursuer),
			"pursuers.starts[%d] (%v, %v) is not an open maze cell", i, p.X, p.Y)
	}

	return errors.Join(errs...)
}

// startOpen reports whether p lies inside the playfield on a cell that
// blocked lets an actor stand on.
func startOpen(g *pcore.Grid, p Position, blocked func(row, col int) bool) bool {
	if p.X < 0.5 || p.X > float64(g.Cols())-0.5 || p.Y < 0.5 || p.Y > float64(g.Rows())-0.5 {
		return false
	}
	return !blocked(g.RowAt(p.Y), g.ColAt(p.X))
}
