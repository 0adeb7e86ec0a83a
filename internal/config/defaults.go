package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the built-in tuning. It mirrors defaults/pacman.yaml.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Player: PlayerConfig{
			Speed:  4.2,
			Radius: 0.33,
			Start:  Position{X: 9.5, Y: 15.5},
		},
		Pursuers: PursuerConfig{
			BaseSpeed:      3.0,
			SpeedStep:      0.35,
			StepEvery:      15 * time.Second,
			SpeedMargin:    0.4,
			CollisionSlack: 0.04,
			ChaseJitter:    0.1,
			Starts: []Position{
				{X: 9.5, Y: 10.5},
				{X: 7.5, Y: 10.5},
				{X: 11.5, Y: 10.5},
				{X: 9.5, Y: 9.5},
			},
		},
		Session: SessionConfig{
			Lives:        3,
			MaxLives:     3,
			DeathHold:    time.Second,
			PelletPoints: 10,
		},
		PowerUps: PowerUpConfig{
			BonusPoints:       100,
			BonusCapacity:     3,
			BonusInterval:     10 * time.Second,
			BonusPickupRadius: 0.30,
			LifeInterval:      10 * time.Second,
			LifePickupRadius:  0.28,
			SpawnAttempts:     200,
		},
		Shell: ShellConfig{
			GameOverHold: 2 * time.Second,
		},
	}
}
