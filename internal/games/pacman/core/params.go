package core

import "time"

// Params holds every tunable of a world. Speeds are in cells per second.
type Params struct {
	PlayerSpeed float64

	PursuerBaseSpeed float64
	PursuerSpeedStep float64       // added once per PursuerStepEvery of session time
	PursuerStepEvery time.Duration // ramp interval
	PursuerSpeedCap  float64       // ramp ceiling is PlayerSpeed - PursuerSpeedCap

	ActorRadius    float64
	CollisionSlack float64
	CenterEpsilon  float64
	ChaseJitter    float64 // upper bound (exclusive) of the per-candidate noise

	DeathHold  time.Duration
	StartLives int
	MaxLives   int

	PelletPoints int
	BonusPoints  int

	BonusCapacity     int
	BonusInterval     time.Duration
	BonusPickupRadius float64 // added to the player radius
	LifeInterval      time.Duration
	LifePickupRadius  float64 // added to the player radius
	SpawnAttempts     int

	PlayerStart   Point
	PursuerStarts [PursuerCount]Point
}

// DefaultParams returns the stock tuning for DefaultLayout.
func DefaultParams() Params {
	return Params{
		PlayerSpeed: 4.2,

		PursuerBaseSpeed: 3.0,
		PursuerSpeedStep: 0.35,
		PursuerStepEvery: 15 * time.Second,
		PursuerSpeedCap:  0.4,

		ActorRadius:    0.33,
		CollisionSlack: 0.04,
		CenterEpsilon:  DefaultCenterEpsilon,
		ChaseJitter:    0.1,

		DeathHold:  time.Second,
		StartLives: 3,
		MaxLives:   3,

		PelletPoints: 10,
		BonusPoints:  100,

		BonusCapacity:     3,
		BonusInterval:     10 * time.Second,
		BonusPickupRadius: 0.30,
		LifeInterval:      10 * time.Second,
		LifePickupRadius:  0.28,
		SpawnAttempts:     200,

		PlayerStart: Point{X: 9.5, Y: 15.5},
		PursuerStarts: [PursuerCount]Point{
			{X: 9.5, Y: 10.5},
			{X: 7.5, Y: 10.5},
			{X: 11.5, Y: 10.5},
			{X: 9.5, Y: 9.5},
		},
	}
}

// PursuerSpeed returns the pursuer speed after elapsed seconds of play.
func (p Params) PursuerSpeed(elapsed float64) float64 {
	steps := 0.0
	if every := p.PursuerStepEvery.Seconds(); every > 0 && elapsed > 0 {
		steps = float64(int(elapsed / every))
	}
	speed := p.PursuerBaseSpeed + p.PursuerSpeedStep*steps
	if ceiling := p.PlayerSpeed - p.PursuerSpeedCap; speed > ceiling {
		speed = ceiling
	}
	return speed
}
