package core

import "time"

// Phase is the coarse state of a session, derived from its flags.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseDying    Phase = "dying"
	PhaseWon      Phase = "won"
	PhaseGameOver Phase = "game_over"
)

// Session is the per-run bookkeeping of a world.
type Session struct {
	PelletsTotal int
	PelletsEaten int
	Score        int
	Lives        int

	Paused        bool
	GameOver      bool
	Won           bool
	DeathActive   bool
	PostMenuShown bool

	FacingDeg float64

	// Power-up cadence checkpoints, in seconds since StartedAt.
	LastBonusSpawnAt float64
	LastLifeSpawnAt  float64

	StartedAt      time.Time
	LastTickAt     time.Time
	DeathStartedAt time.Time
	GameOverAt     time.Time
	WonAt          time.Time
}

// Phase reports the session state. Terminal states win over pause.
func (s Session) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.Won:
		return PhaseWon
	case s.DeathActive:
		return PhaseDying
	case s.Paused:
		return PhasePaused
	default:
		return PhasePlaying
	}
}

// Finished reports whether the run has ended, either way.
func (s Session) Finished() bool {
	return s.GameOver || s.Won
}

// acceptsInput reports whether player controls should have any effect.
func (s Session) acceptsInput() bool {
	return !s.DeathActive && !s.GameOver && !s.Won
}
