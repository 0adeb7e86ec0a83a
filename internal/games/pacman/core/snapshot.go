package core

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Snapshot is a read-only capture of a world for rendering checks and
// determinism tests.
type Snapshot struct {
	Phase        Phase
	Score        int
	Lives        int
	PelletsEaten int
	PelletsLeft  int
	Elapsed      time.Duration
	Player       Actor
	Pursuers     [PursuerCount]Pursuer
	Bonuses      []Item
	Life         Item
}

// Snapshot captures the current world.
func (w *World) Snapshot() Snapshot {
	bonuses := make([]Item, len(w.powerups.Bonuses))
	copy(bonuses, w.powerups.Bonuses)

	return Snapshot{
		Phase:        w.session.Phase(),
		Score:        w.session.Score,
		Lives:        w.session.Lives,
		PelletsEaten: w.session.PelletsEaten,
		PelletsLeft:  w.grid.RemainingPellets(),
		Elapsed:      w.Elapsed(),
		Player:       w.player,
		Pursuers:     w.pursuers,
		Bonuses:      bonuses,
		Life:         w.powerups.Life,
	}
}

// Hash folds the snapshot into a single value. Positions are quantized to
// 1e-6 of a cell so the hash is stable across formatting.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "S:%s:%d:%d:%d:%d:%d;", s.Phase, s.Score, s.Lives, s.PelletsEaten, s.PelletsLeft, s.Elapsed)
	fmt.Fprintf(h, "P:%d:%d:%d:%d;", quantize(s.Player.X), quantize(s.Player.Y), quantize(s.Player.VX), quantize(s.Player.VY))

	fmt.Fprintf(h, "G:")
	for _, pu := range s.Pursuers {
		fmt.Fprintf(h, "%d:%d:%d:%d,", quantize(pu.X), quantize(pu.Y), pu.Heading.DX, pu.Heading.DY)
	}

	fmt.Fprintf(h, ";B:")
	for _, b := range s.Bonuses {
		fmt.Fprintf(h, "%v:%d:%d,", b.Active, b.Row, b.Col)
	}
	fmt.Fprintf(h, ";L:%v:%d:%d", s.Life.Active, s.Life.Row, s.Life.Col)

	return h.Sum64()
}

func quantize(v float64) int64 {
	return int64(v * 1e6)
}
