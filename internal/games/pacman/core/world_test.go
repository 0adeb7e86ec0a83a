package core

import (
	"math"
	"testing"
	"time"
)

const testTick = time.Second / 60

// newTestWorld builds a world on layout with the player at player and every
// pursuer at pursuer.
func newTestWorld(t *testing.T, layout []string, player, pursuer Point, mutate func(*Params)) (*World, *ManualClock) {
	t.Helper()
	params := DefaultParams()
	params.PlayerStart = player
	for i := range params.PursuerStarts {
		params.PursuerStarts[i] = pursuer
	}
	if mutate != nil {
		mutate(&params)
	}
	clock := NewManualClock(time.Unix(1_000_000, 0))
	w := NewWorld(params,
		WithGrid(mustLayout(t, layout...)),
		WithRNG(NewRNG(1)),
		WithClock(clock),
	)
	return w, clock
}

func advance(w *World, c *ManualClock, d time.Duration) {
	c.Advance(d)
	w.Step()
}

// stepUntil ticks at 60Hz until cond holds or limit ticks pass.
func stepUntil(w *World, c *ManualClock, limit int, cond func() bool) bool {
	for range limit {
		advance(w, c, testTick)
		if cond() {
			return true
		}
	}
	return false
}

// Pursuers start at the far end of a corridor and walk into the
// stationary player.
var corridorLayout = []string{
	"#########",
	"#.......#",
	"#########",
}

func corridorWorld(t *testing.T, mutate func(*Params)) (*World, *ManualClock) {
	return newTestWorld(t, corridorLayout, Point{X: 1.5, Y: 1.5}, Point{X: 7.5, Y: 1.5}, mutate)
}

func TestDeathSequencing(t *testing.T) {
	w, c := corridorWorld(t, nil)

	if !stepUntil(w, c, 600, func() bool { return w.Session().DeathActive }) {
		t.Fatal("pursuers never reached the player")
	}
	if got := w.Session().Lives; got != 3 {
		t.Fatalf("Lives during death hold = %d, expected 3", got)
	}

	frozen := w.Pursuers()
	advance(w, c, 500*time.Millisecond)
	s := w.Session()
	if !s.DeathActive || s.Lives != 3 {
		t.Fatalf("after 0.5s: DeathActive=%v Lives=%d, expected true and 3", s.DeathActive, s.Lives)
	}
	if w.Pursuers() != frozen {
		t.Error("pursuers moved during the death hold")
	}

	advance(w, c, 500*time.Millisecond)
	s = w.Session()
	if s.DeathActive {
		t.Error("DeathActive still set after the hold")
	}
	if s.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", s.Lives)
	}
	if p := w.Player(); p.X != 1.5 || p.Y != 1.5 || p.Moving() {
		t.Errorf("player = %+v, expected reset to start", p)
	}
	for i, pu := range w.Pursuers() {
		if pu.X != 7.5 || pu.Y != 1.5 {
			t.Errorf("pursuer %d at (%v, %v), expected reset to start", i, pu.X, pu.Y)
		}
	}
}

func TestFirstCollisionHaltsOtherPursuers(t *testing.T) {
	far := Point{X: 8.5, Y: 1.5}
	w, c := newTestWorld(t, []string{
		"##########",
		"#........#",
		"##########",
	}, Point{X: 1.5, Y: 1.5}, far, func(p *Params) {
		p.PursuerStarts[0] = Point{X: 1.5, Y: 1.5}
	})

	advance(w, c, testTick)
	if !w.Session().DeathActive {
		t.Fatal("pursuer 0 on the player did not trigger a death")
	}
	pursuers := w.Pursuers()
	for i, pu := range pursuers[1:] {
		if pu.X != far.X || pu.Y != far.Y {
			t.Errorf("pursuer %d moved to (%v, %v) after the collision, expected it to stay at (%v, %v)",
				i+1, pu.X, pu.Y, far.X, far.Y)
		}
	}
}

func TestPursuerSnapsToLane(t *testing.T) {
	layout := []string{
		"#######",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
	}
	speed := DefaultParams().PursuerBaseSpeed * testTick.Seconds()

	tests := []struct {
		name    string
		start   Point
		heading Heading
		want    Point
	}{
		{"moving right snaps y", Point{X: 2.0, Y: 1.7}, Right, Point{X: 2.0 + speed, Y: 1.5}},
		{"moving up snaps x", Point{X: 3.8, Y: 2.0}, Up, Point{X: 3.5, Y: 2.0 + speed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := newTestWorld(t, layout, Point{X: 5.5, Y: 3.5}, tt.start, nil)
			for i := range w.pursuers {
				w.pursuers[i].Heading = tt.heading
			}

			advance(w, c, testTick)
			pu := w.Pursuers()[0]
			if math.Abs(pu.X-tt.want.X) > 1e-9 || math.Abs(pu.Y-tt.want.Y) > 1e-9 {
				t.Errorf("pursuer at (%v, %v), expected (%v, %v)", pu.X, pu.Y, tt.want.X, tt.want.Y)
			}
			if pu.Heading != tt.heading {
				t.Errorf("Heading = %v, expected %v off the cell center", pu.Heading, tt.heading)
			}
		})
	}
}

func TestTriggerDeathIsGuarded(t *testing.T) {
	w, c := corridorWorld(t, nil)
	w.SetPlayerVelocity(1, 0)

	w.TriggerDeath()
	first := w.Session().DeathStartedAt
	if w.Player().Moving() {
		t.Error("player still moving after TriggerDeath")
	}

	c.Advance(300 * time.Millisecond)
	w.TriggerDeath()
	if got := w.Session().DeathStartedAt; !got.Equal(first) {
		t.Errorf("second TriggerDeath moved DeathStartedAt from %v to %v", first, got)
	}

	w.SetPlayerVelocity(-1, 0)
	if w.Player().Moving() {
		t.Error("velocity accepted while dying")
	}
	w.TogglePause()
	if w.Session().Paused {
		t.Error("pause accepted while dying")
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	w, c := corridorWorld(t, func(p *Params) { p.StartLives = 1 })

	if !stepUntil(w, c, 600, func() bool { return w.Session().DeathActive }) {
		t.Fatal("pursuers never reached the player")
	}
	advance(w, c, time.Second)

	s := w.Session()
	if !s.GameOver || !s.Paused || s.Lives != 0 || s.DeathActive || s.PostMenuShown {
		t.Fatalf("session after last life = %+v", s)
	}
	if s.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %v, expected %v", s.Phase(), PhaseGameOver)
	}

	before := w.Snapshot()
	w.SetPlayerVelocity(1, 0)
	w.TogglePause()
	w.TriggerDeath()
	for range 120 {
		advance(w, c, testTick)
	}
	after := w.Snapshot()

	if before.Hash() != after.Hash() {
		t.Errorf("world changed after game over: %+v -> %+v", before, after)
	}
	if !w.Session().Paused {
		t.Error("TogglePause unpaused a finished game")
	}
}

func TestGameOverHold(t *testing.T) {
	w, c := corridorWorld(t, func(p *Params) { p.StartLives = 1 })
	stepUntil(w, c, 600, func() bool { return w.Session().DeathActive })
	advance(w, c, time.Second)

	if w.GameOverHeld(2 * time.Second) {
		t.Error("GameOverHeld() true immediately after game over")
	}
	elapsed := w.Elapsed()

	advance(w, c, 2*time.Second)
	if !w.GameOverHeld(2 * time.Second) {
		t.Error("GameOverHeld() false after 2s")
	}
	if w.Elapsed() != elapsed {
		t.Errorf("Elapsed() kept running after game over: %v -> %v", elapsed, w.Elapsed())
	}

	w.MarkPostMenuShown()
	if !w.Session().PostMenuShown {
		t.Error("PostMenuShown not set")
	}
}

func TestWinCondition(t *testing.T) {
	// The pursuers sit boxed in on the right and never move.
	w, c := newTestWorld(t, []string{
		"#######",
		"#...# #",
		"#######",
	}, Point{X: 1.5, Y: 1.5}, Point{X: 5.5, Y: 1.5}, nil)

	w.SetPlayerVelocity(1, 0)
	if !stepUntil(w, c, 120, func() bool { return w.Session().Won }) {
		t.Fatalf("maze never cleared: %+v", w.Session())
	}

	s := w.Session()
	if !s.Paused || s.GameOver {
		t.Errorf("won session = %+v, expected paused and not game over", s)
	}
	if s.PelletsEaten != 3 || s.Score != 30 {
		t.Errorf("PelletsEaten=%d Score=%d, expected 3 and 30", s.PelletsEaten, s.Score)
	}
	if s.Phase() != PhaseWon {
		t.Errorf("Phase() = %v, expected %v", s.Phase(), PhaseWon)
	}

	frozen := w.Elapsed()
	advance(w, c, 5*time.Second)
	if w.Elapsed() != frozen {
		t.Errorf("Elapsed() after win = %v, expected frozen at %v", w.Elapsed(), frozen)
	}

	w.TriggerDeath()
	if w.Session().DeathActive {
		t.Error("death triggered after winning")
	}
}

func TestPlayerStopsAtWalls(t *testing.T) {
	// The pursuers sit boxed in on the right and never move.
	w, c := newTestWorld(t, []string{
		"#########",
		"#.....# #",
		"#########",
	}, Point{X: 3.5, Y: 1.5}, Point{X: 7.5, Y: 1.5}, nil)

	w.SetPlayerVelocity(-1, 0)
	for range 120 {
		advance(w, c, testTick)
	}
	if p := w.Player(); w.Grid().ColAt(p.X) != 1 {
		t.Errorf("player x = %v, expected to stop in column 1", p.X)
	}
	if got := w.Session().PelletsEaten; got != 3 {
		t.Errorf("PelletsEaten = %d, expected 3", got)
	}

	w.SetPlayerVelocity(0, 1)
	for range 60 {
		advance(w, c, testTick)
	}
	if p := w.Player(); w.Grid().RowAt(p.Y) != 1 {
		t.Errorf("player y = %v, expected to stay in row 1", p.Y)
	}
}

func TestFacingFollowsInput(t *testing.T) {
	w, _ := corridorWorld(t, nil)

	tests := []struct {
		vx, vy float64
		want   float64
	}{
		{1, 0, 0},
		{0, 1, 90},
		{-1, 0, 180},
		{0, -1, -90},
	}

	for _, tt := range tests {
		w.SetPlayerVelocity(tt.vx, tt.vy)
		if got := w.Session().FacingDeg; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FacingDeg after (%v, %v) = %v, expected %v", tt.vx, tt.vy, got, tt.want)
		}
	}
}

func TestTogglePause(t *testing.T) {
	w, c := corridorWorld(t, nil)

	w.TogglePause()
	if !w.Session().Paused {
		t.Fatal("TogglePause did not pause")
	}
	before := w.Pursuers()
	for range 30 {
		advance(w, c, testTick)
	}
	if w.Pursuers() != before {
		t.Error("pursuers moved while paused")
	}
	w.TogglePause()
	if w.Session().Paused {
		t.Error("TogglePause did not resume")
	}
}

// runDefault plays the stock maze with a fixed input script.
func runDefault(seed int64, ticks int) (*World, *ManualClock) {
	clock := NewManualClock(time.Unix(0, 0))
	w := NewWorld(DefaultParams(), WithRNG(NewRNG(seed)), WithClock(clock))
	dirs := [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i := range ticks {
		if i%45 == 0 {
			d := dirs[(i/45)%len(dirs)]
			w.SetPlayerVelocity(d[0], d[1])
		}
		clock.Advance(testTick)
		w.Step()
	}
	return w, clock
}

func TestBoundsAndPelletInvariants(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	w := NewWorld(DefaultParams(), WithRNG(NewRNG(99)), WithClock(clock))
	g := w.Grid()
	maxX, maxY := float64(g.Cols())-0.5, float64(g.Rows())-0.5
	dirs := [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	lastLeft := g.RemainingPellets()

	for i := range 3000 {
		if i%37 == 0 {
			d := dirs[(i/37)%len(dirs)]
			w.SetPlayerVelocity(d[0], d[1])
		}
		clock.Advance(testTick)
		w.Step()

		p := w.Player()
		if p.X < 0.5 || p.X > maxX || p.Y < 0.5 || p.Y > maxY {
			t.Fatalf("tick %d: player out of bounds at (%v, %v)", i, p.X, p.Y)
		}
		if cell := g.CellOf(p.X, p.Y); g.BlockedForPlayer(cell.Row, cell.Col) {
			t.Fatalf("tick %d: player inside blocked cell %v", i, cell)
		}
		for j, pu := range w.Pursuers() {
			if pu.X < 0.5 || pu.X > maxX || pu.Y < 0.5 || pu.Y > maxY {
				t.Fatalf("tick %d: pursuer %d out of bounds at (%v, %v)", i, j, pu.X, pu.Y)
			}
		}

		s := w.Session()
		left := g.RemainingPellets()
		if left > lastLeft {
			t.Fatalf("tick %d: pellets went from %d to %d", i, lastLeft, left)
		}
		if s.PelletsEaten+left != s.PelletsTotal {
			t.Fatalf("tick %d: eaten %d + left %d != total %d", i, s.PelletsEaten, left, s.PelletsTotal)
		}
		lastLeft = left

		if s.GameOver {
			break
		}
	}
}

func TestStartNewGameResets(t *testing.T) {
	w, clock := runDefault(5, 900)
	if w.Session().PelletsEaten == 0 {
		t.Fatal("scripted run ate nothing; test needs a different script")
	}

	clock.Advance(time.Second)
	w.StartNewGame()
	s := w.Session()
	p := DefaultParams()

	if s.Score != 0 || s.PelletsEaten != 0 || s.Lives != p.StartLives {
		t.Errorf("session after restart = %+v", s)
	}
	if s.Paused || s.GameOver || s.Won || s.DeathActive || s.PostMenuShown {
		t.Errorf("flags after restart = %+v", s)
	}
	if s.PelletsTotal != 183 || w.Grid().RemainingPellets() != 183 {
		t.Errorf("pellets after restart: total %d, left %d", s.PelletsTotal, w.Grid().RemainingPellets())
	}
	if s.LastBonusSpawnAt != 0 || s.LastLifeSpawnAt != 0 {
		t.Errorf("spawn checkpoints not reset: %v, %v", s.LastBonusSpawnAt, s.LastLifeSpawnAt)
	}
	if w.PowerUps().ActiveBonuses() != 0 || w.PowerUps().Life.Active {
		t.Error("power-ups still active after restart")
	}
	if pl := w.Player(); pl.X != p.PlayerStart.X || pl.Y != p.PlayerStart.Y || pl.Moving() {
		t.Errorf("player after restart = %+v", pl)
	}
	if w.Elapsed() != 0 {
		t.Errorf("Elapsed() after restart = %v, expected 0", w.Elapsed())
	}
	for i, pu := range w.Pursuers() {
		if pu.Heading.IsZero() {
			t.Errorf("pursuer %d has no heading after restart", i)
		}
	}
}

func TestDeterminism(t *testing.T) {
	w1, _ := runDefault(42, 1500)
	w2, _ := runDefault(42, 1500)

	s1, s2 := w1.Snapshot(), w2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Score != s2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", s1.Score, s2.Score)
	}
}

func TestActorCells(t *testing.T) {
	w, _ := corridorWorld(t, nil)
	cells := w.ActorCells()

	if len(cells) != 1+PursuerCount {
		t.Fatalf("ActorCells() returned %d cells, expected %d", len(cells), 1+PursuerCount)
	}
	if cells[0] != (CellPos{Row: 1, Col: 1}) {
		t.Errorf("player cell = %v, expected (1, 1)", cells[0])
	}
	for _, c := range cells[1:] {
		if c != (CellPos{Row: 1, Col: 7}) {
			t.Errorf("pursuer cell = %v, expected (1, 7)", c)
		}
	}
}
