package core

import "testing"

type fixedActors []CellPos

func (f fixedActors) ActorCells() []CellPos { return f }

// corridor is three floor cells in a row, surrounded by walls.
func corridor(t *testing.T) *Grid {
	return mustLayout(t,
		"#####",
		"#...#",
		"#####",
	)
}

func TestBonusSpawnExclusivity(t *testing.T) {
	g := corridor(t)
	params := DefaultParams()
	// Draws are (row, col) pairs: a wall, the actor's cell, then a free cell,
	// then the bonus just placed, then the last free cell.
	rng := &seqRNG{vals: []int{0, 0, 1, 1, 1, 2, 1, 2, 1, 3}}
	m := NewPowerUps(g, rng, fixedActors{{Row: 1, Col: 1}}, &params)
	var s Session

	if !m.MaybeSpawnBonus(&s, 10) {
		t.Fatal("MaybeSpawnBonus() = false, expected a spawn")
	}
	if b := m.Bonuses[0]; !b.Active || b.Row != 1 || b.Col != 2 {
		t.Errorf("first bonus = %+v, expected active at (1, 2)", b)
	}

	if !m.MaybeSpawnBonus(&s, 20) {
		t.Fatal("second MaybeSpawnBonus() = false, expected a spawn")
	}
	if b := m.Bonuses[1]; !b.Active || b.Row != 1 || b.Col != 3 {
		t.Errorf("second bonus = %+v, expected active at (1, 3)", b)
	}

	// Every open cell is now taken by an actor or an item.
	m.rng = &seqRNG{vals: []int{1, 1, 1, 2, 1, 3}}
	if m.MaybeSpawnLife(&s, 30) {
		t.Errorf("MaybeSpawnLife() spawned at %+v with no free cell", m.Life)
	}
	if s.LastLifeSpawnAt != 30 {
		t.Errorf("LastLifeSpawnAt = %v, expected 30 after exhausted attempts", s.LastLifeSpawnAt)
	}
}

func TestBonusCadenceAndCapacity(t *testing.T) {
	g := NewDefaultGrid()
	params := DefaultParams()
	m := NewPowerUps(g, NewRNG(7), fixedActors{}, &params)
	var s Session

	if m.MaybeSpawnBonus(&s, 9.9) {
		t.Error("bonus spawned before the interval")
	}
	for i, at := range []float64{10, 20, 30} {
		if !m.MaybeSpawnBonus(&s, at) {
			t.Fatalf("spawn %d at %vs failed", i, at)
		}
	}
	if got := m.ActiveBonuses(); got != 3 {
		t.Fatalf("ActiveBonuses() = %d, expected 3", got)
	}

	if m.MaybeSpawnBonus(&s, 45) {
		t.Error("bonus spawned beyond capacity")
	}
	if s.LastBonusSpawnAt != 45 {
		t.Errorf("LastBonusSpawnAt = %v, expected 45 even when the pool is full", s.LastBonusSpawnAt)
	}

	seen := map[CellPos]bool{}
	for _, b := range m.Bonuses {
		pos := CellPos{Row: b.Row, Col: b.Col}
		if g.BlockedForPlayer(b.Row, b.Col) {
			t.Errorf("bonus on blocked cell %v", pos)
		}
		if seen[pos] {
			t.Errorf("two bonuses share cell %v", pos)
		}
		seen[pos] = true
	}
}

func TestCheckConsumeBonus(t *testing.T) {
	g := corridor(t)
	params := DefaultParams()
	m := NewPowerUps(g, &seqRNG{}, nil, &params)
	m.Bonuses[0] = Item{Active: true, Row: 1, Col: 2}
	m.Bonuses[2] = Item{Active: true, Row: 1, Col: 3}

	c := g.Center(CellPos{Row: 1, Col: 2})
	far := Actor{X: c.X - 0.7, Y: c.Y, Radius: params.ActorRadius}
	near := Actor{X: c.X - 0.6, Y: c.Y, Radius: params.ActorRadius}
	var s Session

	if n := m.CheckConsumeBonus(far, &s); n != 0 {
		t.Errorf("CheckConsumeBonus(far) = %d, expected 0", n)
	}
	// 1.6 from the second bonus, so only the first is eaten.
	if n := m.CheckConsumeBonus(near, &s); n != 1 {
		t.Errorf("CheckConsumeBonus(near) = %d, expected 1", n)
	}
	if s.Score != 100 {
		t.Errorf("Score = %d, expected 100", s.Score)
	}
	if m.Bonuses[0].Active || !m.Bonuses[2].Active {
		t.Errorf("bonuses after eating = %+v", m.Bonuses)
	}
}

func TestCheckConsumeLife(t *testing.T) {
	tests := []struct {
		name      string
		lives     int
		wantLives int
	}{
		{"below cap", 2, 3},
		{"at cap", 3, 3},
		{"one left", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := corridor(t)
			params := DefaultParams()
			m := NewPowerUps(g, &seqRNG{}, nil, &params)
			m.Life = Item{Active: true, Row: 1, Col: 2}
			c := g.Center(CellPos{Row: 1, Col: 2})
			s := Session{Lives: tt.lives}

			if !m.CheckConsumeLife(Actor{X: c.X, Y: c.Y + 0.5, Radius: params.ActorRadius}, &s) {
				t.Fatal("CheckConsumeLife() = false, expected true")
			}
			if s.Lives != tt.wantLives {
				t.Errorf("Lives = %d, expected %d", s.Lives, tt.wantLives)
			}
			if m.Life.Active {
				t.Error("life item still active after pickup")
			}
		})
	}
}

func TestLifeSpawnOnlyWhenInactive(t *testing.T) {
	g := NewDefaultGrid()
	params := DefaultParams()
	m := NewPowerUps(g, NewRNG(3), fixedActors{}, &params)
	var s Session

	if !m.MaybeSpawnLife(&s, 10) {
		t.Fatal("MaybeSpawnLife() = false, expected a spawn")
	}
	first := m.Life
	if m.MaybeSpawnLife(&s, 40) {
		t.Error("life spawned while one is active")
	}
	if m.Life != first {
		t.Errorf("active life moved from %+v to %+v", first, m.Life)
	}
	if s.LastLifeSpawnAt != 10 {
		t.Errorf("LastLifeSpawnAt = %v, expected 10", s.LastLifeSpawnAt)
	}
}
