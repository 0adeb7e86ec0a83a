package core

// Item is a power-up slot. Inactive items have no meaningful position.
type Item struct {
	Active bool
	Row    int
	Col    int
}

// ActorLocator reports the cells currently occupied by actors.
type ActorLocator interface {
	ActorCells() []CellPos
}

// PowerUps manages the bonus pool and the single extra-life item.
type PowerUps struct {
	Bonuses []Item
	Life    Item

	grid   *Grid
	rng    RNG
	actors ActorLocator
	params *Params
}

// NewPowerUps creates a manager with an empty bonus pool of the configured
// capacity.
func NewPowerUps(g *Grid, rng RNG, actors ActorLocator, params *Params) *PowerUps {
	return &PowerUps{
		Bonuses: make([]Item, params.BonusCapacity),
		grid:    g,
		rng:     rng,
		actors:  actors,
		params:  params,
	}
}

// Reset deactivates every item.
func (m *PowerUps) Reset() {
	for i := range m.Bonuses {
		m.Bonuses[i] = Item{}
	}
	m.Life = Item{}
}

// ActiveBonuses counts active bonus items.
func (m *PowerUps) ActiveBonuses() int {
	n := 0
	for _, b := range m.Bonuses {
		if b.Active {
			n++
		}
	}
	return n
}

// MaybeSpawnBonus runs the bonus cadence check at elapsed seconds.
// Once an interval has passed the check time is recorded, even if the pool
// is full or no free cell was found. Reports whether a bonus appeared.
func (m *PowerUps) MaybeSpawnBonus(s *Session, elapsed float64) bool {
	if elapsed-s.LastBonusSpawnAt < m.params.BonusInterval.Seconds() {
		return false
	}
	s.LastBonusSpawnAt = elapsed

	slot := -1
	for i, b := range m.Bonuses {
		if !b.Active {
			slot = i
			break
		}
	}
	if slot < 0 {
		return false
	}

	pos, ok := m.findSpawnCell()
	if !ok {
		return false
	}
	m.Bonuses[slot] = Item{Active: true, Row: pos.Row, Col: pos.Col}
	return true
}

// CheckConsumeBonus eats every active bonus close enough to the player.
// Returns the number eaten.
func (m *PowerUps) CheckConsumeBonus(player Actor, s *Session) int {
	reach := player.Radius + m.params.BonusPickupRadius
	eaten := 0
	for i := range m.Bonuses {
		b := &m.Bonuses[i]
		if !b.Active {
			continue
		}
		c := m.grid.Center(CellPos{Row: b.Row, Col: b.Col})
		if distSq(player.X, player.Y, c.X, c.Y) <= reach*reach {
			b.Active = false
			s.Score += m.params.BonusPoints
			eaten++
		}
	}
	return eaten
}

// MaybeSpawnLife places the life item when none is active and an interval
// has passed since the last check.
func (m *PowerUps) MaybeSpawnLife(s *Session, elapsed float64) bool {
	if m.Life.Active {
		return false
	}
	if elapsed-s.LastLifeSpawnAt < m.params.LifeInterval.Seconds() {
		return false
	}
	s.LastLifeSpawnAt = elapsed

	pos, ok := m.findSpawnCell()
	if !ok {
		return false
	}
	m.Life = Item{Active: true, Row: pos.Row, Col: pos.Col}
	return true
}

// CheckConsumeLife eats the life item when the player reaches it. Lives
// never exceed MaxLives but the item is consumed regardless.
func (m *PowerUps) CheckConsumeLife(player Actor, s *Session) bool {
	if !m.Life.Active {
		return false
	}
	reach := player.Radius + m.params.LifePickupRadius
	c := m.grid.Center(CellPos{Row: m.Life.Row, Col: m.Life.Col})
	if distSq(player.X, player.Y, c.X, c.Y) > reach*reach {
		return false
	}
	m.Life.Active = false
	if s.Lives < m.params.MaxLives {
		s.Lives++
	}
	return true
}

// findSpawnCell draws random cells until one is free.
func (m *PowerUps) findSpawnCell() (CellPos, bool) {
	var occupied []CellPos
	if m.actors != nil {
		occupied = m.actors.ActorCells()
	}
	for range m.params.SpawnAttempts {
		c := CellPos{
			Row: m.rng.Intn(m.grid.Rows()),
			Col: m.rng.Intn(m.grid.Cols()),
		}
		if m.spawnable(c, occupied) {
			return c, true
		}
	}
	return CellPos{}, false
}

// spawnable rejects walls, the gate, actor cells and active item cells.
func (m *PowerUps) spawnable(c CellPos, occupied []CellPos) bool {
	if m.grid.BlockedForPlayer(c.Row, c.Col) {
		return false
	}
	for _, o := range occupied {
		if o == c {
			return false
		}
	}
	for _, b := range m.Bonuses {
		if b.Active && b.Row == c.Row && b.Col == c.Col {
			return false
		}
	}
	if m.Life.Active && m.Life.Row == c.Row && m.Life.Col == c.Col {
		return false
	}
	return true
}
