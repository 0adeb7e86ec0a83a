package core

import "math"

// PursuerCount is the fixed number of pursuers in a world.
const PursuerCount = 4

// Actor is a moving circle in world coordinates.
// VX and VY are unit direction components; speed comes from Params.
type Actor struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Moving reports whether the actor has a non-zero velocity.
func (a Actor) Moving() bool {
	return a.VX != 0 || a.VY != 0
}

// Pursuer is a chasing actor with an axis-aligned heading.
type Pursuer struct {
	Actor
	Heading Heading
}

// placeAt moves the actor to p and stops it.
func (a *Actor) placeAt(p Point) {
	a.X, a.Y = p.X, p.Y
	a.VX, a.VY = 0, 0
}

// clampTo keeps the actor center inside the playfield.
func (a *Actor) clampTo(g *Grid) {
	a.X = Clamp(a.X, 0.5, float64(g.Cols())-0.5)
	a.Y = Clamp(a.Y, 0.5, float64(g.Rows())-0.5)
}

// updatePlayer integrates the player one tick. Each axis is tested and
// applied independently so the player slides along walls.
func (w *World) updatePlayer(dt float64) {
	p := &w.player
	g := w.grid
	speed := w.params.PlayerSpeed

	nx := p.X + p.VX*speed*dt
	ny := p.Y + p.VY*speed*dt

	if !g.BlockedForPlayer(g.RowAt(p.Y), g.ColAt(nx)) {
		p.X = Clamp(nx, 0.5, float64(g.Cols())-0.5)
	}
	if !g.BlockedForPlayer(g.RowAt(ny), g.ColAt(p.X)) {
		p.Y = Clamp(ny, 0.5, float64(g.Rows())-0.5)
	}

	if p.Moving() {
		w.session.FacingDeg = math.Atan2(p.VY, p.VX) * 180 / math.Pi
	}

	w.eatPellet()
	w.powerups.CheckConsumeBonus(*p, &w.session)
	w.powerups.CheckConsumeLife(*p, &w.session)
}

// eatPellet consumes the pellet under the player and evaluates the win.
func (w *World) eatPellet() {
	s := &w.session
	pos := w.grid.CellOf(w.player.X, w.player.Y)
	if w.grid.ConsumePelletAt(pos.Row, pos.Col) {
		s.Score += w.params.PelletPoints
		s.PelletsEaten++
	}
	if s.PelletsEaten == s.PelletsTotal && !s.Won {
		s.Won = true
		s.Paused = true
		s.WonAt = w.clock.Now()
		w.logger.Debug("maze cleared", "score", s.Score, "elapsed", w.Elapsed())
	}
}

// updatePursuers moves every pursuer one tick. The first collision with the
// player triggers death and the remaining pursuers do not move this tick.
func (w *World) updatePursuers(dt, elapsed float64) {
	g := w.grid
	speed := w.params.PursuerSpeed(elapsed)
	rr := w.player.Radius + w.params.ActorRadius - w.params.CollisionSlack

	for i := range w.pursuers {
		pu := &w.pursuers[i]
		at := g.CellOf(pu.X, pu.Y)

		// Stay on the lane of the axis not being travelled.
		if pu.Heading.DX != 0 {
			pu.Y = g.CenterY(at.Row)
		}
		if pu.Heading.DY != 0 {
			pu.X = g.CenterX(at.Col)
		}

		if g.AtCellCenter(pu.X, pu.Y, at.Row, at.Col, w.params.CenterEpsilon) {
			pu.Heading = ChooseHeading(g, at, pu.Heading, Point{X: w.player.X, Y: w.player.Y}, w.rng, w.params.ChaseJitter)
			next := at.Step(pu.Heading)
			if g.BlockedForPursuer(next.Row, next.Col) {
				pu.Heading = Heading{}
			}
		}

		pu.X += float64(pu.Heading.DX) * speed * dt
		pu.Y += float64(pu.Heading.DY) * speed * dt
		pu.clampTo(g)

		if distSq(pu.X, pu.Y, w.player.X, w.player.Y) < rr*rr {
			w.TriggerDeath()
			return
		}
	}
}

// randomizeHeadings gives every pursuer a uniformly random axis heading.
func (w *World) randomizeHeadings() {
	for i := range w.pursuers {
		w.pursuers[i].Heading = chaseOrder[w.rng.Intn(len(chaseOrder))]
	}
}

// resetActors puts the player and the pursuers back on their start points.
func (w *World) resetActors() {
	w.player.placeAt(w.params.PlayerStart)
	w.player.Radius = w.params.ActorRadius
	for i := range w.pursuers {
		w.pursuers[i].placeAt(w.params.PursuerStarts[i])
		w.pursuers[i].Radius = w.params.ActorRadius
		w.pursuers[i].Heading = Heading{}
	}
	w.session.FacingDeg = 0
}
