package core

import "math"

// chaseOrder is the evaluation order of candidate headings. It decides
// ties and the fallback when only the reverse is open.
var chaseOrder = [4]Heading{Right, Left, Up, Down}

// ChooseHeading picks a pursuer's next heading at cell at.
//
// Every open direction except the reverse of current is scored by the
// Manhattan distance from the neighbouring cell center to target, plus a
// small random jitter; the lowest score wins. When the reverse is the only
// open direction, the first open direction in chaseOrder is taken. A
// boxed-in pursuer gets the zero heading.
func ChooseHeading(g *Grid, at CellPos, current Heading, target Point, rng RNG, jitter float64) Heading {
	reverse := current.Reverse()
	best := Heading{}
	bestScore := math.Inf(1)

	for _, d := range chaseOrder {
		if d == reverse {
			continue
		}
		next := at.Step(d)
		if g.BlockedForPursuer(next.Row, next.Col) {
			continue
		}
		score := math.Abs(g.CenterX(next.Col)-target.X) + math.Abs(g.CenterY(next.Row)-target.Y)
		score += jitterSample(rng, jitter)
		if score < bestScore {
			bestScore = score
			best = d
		}
	}

	if !best.IsZero() {
		return best
	}

	for _, d := range chaseOrder {
		next := at.Step(d)
		if !g.BlockedForPursuer(next.Row, next.Col) {
			return d
		}
	}
	return Heading{}
}

// jitterSample draws from {0, upper/100, ..., 99*upper/100}.
func jitterSample(rng RNG, upper float64) float64 {
	if upper <= 0 {
		return 0
	}
	return float64(rng.Intn(100)) * upper / 100
}
