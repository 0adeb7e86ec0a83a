package core

import "math/rand"

// RNG is the random source used for spawn placement, chase jitter and
// initial pursuer headings. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// NewRNG returns a seeded source.
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed)) //#nosec G404 -- game randomness, not security
}
