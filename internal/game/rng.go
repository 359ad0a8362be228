package game

import mathrand "math/rand"

// Rand is the random source used for volatility draws. Sessions wire a
// seeded math/rand source; tests can substitute a scripted one so
// compounding outcomes are reproducible.
type Rand interface {
	Float64() float64
}

func NewRand(seed int64) Rand {
	return mathrand.New(mathrand.NewSource(seed))
}
