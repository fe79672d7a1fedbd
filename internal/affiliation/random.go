package affiliation

import "math/rand/v2"

// Random is a uniform source over [0, 1).
type Random interface {
	Float64() float64
}

// NewRandom returns a seeded PCG generator. Identical seeds produce identical
// department filter decisions over identical input.
func NewRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a fresh non-zero seed for runs that did not fix one.
func RandomSeed() uint64 {
	for {
		if seed := rand.Uint64(); seed != 0 {
			return seed
		}
	}
}
