// Package engine holds the pure game algorithms: the deterministic RNG,
// the instruction generator, the scoring formula, the power-up resolver
// and the achievement evaluator. Nothing here does I/O or spawns
// goroutines; the room actor drives it all synchronously.
package engine

// LCG parameters (Numerical Recipes constants).
const (
	lcgMultiplier uint64 = 1664525
	lcgIncrement  uint64 = 1013904223
	lcgModulus    uint64 = 1 << 32
)

// RNG is a seeded linear-congruential generator. Two instances built
// from the same seed produce bit-identical sequences, which is what the
// whole instruction subsystem's reproducibility rests on.
type RNG struct {
	state uint64
}

// NewRNG returns a generator seeded with the given value.
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed % lcgModulus}
}

// Reset restores the generator to the given seed, reproducing the exact
// future sequence of a fresh generator with that seed.
func (r *RNG) Reset(seed uint64) {
	r.state = seed % lcgModulus
}

// Next advances the generator and returns a float64 in [0, 1).
func (r *RNG) Next() float64 {
	r.state = (lcgMultiplier*r.state + lcgIncrement) % lcgModulus
	return float64(r.state) / float64(lcgModulus)
}

// NextInt returns a uniform int in [min, max]. Degenerate ranges
// collapse to min.
func (r *RNG) NextInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(r.Next()*float64(max-min+1))
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Next() < p
}

// Pick returns a uniformly chosen element of items. Panics on an empty
// slice, matching the contract that callers pick from closed enums.
func Pick[T any](r *RNG, items []T) T {
	return items[r.NextInt(0, len(items)-1)]
}
