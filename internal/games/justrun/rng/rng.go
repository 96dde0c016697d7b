// Package rng provides the deterministic random source used by the world.
// Two worlds seeded alike make identical spawn and AI decisions.
package rng

// Source is a 64-bit linear congruential generator.
type Source struct {
	state uint64
}

// New creates a source with the given seed. A zero seed is replaced by 1.
func New(seed int64) *Source {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &Source{state: s}
}

// Next generates the next random uint64.
func (r *Source) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n). Returns 0 when n <= 0.
func (r *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Range returns a random int in [lo, hi). Returns lo when the range is empty.
func (r *Source) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}

// Chance returns true with probability num/den.
func (r *Source) Chance(num, den int) bool {
	return r.Intn(den) < num
}

// State exposes the internal state for snapshots.
func (r *Source) State() uint64 {
	return r.state
}
