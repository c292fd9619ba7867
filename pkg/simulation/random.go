package simulation

import (
	"math/rand/v2"
	"time"
)

// RandomSource produces uniformly distributed integers in [low, high],
// both ends inclusive. It is only consulted when a flock is scattered.
type RandomSource interface {
	IntRange(low, high int) int
}

// Random is the default RandomSource, backed by a PCG generator.
type Random struct {
	rng *rand.Rand
}

// NewRandom seeds a generator. A zero seed picks a time based one.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntRange returns an integer in [low, high]. Swapped bounds are accepted.
func (r *Random) IntRange(low, high int) int {
	if high < low {
		low, high = high, low
	}
	return low + r.rng.IntN(high-low+1)
}
