// Package random provides the random byte source of the RND instruction.
//
// A Random created with a nonzero seed returns the same sequence of bytes for
// every run, which makes program runs reproducible. A zero seed selects a time
// based seed.
package random

import (
	"math/rand/v2"
	"time"
)

// Random is a seeded random byte generator.
type Random struct {
	seed uint64
	rng  *rand.Rand
}

// New returns a new generator. A seed of 0 is replaced by a time based seed.
func New(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed>>32|seed<<32)),
	}
}

// Seed returns the seed the generator was initialised with.
func (r *Random) Seed() uint64 {
	return r.seed
}

// Byte returns a uniformly distributed random byte.
func (r *Random) Byte() uint8 {
	return uint8(r.rng.UintN(256))
}
