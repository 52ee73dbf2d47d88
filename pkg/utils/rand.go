package utils

import (
	"math/rand"
	"sync"
)

// RandSource is a thread-safe random number generator that remembers its seed
type RandSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewRandSource creates a new random source with the given seed.
// Every seed, zero included, yields a reproducible sequence.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewEntropySource creates a source seeded from system entropy.
// The chosen seed is available through Seed so the run can be replayed.
func NewEntropySource() *RandSource {
	return NewRandSource(EntropySeed())
}

// Seed returns the seed the source was created with
func (r *RandSource) Seed() int64 {
	return r.seed
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
