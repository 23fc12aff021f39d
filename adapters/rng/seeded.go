// Package rng provides the seeded random stream adapter the analyses draw
// their expected plates from.
package rng

import (
	"context"
	"math/rand"
	"time"
)

// SeededAdapter implements ports.RNGPort. A zero base seed means seed from
// the clock; any other value makes every stream, and therefore every
// expected plate, reproducible.
type SeededAdapter struct {
	baseSeed int64
}

// NewSeededAdapter creates an RNG adapter with the given base seed.
func NewSeededAdapter(baseSeed int64) *SeededAdapter {
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	return &SeededAdapter{baseSeed: baseSeed}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *SeededAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(int64(hashString(name)) + seed)), nil
}

// Stream creates a deterministic RNG stream scoped to one analysis run and
// repeat iteration
func (r *SeededAdapter) Stream(ctx context.Context, analysisID, stageName string, iteration int, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if seed == 0 {
		seed = r.baseSeed
	}
	seed += int64(hashString(analysisID))
	seed += int64(hashString(stageName))
	seed += int64(iteration+1) * 7919
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
