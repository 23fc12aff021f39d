package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for the expected-plate
// draws of the analyses
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream scoped to one analysis run
	// and repeat iteration, so re-running with the same seed reproduces the
	// same expected plates
	Stream(ctx context.Context, analysisID, stageName string, iteration int, baseSeed int64) (*rand.Rand, error)
}
