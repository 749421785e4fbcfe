package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic runs
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named
	// operation. An empty name uses the seed as is.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// WorkerStream creates a deterministic RNG stream for one generation worker.
	// Worker 0 matches SeededStream(ctx, "", baseSeed).
	WorkerStream(ctx context.Context, worker int, baseSeed int64) (*rand.Rand, error)
}
