package rng

import (
	"context"
	"fmt"
	"math/rand"
)

// SeededAdapter implements ports.RNGPort on math/rand sources
type SeededAdapter struct{}

// NewSeededAdapter creates a new seeded RNG adapter
func NewSeededAdapter() *SeededAdapter {
	return &SeededAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *SeededAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name != "" {
		seed = int64(hashString(name)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// WorkerStream creates a deterministic RNG stream for one generation worker
func (r *SeededAdapter) WorkerStream(ctx context.Context, worker int, baseSeed int64) (*rand.Rand, error) {
	if worker < 0 {
		return nil, fmt.Errorf("worker index must be non-negative, got %d", worker)
	}
	// Worker 0 reproduces the plain seed, so a single-worker run and worker 0
	// of a parallel run draw the same sequence
	name := ""
	if worker > 0 {
		name = fmt.Sprintf("worker-%d", worker)
	}
	return r.SeededStream(ctx, name, baseSeed)
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
