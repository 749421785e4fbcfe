package rng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draw(t *testing.T, next func() int, n int) []int {
	t.Helper()
	out := make([]int, n)
	for i := range out {
		out[i] = next()
	}
	return out
}

func TestSeededStream_Deterministic(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	a, err := adapter.SeededStream(ctx, "generate", 42)
	require.NoError(t, err)
	b, err := adapter.SeededStream(ctx, "generate", 42)
	require.NoError(t, err)

	assert.Equal(t,
		draw(t, func() int { return a.Intn(25) }, 20),
		draw(t, func() int { return b.Intn(25) }, 20))
}

func TestWorkerStream_DistinctPerWorker(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	w0, err := adapter.WorkerStream(ctx, 0, 7)
	require.NoError(t, err)
	w1, err := adapter.WorkerStream(ctx, 1, 7)
	require.NoError(t, err)

	assert.NotEqual(t,
		draw(t, func() int { return w0.Intn(1 << 30) }, 8),
		draw(t, func() int { return w1.Intn(1 << 30) }, 8))

	again, err := adapter.WorkerStream(ctx, 1, 7)
	require.NoError(t, err)
	w1b, err := adapter.WorkerStream(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t,
		draw(t, func() int { return again.Intn(1 << 30) }, 8),
		draw(t, func() int { return w1b.Intn(1 << 30) }, 8))
}

func TestWorkerStream_WorkerZeroMatchesPlainSeed(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	w0, err := adapter.WorkerStream(ctx, 0, 99)
	require.NoError(t, err)
	plain, err := adapter.SeededStream(ctx, "", 99)
	require.NoError(t, err)

	assert.Equal(t,
		draw(t, func() int { return plain.Intn(1000) }, 10),
		draw(t, func() int { return w0.Intn(1000) }, 10))
}

func TestWorkerStream_Errors(t *testing.T) {
	adapter := NewSeededAdapter()

	_, err := adapter.WorkerStream(context.Background(), -1, 1)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = adapter.SeededStream(ctx, "x", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
