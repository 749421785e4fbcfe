package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotogen/adapters/stats/engine"
	"lotogen/domain/filter"
	"lotogen/domain/stats"
)

func seededFactory(base int64) SourceFactory {
	return func(worker int) Source {
		return rand.New(rand.NewSource(base + int64(worker)))
	}
}

func TestGenerateParallel(t *testing.T) {
	req := defaultRequest(40)
	e := newTestEngine()

	a, err := e.GenerateParallel(context.Background(), req, 4, seededFactory(100))
	require.NoError(t, err)
	b, err := e.GenerateParallel(context.Background(), req, 4, seededFactory(100))
	require.NoError(t, err)

	assert.Len(t, a.Accepted, 40)
	assert.Equal(t, a.Accepted, b.Accepted)
	assert.LessOrEqual(t, a.AttemptsUsed, req.MaxAttempts)
	assert.False(t, a.Exhausted)

	for _, c := range a.Accepted {
		s, err := engine.ComputeCandidateStats(c, req.Reference)
		require.NoError(t, err)
		assert.True(t, filter.Matches(s, req.Filter))
	}
}

func TestGenerateParallelSumsBudget(t *testing.T) {
	req := defaultRequest(3)
	req.MaxAttempts = 10
	req.Filter = filter.Open().With(stats.FieldSoma, filter.Range{Min: 0, Max: 1})

	res, err := newTestEngine().GenerateParallel(context.Background(), req, 3, seededFactory(1))
	require.NoError(t, err)
	assert.Equal(t, 10, res.AttemptsUsed)
	assert.True(t, res.Exhausted)
	assert.Equal(t, 10, res.Rejections["soma"])
}

func TestGenerateParallelMoreWorkersThanAttempts(t *testing.T) {
	req := defaultRequest(1)
	req.MaxAttempts = 2
	req.Filter = filter.Open()

	res, err := newTestEngine().GenerateParallel(context.Background(), req, 8, seededFactory(1))
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 1)
	assert.LessOrEqual(t, res.AttemptsUsed, 2)
}

func TestGenerateParallelDeduplicatesAcrossShards(t *testing.T) {
	req := Request{TargetCount: 4, MaxAttempts: 40, Universe: seq(3, 17), Filter: filter.Open(), Deduplicate: true}

	res, err := newTestEngine().GenerateParallel(context.Background(), req, 4, seededFactory(9))
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 1)
	assert.True(t, res.Exhausted)
	assert.Equal(t, 40, res.AttemptsUsed)
}

func TestGenerateParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newTestEngine().GenerateParallel(ctx, defaultRequest(5), 2, seededFactory(1))
	require.Error(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Cancelled)
	assert.False(t, res.Exhausted)
}
