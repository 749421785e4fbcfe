package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/domain/run"
	"lotogen/domain/stats"
	"lotogen/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Skipping live test: TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(context.Background(), db))
	_, err = db.Exec(`TRUNCATE draws, generated_games, generation_runs`)
	require.NoError(t, err)
	return db
}

func TestDrawRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDrawRepository(db)

	d1, err := lottery.NewDraw(1, time.Date(2003, 9, 29, 0, 0, 0, 0, time.UTC),
		[]int{2, 3, 5, 6, 9, 10, 11, 13, 14, 16, 18, 20, 23, 24, 25})
	require.NoError(t, err)
	d2, err := lottery.NewDraw(2, time.Time{},
		[]int{1, 4, 5, 6, 7, 9, 11, 12, 13, 15, 16, 19, 20, 23, 24})
	require.NoError(t, err)

	n, err := repo.UpsertDraws(ctx, []lottery.Draw{d2, d1})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Re-inserting identical contests is a no-op
	n, err = repo.UpsertDraws(ctx, []lottery.Draw{d1})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	conflict, err := lottery.NewDraw(1, time.Time{}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15})
	require.NoError(t, err)
	_, err = repo.UpsertDraws(ctx, []lottery.Draw{conflict})
	assert.ErrorIs(t, err, core.ErrInvalidDraw)

	latest, err := repo.LatestContest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, latest)

	corpus, err := repo.LoadCorpus(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, corpus.Len())
	assert.Equal(t, d1.Numbers, corpus.At(0).Numbers)
	assert.Equal(t, d2.Numbers, corpus.At(1).Numbers)
}

func TestRunRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRunRepository(db)

	score := 1.25
	rec := &run.Run{
		ID:          core.NewRunID(),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Fingerprint: run.NewRunFingerprint(core.Hash("corpus"), filter.DefaultConfig(), nil, 42, 1),
		Filter:      filter.DefaultConfig(),
		Reference:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		TargetCount: 2,
		MaxAttempts: 100,
		Games: []run.Game{
			{Position: 1, Numbers: lottery.MustCandidate(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 16).Numbers,
				Stats: stats.CandidateStats{Pares: 8, Impares: 7, Soma: 121}, Score: &score},
			{Position: 2, Numbers: lottery.MustCandidate(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 17).Numbers},
		},
		AttemptsUsed: 37,
	}
	require.NoError(t, repo.SaveRun(ctx, rec))

	got, err := repo.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Filter, got.Filter)
	assert.Equal(t, rec.Reference, got.Reference)
	assert.Equal(t, rec.Fingerprint.Fingerprint, got.Fingerprint.Fingerprint)
	assert.True(t, got.Fingerprint.Verify())
	require.Len(t, got.Games, 2)
	assert.Equal(t, 121, got.Games[0].Stats.Soma)
	require.NotNil(t, got.Games[0].Score)
	assert.Equal(t, 1.25, *got.Games[0].Score)
	assert.Nil(t, got.Games[1].Score)

	list, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].GameCount)

	_, err = repo.GetRun(ctx, core.NewRunID())
	assert.ErrorIs(t, err, core.ErrRunNotFound)
}
