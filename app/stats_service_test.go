package app

import (
	"context"
	"testing"

	"lotogen/domain/filter"
	"lotogen/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Report(t *testing.T) {
	kit := testkit.NewTestKit()
	corpus, err := kit.SyntheticCorpus(50, 3)
	require.NoError(t, err)
	svc := NewStatsService(&testkit.StaticCorpusLoader{Corpus: corpus}, nil)

	report, err := svc.Report(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 50, report.Summary.Draws)
	assert.Equal(t, 50, report.Summary.LastContest)
	assert.Len(t, report.Summary.Numbers, 25)
	assert.Equal(t, corpus.Fingerprint(), report.Fingerprint)
	assert.Equal(t, filter.DefaultConfig(), report.DefaultFilter)

	require.NotNil(t, report.Last)
	assert.Equal(t, 50, report.Last.Draw.Contest)
	assert.Equal(t, 15, report.Last.Stats.Pares+report.Last.Stats.Impares)
	assert.Equal(t, 15, report.Last.Features.Moldura+report.Last.Features.Centro)

	require.NotNil(t, report.DerivedFilter)
	assert.NoError(t, report.DerivedFilter.Validate())

	windowed, err := svc.Report(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, windowed.Summary.Draws)
}

func TestStatsService_EmptyCorpus(t *testing.T) {
	svc := NewStatsService(&testkit.StaticCorpusLoader{}, nil)

	report, err := svc.Report(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.Draws)
	assert.Nil(t, report.Last)
	assert.Nil(t, report.DerivedFilter)

	_, err = svc.DeriveFilter(context.Background(), 0, 10, 90)
	assert.Error(t, err)
}
