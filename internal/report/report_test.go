package report

import (
	"context"
	"strings"
	"testing"

	"lotogen/app"
	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/domain/run"
	"lotogen/domain/stats"
	"lotogen/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsReport(t *testing.T) *app.StatsReport {
	t.Helper()
	corpus, err := testkit.NewTestKit().SyntheticCorpus(30, 5)
	require.NoError(t, err)
	r, err := app.NewStatsService(&testkit.StaticCorpusLoader{Corpus: corpus}, nil).Report(context.Background(), 0)
	require.NoError(t, err)
	return r
}

func TestMarkdown_Stats(t *testing.T) {
	md := string(Markdown(Input{Stats: statsReport(t)}))

	assert.True(t, strings.HasPrefix(md, "# Lotofácil report\n"))
	assert.Contains(t, md, "- Draws: 30")
	assert.Contains(t, md, "- Last contest: 30")
	assert.Contains(t, md, "## Numbers")
	assert.Contains(t, md, "| 25 |")
	assert.Contains(t, md, "## Distributions")
	assert.Contains(t, md, "| soma |")
	assert.Contains(t, md, "Derived (p10..p90)")
	assert.Contains(t, md, "## Last draw")
}

func TestMarkdown_Run(t *testing.T) {
	score := 1.5
	r := &run.Run{
		ID:          core.RunID("run-1"),
		Filter:      filter.DefaultConfig(),
		TargetCount: 2,
		MaxAttempts: 100,
		Exhausted:   true,
		Games: []run.Game{{
			Position: 1,
			Numbers:  lottery.MustCandidate(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15).Numbers,
			Stats:    stats.CandidateStats{Pares: 7, Impares: 8, Soma: 120},
			Score:    &score,
		}},
	}
	md := string(Markdown(Input{Title: "Jogos", Run: r}))

	assert.True(t, strings.HasPrefix(md, "# Jogos\n"))
	assert.Contains(t, md, "## Run run-1")
	assert.Contains(t, md, "budget exhausted")
	assert.Contains(t, md, "| soma | [165,224] |")
	assert.Contains(t, md, "| 1 | 01-02-03-04-05-06-07-08-09-10-11-12-13-14-15 | 7 | 8 |")
	assert.Contains(t, md, "1.5000 |")
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Contains(t, string(Markdown(Input{})), "Nothing to report")
}

func TestHTMLAndPage(t *testing.T) {
	out := string(HTML([]byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<table>")

	page, err := Page("<Report>", []byte("**bold**"))
	require.NoError(t, err)
	s := string(page)
	assert.Contains(t, s, "<title>&lt;Report&gt;</title>")
	assert.Contains(t, s, "<strong>bold</strong>")
}
