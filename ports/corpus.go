package ports

import (
	"context"

	"lotogen/domain/lottery"
)

// CorpusLoader supplies the historical draw corpus, oldest draw first
type CorpusLoader interface {
	LoadCorpus(ctx context.Context) (lottery.Corpus, error)
}

// DrawRepository persists historical draws keyed by contest number
type DrawRepository interface {
	CorpusLoader

	// UpsertDraws inserts new contests and returns how many were written.
	// A contest already stored with different numbers is an error.
	UpsertDraws(ctx context.Context, draws []lottery.Draw) (int, error)

	// LatestContest returns the highest stored contest number, 0 when empty
	LatestContest(ctx context.Context) (int, error)
}
