package app

import (
	"context"
	"fmt"

	"lotogen/adapters/stats/engine"
	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
	"lotogen/internal"
	"lotogen/ports"
)

// Percentiles used when deriving a filter for the statistics report
const (
	DefaultLowPercentile  = 10
	DefaultHighPercentile = 90
)

// StatsService builds the statistics view of the corpus
type StatsService struct {
	corpus ports.CorpusLoader
	logger *internal.Logger
}

// LastDraw describes the most recent draw of the corpus
type LastDraw struct {
	Draw     lottery.Draw         `json:"draw"`
	Stats    stats.CandidateStats `json:"stats"` // repetidas against the draw before it
	Features lottery.CardFeatures `json:"features"`
	Passes   bool                 `json:"passes_default_filter"`
}

// StatsReport is the complete statistics output
type StatsReport struct {
	Summary       stats.CorpusSummary `json:"summary"`
	Fingerprint   core.Hash           `json:"fingerprint"`
	Last          *LastDraw           `json:"last,omitempty"`
	DefaultFilter filter.Config       `json:"default_filter"`
	DerivedFilter *filter.Config      `json:"derived_filter,omitempty"` // p10..p90 of history
}

// NewStatsService creates a statistics service
func NewStatsService(corpus ports.CorpusLoader, logger *internal.Logger) *StatsService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StatsService{corpus: corpus, logger: logger.With("StatsService")}
}

// Report summarizes the corpus, optionally restricted to its last window draws
func (s *StatsService) Report(ctx context.Context, window int) (*StatsReport, error) {
	corpus, err := s.load(ctx, window)
	if err != nil {
		return nil, err
	}
	summary, err := engine.Summarize(corpus)
	if err != nil {
		return nil, err
	}

	report := &StatsReport{
		Summary:       summary,
		Fingerprint:   corpus.Fingerprint(),
		DefaultFilter: filter.DefaultConfig(),
	}

	if last, ok := corpus.Last(); ok {
		var previous lottery.Draw
		if corpus.Len() > 1 {
			previous = corpus.At(corpus.Len() - 2)
		}
		st, err := engine.ComputeCandidateStats(lottery.Candidate{Numbers: last.Numbers}, previous)
		if err != nil {
			return nil, err
		}
		report.Last = &LastDraw{
			Draw:     last,
			Stats:    st,
			Features: last.Numbers.Features(),
			Passes:   filter.Matches(st, report.DefaultFilter),
		}
	}

	if corpus.Len() >= 2 {
		derived, err := engine.DeriveFilterConfig(corpus, DefaultLowPercentile, DefaultHighPercentile)
		if err != nil {
			s.logger.Warn("Could not derive filter: %v", err)
		} else {
			report.DerivedFilter = &derived
		}
	}

	s.logger.Debug("Report over %d draws (fingerprint %s)", corpus.Len(), report.Fingerprint.Short())
	return report, nil
}

// DeriveFilter builds a filter from the [low, high] percentiles of the history
func (s *StatsService) DeriveFilter(ctx context.Context, window int, low, high float64) (filter.Config, error) {
	corpus, err := s.load(ctx, window)
	if err != nil {
		return filter.Config{}, err
	}
	return engine.DeriveFilterConfig(corpus, low, high)
}

func (s *StatsService) load(ctx context.Context, window int) (lottery.Corpus, error) {
	if s.corpus == nil {
		return lottery.Corpus{}, nil
	}
	corpus, err := s.corpus.LoadCorpus(ctx)
	if err != nil {
		return lottery.Corpus{}, fmt.Errorf("failed to load corpus: %w", err)
	}
	return corpus.Window(window), nil
}
