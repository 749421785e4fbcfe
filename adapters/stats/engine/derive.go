package engine

import (
	"fmt"
	"math"

	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

// DeriveFilterConfig bounds every statistic by the [lowPct, highPct] percentiles
// of its historical distribution, widened outward to whole numbers. At least
// two draws are needed so repetidas has a sample.
func DeriveFilterConfig(corpus lottery.Corpus, lowPct, highPct float64) (filter.Config, error) {
	if corpus.Len() < 2 {
		return filter.Config{}, fmt.Errorf("%w: need at least 2 draws to derive bounds, got %d", core.ErrEmptyCorpus, corpus.Len())
	}
	if lowPct <= 0 || highPct > 100 || lowPct >= highPct {
		return filter.Config{}, core.NewInvalidFilterConfigError("percentiles",
			fmt.Sprintf("need 0 < low < high <= 100, got %.1f and %.1f", lowPct, highPct))
	}

	history := HistoricalStats(corpus)
	cfg := filter.Config{}
	for _, f := range stats.Fields {
		values := fieldSeries(history, f)
		lo, err := percentile(values, lowPct)
		if err != nil {
			return filter.Config{}, fmt.Errorf("failed to compute p%.0f of %s: %w", lowPct, f, err)
		}
		hi, err := percentile(values, highPct)
		if err != nil {
			return filter.Config{}, fmt.Errorf("failed to compute p%.0f of %s: %w", highPct, f, err)
		}
		cfg = cfg.With(f, filter.Range{Min: int(math.Floor(lo)), Max: int(math.Ceil(hi))})
	}

	if err := cfg.Validate(); err != nil {
		return filter.Config{}, err
	}
	return cfg, nil
}
