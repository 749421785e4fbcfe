package engine

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"

	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

// Summarize builds the reporting view of a corpus: the per-dezena table,
// the distribution of each statistic over the historical draws, and a
// chi-square uniformity test of the frequencies. An empty corpus yields
// an empty summary rather than an error.
func Summarize(corpus lottery.Corpus) (stats.CorpusSummary, error) {
	freq := ComputeFrequency(corpus)
	delay := ComputeDelay(corpus)

	summary := stats.CorpusSummary{
		Draws:            corpus.Len(),
		Numbers:          NumberTable(freq, delay),
		CombinationSpace: combin.Binomial(lottery.UniverseSize, lottery.DrawSize),
	}
	if last, ok := corpus.Last(); ok {
		summary.LastContest = last.Contest
	}
	if corpus.IsEmpty() {
		return summary, nil
	}

	history := HistoricalStats(corpus)
	for _, f := range stats.Fields {
		values := fieldSeries(history, f)
		if len(values) == 0 {
			continue
		}
		dist, err := describe(f.String(), values)
		if err != nil {
			return stats.CorpusSummary{}, fmt.Errorf("failed to describe %s: %w", f, err)
		}
		summary.Distributions = append(summary.Distributions, dist)
	}

	summary.Uniformity = uniformity(freq)
	return summary, nil
}

// fieldSeries extracts one statistic from the history. Repetidas skips the
// first draw, which has no predecessor.
func fieldSeries(history []stats.CandidateStats, f stats.Field) mstats.Float64Data {
	start := 0
	if f == stats.FieldRepetidas {
		start = 1
	}
	if len(history) <= start {
		return nil
	}
	values := make(mstats.Float64Data, 0, len(history)-start)
	for _, s := range history[start:] {
		values = append(values, float64(s.Value(f)))
	}
	return values
}

func describe(name string, data mstats.Float64Data) (stats.Distribution, error) {
	d := stats.Distribution{Field: name}
	var err error

	if d.Min, err = mstats.Min(data); err != nil {
		return d, err
	}
	if d.Max, err = mstats.Max(data); err != nil {
		return d, err
	}
	if d.Mean, err = mstats.Mean(data); err != nil {
		return d, err
	}
	if d.Median, err = mstats.Median(data); err != nil {
		return d, err
	}
	if len(data) > 1 {
		if d.StdDev, err = mstats.StandardDeviationSample(data); err != nil {
			return d, err
		}
	}
	if d.P10, err = percentile(data, 10); err != nil {
		return d, err
	}
	if d.P90, err = percentile(data, 90); err != nil {
		return d, err
	}
	return d, nil
}

// percentile wraps mstats.Percentile, which rejects ranks below the first
// element on short samples; those fall back to the minimum.
func percentile(data mstats.Float64Data, pct float64) (float64, error) {
	if float64(len(data))*pct/100 < 1 {
		return mstats.Min(data)
	}
	return mstats.Percentile(data, pct)
}

// uniformity tests the observed frequencies against 15/25 of the draws each
func uniformity(freq stats.FrequencyTable) *stats.Uniformity {
	total := freq.Total()
	if total == 0 {
		return nil
	}
	expected := float64(total) / float64(lottery.UniverseSize)
	obs := make([]float64, lottery.UniverseSize)
	exp := make([]float64, lottery.UniverseSize)
	for i, c := range freq {
		obs[i] = float64(c)
		exp[i] = expected
	}

	chi := stat.ChiSquare(obs, exp)
	df := lottery.UniverseSize - 1
	return &stats.Uniformity{
		ChiSquare:        chi,
		DegreesOfFreedom: df,
		PValue:           distuv.ChiSquared{K: float64(df)}.Survival(chi),
	}
}
