package ranker

import (
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

// StatsScorer scores candidates from the corpus tables alone, for callers
// that want an ordering without an external model
type StatsScorer struct {
	weights [lottery.UniverseSize]float64
}

// NewStatsScorer weights each dezena by its frequency relative to the most
// frequent dezena plus its delay pressure (current delay / maximum delay)
func NewStatsScorer(freq stats.FrequencyTable, delay stats.DelayTable) *StatsScorer {
	maxFreq := 0
	for _, c := range freq {
		if c > maxFreq {
			maxFreq = c
		}
	}

	s := &StatsScorer{}
	for i := range s.weights {
		var w float64
		if maxFreq > 0 {
			w = float64(freq[i]) / float64(maxFreq)
		}
		if delay[i].Max > 0 {
			w += float64(delay[i].Current) / float64(delay[i].Max)
		}
		s.weights[i] = w
	}
	return s
}

// Weight returns the per-dezena weight
func (s *StatsScorer) Weight(n int) float64 {
	if n < lottery.MinNumber || n > lottery.MaxNumber {
		return 0
	}
	return s.weights[n-1]
}

// Weights returns all per-dezena weights; index 0 holds dezena 1
func (s *StatsScorer) Weights() [lottery.UniverseSize]float64 {
	return s.weights
}

// Score is the mean weight of the candidate's dezenas
func (s *StatsScorer) Score(c lottery.Candidate) float64 {
	total := 0.0
	for _, n := range c.Numbers {
		total += s.weights[n-1]
	}
	return total / lottery.DrawSize
}

// Func exposes the scorer as a ScoreFunc
func (s *StatsScorer) Func() ScoreFunc {
	return s.Score
}
