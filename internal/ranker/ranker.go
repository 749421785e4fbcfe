// Package ranker orders accepted candidates by an external score and
// truncates them to a final selection.
package ranker

import (
	"sort"

	"lotogen/domain/lottery"
)

// ScoreFunc scores a candidate; higher ranks first. The ranker assumes nothing
// else about it.
type ScoreFunc func(lottery.Candidate) float64

// Scored is a candidate with its rank position and optional score
type Scored struct {
	Candidate lottery.Candidate `json:"candidate"`
	Score     float64           `json:"score"`
	HasScore  bool              `json:"has_score"`
	Position  int               `json:"position"` // 1-based
}

// Rank orders candidates by descending score and keeps the first n (all when n <= 0).
// Equal scores keep insertion order. A nil score keeps insertion order entirely.
func Rank(candidates []lottery.Candidate, score ScoreFunc, n int) []lottery.Candidate {
	scored := RankScored(candidates, score, n)
	out := make([]lottery.Candidate, len(scored))
	for i, s := range scored {
		out[i] = s.Candidate
	}
	return out
}

// RankScored is Rank keeping the score and position of every kept candidate
func RankScored(candidates []lottery.Candidate, score ScoreFunc, n int) []Scored {
	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = Scored{Candidate: c}
		if score != nil {
			out[i].Score = score(c)
			out[i].HasScore = true
		}
	}
	if score != nil {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	}
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// FromScores adapts a batch of precomputed scores, aligned with candidates,
// into a ScoreFunc. Candidates missing from the batch score zero.
func FromScores(candidates []lottery.Candidate, scores []float64) ScoreFunc {
	byKey := make(map[lottery.Combination]float64, len(candidates))
	for i, c := range candidates {
		if i < len(scores) {
			byKey[c.Numbers] = scores[i]
		}
	}
	return func(c lottery.Candidate) float64 {
		return byKey[c.Numbers]
	}
}

// EvaluateHits counts, for each game, how many of its dezenas were drawn in result
func EvaluateHits(games []lottery.Candidate, result lottery.Draw) []int {
	mask := result.Mask()
	hits := make([]int, len(games))
	for i, g := range games {
		hits[i] = g.Numbers.Mask().Overlap(mask)
	}
	return hits
}
