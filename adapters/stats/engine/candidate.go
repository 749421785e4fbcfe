package engine

import (
	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
	"lotogen/internal/numbers"
)

const (
	flagEven uint8 = 1 << iota
	flagPrime
	flagMult3
	flagFibonacci
)

// classes caches the classifier result for every dezena
var classes = func() [lottery.MaxNumber + 1]uint8 {
	var t [lottery.MaxNumber + 1]uint8
	for n := lottery.MinNumber; n <= lottery.MaxNumber; n++ {
		if numbers.IsEven(n) {
			t[n] |= flagEven
		}
		if numbers.IsPrime(n) {
			t[n] |= flagPrime
		}
		if numbers.IsMultipleOf3(n) {
			t[n] |= flagMult3
		}
		if numbers.IsFibonacci(n) {
			t[n] |= flagFibonacci
		}
	}
	return t
}()

// ComputeCandidateStats classifies each member of the candidate in a single pass
// and counts its overlap with reference. A zero reference draw yields Repetidas 0.
// A candidate that is not 15 distinct dezenas fails with core.ErrInvalidCandidate.
func ComputeCandidateStats(candidate lottery.Candidate, reference lottery.Draw) (stats.CandidateStats, error) {
	return CombinationStats(candidate.Numbers, reference.Mask())
}

// CombinationStats is ComputeCandidateStats over a raw combination and reference mask
func CombinationStats(c lottery.Combination, reference lottery.Mask) (stats.CandidateStats, error) {
	var s stats.CandidateStats
	var seen lottery.Mask
	for _, n := range c {
		if n < lottery.MinNumber || n > lottery.MaxNumber {
			return stats.CandidateStats{}, core.NewInvalidCandidateError("number out of range")
		}
		if seen.Has(n) {
			return stats.CandidateStats{}, core.NewInvalidCandidateError("duplicate number")
		}
		seen |= 1 << uint(n-1)

		flags := classes[n]
		if flags&flagEven != 0 {
			s.Pares++
		}
		if flags&flagPrime != 0 {
			s.Primos++
		}
		if flags&flagMult3 != 0 {
			s.Mult3++
		}
		if flags&flagFibonacci != 0 {
			s.Fibonacci++
		}
		s.Soma += n
	}
	s.Impares = lottery.DrawSize - s.Pares
	s.Repetidas = seen.Overlap(reference)
	return s, nil
}

// HistoricalStats computes the statistics of every draw against its predecessor.
// The first draw has no predecessor and gets Repetidas 0.
func HistoricalStats(corpus lottery.Corpus) []stats.CandidateStats {
	out := make([]stats.CandidateStats, 0, corpus.Len())
	var prev lottery.Mask
	for i := 0; i < corpus.Len(); i++ {
		d := corpus.At(i)
		// corpus draws are validated on construction
		s, _ := CombinationStats(d.Numbers, prev)
		out = append(out, s)
		prev = d.Mask()
	}
	return out
}
