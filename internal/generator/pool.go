package generator

import (
	"fmt"
	"sort"

	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

// AllNumbers returns the full 25-dezena universe in ascending order
func AllNumbers() []int {
	out := make([]int, lottery.UniverseSize)
	for i := range out {
		out[i] = i + lottery.MinNumber
	}
	return out
}

// TopByFrequency returns the k most frequent dezenas, ascending.
// Ties go to the smaller dezena.
func TopByFrequency(freq stats.FrequencyTable, k int) ([]int, error) {
	if err := checkPoolSize(k); err != nil {
		return nil, err
	}
	ranked := freq.Ranked()
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].Number
	}
	sort.Ints(out)
	return out, nil
}

// TopByScore returns the k best-scored dezenas, ascending. scores[0] is dezena 1.
// Ties go to the smaller dezena.
func TopByScore(scores [lottery.UniverseSize]float64, k int) ([]int, error) {
	if err := checkPoolSize(k); err != nil {
		return nil, err
	}
	idx := AllNumbers()
	sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]-1] > scores[idx[j]-1] })
	out := append([]int(nil), idx[:k]...)
	sort.Ints(out)
	return out, nil
}

func checkPoolSize(k int) error {
	if k < lottery.DrawSize || k > lottery.UniverseSize {
		return core.NewInvalidRequestError(fmt.Sprintf("pool size %d outside [%d,%d]", k, lottery.DrawSize, lottery.UniverseSize))
	}
	return nil
}

// validateUniverse checks the pool has at least 15 distinct in-range dezenas
func validateUniverse(universe []int) error {
	if len(universe) < lottery.DrawSize {
		return core.NewInvalidRequestError(fmt.Sprintf("universe has %d numbers, need at least %d", len(universe), lottery.DrawSize))
	}
	var seen lottery.Mask
	for _, n := range universe {
		if n < lottery.MinNumber || n > lottery.MaxNumber {
			return core.NewInvalidRequestError(fmt.Sprintf("universe number %d out of range", n))
		}
		if seen.Has(n) {
			return core.NewInvalidRequestError(fmt.Sprintf("universe number %d repeated", n))
		}
		seen |= 1 << uint(n-1)
	}
	return nil
}
