package engine

import (
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

// ComputeDelay computes the current and maximum historical delay of each dezena.
//
// Current delay counts the most recent consecutive draws missing the dezena and
// equals the corpus length when it never appears. Maximum delay is the longest
// such run anywhere in the history, the current run included, so it also equals
// the corpus length for an absent dezena. An empty corpus yields zeros.
func ComputeDelay(corpus lottery.Corpus) stats.DelayTable {
	var table stats.DelayTable
	total := corpus.Len()

	// newest -> oldest for the current run
	for n := lottery.MinNumber; n <= lottery.MaxNumber; n++ {
		current := total
		for i := total - 1; i >= 0; i-- {
			if corpus.At(i).Contains(n) {
				current = total - 1 - i
				break
			}
		}
		table[n-1].Current = current
	}

	// oldest -> newest accumulating runs
	var run [lottery.UniverseSize]int
	for i := 0; i < total; i++ {
		mask := corpus.At(i).Mask()
		for n := lottery.MinNumber; n <= lottery.MaxNumber; n++ {
			if mask.Has(n) {
				run[n-1] = 0
				continue
			}
			run[n-1]++
			if run[n-1] > table[n-1].Max {
				table[n-1].Max = run[n-1]
			}
		}
	}
	return table
}

// NumberTable joins frequency and delay into per-dezena rows, ordered by dezena
func NumberTable(freq stats.FrequencyTable, delay stats.DelayTable) []stats.NumberStats {
	rows := make([]stats.NumberStats, lottery.UniverseSize)
	for i := range rows {
		rows[i] = stats.NumberStats{
			Number:       i + 1,
			Frequency:    freq[i],
			CurrentDelay: delay[i].Current,
			MaxDelay:     delay[i].Max,
		}
	}
	return rows
}
