// Package engine computes the per-number tables and per-combination statistics
// of a corpus. All functions are read-only over the corpus and safe for
// concurrent use.
package engine

import (
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

// ComputeFrequency counts how many draws contain each dezena.
// An empty corpus yields all zeros.
func ComputeFrequency(corpus lottery.Corpus) stats.FrequencyTable {
	var freq stats.FrequencyTable
	for i := 0; i < corpus.Len(); i++ {
		for _, n := range corpus.At(i).Numbers {
			freq[n-1]++
		}
	}
	return freq
}
