package filter

import "lotogen/domain/stats"

// Matches reports whether every statistic lies within its configured bound
func Matches(s stats.CandidateStats, c Config) bool {
	_, ok := Check(s, c)
	return ok
}

// Check returns the first field, in evaluation order, that falls outside its bound.
// ok is true when none does.
func Check(s stats.CandidateStats, c Config) (failed stats.Field, ok bool) {
	for _, f := range stats.Fields {
		if !c.Range(f).Contains(s.Value(f)) {
			return f, false
		}
	}
	return 0, true
}
