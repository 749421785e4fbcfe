package stats

import (
	"sort"

	"lotogen/domain/lottery"
)

// ============================================================================
// PER-NUMBER TABLES (computed from a corpus)
// ============================================================================

// FrequencyTable counts appearances of each dezena; index 0 holds dezena 1.
// INVARIANT: Total() == 15 * corpus length
type FrequencyTable [lottery.UniverseSize]int

// Of returns the count for dezena n (0 outside the universe)
func (f FrequencyTable) Of(n int) int {
	if n < lottery.MinNumber || n > lottery.MaxNumber {
		return 0
	}
	return f[n-1]
}

// Total returns the sum of all counts
func (f FrequencyTable) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// NumberCount pairs a dezena with a count or score
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// Ranked returns the dezenas by descending count; ties go to the smaller dezena
func (f FrequencyTable) Ranked() []NumberCount {
	out := make([]NumberCount, lottery.UniverseSize)
	for i, c := range f {
		out[i] = NumberCount{Number: i + 1, Count: c}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// DelayEntry is the atraso of one dezena
type DelayEntry struct {
	Current int `json:"current"` // consecutive most-recent draws without the dezena
	Max     int `json:"max"`     // longest such run anywhere in the history
}

// DelayTable holds the atraso of each dezena; index 0 holds dezena 1
type DelayTable [lottery.UniverseSize]DelayEntry

// Of returns the delay entry for dezena n
func (d DelayTable) Of(n int) DelayEntry {
	if n < lottery.MinNumber || n > lottery.MaxNumber {
		return DelayEntry{}
	}
	return d[n-1]
}

// NumberStats is one row of the per-dezena report
type NumberStats struct {
	Number       int `json:"number"`
	Frequency    int `json:"frequency"`
	CurrentDelay int `json:"current_delay"`
	MaxDelay     int `json:"max_delay"`
}

// ============================================================================
// PER-COMBINATION STATISTICS
// ============================================================================

// CandidateStats are the seven descriptive statistics of one combination.
// INVARIANT: Pares + Impares == 15
type CandidateStats struct {
	Pares     int `json:"pares"`
	Impares   int `json:"impares"`
	Primos    int `json:"primos"`
	Mult3     int `json:"mult3"`
	Fibonacci int `json:"fibonacci"`
	Soma      int `json:"soma"`
	Repetidas int `json:"repetidas"` // overlap with the reference draw
}

// Field names one of the seven statistics
type Field int

const (
	FieldPares Field = iota
	FieldImpares
	FieldPrimos
	FieldMult3
	FieldFibonacci
	FieldSoma
	FieldRepetidas
)

// Fields lists the statistics in evaluation order
var Fields = []Field{FieldPares, FieldImpares, FieldPrimos, FieldMult3, FieldFibonacci, FieldSoma, FieldRepetidas}

var fieldNames = [...]string{"pares", "impares", "primos", "mult3", "fibonacci", "soma", "repetidas"}

// String returns the configuration key of the field
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField maps a configuration key back to its field
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Value returns the statistic selected by f
func (s CandidateStats) Value(f Field) int {
	switch f {
	case FieldPares:
		return s.Pares
	case FieldImpares:
		return s.Impares
	case FieldPrimos:
		return s.Primos
	case FieldMult3:
		return s.Mult3
	case FieldFibonacci:
		return s.Fibonacci
	case FieldSoma:
		return s.Soma
	case FieldRepetidas:
		return s.Repetidas
	}
	return 0
}

// ============================================================================
// CORPUS SUMMARY
// ============================================================================

// Distribution summarizes one statistic over the historical draws
type Distribution struct {
	Field  string  `json:"field"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
}

// Uniformity is a chi-square goodness-of-fit of the frequencies against a uniform draw
type Uniformity struct {
	ChiSquare        float64 `json:"chi_square"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
}

// CorpusSummary is the reporting view of a corpus
type CorpusSummary struct {
	Draws            int            `json:"draws"`
	LastContest      int            `json:"last_contest,omitempty"`
	Numbers          []NumberStats  `json:"numbers"`
	Distributions    []Distribution `json:"distributions,omitempty"`
	Uniformity       *Uniformity    `json:"uniformity,omitempty"`
	CombinationSpace int            `json:"combination_space"` // C(25,15)
}
