package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lotogen/domain/stats"
)

func TestMatches(t *testing.T) {
	inside := stats.CandidateStats{Pares: 7, Impares: 8, Primos: 5, Mult3: 5, Fibonacci: 4, Soma: 195, Repetidas: 9}

	tests := []struct {
		name   string
		mutate func(s *stats.CandidateStats)
		want   bool
		failed stats.Field
	}{
		{"all inside", func(s *stats.CandidateStats) {}, true, 0},
		{"lower bound inclusive", func(s *stats.CandidateStats) { s.Soma = 165 }, true, 0},
		{"upper bound inclusive", func(s *stats.CandidateStats) { s.Soma = 224 }, true, 0},
		{"too many pares", func(s *stats.CandidateStats) { s.Pares = 10 }, false, stats.FieldPares},
		{"too few primos", func(s *stats.CandidateStats) { s.Primos = 3 }, false, stats.FieldPrimos},
		{"soma too high", func(s *stats.CandidateStats) { s.Soma = 225 }, false, stats.FieldSoma},
		{"repetidas 15", func(s *stats.CandidateStats) { s.Repetidas = 15 }, false, stats.FieldRepetidas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := inside
			tt.mutate(&s)
			assert.Equal(t, tt.want, Matches(s, DefaultConfig()))
			assert.Equal(t, Matches(s, DefaultConfig()), Matches(s, DefaultConfig()))
			failed, ok := Check(s, DefaultConfig())
			assert.Equal(t, tt.want, ok)
			if !tt.want {
				assert.Equal(t, tt.failed, failed)
			}
		})
	}
}

func TestCheckReportsFirstFailingField(t *testing.T) {
	s := stats.CandidateStats{Pares: 12, Impares: 3, Primos: 0, Mult3: 0, Fibonacci: 0, Soma: 100, Repetidas: 0}
	failed, ok := Check(s, DefaultConfig())
	assert.False(t, ok)
	assert.Equal(t, stats.FieldPares, failed)
	assert.True(t, Matches(s, Open()))
}
