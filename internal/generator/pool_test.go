package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

func TestAllNumbers(t *testing.T) {
	all := AllNumbers()
	require.Len(t, all, 25)
	assert.Equal(t, 1, all[0])
	assert.Equal(t, 25, all[24])
}

func TestTopByFrequency(t *testing.T) {
	var freq stats.FrequencyTable
	for n := 1; n <= 25; n++ {
		freq[n-1] = n // 25 is the most frequent
	}
	top, err := TopByFrequency(freq, 20)
	require.NoError(t, err)
	assert.Equal(t, seq(6, 25), top)

	_, err = TopByFrequency(freq, 14)
	assert.True(t, errors.Is(err, core.ErrInvalidRequest))
	_, err = TopByFrequency(freq, 26)
	assert.True(t, errors.Is(err, core.ErrInvalidRequest))
}

func TestTopByScoreTiesPreferSmallerNumbers(t *testing.T) {
	var scores [lottery.UniverseSize]float64
	// all equal: the smallest 15 win
	top, err := TopByScore(scores, 15)
	require.NoError(t, err)
	assert.Equal(t, seq(1, 15), top)

	scores[24] = 1.0
	top, err = TopByScore(scores, 15)
	require.NoError(t, err)
	assert.Equal(t, append(seq(1, 14), 25), top)
}
