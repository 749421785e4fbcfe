package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotogen/domain/core"
	"lotogen/domain/stats"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, Open().Validate())
	assert.Equal(t, Range{Min: 165, Max: 224}, DefaultConfig().Soma)
}

func TestNewConfigRejectsInvertedRange(t *testing.T) {
	_, err := NewConfig(DefaultConfig(), map[stats.Field]Range{stats.FieldPrimos: {Min: 7, Max: 4}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidFilterConfig))
	assert.Contains(t, err.Error(), "primos")
}

func TestNewConfigAppliesOverrides(t *testing.T) {
	cfg, err := NewConfig(DefaultConfig(), map[stats.Field]Range{
		stats.FieldPares: {Min: 5, Max: 10},
		stats.FieldSoma:  {Min: 150, Max: 240},
	})
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 5, Max: 10}, cfg.Pares)
	assert.Equal(t, Range{Min: 150, Max: 240}, cfg.Soma)
	assert.Equal(t, DefaultConfig().Repetidas, cfg.Repetidas)
	// the base is a value and stays untouched
	assert.Equal(t, Range{Min: 6, Max: 9}, DefaultConfig().Pares)
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides(map[string][]int{"Pares": {5, 10}, "repetidas": {7, 12}})
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 5, Max: 10}, got[stats.FieldPares])
	assert.Equal(t, Range{Min: 7, Max: 12}, got[stats.FieldRepetidas])

	_, err = ParseOverrides(map[string][]int{"moldura": {1, 2}})
	assert.True(t, errors.Is(err, core.ErrInvalidFilterConfig))

	_, err = ParseOverrides(map[string][]int{"soma": {1}})
	assert.True(t, errors.Is(err, core.ErrInvalidFilterConfig))
}

func TestRangeWiden(t *testing.T) {
	assert.Equal(t, Range{Min: 4, Max: 11}, Range{Min: 6, Max: 9}.Widen(2))
}
