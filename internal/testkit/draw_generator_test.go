package testkit

import (
	"path/filepath"
	"testing"

	"lotogen/adapters/excel"
	"lotogen/domain/lottery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawGenerator_Basic(t *testing.T) {
	config := DefaultDrawConfig()
	config.Draws = 50

	draws, err := NewDrawGenerator(config).GenerateDraws()
	require.NoError(t, err)
	require.Len(t, draws, 50)

	for i, d := range draws {
		require.NoError(t, d.Validate(), "draw %d", i)
		assert.Equal(t, i+1, d.Contest)
	}
	assert.True(t, draws[1].Date.After(draws[0].Date))
}

func TestDrawGenerator_Deterministic(t *testing.T) {
	config := DefaultDrawConfig()
	config.Draws = 20

	a, err := NewDrawGenerator(config).GenerateCorpus()
	require.NoError(t, err)
	b, err := NewDrawGenerator(config).GenerateCorpus()
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	config.Seed = 43
	c, err := NewDrawGenerator(config).GenerateCorpus()
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestDrawGenerator_HotNumbers(t *testing.T) {
	config := DefaultDrawConfig()
	config.Draws = 300
	config.HotNumbers = []int{25}
	config.HotWeight = 50

	draws, err := NewDrawGenerator(config).GenerateDraws()
	require.NoError(t, err)

	hot := 0
	for _, d := range draws {
		if d.Contains(25) {
			hot++
		}
	}
	// Uniform sampling would include 25 in about 60% of draws
	assert.Greater(t, hot, 280)
}

func TestDrawGenerator_WriteToFile(t *testing.T) {
	config := DefaultDrawConfig()
	config.Draws = 10
	path := filepath.Join(t.TempDir(), "synthetic.xlsx")

	written, err := NewDrawGenerator(config).WriteToFile(path)
	require.NoError(t, err)

	read, err := excel.NewDataReader(path).ReadDraws()
	require.NoError(t, err)
	require.Len(t, read, len(written))
	for i := range written {
		assert.Equal(t, written[i].Numbers, read[i].Numbers)
	}
	assert.Equal(t, lottery.DrawSize, len(read[0].Numbers))
}
