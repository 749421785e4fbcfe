package lottery

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotogen/domain/core"
)

func TestCorpusFromNumbers(t *testing.T) {
	c, err := CorpusFromNumbers([][]int{seq(1, 15), seq(11, 25)})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, 11, last.Numbers[0])
}

func TestCorpusRejectsBadDraw(t *testing.T) {
	_, err := CorpusFromNumbers([][]int{seq(1, 15), seq(1, 14)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidCorpus))
	assert.Contains(t, err.Error(), "draw 1")

	_, err = NewCorpus([]Draw{{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidCorpus))
}

func TestCorpusAppendIsCopyOnWrite(t *testing.T) {
	base, err := CorpusFromNumbers([][]int{seq(1, 15)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = base.Rows()
		}()
	}
	next, err := base.Append(MustDraw(seq(11, 25)...))
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, next.Len())
	assert.NotEqual(t, base.Fingerprint(), next.Fingerprint())
}

func TestCorpusWindow(t *testing.T) {
	c, err := CorpusFromNumbers([][]int{seq(1, 15), seq(2, 16), seq(3, 17)})
	require.NoError(t, err)

	w := c.Window(2)
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, 2, w.At(0).Numbers[0])
	assert.Equal(t, 3, c.Window(0).Len())
	assert.Equal(t, 3, c.Window(10).Len())
}

func TestEmptyCorpus(t *testing.T) {
	c, err := NewCorpus(nil)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	_, ok := c.Last()
	assert.False(t, ok)
}

func TestMergeHistory(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d1, _ := NewDraw(10, day, seq(1, 15))
	d2, _ := NewDraw(11, day.AddDate(0, 0, 1), seq(2, 16))
	d3, _ := NewDraw(12, day.AddDate(0, 0, 2), seq(3, 17))

	merged, err := MergeHistory([]Draw{d2, d1}, []Draw{d3, d2})
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, 10, merged[0].Contest)
	assert.Equal(t, 12, merged[2].Contest)

	conflict, _ := NewDraw(11, day, seq(5, 19))
	_, err = MergeHistory([]Draw{d2}, []Draw{conflict})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidDraw))

	_, err = MergeHistory(nil, []Draw{MustDraw(seq(1, 15)...)})
	assert.Error(t, err)
}
