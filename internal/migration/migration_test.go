package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSteps_OrderAndIdempotence(t *testing.T) {
	steps := NewRunner().Steps()

	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
		sql := strings.ToUpper(s.SQL)
		assert.True(t,
			strings.Contains(sql, "IF NOT EXISTS"),
			"step %q must be safe to re-run", s.Name)
	}

	// Games reference runs, so runs come first
	assert.Less(t, indexOf(names, "generation_runs table"), indexOf(names, "generated_games table"))
	assert.Equal(t, "indexes", names[len(names)-1])
	assert.Equal(t, "1.0.0", NewRunner().Version())
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
