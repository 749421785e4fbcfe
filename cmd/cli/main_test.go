package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeFlags(t *testing.T) {
	got, err := parseRangeFlags([]string{"soma=170:220", "pares=7", " primos = 4 : 6 "})
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{
		"soma":   {170, 220},
		"pares":  {7, 7},
		"primos": {4, 6},
	}, got)

	for _, bad := range []string{"soma", "soma=a:2", "soma=1:b"} {
		_, err := parseRangeFlags([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestJoinNumbers(t *testing.T) {
	assert.Equal(t, "01 09 25", joinNumbers([]int{1, 9, 25}))
}
