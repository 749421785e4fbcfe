package lottery

import (
	"sort"
	"strconv"
	"time"

	"lotogen/domain/core"
)

// Corpus is a chronological, read-only sequence of draws (oldest first).
// Extending a corpus returns a new value; existing snapshots never change,
// so a Corpus can be scanned concurrently.
type Corpus struct {
	draws []Draw
}

// NewCorpus validates every draw and returns a corpus that owns a copy of them
func NewCorpus(draws []Draw) (Corpus, error) {
	owned := make([]Draw, len(draws))
	for i, d := range draws {
		if err := d.Validate(); err != nil {
			return Corpus{}, core.NewInvalidCorpusError(i, err)
		}
		d.mask = d.Numbers.Mask()
		owned[i] = d
	}
	return Corpus{draws: owned}, nil
}

// CorpusFromNumbers builds a corpus from raw rows of numbers, oldest first
func CorpusFromNumbers(rows [][]int) (Corpus, error) {
	draws := make([]Draw, len(rows))
	for i, row := range rows {
		d, err := NewDraw(0, time.Time{}, row)
		if err != nil {
			return Corpus{}, core.NewInvalidCorpusError(i, err)
		}
		draws[i] = d
	}
	return Corpus{draws: draws}, nil
}

// Len returns the number of draws
func (c Corpus) Len() int {
	return len(c.draws)
}

// IsEmpty reports whether the corpus has no draws
func (c Corpus) IsEmpty() bool {
	return len(c.draws) == 0
}

// At returns the i-th draw in chronological order
func (c Corpus) At(i int) Draw {
	return c.draws[i]
}

// Last returns the most recent draw
func (c Corpus) Last() (Draw, bool) {
	if len(c.draws) == 0 {
		return Draw{}, false
	}
	return c.draws[len(c.draws)-1], true
}

// Draws returns a copy of the draws, oldest first
func (c Corpus) Draws() []Draw {
	out := make([]Draw, len(c.draws))
	copy(out, c.draws)
	return out
}

// Rows returns the numbers of every draw, oldest first
func (c Corpus) Rows() [][]int {
	rows := make([][]int, len(c.draws))
	for i, d := range c.draws {
		rows[i] = d.Numbers.Numbers()
	}
	return rows
}

// Fingerprint identifies the corpus contents
func (c Corpus) Fingerprint() core.Hash {
	return core.HashRows(c.Rows())
}

// Append returns a new corpus extended with draws; c is left untouched
func (c Corpus) Append(draws ...Draw) (Corpus, error) {
	next := make([]Draw, len(c.draws), len(c.draws)+len(draws))
	copy(next, c.draws)
	for i, d := range draws {
		if err := d.Validate(); err != nil {
			return Corpus{}, core.NewInvalidCorpusError(len(c.draws)+i, err)
		}
		d.mask = d.Numbers.Mask()
		next = append(next, d)
	}
	return Corpus{draws: next}, nil
}

// Window returns a corpus of the n most recent draws (all of them when n <= 0 or n > Len)
func (c Corpus) Window(n int) Corpus {
	if n <= 0 || n >= len(c.draws) {
		return c
	}
	return Corpus{draws: c.draws[len(c.draws)-n:]}
}

// MergeHistory adds newly published draws to a history keyed by contest number.
// Exact repeats are dropped, the result is sorted by contest, and a contest that
// appears with two different results is rejected.
func MergeHistory(history, incoming []Draw) ([]Draw, error) {
	byContest := make(map[int]Draw, len(history)+len(incoming))
	add := func(d Draw) error {
		if d.Contest <= 0 {
			return core.NewInvalidDrawError("history entries need a contest number")
		}
		if err := d.Validate(); err != nil {
			return err
		}
		if prev, ok := byContest[d.Contest]; ok {
			if prev.Numbers != d.Numbers {
				return core.NewInvalidDrawError("conflicting results for contest " + strconv.Itoa(d.Contest))
			}
			return nil
		}
		d.mask = d.Numbers.Mask()
		byContest[d.Contest] = d
		return nil
	}
	for _, d := range history {
		if err := add(d); err != nil {
			return nil, err
		}
	}
	for _, d := range incoming {
		if err := add(d); err != nil {
			return nil, err
		}
	}

	merged := make([]Draw, 0, len(byContest))
	for _, d := range byContest {
		merged = append(merged, d)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Contest < merged[j].Contest })
	return merged, nil
}
