// Package lottery holds the immutable value types of the 15-of-25 game:
// draws, corpora of draws and candidate combinations.
package lottery

import (
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"
	"time"

	"lotogen/domain/core"
)

const (
	// MinNumber and MaxNumber bound a dezena
	MinNumber = 1
	MaxNumber = 25
	// UniverseSize is the count of dezenas on the card
	UniverseSize = MaxNumber - MinNumber + 1
	// DrawSize is the count of dezenas in a draw or a playable game
	DrawSize = 15
)

// Mask is a presence bitset over the universe; bit n-1 is set when n is present
type Mask uint32

// Has reports whether n is present
func (m Mask) Has(n int) bool {
	if n < MinNumber || n > MaxNumber {
		return false
	}
	return m&(1<<uint(n-1)) != 0
}

// Count returns the number of members
func (m Mask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Overlap returns the size of the intersection of two masks
func (m Mask) Overlap(other Mask) int {
	return bits.OnesCount32(uint32(m & other))
}

// Combination is 15 distinct dezenas sorted ascending
type Combination [DrawSize]int

// Numbers returns a copy of the members as a slice
func (c Combination) Numbers() []int {
	out := make([]int, DrawSize)
	copy(out, c[:])
	return out
}

// Mask returns the presence bitset of the combination
func (c Combination) Mask() Mask {
	var m Mask
	for _, n := range c {
		m |= 1 << uint(n-1)
	}
	return m
}

// Sum returns the sum of the members
func (c Combination) Sum() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Key is the canonical string form used for deduplication ("01-02-...-25")
func (c Combination) Key() string {
	var b strings.Builder
	for i, n := range c {
		if i > 0 {
			b.WriteByte('-')
		}
		if n < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// String implements fmt.Stringer
func (c Combination) String() string {
	return c.Key()
}

// Vector encodes the combination as a 25-slot presence vector for model features
func (c Combination) Vector() [UniverseSize]uint8 {
	var v [UniverseSize]uint8
	for _, n := range c {
		v[n-1] = 1
	}
	return v
}

// canonicalize validates numbers and returns them sorted as a Combination.
// It returns a plain reason so callers can attach their own sentinel.
func canonicalize(numbers []int) (Combination, string) {
	var c Combination
	if len(numbers) != DrawSize {
		return c, fmt.Sprintf("expected %d numbers, got %d", DrawSize, len(numbers))
	}
	var seen Mask
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return c, fmt.Sprintf("number %d out of range [%d,%d]", n, MinNumber, MaxNumber)
		}
		if seen.Has(n) {
			return c, fmt.Sprintf("duplicate number %d", n)
		}
		seen |= 1 << uint(n-1)
	}
	copy(c[:], numbers)
	sort.Ints(c[:])
	return c, ""
}

// Draw is one historical result. Immutable once recorded.
type Draw struct {
	Contest int         `json:"contest,omitempty" db:"contest"`
	Date    time.Time   `json:"date,omitempty" db:"drawn_at"`
	Numbers Combination `json:"numbers"`
	mask    Mask
}

// NewDraw validates and canonicalizes the numbers of a result
func NewDraw(contest int, date time.Time, numbers []int) (Draw, error) {
	c, reason := canonicalize(numbers)
	if reason != "" {
		if contest > 0 {
			reason = fmt.Sprintf("contest %d: %s", contest, reason)
		}
		return Draw{}, core.NewInvalidDrawError(reason)
	}
	return Draw{Contest: contest, Date: date, Numbers: c, mask: c.Mask()}, nil
}

// MustDraw is NewDraw for fixtures; it panics on invalid numbers
func MustDraw(numbers ...int) Draw {
	d, err := NewDraw(0, time.Time{}, numbers)
	if err != nil {
		panic(err)
	}
	return d
}

// Mask returns the presence bitset of the draw
func (d Draw) Mask() Mask {
	if d.mask == 0 {
		return d.Numbers.Mask()
	}
	return d.mask
}

// Contains reports whether n was drawn
func (d Draw) Contains(n int) bool {
	return d.Mask().Has(n)
}

// Vector encodes the draw as a 25-slot presence vector
func (d Draw) Vector() [UniverseSize]uint8 {
	return d.Numbers.Vector()
}

// Validate re-checks the draw invariants; zero-value draws fail
func (d Draw) Validate() error {
	if _, reason := canonicalize(d.Numbers[:]); reason != "" {
		return core.NewInvalidDrawError(reason)
	}
	return nil
}

// Candidate is one generated game. It exists only during generation and ranking.
type Candidate struct {
	Numbers Combination `json:"numbers"`
}

// NewCandidate validates and canonicalizes a sampled combination
func NewCandidate(numbers []int) (Candidate, error) {
	c, reason := canonicalize(numbers)
	if reason != "" {
		return Candidate{}, core.NewInvalidCandidateError(reason)
	}
	return Candidate{Numbers: c}, nil
}

// MustCandidate is NewCandidate for fixtures; it panics on invalid numbers
func MustCandidate(numbers ...int) Candidate {
	c, err := NewCandidate(numbers)
	if err != nil {
		panic(err)
	}
	return c
}

// Key is the canonical dedup key of the candidate
func (c Candidate) Key() string {
	return c.Numbers.Key()
}

// String implements fmt.Stringer
func (c Candidate) String() string {
	return c.Numbers.Key()
}
