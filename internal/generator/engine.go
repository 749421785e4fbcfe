// Package generator implements the generate-and-filter loop: rejection
// sampling of 15-dezena combinations under a filter with a bounded attempt
// budget.
package generator

import (
	"context"
	"fmt"
	"sort"

	"lotogen/adapters/stats/engine"
	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/internal"
)

const (
	// DefaultMaxAttempts is the retry budget when a request leaves it unset
	DefaultMaxAttempts = 10000
	// DefaultCheckEvery is how many attempts pass between cancellation checks
	DefaultCheckEvery = 256

	reasonDuplicate = "duplicate"
)

// Source is the random source the engine draws from. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Request parameterizes one generation run
type Request struct {
	TargetCount int           `json:"target_count"`
	MaxAttempts int           `json:"max_attempts"`       // 0 means DefaultMaxAttempts
	Universe    []int         `json:"universe,omitempty"` // nil means all 25 dezenas
	Filter      filter.Config `json:"filter"`
	Reference   lottery.Draw  `json:"reference"` // repetidas is measured against it
	Deduplicate bool          `json:"deduplicate"`
	CheckEvery  int           `json:"check_every,omitempty"` // 0 means DefaultCheckEvery
}

// Result is the outcome of a run. Exhausted is set when the budget ran out
// before TargetCount candidates were accepted; it is not an error.
type Result struct {
	Accepted     []lottery.Candidate `json:"accepted"`
	AttemptsUsed int                 `json:"attempts_used"`
	Exhausted    bool                `json:"exhausted"`
	Cancelled    bool                `json:"cancelled,omitempty"`
	Rejections   map[string]int      `json:"rejections,omitempty"` // by first failing field, plus "duplicate"
}

// normalized fills defaults and validates the request
func (r Request) normalized() (Request, error) {
	if r.TargetCount <= 0 {
		return r, core.NewInvalidRequestError(fmt.Sprintf("target count must be positive, got %d", r.TargetCount))
	}
	if r.MaxAttempts < 0 {
		return r, core.NewInvalidRequestError(fmt.Sprintf("max attempts must not be negative, got %d", r.MaxAttempts))
	}
	if r.MaxAttempts == 0 {
		r.MaxAttempts = DefaultMaxAttempts
	}
	if r.CheckEvery <= 0 {
		r.CheckEvery = DefaultCheckEvery
	}
	if r.Universe == nil {
		r.Universe = AllNumbers()
	}
	if err := validateUniverse(r.Universe); err != nil {
		return r, err
	}
	if err := r.Filter.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// Engine runs the generate-and-filter loop
type Engine struct {
	logger *internal.Logger
}

// NewEngine creates an engine; a nil logger uses internal.DefaultLogger
func NewEngine(logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{logger: logger.With("Generator")}
}

// Generate samples candidates from the request universe until TargetCount pass
// the filter or MaxAttempts are spent. Identical requests and identically seeded
// sources produce identical results.
//
// Malformed requests fail before any sampling. When ctx is cancelled the partial
// result is returned together with ctx.Err().
func (e *Engine) Generate(ctx context.Context, req Request, src Source) (*Result, error) {
	req, err := req.normalized()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, core.NewInvalidRequestError("random source is required")
	}

	result, err := run(ctx, req, src, req.MaxAttempts)
	if result != nil {
		e.logger.Debug("accepted %d/%d in %d/%d attempts (exhausted=%t)",
			len(result.Accepted), req.TargetCount, result.AttemptsUsed, req.MaxAttempts, result.Exhausted)
	}
	return result, err
}

// run is the sampling loop over a budget of attempts
func run(ctx context.Context, req Request, src Source, budget int) (*Result, error) {
	result := &Result{
		Accepted:   make([]lottery.Candidate, 0, req.TargetCount),
		Rejections: make(map[string]int),
	}
	reference := req.Reference.Mask()
	pool := append([]int(nil), req.Universe...)
	var seen map[lottery.Combination]struct{}
	if req.Deduplicate {
		seen = make(map[lottery.Combination]struct{}, req.TargetCount)
	}

	for result.AttemptsUsed < budget && len(result.Accepted) < req.TargetCount {
		if result.AttemptsUsed%req.CheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				result.Cancelled = true
				result.Exhausted = false
				return result, err
			}
		}
		result.AttemptsUsed++

		candidate, err := sample(pool, src)
		if err != nil {
			return nil, err
		}
		s, err := engine.CombinationStats(candidate.Numbers, reference)
		if err != nil {
			return nil, err
		}
		if failed, ok := filter.Check(s, req.Filter); !ok {
			result.Rejections[failed.String()]++
			continue
		}
		if seen != nil {
			if _, dup := seen[candidate.Numbers]; dup {
				result.Rejections[reasonDuplicate]++
				continue
			}
			seen[candidate.Numbers] = struct{}{}
		}
		result.Accepted = append(result.Accepted, candidate)
	}

	result.Exhausted = len(result.Accepted) < req.TargetCount
	return result, nil
}

// sample draws 15 distinct dezenas uniformly without replacement using a
// partial Fisher-Yates shuffle of pool, then canonicalizes them
func sample(pool []int, src Source) (lottery.Candidate, error) {
	n := len(pool)
	for i := 0; i < lottery.DrawSize; i++ {
		j := i + src.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	picked := make([]int, lottery.DrawSize)
	copy(picked, pool[:lottery.DrawSize])
	sort.Ints(picked)
	return lottery.NewCandidate(picked)
}
