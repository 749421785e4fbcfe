package testkit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"lotogen/adapters/rng"
	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/domain/run"
	"lotogen/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	runs *InMemoryRunRepository // Shared run store
	rng  *rng.SeededAdapter
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{
		runs: NewInMemoryRunRepository(),
		rng:  rng.NewSeededAdapter(),
	}
}

// RNGAdapter returns an RNG adapter
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return t.rng
}

// RunRepository returns the shared in-memory run repository
func (t *TestKit) RunRepository() *InMemoryRunRepository {
	return t.runs
}

// SyntheticCorpus generates a reproducible corpus of n draws
func (t *TestKit) SyntheticCorpus(n int, seed int64) (lottery.Corpus, error) {
	config := DefaultDrawConfig()
	config.Draws = n
	config.Seed = seed
	return NewDrawGenerator(config).GenerateCorpus()
}

// StaticCorpusLoader implements CorpusLoader over a fixed corpus
type StaticCorpusLoader struct {
	Corpus lottery.Corpus
	Err    error
	Calls  int
}

// LoadCorpus returns the fixed corpus or the configured error
func (s *StaticCorpusLoader) LoadCorpus(ctx context.Context) (lottery.Corpus, error) {
	s.Calls++
	if err := ctx.Err(); err != nil {
		return lottery.Corpus{}, err
	}
	return s.Corpus, s.Err
}

// InMemoryRunRepository implements RunRepository with in-memory storage
type InMemoryRunRepository struct {
	runs map[core.RunID]run.Run
	mu   sync.RWMutex
}

func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{runs: make(map[core.RunID]run.Run)}
}

func (s *InMemoryRunRepository) SaveRun(ctx context.Context, r *run.Run) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("run needs an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[r.ID]; exists {
		return fmt.Errorf("run %s already stored", r.ID)
	}
	s.runs[r.ID] = cloneRun(*r)
	return nil
}

func (s *InMemoryRunRepository) GetRun(ctx context.Context, id core.RunID) (*run.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	out := cloneRun(r)
	return &out, nil
}

func (s *InMemoryRunRepository) ListRuns(ctx context.Context, limit int) ([]run.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]run.Summary, 0, len(s.runs))
	for _, r := range s.runs {
		summaries = append(summaries, run.Summary{
			ID:           r.ID,
			CreatedAt:    r.CreatedAt,
			CorpusHash:   r.Fingerprint.CorpusHash.String(),
			Seed:         r.Fingerprint.Seed,
			TargetCount:  r.TargetCount,
			GameCount:    len(r.Games),
			AttemptsUsed: r.AttemptsUsed,
			Exhausted:    r.Exhausted,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Count returns the number of stored runs
func (s *InMemoryRunRepository) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

func cloneRun(r run.Run) run.Run {
	r.Reference = append([]int(nil), r.Reference...)
	r.Fingerprint.Universe = append([]int(nil), r.Fingerprint.Universe...)
	games := make([]run.Game, len(r.Games))
	for i, g := range r.Games {
		if g.Score != nil {
			score := *g.Score
			g.Score = &score
		}
		games[i] = g
	}
	r.Games = games
	return r
}

var (
	_ ports.RunRepository = (*InMemoryRunRepository)(nil)
	_ ports.CorpusLoader  = (*StaticCorpusLoader)(nil)
)
