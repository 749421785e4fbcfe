package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"lotogen/adapters/stats/engine"
	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/domain/run"
	"lotogen/domain/stats"
	"lotogen/internal"
	"lotogen/internal/errors"
	"lotogen/internal/generator"
	"lotogen/internal/ranker"
	"lotogen/ports"
)

// Pool strategies for restricted sampling universes
const (
	PoolByFrequency = "frequency"
	PoolByScore     = "score"
)

// GenerationService orchestrates corpus loading, statistics, generation,
// ranking and persistence of a run
type GenerationService struct {
	corpus ports.CorpusLoader
	runs   ports.RunRepository
	rng    ports.RNGPort
	engine *generator.Engine
	logger *internal.Logger
}

// GenerateRequest defines the inputs of one generation run
type GenerateRequest struct {
	TargetCount  int            `json:"target_count"`
	MaxAttempts  int            `json:"max_attempts"`
	Workers      int            `json:"workers"`
	Seed         int64          `json:"seed"`
	Filter       *filter.Config `json:"filter,omitempty"` // nil means filter.DefaultConfig
	PoolSize     int            `json:"pool_size"`        // 0 or 25 samples from every dezena
	PoolStrategy string         `json:"pool_strategy"`    // frequency (default) or score
	Window       int            `json:"window"`           // most recent draws considered, 0 = all
	Deduplicate  bool           `json:"deduplicate"`
	Rank         bool           `json:"rank"` // order games by the stats scorer
	Keep         int            `json:"keep"` // games kept after ranking, 0 = all
	CheckEvery   int            `json:"check_every,omitempty"`
	Persist      bool           `json:"persist"`
}

// ScoredGame is an accepted candidate with its statistics and final rank
type ScoredGame struct {
	Candidate lottery.Candidate    `json:"candidate"`
	Stats     stats.CandidateStats `json:"stats"`
	Score     float64              `json:"score"`
	HasScore  bool                 `json:"has_score"`
	Rank      int                  `json:"rank"` // 1-based
}

// GenerateResult contains the complete output of a generation run
type GenerateResult struct {
	RunID        core.RunID         `json:"run_id"`
	Games        []ScoredGame       `json:"games"`
	AttemptsUsed int                `json:"attempts_used"`
	Exhausted    bool               `json:"exhausted"`
	Cancelled    bool               `json:"cancelled,omitempty"`
	Rejections   map[string]int     `json:"rejections"`
	Universe     []int              `json:"universe"`
	CorpusDraws  int                `json:"corpus_draws"`
	Fingerprint  run.RunFingerprint `json:"fingerprint"`
	Persisted    bool               `json:"persisted"`
	RuntimeMs    int64              `json:"runtime_ms"`
	Run          *run.Run           `json:"-"`
}

// NewGenerationService creates a generation service. runs may be nil when
// persistence is not configured; a nil logger uses internal.DefaultLogger.
func NewGenerationService(corpus ports.CorpusLoader, runs ports.RunRepository, rng ports.RNGPort, logger *internal.Logger) *GenerationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &GenerationService{
		corpus: corpus,
		runs:   runs,
		rng:    rng,
		engine: generator.NewEngine(logger),
		logger: logger.With("GenerationService"),
	}
}

// Generate runs the full pipeline. When ctx is cancelled mid-generation the
// partial result is returned along with the context error and nothing is stored.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	startTime := time.Now()

	cfg := filter.DefaultConfig()
	if req.Filter != nil {
		cfg = *req.Filter
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if req.Persist && s.runs == nil {
		return nil, core.NewInvalidRequestError("persistence requested but no run repository is configured")
	}

	corpus, err := s.loadCorpus(ctx, req.Window)
	if err != nil {
		return nil, err
	}
	if corpus.IsEmpty() {
		s.logger.Warn("Generating without history: repetidas is 0 for every candidate")
	}

	freq := engine.ComputeFrequency(corpus)
	delay := engine.ComputeDelay(corpus)
	scorer := ranker.NewStatsScorer(freq, delay)

	universe, err := buildUniverse(req, freq, scorer)
	if err != nil {
		return nil, err
	}
	reference, _ := corpus.Last()

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	genReq := generator.Request{
		TargetCount: req.TargetCount,
		MaxAttempts: req.MaxAttempts,
		Universe:    universe,
		Filter:      cfg,
		Reference:   reference,
		Deduplicate: req.Deduplicate,
		CheckEvery:  req.CheckEvery,
	}

	var result *generator.Result
	if workers == 1 {
		src, err := s.rng.SeededStream(ctx, "", req.Seed)
		if err != nil {
			return nil, err
		}
		result, err = s.engine.Generate(ctx, genReq, src)
		if result == nil {
			return nil, err
		}
		if err != nil {
			return s.partial(result, universe, corpus, startTime), err
		}
	} else {
		sources := make([]generator.Source, workers)
		for w := range sources {
			src, err := s.rng.WorkerStream(ctx, w, req.Seed)
			if err != nil {
				return nil, err
			}
			sources[w] = src
		}
		result, err = s.engine.GenerateParallel(ctx, genReq, workers, func(w int) generator.Source { return sources[w] })
		if result == nil {
			return nil, err
		}
		if err != nil {
			return s.partial(result, universe, corpus, startTime), err
		}
	}

	var score ranker.ScoreFunc
	if req.Rank {
		score = scorer.Func()
	}
	games, err := scoreGames(ranker.RankScored(result.Accepted, score, req.Keep), reference)
	if err != nil {
		return nil, err
	}

	fp := run.NewRunFingerprint(corpus.Fingerprint(), cfg, universe, req.Seed, workers)
	out := &GenerateResult{
		RunID:        core.NewRunID(),
		Games:        games,
		AttemptsUsed: result.AttemptsUsed,
		Exhausted:    result.Exhausted,
		Rejections:   result.Rejections,
		Universe:     universe,
		CorpusDraws:  corpus.Len(),
		Fingerprint:  fp,
	}
	out.Run = buildRun(out, cfg, reference, req)

	if result.Exhausted {
		s.logger.Warn("Budget exhausted: accepted %d/%d in %d attempts (rejections: %s)",
			len(result.Accepted), req.TargetCount, result.AttemptsUsed, formatRejections(result.Rejections))
	}

	if req.Persist {
		if err := s.runs.SaveRun(ctx, out.Run); err != nil {
			return nil, fmt.Errorf("failed to save run %s: %w", out.RunID, err)
		}
		out.Persisted = true
	}

	out.RuntimeMs = time.Since(startTime).Milliseconds()
	s.logger.Info("Run %s: %d games from %d draws in %d attempts (%dms)",
		out.RunID, len(out.Games), out.CorpusDraws, out.AttemptsUsed, out.RuntimeMs)
	return out, nil
}

// GetRun loads a stored run
func (s *GenerationService) GetRun(ctx context.Context, id core.RunID) (*run.Run, error) {
	if s.runs == nil {
		return nil, errors.NotFound("run " + id.String())
	}
	r, err := s.runs.GetRun(ctx, id)
	if stderrors.Is(err, core.ErrNotFound) {
		return nil, errors.NotFound("run " + id.String())
	}
	return r, err
}

// ListRuns lists stored runs, newest first
func (s *GenerationService) ListRuns(ctx context.Context, limit int) ([]run.Summary, error) {
	if s.runs == nil {
		return []run.Summary{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

// EvaluateRun counts the hits of every stored game against an actual result
func (s *GenerationService) EvaluateRun(ctx context.Context, id core.RunID, result lottery.Draw) ([]int, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}
	r, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	games := make([]lottery.Candidate, len(r.Games))
	for i, g := range r.Games {
		games[i] = lottery.Candidate{Numbers: g.Numbers}
	}
	return ranker.EvaluateHits(games, result), nil
}

func (s *GenerationService) loadCorpus(ctx context.Context, window int) (lottery.Corpus, error) {
	if s.corpus == nil {
		return lottery.Corpus{}, nil
	}
	corpus, err := s.corpus.LoadCorpus(ctx)
	if err != nil {
		return lottery.Corpus{}, fmt.Errorf("failed to load corpus: %w", err)
	}
	if window > 0 {
		corpus = corpus.Window(window)
	}
	return corpus, nil
}

// partial wraps an interrupted generation without ranking or persistence
func (s *GenerationService) partial(result *generator.Result, universe []int, corpus lottery.Corpus, startTime time.Time) *GenerateResult {
	games := make([]ScoredGame, len(result.Accepted))
	for i, c := range result.Accepted {
		games[i] = ScoredGame{Candidate: c, Rank: i + 1}
	}
	s.logger.Warn("Generation interrupted after %d attempts with %d games", result.AttemptsUsed, len(games))
	return &GenerateResult{
		Games:        games,
		AttemptsUsed: result.AttemptsUsed,
		Cancelled:    true,
		Rejections:   result.Rejections,
		Universe:     universe,
		CorpusDraws:  corpus.Len(),
		RuntimeMs:    time.Since(startTime).Milliseconds(),
	}
}

func buildUniverse(req GenerateRequest, freq stats.FrequencyTable, scorer *ranker.StatsScorer) ([]int, error) {
	if req.PoolSize == 0 || req.PoolSize == lottery.UniverseSize {
		return generator.AllNumbers(), nil
	}
	switch strings.ToLower(req.PoolStrategy) {
	case "", PoolByFrequency:
		return generator.TopByFrequency(freq, req.PoolSize)
	case PoolByScore:
		return generator.TopByScore(scorer.Weights(), req.PoolSize)
	}
	return nil, core.NewInvalidRequestError(fmt.Sprintf("unknown pool strategy %q", req.PoolStrategy))
}

func scoreGames(ranked []ranker.Scored, reference lottery.Draw) ([]ScoredGame, error) {
	games := make([]ScoredGame, len(ranked))
	for i, sc := range ranked {
		st, err := engine.ComputeCandidateStats(sc.Candidate, reference)
		if err != nil {
			return nil, err
		}
		games[i] = ScoredGame{
			Candidate: sc.Candidate,
			Stats:     st,
			Score:     sc.Score,
			HasScore:  sc.HasScore,
			Rank:      sc.Position,
		}
	}
	return games, nil
}

func buildRun(out *GenerateResult, cfg filter.Config, reference lottery.Draw, req GenerateRequest) *run.Run {
	r := &run.Run{
		ID:           out.RunID,
		CreatedAt:    time.Now().UTC(),
		Fingerprint:  out.Fingerprint,
		Filter:       cfg,
		TargetCount:  req.TargetCount,
		MaxAttempts:  req.MaxAttempts,
		AttemptsUsed: out.AttemptsUsed,
		Exhausted:    out.Exhausted,
		Games:        make([]run.Game, len(out.Games)),
	}
	if r.MaxAttempts == 0 {
		r.MaxAttempts = generator.DefaultMaxAttempts
	}
	if reference.Validate() == nil {
		r.Reference = reference.Numbers.Numbers()
	}
	for i, g := range out.Games {
		game := run.Game{Position: g.Rank, Numbers: g.Candidate.Numbers, Stats: g.Stats}
		if g.HasScore {
			score := g.Score
			game.Score = &score
		}
		r.Games[i] = game
	}
	return r
}

func formatRejections(rejections map[string]int) string {
	parts := make([]string, 0, len(rejections))
	for _, f := range stats.Fields {
		if n := rejections[f.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", f, n))
		}
	}
	if n := rejections["duplicate"]; n > 0 {
		parts = append(parts, fmt.Sprintf("duplicate=%d", n))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
