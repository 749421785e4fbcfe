package run

import (
	"fmt"
	"strings"
	"time"

	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/domain/stats"
)

// CodeVersion is stamped into every run fingerprint
const CodeVersion = "v1.0.0"

// Run is the persisted record of one generation: its inputs, outcome and games
type Run struct {
	ID           core.RunID     `json:"id" db:"id"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	Fingerprint  RunFingerprint `json:"fingerprint"`
	Filter       filter.Config  `json:"filter"`
	Reference    []int          `json:"reference,omitempty"`
	TargetCount  int            `json:"target_count" db:"target_count"`
	MaxAttempts  int            `json:"max_attempts" db:"max_attempts"`
	AttemptsUsed int            `json:"attempts_used" db:"attempts_used"`
	Exhausted    bool           `json:"exhausted" db:"exhausted"`
	Games        []Game         `json:"games"`
}

// Game is one accepted combination in its final ranked position
type Game struct {
	Position int                  `json:"position" db:"position"` // 1-based
	Numbers  lottery.Combination  `json:"numbers"`
	Stats    stats.CandidateStats `json:"stats"`
	Score    *float64             `json:"score,omitempty" db:"score"`
}

// Summary is the listing view of a run
type Summary struct {
	ID           core.RunID `json:"id" db:"id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	CorpusHash   string     `json:"corpus_hash" db:"corpus_hash"`
	Seed         int64      `json:"seed" db:"seed"`
	TargetCount  int        `json:"target_count" db:"target_count"`
	GameCount    int        `json:"game_count" db:"game_count"`
	AttemptsUsed int        `json:"attempts_used" db:"attempts_used"`
	Exhausted    bool       `json:"exhausted" db:"exhausted"`
}

// RunFingerprint ensures deterministic replay: identical fingerprints
// produce identical games
type RunFingerprint struct {
	CorpusHash  core.Hash `json:"corpus_hash"`
	FilterHash  core.Hash `json:"filter_hash"`
	Universe    []int     `json:"universe"`
	Seed        int64     `json:"seed"`
	Workers     int       `json:"workers"`
	CodeVersion string    `json:"code_version"`
	Fingerprint core.Hash `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters
func NewRunFingerprint(corpusHash core.Hash, cfg filter.Config, universe []int, seed int64, workers int) RunFingerprint {
	fp := RunFingerprint{
		CorpusHash:  corpusHash,
		FilterHash:  core.NewHash([]byte(cfg.String())),
		Universe:    append([]int(nil), universe...),
		Seed:        seed,
		Workers:     workers,
		CodeVersion: CodeVersion,
	}
	fp.Fingerprint = computeRunFingerprint(fp)
	return fp
}

// computeRunFingerprint generates deterministic hash from all determinism parameters
func computeRunFingerprint(fp RunFingerprint) core.Hash {
	universe := make([]string, len(fp.Universe))
	for i, n := range fp.Universe {
		universe[i] = fmt.Sprintf("%d", n)
	}
	data := fmt.Sprintf("corpus:%s|filter:%s|universe:%s|seed:%d|workers:%d|code:%s",
		fp.CorpusHash, fp.FilterHash, strings.Join(universe, ","), fp.Seed, fp.Workers, fp.CodeVersion)
	return core.NewHash([]byte(data))
}

// Verify recomputes the fingerprint and reports whether it still matches
func (fp RunFingerprint) Verify() bool {
	return computeRunFingerprint(fp) == fp.Fingerprint
}
