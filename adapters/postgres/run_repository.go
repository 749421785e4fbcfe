package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/domain/run"
	"lotogen/domain/stats"
	"lotogen/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

type runRow struct {
	ID           string        `db:"id"`
	CreatedAt    time.Time     `db:"created_at"`
	CorpusHash   string        `db:"corpus_hash"`
	FilterHash   string        `db:"filter_hash"`
	Fingerprint  string        `db:"fingerprint"`
	CodeVersion  string        `db:"code_version"`
	Seed         int64         `db:"seed"`
	Workers      int           `db:"workers"`
	Universe     pq.Int64Array `db:"universe"`
	Filter       []byte        `db:"filter"`
	Reference    pq.Int64Array `db:"reference"`
	TargetCount  int           `db:"target_count"`
	MaxAttempts  int           `db:"max_attempts"`
	AttemptsUsed int           `db:"attempts_used"`
	Exhausted    bool          `db:"exhausted"`
}

type gameRow struct {
	Position int             `db:"position"`
	Numbers  pq.Int64Array   `db:"numbers"`
	Stats    []byte          `db:"stats"`
	Score    sql.NullFloat64 `db:"score"`
}

// SaveRun stores a run and its games in one transaction
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, rec *run.Run) error {
	filterJSON, err := json.Marshal(rec.Filter)
	if err != nil {
		return fmt.Errorf("failed to encode filter: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reference interface{}
	if len(rec.Reference) > 0 {
		reference = intsToArray(rec.Reference)
	}
	fp := rec.Fingerprint
	_, err = tx.ExecContext(ctx, `
		INSERT INTO generation_runs (
			id, created_at, corpus_hash, filter_hash, fingerprint, code_version, seed, workers,
			universe, filter, reference, target_count, max_attempts, attempts_used, exhausted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, rec.ID.String(), rec.CreatedAt, fp.CorpusHash.String(), fp.FilterHash.String(), fp.Fingerprint.String(),
		fp.CodeVersion, fp.Seed, fp.Workers, intsToArray(fp.Universe), filterJSON, reference,
		rec.TargetCount, rec.MaxAttempts, rec.AttemptsUsed, rec.Exhausted)
	if err != nil {
		return err
	}

	for _, g := range rec.Games {
		statsJSON, err := json.Marshal(g.Stats)
		if err != nil {
			return fmt.Errorf("failed to encode stats for game %d: %w", g.Position, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO generated_games (run_id, position, numbers, stats, score)
			VALUES ($1, $2, $3, $4, $5)
		`, rec.ID.String(), g.Position, toInt64s(g.Numbers), statsJSON, g.Score)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run with its games in ranked order
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*run.Run, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, created_at, corpus_hash, filter_hash, fingerprint, code_version, seed, workers,
			universe, filter, reference, target_count, max_attempts, attempts_used, exhausted
		FROM generation_runs
		WHERE id = $1
	`, id.String())
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rec := &run.Run{
		ID:        core.RunID(row.ID),
		CreatedAt: row.CreatedAt,
		Fingerprint: run.RunFingerprint{
			CorpusHash:  core.Hash(row.CorpusHash),
			FilterHash:  core.Hash(row.FilterHash),
			Universe:    fromInt64s(row.Universe),
			Seed:        row.Seed,
			Workers:     row.Workers,
			CodeVersion: row.CodeVersion,
			Fingerprint: core.Hash(row.Fingerprint),
		},
		Reference:    fromInt64s(row.Reference),
		TargetCount:  row.TargetCount,
		MaxAttempts:  row.MaxAttempts,
		AttemptsUsed: row.AttemptsUsed,
		Exhausted:    row.Exhausted,
	}
	if err := json.Unmarshal(row.Filter, &rec.Filter); err != nil {
		return nil, fmt.Errorf("failed to decode filter of run %s: %w", id, err)
	}
	if len(rec.Reference) == 0 {
		rec.Reference = nil
	}

	var games []gameRow
	err = r.db.SelectContext(ctx, &games, `
		SELECT position, numbers, stats, score
		FROM generated_games
		WHERE run_id = $1
		ORDER BY position ASC
	`, id.String())
	if err != nil {
		return nil, err
	}

	rec.Games = make([]run.Game, 0, len(games))
	for _, g := range games {
		c, err := lottery.NewCandidate(fromInt64s(g.Numbers))
		if err != nil {
			return nil, fmt.Errorf("stored game %d of run %s: %w", g.Position, id, err)
		}
		game := run.Game{Position: g.Position, Numbers: c.Numbers}
		var s stats.CandidateStats
		if err := json.Unmarshal(g.Stats, &s); err != nil {
			return nil, fmt.Errorf("failed to decode stats of game %d: %w", g.Position, err)
		}
		game.Stats = s
		if g.Score.Valid {
			score := g.Score.Float64
			game.Score = &score
		}
		rec.Games = append(rec.Games, game)
	}
	return rec, nil
}

// ListRuns returns the most recent runs first, optionally limited
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]run.Summary, error) {
	query := `
		SELECT r.id, r.created_at, r.corpus_hash, r.seed, r.target_count, r.attempts_used, r.exhausted,
			COUNT(g.position) AS game_count
		FROM generation_runs r
		LEFT JOIN generated_games g ON g.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var summaries []run.Summary
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, err
	}
	return summaries, nil
}

func intsToArray(ns []int) pq.Int64Array {
	out := make(pq.Int64Array, len(ns))
	for i, n := range ns {
		out[i] = int64(n)
	}
	return out
}
