package migration

import (
	"context"

	"lotogen/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Step is one idempotent schema statement
type Step struct {
	Name string
	SQL  string
}

// Steps returns the schema statements in execution order
func (r *MigrationRunner) Steps() []Step {
	return []Step{
		{Name: "draws table", SQL: createDrawsTable},
		{Name: "generation_runs table", SQL: createRunsTable},
		{Name: "generated_games table", SQL: createGamesTable},
		{Name: "generation_runs workers column", SQL: addRunWorkersColumn},
		{Name: "indexes", SQL: createIndexes},
	}
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, step := range r.Steps() {
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			return errors.WithCode(errors.CodeDatabaseError,
				errors.Wrapf(err, "failed to create %s", step.Name))
		}
	}
	return nil
}

const createDrawsTable = `
	CREATE TABLE IF NOT EXISTS draws (
		contest INTEGER PRIMARY KEY CHECK (contest > 0),
		drawn_at DATE,
		numbers SMALLINT[] NOT NULL CHECK (cardinality(numbers) = 15),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

const createRunsTable = `
	CREATE TABLE IF NOT EXISTS generation_runs (
		id UUID PRIMARY KEY,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		corpus_hash TEXT NOT NULL,
		filter_hash TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		code_version VARCHAR(32) NOT NULL,
		seed BIGINT NOT NULL,
		universe SMALLINT[] NOT NULL DEFAULT '{}',
		filter JSONB NOT NULL,
		reference SMALLINT[],
		target_count INTEGER NOT NULL,
		max_attempts INTEGER NOT NULL,
		attempts_used INTEGER NOT NULL,
		exhausted BOOLEAN NOT NULL DEFAULT false
	)
`

const createGamesTable = `
	CREATE TABLE IF NOT EXISTS generated_games (
		run_id UUID NOT NULL REFERENCES generation_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL CHECK (position > 0),
		numbers SMALLINT[] NOT NULL CHECK (cardinality(numbers) = 15),
		stats JSONB NOT NULL,
		score DOUBLE PRECISION,
		PRIMARY KEY (run_id, position)
	)
`

const addRunWorkersColumn = `
	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'generation_runs' AND column_name = 'workers'
		) THEN
			ALTER TABLE generation_runs ADD COLUMN workers INTEGER NOT NULL DEFAULT 1;
		END IF;
	END $$;
`

const createIndexes = `
	CREATE INDEX IF NOT EXISTS idx_generation_runs_created_at ON generation_runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_generation_runs_fingerprint ON generation_runs(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_draws_drawn_at ON draws(drawn_at);
`
