package ports

import (
	"context"

	"lotogen/domain/core"
	"lotogen/domain/run"
)

// RunRepository defines the interface for generation run storage
type RunRepository interface {
	// SaveRun stores a run and its games atomically
	SaveRun(ctx context.Context, r *run.Run) error

	// GetRun retrieves a run with its games in ranked order
	GetRun(ctx context.Context, id core.RunID) (*run.Run, error)

	// ListRuns returns the most recent runs first, optionally limited
	ListRuns(ctx context.Context, limit int) ([]run.Summary, error)
}
