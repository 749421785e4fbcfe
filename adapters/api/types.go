package api

import (
	"fmt"

	"lotogen/app"
	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/internal/config"
)

// GenerateBody is the JSON body of POST /api/generate. Omitted fields fall
// back to the server's generator defaults.
type GenerateBody struct {
	TargetCount  int              `json:"target_count"`
	MaxAttempts  int              `json:"max_attempts"`
	Workers      int              `json:"workers"`
	Seed         *int64           `json:"seed"`
	FilterBase   string           `json:"filter_base"` // "default" or "open"
	Filter       map[string][]int `json:"filter"`      // overrides, e.g. {"soma": [170, 220]}
	PoolSize     int              `json:"pool_size"`
	PoolStrategy string           `json:"pool_strategy"`
	Window       int              `json:"window"`
	Deduplicate  *bool            `json:"deduplicate"`
	Rank         bool             `json:"rank"`
	Keep         int              `json:"keep"`
	Persist      *bool            `json:"persist"`
}

// EvaluateBody is the JSON body of POST /api/runs/{id}/evaluate
type EvaluateBody struct {
	Numbers []int `json:"numbers"`
}

// EvaluateResponse pairs each stored game position with its hit count
type EvaluateResponse struct {
	RunID string `json:"run_id"`
	Hits  []int  `json:"hits"`
	Best  int    `json:"best"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// toRequest resolves a body against the configured defaults. base is the
// filter used when filter_base is "default" or empty.
func (b GenerateBody) toRequest(defaults config.GeneratorConfig, base filter.Config, persist bool) (app.GenerateRequest, error) {
	req := app.GenerateRequest{
		TargetCount:  orDefault(b.TargetCount, defaults.TargetCount),
		MaxAttempts:  orDefault(b.MaxAttempts, defaults.MaxAttempts),
		Workers:      orDefault(b.Workers, defaults.Workers),
		Seed:         defaults.ResolveSeed(),
		PoolSize:     orDefault(b.PoolSize, defaults.PoolSize),
		PoolStrategy: b.PoolStrategy,
		Window:       b.Window,
		Deduplicate:  defaults.Deduplicate,
		Rank:         b.Rank,
		Keep:         b.Keep,
		CheckEvery:   defaults.CheckEvery,
		Persist:      persist,
	}
	if b.Seed != nil {
		req.Seed = *b.Seed
	}
	if b.Deduplicate != nil {
		req.Deduplicate = *b.Deduplicate
	}
	if b.Persist != nil {
		if *b.Persist && !persist {
			return app.GenerateRequest{}, core.NewInvalidRequestError("persist requested but no database is configured")
		}
		req.Persist = *b.Persist
	}

	switch b.FilterBase {
	case "", "default":
	case "open":
		base = filter.Open()
	default:
		return app.GenerateRequest{}, core.NewInvalidRequestError(fmt.Sprintf("filter_base must be \"default\" or \"open\", got %q", b.FilterBase))
	}
	overrides, err := filter.ParseOverrides(b.Filter)
	if err != nil {
		return app.GenerateRequest{}, err
	}
	cfg, err := filter.NewConfig(base, overrides)
	if err != nil {
		return app.GenerateRequest{}, err
	}
	req.Filter = &cfg
	return req, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
