package generator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"lotogen/domain/core"
	"lotogen/domain/lottery"
)

// SourceFactory returns the random source for one worker shard
type SourceFactory func(worker int) Source

// GenerateParallel shards the attempt budget across workers. Shard budgets sum
// to MaxAttempts, so the worst-case work matches Generate. Each worker fills
// its own buffer; shards are merged in worker order, deduplicated when requested,
// and truncated to TargetCount, so the result only depends on the sources.
func (e *Engine) GenerateParallel(ctx context.Context, req Request, workers int, sources SourceFactory) (*Result, error) {
	req, err := req.normalized()
	if err != nil {
		return nil, err
	}
	if sources == nil {
		return nil, core.NewInvalidRequestError("random source factory is required")
	}
	if workers < 1 {
		workers = 1
	}
	if workers > req.MaxAttempts {
		workers = req.MaxAttempts
	}

	shards := make([]*Result, workers)
	sem := semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		budget := req.MaxAttempts / workers
		if w < req.MaxAttempts%workers {
			budget++
		}
		src := sources(w)
		if src == nil {
			return nil, core.NewInvalidRequestError("random source factory returned nil")
		}
		worker := w
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				shards[worker] = &Result{Cancelled: true, Rejections: map[string]int{}}
				return err
			}
			defer sem.Release(1)

			shard, err := run(gctx, req, src, budget)
			shards[worker] = shard
			return err
		})
	}
	waitErr := g.Wait()

	merged := merge(shards, req)
	e.logger.Debug("%d workers accepted %d/%d in %d/%d attempts (exhausted=%t)",
		workers, len(merged.Accepted), req.TargetCount, merged.AttemptsUsed, req.MaxAttempts, merged.Exhausted)
	return merged, waitErr
}

// merge concatenates worker shards in order; single-threaded by construction
func merge(shards []*Result, req Request) *Result {
	out := &Result{
		Accepted:   make([]lottery.Candidate, 0, req.TargetCount),
		Rejections: make(map[string]int),
	}
	var seen map[lottery.Combination]struct{}
	if req.Deduplicate {
		seen = make(map[lottery.Combination]struct{}, req.TargetCount)
	}

	for _, shard := range shards {
		if shard == nil {
			continue
		}
		out.AttemptsUsed += shard.AttemptsUsed
		out.Cancelled = out.Cancelled || shard.Cancelled
		for reason, n := range shard.Rejections {
			out.Rejections[reason] += n
		}
		for _, c := range shard.Accepted {
			if len(out.Accepted) == req.TargetCount {
				break
			}
			if seen != nil {
				if _, dup := seen[c.Numbers]; dup {
					out.Rejections[reasonDuplicate]++
					continue
				}
				seen[c.Numbers] = struct{}{}
			}
			out.Accepted = append(out.Accepted, c)
		}
	}

	out.Exhausted = !out.Cancelled && len(out.Accepted) < req.TargetCount
	return out
}
