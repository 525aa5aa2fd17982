package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchWorkers bounds EvaluateBatch when no limit is given.
const DefaultBatchWorkers = 4

// EvaluateBatch dry-runs every query concurrently against the same manifest
// set, at most workers at a time, and returns the reports in input order.
// The first error cancels the rest and is returned.
func (e *Engine) EvaluateBatch(ctx context.Context, queries []string, area string, workers int) ([]DryRunReport, error) {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	reports := make([]DryRunReport, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := e.DryRun(gctx, q, area)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
