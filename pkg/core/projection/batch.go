package projection

import (
	"context"
	"fmt"

	"project_feasibility/pkg/models"

	"golang.org/x/sync/errgroup"
)

// RunBatch computes independent snapshots concurrently with at most workers
// passes in flight. Results keep the input order. Cancelling ctx stops
// passes that have not started yet.
func (e *ProjectionEngine) RunBatch(ctx context.Context, cfgs []models.ProjectConfig, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]*Result, len(cfgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfgs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("batch cancelled before snapshot %d: %w", i, err)
			}
			results[i] = e.Run(cfgs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
