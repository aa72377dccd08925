package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"spmview/internal/models"
)

// ProcessBatch runs Process on independent frames concurrently, using at
// most workers goroutines (all CPUs when workers < 1). Results keep the
// order of frames. The first error cancels frames that have not started.
func (p *Pipeline) ProcessBatch(ctx context.Context, frames []models.Frame, flags models.ProcessingFlags, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make([]*Result, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range frames {
		i := i // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.Process(frames[i], flags)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
