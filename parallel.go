package clarans

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// partitionRestarts splits minima restarts over workers. Every worker gets
// minima/workers restarts and the first minima%workers workers get one more,
// so the shares sum to minima.
func partitionRestarts(minima, workers int) []int {
	shares := make([]int, workers)
	base, extra := minima/workers, minima%workers
	for w := range shares {
		shares[w] = base
		if w < extra {
			shares[w]++
		}
	}
	return shares
}

// SearchParallel spreads cfg.Minima restarts over cfg.Workers goroutines.
// Each worker runs its share sequentially with its own generator and reads
// points without modifying them. The worker bests are reduced in worker
// order, so exact cost ties keep the lower worker index.
//
// If any worker fails, the others are cancelled and no partial result is
// returned.
func SearchParallel[T any](ctx context.Context, points []T, metric Metric[T], cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if metric == nil {
		return nil, ErrNilMetric
	}
	if err := validateConfig(&cfg, len(points)); err != nil {
		cfg.Logger.LogSearch(ctx, len(points), nil, err)
		return nil, err
	}
	if cfg.Workers < 1 {
		err := fmt.Errorf("%w, got %d", ErrInvalidWorkers, cfg.Workers)
		cfg.Logger.LogSearch(ctx, len(points), nil, err)
		return nil, err
	}

	// Workers beyond Minima would get a zero share, so they are not counted.
	shares := partitionRestarts(cfg.Minima, min(cfg.Workers, cfg.Minima))
	bests := make([]localBest, len(shares))

	// Each worker writes only its own slot of bests, so no locking is needed.
	g, gctx := errgroup.WithContext(ctx)
	for w, share := range shares {
		if share == 0 {
			continue
		}
		g.Go(func() error {
			log := cfg.Logger.WithK(cfg.NumClusters).WithWorker(w)
			s := newSearcher(points, metric, &cfg, cfg.Rand(w), log)
			best, err := s.run(gctx, share)
			log.LogWorkerDone(gctx, share, best.cost, err)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			bests[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		cfg.Logger.LogSearch(ctx, len(points), nil, err)
		return nil, err
	}

	return finish(ctx, points, metric, &cfg, reduceBests(bests))
}

// reduceBests folds worker results in index order into one global best.
// Workers that ran no restarts are skipped.
func reduceBests(bests []localBest) localBest {
	global := localBest{cost: math.Inf(1)}
	var restarts, trials, moves int
	for _, b := range bests {
		if b.medoids == nil {
			continue
		}
		restarts += b.restarts
		trials += b.trials
		moves += b.moves
		if global.better(b) {
			global.medoids, global.cost = b.medoids, b.cost
		}
	}
	global.restarts, global.trials, global.moves = restarts, trials, moves
	return global
}
