package clarans

import (
	"context"
	"math"
	"math/rand/v2"
)

// localBest is the best configuration seen by one driver, together with the
// work it took to find it.
type localBest struct {
	medoids  MedoidSet
	cost     float64
	restarts int
	trials   int
	moves    int
}

// better reports whether b should replace the accumulator a. Exact ties keep
// a, so the earlier restart or worker wins.
func (a localBest) better(b localBest) bool {
	return a.medoids == nil || b.cost < a.cost
}

// searcher runs restarts against one point collection with one generator.
// It is not safe for concurrent use.
type searcher[T any] struct {
	points []T
	metric Metric[T]
	cfg    *Config
	rng    *rand.Rand
	log    *Logger

	// scratch buffer for neighbor proposals
	candidate MedoidSet
}

func newSearcher[T any](points []T, metric Metric[T], cfg *Config, rng *rand.Rand, log *Logger) *searcher[T] {
	return &searcher[T]{
		points:    points,
		metric:    metric,
		cfg:       cfg,
		rng:       rng,
		log:       log,
		candidate: make(MedoidSet, cfg.NumClusters),
	}
}

// restart performs one hill climb from a random medoid set.
func (s *searcher[T]) restart() localBest {
	n := len(s.points)
	current := initMedoids(s.cfg.NumClusters, n, s.rng)
	cost := totalCost(s.points, current, s.metric)
	r := localBest{restarts: 1}

	// spent counts consecutive failures under AcceptFirstImprovement and all
	// trials under AcceptWithinBudget.
	for spent := 0; spent < s.cfg.MaxNeighbors; {
		neighbor(s.candidate, current, n, s.rng, s.cfg.ExcludeCurrent)
		candCost := totalCost(s.points, s.candidate, s.metric)
		r.trials++
		if candCost < cost {
			current, s.candidate = s.candidate, current
			cost = candCost
			r.moves++
			if s.cfg.Acceptance == AcceptFirstImprovement {
				spent = 0
				continue
			}
		}
		spent++
	}

	r.medoids = current.Clone()
	r.cost = cost
	return r
}

// run performs restarts hill climbs and keeps the cheapest result. ctx is
// checked before every restart.
func (s *searcher[T]) run(ctx context.Context, restarts int) (localBest, error) {
	best := localBest{cost: math.Inf(1)}
	var restartsDone, trials, moves int
	for i := 0; i < restarts; i++ {
		if err := ctx.Err(); err != nil {
			return localBest{}, err
		}
		r := s.restart()
		restartsDone++
		trials += r.trials
		moves += r.moves
		if best.better(r) {
			s.log.LogImprovement(ctx, i, best.cost, r.cost)
			best.medoids, best.cost = r.medoids, r.cost
		}
	}
	best.restarts, best.trials, best.moves = restartsDone, trials, moves
	return best, nil
}
