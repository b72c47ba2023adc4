package clarans

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
)

// Acceptance selects how a restart spends its neighbor budget.
type Acceptance string

const (
	// AcceptFirstImprovement moves to the first improving neighbor and resets
	// the budget; a restart ends after MaxNeighbors consecutive failures.
	AcceptFirstImprovement Acceptance = "first"
	// AcceptWithinBudget evaluates exactly MaxNeighbors neighbors per restart,
	// moving to each improving one along the way.
	AcceptWithinBudget Acceptance = "budget"
)

// RandFactory returns the random generator used by one worker. Search uses
// worker 0. Generators are never shared between goroutines.
type RandFactory func(worker int) *rand.Rand

// Seeded returns a RandFactory producing deterministic, per-worker distinct
// PCG streams derived from seed.
func Seeded(seed uint64) RandFactory {
	return func(worker int) *rand.Rand {
		return rand.New(rand.NewPCG(seed, uint64(worker)))
	}
}

func randomRand(int) *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Config controls a CLARANS search.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// NumClusters is the number of medoids to find.
	// Must be in [1, len(points)]. Default: 4.
	NumClusters int

	// Minima is the number of independent restarts. More restarts trade
	// runtime for a better chance of escaping poor local optima.
	// Must be >= 1. Default: 100.
	Minima int

	// MaxNeighbors bounds the neighbor trials of a restart; see Acceptance.
	// 0 keeps the random initialization of each restart unrefined.
	// Must be >= 0. Default: 100.
	MaxNeighbors int

	// Workers is the goroutine count of SearchParallel. Search ignores it.
	// Must be >= 1. Default: runtime.NumCPU().
	Workers int

	// Acceptance selects the neighbor budget policy.
	// Default: AcceptFirstImprovement.
	Acceptance Acceptance

	// ExcludeCurrent draws replacement medoids only from points outside the
	// current medoid set. Default: false, which samples from all points and
	// may propose a no-op swap.
	ExcludeCurrent bool

	// Rand supplies per-worker random generators. nil seeds every worker
	// independently from the process-wide source, so runs are not
	// reproducible. Use Seeded for deterministic results.
	Rand RandFactory

	// Logger receives search progress. nil discards it.
	Logger *Logger
}

// Result is the best medoid configuration found by a search.
type Result struct {
	// Medoids are indices into the point collection, in discovery order.
	Medoids MedoidSet

	// Cost is the sum over all points of the distance to the nearest medoid.
	Cost float64

	// Labels maps each point to the slot in Medoids of its nearest medoid.
	Labels []int

	// Restarts, Trials and Moves count completed restarts, evaluated
	// neighbors and accepted moves over the whole search.
	Restarts int
	Trials   int
	Moves    int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		NumClusters:  4,
		Minima:       100,
		MaxNeighbors: 100,
		Workers:      runtime.NumCPU(),
		Acceptance:   AcceptFirstImprovement,
	}
}

// applyDefaults fills in zero-valued optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Acceptance == "" {
		cfg.Acceptance = AcceptFirstImprovement
	}
	if cfg.Rand == nil {
		cfg.Rand = randomRand
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
}

// validateConfig checks cfg against a point collection of size n.
func validateConfig(cfg *Config, n int) error {
	if n == 0 {
		return ErrNoPoints
	}
	if cfg.NumClusters < 1 || cfg.NumClusters > n {
		return fmt.Errorf("%w: NumClusters must be in [1, %d], got %d", ErrInvalidClusters, n, cfg.NumClusters)
	}
	if cfg.Minima < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidMinima, cfg.Minima)
	}
	if cfg.MaxNeighbors < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidNeighbors, cfg.MaxNeighbors)
	}
	switch cfg.Acceptance {
	case AcceptFirstImprovement, AcceptWithinBudget:
		// valid
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAcceptance, cfg.Acceptance)
	}
	return nil
}

// Search runs cfg.Minima restarts sequentially and returns the cheapest
// medoid set found. Exact cost ties keep the earlier restart.
func Search[T any](ctx context.Context, points []T, metric Metric[T], cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if metric == nil {
		return nil, ErrNilMetric
	}
	if err := validateConfig(&cfg, len(points)); err != nil {
		cfg.Logger.LogSearch(ctx, len(points), nil, err)
		return nil, err
	}

	s := newSearcher(points, metric, &cfg, cfg.Rand(0), cfg.Logger.WithK(cfg.NumClusters))
	best, err := s.run(ctx, cfg.Minima)
	if err != nil {
		cfg.Logger.LogSearch(ctx, len(points), nil, err)
		return nil, err
	}
	return finish(ctx, points, metric, &cfg, best)
}

// finish labels the points against the winning medoid set.
func finish[T any](ctx context.Context, points []T, metric Metric[T], cfg *Config, best localBest) (*Result, error) {
	labels, err := Assign(points, best.medoids, metric)
	if err != nil {
		cfg.Logger.LogSearch(ctx, len(points), nil, err)
		return nil, err
	}
	res := &Result{
		Medoids:  best.medoids,
		Cost:     best.cost,
		Labels:   labels,
		Restarts: best.restarts,
		Trials:   best.trials,
		Moves:    best.moves,
	}
	cfg.Logger.LogSearch(ctx, len(points), res, nil)
	return res, nil
}
