// Package clarans implements CLARANS (Clustering Large Applications based on
// RANdomized Search), a randomized local search for k-medoid clustering.
//
// Given items and a distance between them, CLARANS looks for k items
// ("medoids") that minimize the total distance from every item to its
// nearest medoid. Each restart samples k distinct medoids at random and then
// repeatedly proposes a neighbor, the same set with one medoid swapped for a
// random item, moving whenever the neighbor is strictly cheaper. The best
// restart wins.
//
// Basic usage:
//
//	cfg := clarans.DefaultConfig()
//	cfg.NumClusters = 3
//	result, err := clarans.Search(ctx, points, clarans.EuclideanMetric{}, cfg)
//	// result.Medoids[i] is the index in points of the i-th medoid
//	// result.Labels[j] is the medoid slot point j is assigned to
//	// result.Cost is the total distance to the nearest medoids
//
// Any item type works with a caller-supplied metric:
//
//	metric := clarans.MetricFunc[City](func(a, b City) float64 { return a.RoadKm(b) })
//	result, err := clarans.SearchParallel(ctx, cities, metric, cfg)
//
// # Acceptance policies
//
// By default (AcceptFirstImprovement) a restart moves to the first cheaper
// neighbor and resets its budget, ending after MaxNeighbors consecutive
// failed proposals. AcceptWithinBudget instead evaluates exactly
// MaxNeighbors proposals per restart, which bounds the work per restart but
// usually stops short of a local optimum.
//
// # Parallelism
//
// SearchParallel splits the restarts over Config.Workers goroutines, each
// with its own random generator, and keeps the cheapest worker result.
// Set Config.Rand to Seeded for reproducible runs.
package clarans
