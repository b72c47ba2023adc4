package clarans

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// MedoidSet holds indices into the point collection, one per cluster.
// Indices are unique for a freshly initialized set. A neighbor proposal may
// repeat an index (see Neighbor).
type MedoidSet []int

// Clone returns a copy of m that shares no storage with it.
func (m MedoidSet) Clone() MedoidSet { return slices.Clone(m) }

// Sorted returns the medoid indices in ascending order.
func (m MedoidSet) Sorted() MedoidSet {
	s := m.Clone()
	slices.Sort(s)
	return s
}

// ClosestMedoid returns the slot (position in medoids) of the medoid nearest
// to item and the distance to it. Ties keep the earliest slot.
func ClosestMedoid[T any](item T, points []T, medoids MedoidSet, metric Metric[T]) (int, float64, error) {
	if len(medoids) == 0 {
		return -1, 0, ErrEmptyMedoids
	}
	if metric == nil {
		return -1, 0, ErrNilMetric
	}
	slot, d := closestMedoid(item, points, medoids, metric)
	return slot, d, nil
}

func closestMedoid[T any](item T, points []T, medoids MedoidSet, metric Metric[T]) (int, float64) {
	best := 0
	minDist := math.Inf(1)
	for slot, idx := range medoids {
		if d := metric.Distance(item, points[idx]); d < minDist {
			minDist = d
			best = slot
		}
	}
	return best, minDist
}

// TotalCost returns the sum over all points of the distance to the nearest
// medoid. It costs O(len(points) * len(medoids)) distance evaluations.
func TotalCost[T any](points []T, medoids MedoidSet, metric Metric[T]) (float64, error) {
	if len(points) == 0 {
		return 0, ErrNoPoints
	}
	if len(medoids) == 0 {
		return 0, ErrEmptyMedoids
	}
	if metric == nil {
		return 0, ErrNilMetric
	}
	return totalCost(points, medoids, metric), nil
}

func totalCost[T any](points []T, medoids MedoidSet, metric Metric[T]) float64 {
	var cost float64
	for _, p := range points {
		_, d := closestMedoid(p, points, medoids, metric)
		cost += d
	}
	return cost
}

// Neighbor returns a copy of medoids with one uniformly chosen slot replaced
// by a uniformly chosen point index in [0, n). The replacement may already be
// a medoid; such proposals are kept and evaluated like any other.
func Neighbor(medoids MedoidSet, n int, rng *rand.Rand) (MedoidSet, error) {
	if len(medoids) == 0 {
		return nil, ErrEmptyMedoids
	}
	if n <= 0 {
		return nil, ErrNoPoints
	}
	dst := make(MedoidSet, len(medoids))
	neighbor(dst, medoids, n, rng, false)
	return dst, nil
}

// neighbor writes a one-swap neighbor of src into dst. With excludeCurrent
// the replacement is drawn from points that are not in src, unless every
// point already is.
func neighbor(dst, src MedoidSet, n int, rng *rand.Rand, excludeCurrent bool) {
	copy(dst, src)
	slot := rng.IntN(len(src))
	if !excludeCurrent || n <= len(src) {
		dst[slot] = rng.IntN(n)
		return
	}
	for {
		idx := rng.IntN(n)
		if !slices.Contains(src, idx) {
			dst[slot] = idx
			return
		}
	}
}

// initMedoids samples k distinct point indices uniformly at random.
func initMedoids(k, n int, rng *rand.Rand) MedoidSet {
	m := make(MedoidSet, k)
	sampleuv.WithoutReplacement(m, n, rng)
	return m
}

// Assign labels each point with the slot of its nearest medoid.
func Assign[T any](points []T, medoids MedoidSet, metric Metric[T]) ([]int, error) {
	if len(medoids) == 0 {
		return nil, ErrEmptyMedoids
	}
	if metric == nil {
		return nil, ErrNilMetric
	}
	labels := make([]int, len(points))
	for i, p := range points {
		labels[i], _ = closestMedoid(p, points, medoids, metric)
	}
	return labels, nil
}

// Gather returns the items referenced by medoids, in medoid order.
func Gather[T any](points []T, medoids MedoidSet) []T {
	out := make([]T, len(medoids))
	for i, idx := range medoids {
		out[i] = points[idx]
	}
	return out
}

// ClusterStats describes the points assigned to one medoid.
type ClusterStats struct {
	// Medoid is the index of the medoid in the point collection.
	Medoid int
	// Size is the number of points assigned to the medoid, itself included.
	Size int
	// Total is the sum of distances to the medoid.
	Total float64
	// Mean and StdDev describe the distance distribution. StdDev is 0 for
	// clusters with fewer than two points.
	Mean   float64
	StdDev float64
}

// Summarize computes per-cluster statistics, one entry per medoid slot.
func Summarize[T any](points []T, medoids MedoidSet, metric Metric[T]) ([]ClusterStats, error) {
	if len(medoids) == 0 {
		return nil, ErrEmptyMedoids
	}
	if metric == nil {
		return nil, ErrNilMetric
	}
	dists := make([][]float64, len(medoids))
	for _, p := range points {
		slot, d := closestMedoid(p, points, medoids, metric)
		dists[slot] = append(dists[slot], d)
	}

	out := make([]ClusterStats, len(medoids))
	for slot, ds := range dists {
		s := ClusterStats{Medoid: medoids[slot], Size: len(ds)}
		for _, d := range ds {
			s.Total += d
		}
		switch {
		case len(ds) >= 2:
			s.Mean, s.StdDev = stat.MeanStdDev(ds, nil)
		case len(ds) == 1:
			s.Mean = ds[0]
		}
		out[slot] = s
	}
	return out, nil
}
