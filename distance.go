package clarans

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Metric measures the dissimilarity of two items. Distances must be
// non-negative and symmetric. The triangle inequality is not required, but
// clustering quality degrades when the metric is a poor one.
type Metric[T any] interface {
	Distance(a, b T) float64
}

// MetricFunc adapts a plain function into a Metric.
type MetricFunc[T any] func(a, b T) float64

func (f MetricFunc[T]) Distance(a, b T) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 { return floats.Distance(a, b, 2) }

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 { return floats.Distance(a, b, 1) }

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
	return floats.Distance(a, b, m.P)
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// For two zero vectors, the result is NaN (0/0).
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	return 1.0 - floats.Dot(a, b)/(floats.Norm(a, 2)*floats.Norm(b, 2))
}

// MetricByName returns the built-in vector metric registered under name.
// Recognized names are "euclidean", "manhattan", "chebyshev", "cosine" and
// "minkowski" (which uses p).
func MetricByName(name string, p float64) (Metric[[]float64], error) {
	switch name {
	case "euclidean", "":
		return EuclideanMetric{}, nil
	case "manhattan":
		return ManhattanMetric{}, nil
	case "chebyshev":
		return ChebyshevMetric{}, nil
	case "cosine":
		return CosineMetric{}, nil
	case "minkowski":
		if p < 1 {
			return nil, fmt.Errorf("%w: minkowski p must be >= 1, got %f", ErrInvalidMetric, p)
		}
		return MinkowskiMetric{P: p}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMetric, name)
	}
}
