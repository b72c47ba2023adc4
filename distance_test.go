package clarans

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floatTol = 1e-10

func TestEuclideanDistance(t *testing.T) {
	m := EuclideanMetric{}
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"unit vectors", []float64{1, 0, 0}, []float64{0, 1, 0}, math.Sqrt(2)},
		// sqrt(9+16+0) = 5
		{"hand computed", []float64{1, 2, 3}, []float64{4, 6, 3}, 5},
		{"empty", []float64{}, []float64{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Distance(tt.a, tt.b), floatTol)
		})
	}
}

func TestManhattanDistance(t *testing.T) {
	// |4-1| + |6-2| + |0-3| = 10
	assert.InDelta(t, 10.0, ManhattanMetric{}.Distance([]float64{1, 2, 3}, []float64{4, 6, 0}), floatTol)
}

func TestChebyshevDistance(t *testing.T) {
	assert.InDelta(t, 4.0, ChebyshevMetric{}.Distance([]float64{1, 2, 3}, []float64{4, 6, 0}), floatTol)
}

func TestMinkowskiDistance_MatchesLpNorms(t *testing.T) {
	a := []float64{1, -2, 3.5}
	b := []float64{-4, 6, 0.5}

	assert.InDelta(t, ManhattanMetric{}.Distance(a, b), MinkowskiMetric{P: 1}.Distance(a, b), floatTol)
	assert.InDelta(t, EuclideanMetric{}.Distance(a, b), MinkowskiMetric{P: 2}.Distance(a, b), floatTol)

	// (3^3 + 4^3)^(1/3)
	want := math.Pow(27+64, 1.0/3)
	assert.InDelta(t, want, MinkowskiMetric{P: 3}.Distance([]float64{0, 0}, []float64{3, 4}), floatTol)
}

func TestMinkowskiDistance_PanicsBelowOne(t *testing.T) {
	assert.Panics(t, func() {
		MinkowskiMetric{P: 0.5}.Distance([]float64{0}, []float64{1})
	})
}

func TestCosineDistance(t *testing.T) {
	m := CosineMetric{}
	assert.InDelta(t, 1.0, m.Distance([]float64{1, 0}, []float64{0, 1}), floatTol)
	assert.InDelta(t, 0.0, m.Distance([]float64{1, 1}, []float64{2, 2}), floatTol)
	assert.InDelta(t, 2.0, m.Distance([]float64{1, 0}, []float64{-1, 0}), floatTol)
	assert.True(t, math.IsNaN(m.Distance([]float64{0, 0}, []float64{0, 0})))
}

func TestDistanceSymmetry(t *testing.T) {
	a := []float64{1.5, -2, 7}
	b := []float64{0, 3, -1}
	metrics := map[string]Metric[[]float64]{
		"euclidean": EuclideanMetric{},
		"manhattan": ManhattanMetric{},
		"chebyshev": ChebyshevMetric{},
		"minkowski": MinkowskiMetric{P: 3},
		"cosine":    CosineMetric{},
	}
	for name, m := range metrics {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, m.Distance(a, b), m.Distance(b, a), floatTol)
		})
	}
}

func TestMetricFunc(t *testing.T) {
	abs := MetricFunc[int](func(a, b int) float64 { return math.Abs(float64(a - b)) })
	assert.Equal(t, 7.0, abs.Distance(3, 10))
	assert.Equal(t, 7.0, abs.Distance(10, 3))
}

func TestMetricByName(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want Metric[[]float64]
	}{
		{"", 0, EuclideanMetric{}},
		{"euclidean", 0, EuclideanMetric{}},
		{"manhattan", 0, ManhattanMetric{}},
		{"chebyshev", 0, ChebyshevMetric{}},
		{"cosine", 0, CosineMetric{}},
		{"minkowski", 3, MinkowskiMetric{P: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MetricByName(tt.name, tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}

	_, err := MetricByName("hamming", 0)
	assert.ErrorIs(t, err, ErrInvalidMetric)

	_, err = MetricByName("minkowski", 0.5)
	assert.ErrorIs(t, err, ErrInvalidMetric)
}
