package clarans

import "errors"

// Configuration errors. They are fatal: a search is never retried or run on a
// partial configuration. Validation wraps them with the offending value, so
// match with errors.Is.
var (
	// ErrNoPoints is returned when the point collection is empty.
	ErrNoPoints = errors.New("clarans: point collection is empty")

	// ErrInvalidClusters is returned when NumClusters is outside [1, len(points)].
	ErrInvalidClusters = errors.New("clarans: invalid number of clusters")

	// ErrInvalidMinima is returned when the restart count is not positive.
	ErrInvalidMinima = errors.New("clarans: Minima must be >= 1")

	// ErrInvalidNeighbors is returned when MaxNeighbors is negative.
	ErrInvalidNeighbors = errors.New("clarans: MaxNeighbors must be >= 0")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("clarans: Workers must be >= 1")

	// ErrInvalidAcceptance is returned for an unknown acceptance policy.
	ErrInvalidAcceptance = errors.New("clarans: invalid acceptance policy")

	// ErrEmptyMedoids is returned when an operation needs at least one medoid.
	ErrEmptyMedoids = errors.New("clarans: medoid set is empty")

	// ErrNilMetric is returned when no distance metric is supplied.
	ErrNilMetric = errors.New("clarans: metric is nil")

	// ErrInvalidMetric is returned by MetricByName for unknown or misconfigured metrics.
	ErrInvalidMetric = errors.New("clarans: invalid metric")
)
