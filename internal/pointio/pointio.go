// Package pointio reads and writes numeric points as delimited text.
package pointio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

var (
	// ErrNoRecords is returned by Read when the input holds no data rows.
	ErrNoRecords = errors.New("pointio: no records read")

	// ErrNonFinite is returned by Read for NaN or infinite coordinates.
	ErrNonFinite = errors.New("non-finite coordinate")
)

// Options controls the text representation.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// Header marks the first row as column names.
	Header bool
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return ','
	}
	return o.Comma
}

// Read parses one point per row. All rows must have the same number of
// finite numeric fields. The returned header is nil unless opts.Header is set.
func Read(r io.Reader, opts Options) (points [][]float64, header []string, err error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.comma()
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("pointio: %w", err)
		}
		line++
		if line == 1 && opts.Header {
			header = rec
			continue
		}

		p := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("pointio: row %d, field %d: %w", line, i+1, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, fmt.Errorf("pointio: row %d, field %d: %w %q", line, i+1, ErrNonFinite, field)
			}
			p[i] = v
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, nil, ErrNoRecords
	}
	return points, header, nil
}

// DefaultHeader names columns x and y for two dimensions and x0..xn-1
// otherwise.
func DefaultHeader(dims int) []string {
	if dims == 2 {
		return []string{"x", "y"}
	}
	h := make([]string, dims)
	for i := range h {
		h[i] = "x" + strconv.Itoa(i)
	}
	return h
}

// Write emits points one per row, preceded by header when it is non-nil.
func Write(w io.Writer, points [][]float64, header []string, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma()

	if header != nil {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("pointio: %w", err)
		}
	}
	row := make([]string, 0)
	for _, p := range points {
		row = row[:0]
		for _, v := range p {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("pointio: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("pointio: %w", err)
	}
	return nil
}

// Format renders a point as "(a, b, c)".
func Format(p []float64) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}

// Generate returns n points of the given dimensionality with coordinates
// drawn uniformly from [lo, hi).
func Generate(n, dims int, lo, hi float64, rng *rand.Rand) [][]float64 {
	points := make([][]float64, n)
	for i := range points {
		p := make([]float64, dims)
		for j := range p {
			p[j] = lo + rng.Float64()*(hi-lo)
		}
		points[i] = p
	}
	return points
}
