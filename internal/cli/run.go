package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/TrevorS/clarans"
	"github.com/TrevorS/clarans/internal/pointio"
)

// Main runs the command and returns the process exit code.
func Main(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := Parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	if err := Run(ctx, o, stdin, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		// -k is only checked against the input once the points are read.
		if errors.Is(err, clarans.ErrInvalidClusters) {
			return 2
		}
		return 1
	}
	return 0
}

func newLogger(o Options, w io.Writer) *clarans.Logger {
	level, _ := o.level()
	if o.LogFormat == "json" {
		return clarans.NewJSONLogger(w, level)
	}
	return clarans.NewTextLogger(w, level)
}

// Run loads the points, searches for medoids and writes them out.
func Run(ctx context.Context, o Options, stdin io.Reader, stdout, stderr io.Writer) error {
	log := newLogger(o, stderr)
	ioOpts := pointio.Options{Comma: o.comma(), Header: o.Header}

	points, header, err := loadPoints(o, ioOpts, stdin)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "points loaded", "count", len(points), "dimension", len(points[0]))

	metric, err := clarans.MetricByName(o.Metric, o.MinkowskiP)
	if err != nil {
		return err
	}

	cfg := clarans.DefaultConfig()
	cfg.NumClusters = o.Clusters
	cfg.Minima = o.Minima
	cfg.MaxNeighbors = o.Neighbors
	cfg.Workers = o.Workers
	cfg.Acceptance = clarans.Acceptance(o.Acceptance)
	cfg.ExcludeCurrent = o.ExcludeCurrent
	cfg.Logger = log
	if o.Seed != 0 {
		cfg.Rand = clarans.Seeded(o.Seed)
	}

	res, err := clarans.SearchParallel(ctx, points, metric, cfg)
	if err != nil {
		return err
	}

	if o.Summary {
		stats, err := clarans.Summarize(points, res.Medoids, metric)
		if err != nil {
			return err
		}
		for _, s := range stats {
			log.InfoContext(ctx, "cluster",
				"medoid", pointio.Format(points[s.Medoid]),
				"size", s.Size,
				"total", s.Total,
				"mean", s.Mean,
				"stddev", s.StdDev,
			)
		}
	}

	if header == nil && o.Header {
		header = pointio.DefaultHeader(len(points[0]))
	}
	medoids := clarans.Gather(points, res.Medoids.Sorted())
	return writePoints(o.Out, medoids, header, ioOpts, stdout)
}

func loadPoints(o Options, ioOpts pointio.Options, stdin io.Reader) ([][]float64, []string, error) {
	if o.Generate > 0 {
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		if o.Seed != 0 {
			rng = rand.New(rand.NewPCG(o.Seed, o.Seed))
		}
		return pointio.Generate(o.Generate, o.Dims, o.RangeMin, o.RangeMax, rng), nil, nil
	}

	r := stdin
	if o.In != "-" && o.In != "" {
		f, err := os.Open(o.In)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}
	return pointio.Read(r, ioOpts)
}

func writePoints(path string, points [][]float64, header []string, ioOpts pointio.Options, stdout io.Writer) error {
	if path == "-" || path == "" {
		return pointio.Write(stdout, points, header, ioOpts)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pointio.Write(f, points, header, ioOpts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
