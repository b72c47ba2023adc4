// Package cli implements the clarans command: flag and config file handling,
// point loading, the search itself and result output.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// Options holds every user-facing setting. Field tags name the keys of the
// optional TOML config file.
type Options struct {
	Config string `toml:"-"`

	In        string `toml:"in"`
	Out       string `toml:"out"`
	Header    bool   `toml:"header"`
	Delimiter string `toml:"delimiter"`

	Clusters       int     `toml:"clusters"`
	Minima         int     `toml:"minima"`
	Neighbors      int     `toml:"neighbors"`
	Workers        int     `toml:"workers"`
	Metric         string  `toml:"metric"`
	MinkowskiP     float64 `toml:"minkowski_p"`
	Acceptance     string  `toml:"acceptance"`
	ExcludeCurrent bool    `toml:"exclude_current"`
	Seed           uint64  `toml:"seed"`

	Generate int     `toml:"generate"`
	Dims     int     `toml:"dims"`
	RangeMin float64 `toml:"range_min"`
	RangeMax float64 `toml:"range_max"`

	Summary   bool   `toml:"summary"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Defaults returns the settings used when neither flags nor a config file
// say otherwise.
func Defaults() Options {
	return Options{
		In:         "-",
		Out:        "-",
		Delimiter:  ",",
		Clusters:   4,
		Minima:     100,
		Neighbors:  100,
		Workers:    runtime.NumCPU(),
		Metric:     "euclidean",
		MinkowskiP: 2,
		Acceptance: "first",
		Dims:       2,
		RangeMin:   -100,
		RangeMax:   100,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// ErrUsage marks invalid command-line input.
var ErrUsage = errors.New("usage error")

func newFlagSet(o *Options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("clarans", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&o.Config, "config", "", "TOML config `file`; flags given explicitly override it")
	fs.StringVar(&o.In, "in", o.In, "input `file` of points, \"-\" for stdin")
	fs.StringVar(&o.Out, "out", o.Out, "output `file` for medoids, \"-\" for stdout")
	fs.BoolVar(&o.Header, "header", o.Header, "input has a header row and output gets one")
	fs.StringVar(&o.Delimiter, "delimiter", o.Delimiter, "field delimiter")

	fs.IntVar(&o.Clusters, "k", o.Clusters, "number of clusters (medoids)")
	fs.IntVar(&o.Minima, "minima", o.Minima, "number of restarts")
	fs.IntVar(&o.Neighbors, "neighbors", o.Neighbors, "neighbor trials per restart")
	fs.IntVar(&o.Workers, "workers", o.Workers, "number of parallel workers")
	fs.StringVar(&o.Metric, "metric", o.Metric, "distance: euclidean, manhattan, chebyshev, cosine or minkowski")
	fs.Float64Var(&o.MinkowskiP, "p", o.MinkowskiP, "exponent of the minkowski metric")
	fs.StringVar(&o.Acceptance, "acceptance", o.Acceptance, "neighbor budget policy: first or budget")
	fs.BoolVar(&o.ExcludeCurrent, "exclude-current", o.ExcludeCurrent, "never propose a current medoid as replacement")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "random seed, 0 for a random run")

	fs.IntVar(&o.Generate, "generate", o.Generate, "cluster `n` random points instead of reading input")
	fs.IntVar(&o.Dims, "dims", o.Dims, "dimensions of generated points")
	fs.Float64Var(&o.RangeMin, "range-min", o.RangeMin, "lower bound of generated coordinates")
	fs.Float64Var(&o.RangeMax, "range-max", o.RangeMax, "upper bound of generated coordinates")

	fs.BoolVar(&o.Summary, "summary", o.Summary, "log per-cluster statistics")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "debug, info, warn or error")
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, "text or json")
	return fs
}

// Parse builds Options from args. A -config file is applied on top of the
// defaults, then every flag present in args is applied on top of the file.
func Parse(args []string, output io.Writer) (Options, error) {
	o := Defaults()
	fs := newFlagSet(&o, output)
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("%w: unexpected arguments %q", ErrUsage, fs.Args())
	}

	if o.Config != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

		fromFile := Defaults()
		md, err := toml.DecodeFile(o.Config, &fromFile)
		if err != nil {
			return o, fmt.Errorf("config %s: %w", o.Config, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return o, fmt.Errorf("%w: config %s: unknown keys %v", ErrUsage, o.Config, undecoded)
		}
		fromFile.Config = o.Config
		o = fromFile
		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return o, fmt.Errorf("%w: -%s: %w", ErrUsage, name, err)
			}
		}
	}

	return o, o.validate()
}

func (o *Options) validate() error {
	switch {
	case o.Clusters < 1:
		return fmt.Errorf("%w: -k must be >= 1, got %d", ErrUsage, o.Clusters)
	case o.Minima < 1:
		return fmt.Errorf("%w: -minima must be >= 1, got %d", ErrUsage, o.Minima)
	case o.Neighbors < 0:
		return fmt.Errorf("%w: -neighbors must be >= 0, got %d", ErrUsage, o.Neighbors)
	case o.Workers < 1:
		return fmt.Errorf("%w: -workers must be >= 1, got %d", ErrUsage, o.Workers)
	case utf8.RuneCountInString(o.Delimiter) != 1:
		return fmt.Errorf("%w: -delimiter must be a single character, got %q", ErrUsage, o.Delimiter)
	case o.Generate < 0:
		return fmt.Errorf("%w: -generate must be >= 0, got %d", ErrUsage, o.Generate)
	case o.Generate > 0 && o.Dims < 1:
		return fmt.Errorf("%w: -dims must be >= 1, got %d", ErrUsage, o.Dims)
	case o.Generate > 0 && o.RangeMax <= o.RangeMin:
		return fmt.Errorf("%w: -range-max must exceed -range-min", ErrUsage)
	case o.LogFormat != "text" && o.LogFormat != "json":
		return fmt.Errorf("%w: -log-format must be text or json, got %q", ErrUsage, o.LogFormat)
	}
	if _, err := o.level(); err != nil {
		return err
	}
	return nil
}

func (o *Options) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: -log-level: %w", ErrUsage, err)
	}
	return l, nil
}

func (o *Options) comma() rune {
	r, _ := utf8.DecodeRuneInString(o.Delimiter)
	return r
}
