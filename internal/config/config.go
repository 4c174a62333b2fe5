// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the command-line and environment configuration
// of the sortviz tool.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/loader"
	"github.com/urfave/cli/v2"
)

// Options is the configuration shared by all sortviz commands.
type Options struct {
	// Data is the dataset location: an http(s) URL or a file path.
	Data string

	LogLevel    string
	LoadTimeout time.Duration

	// MetricName and Hide set the initial view.
	MetricName string
	Hide       []string

	// serve
	Listen  string
	DataDir string

	// render
	Output   string
	Format   string
	Width    float64 // inches
	Height   float64 // inches
	LogScale bool
	Title    string

	// table
	CSV bool
}

// Defaults returns the default Options.
func Defaults() *Options {
	return &Options{
		Data:       "results/data.json",
		LogLevel:   "info",
		MetricName: string(benchdata.Comparisons),
		Listen:     ":8080",
		Format:     "png",
		Width:      8,
		Height:     5,
	}
}

// Metric returns the parsed MetricName.
func (o *Options) Metric() (benchdata.Metric, error) {
	return benchdata.ParseMetric(o.MetricName)
}

// Source returns the dataset source named by Data.
func (o *Options) Source() loader.Source {
	return loader.Open(o.Data)
}

// Validate checks o for values no command can use, and collects the
// flags without a Destination from c.
func (o *Options) Validate(c *cli.Context) error {
	if c != nil {
		o.Hide = c.StringSlice("hide")
	}
	if _, err := o.Metric(); err != nil {
		return err
	}
	for _, a := range o.Hide {
		if !benchdata.KnownAlgorithm(a) {
			return fmt.Errorf("--hide: unknown algorithm %q", a)
		}
	}
	if o.LoadTimeout < 0 {
		return fmt.Errorf("--load-timeout must not be negative")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("--width and --height must be positive")
	}
	return nil
}

// Logger returns a logger writing text to stderr at level.
func Logger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

// Warner adapts log to the Warn callbacks taken by the pivot and view
// packages.
func Warner(log logrus.FieldLogger) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		log.Warn(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
	}
}

// Flags returns the flags common to every command, bound to o.
func Flags(o *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Category:    "data",
			Name:        "data",
			Usage:       "dataset location, a file path or http(s) URL",
			Value:       o.Data,
			Destination: &o.Data,
			EnvVars:     []string{"SORTVIZ_DATA"},
		},
		&cli.DurationFlag{
			Category:    "data",
			Name:        "load-timeout",
			Usage:       "give up loading the dataset after this long (0 waits forever)",
			Value:       o.LoadTimeout,
			Destination: &o.LoadTimeout,
			EnvVars:     []string{"SORTVIZ_LOAD_TIMEOUT"},
		},
		&cli.StringFlag{
			Category:    "view",
			Name:        "metric",
			Usage:       "metric to show, comparisons or swaps",
			Value:       o.MetricName,
			Destination: &o.MetricName,
			EnvVars:     []string{"SORTVIZ_METRIC"},
		},
		&cli.StringSliceFlag{
			Category: "view",
			Name:     "hide",
			Usage:    "algorithm to hide (repeatable)",
			EnvVars:  []string{"SORTVIZ_HIDE"},
		},
		&cli.StringFlag{
			Category:    "core",
			Name:        "log-level",
			Usage:       "log level, values are (trace,debug,info,warn,error,fatal,panic)",
			Value:       o.LogLevel,
			Destination: &o.LogLevel,
			EnvVars:     []string{"SORTVIZ_LOG_LEVEL"},
		},
	}
}

// ServeFlags returns the flags of the serve command.
func ServeFlags(o *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Category:    "core",
			Name:        "listen",
			Usage:       "http address to listen to",
			Value:       o.Listen,
			Destination: &o.Listen,
			EnvVars:     []string{"SORTVIZ_LISTEN"},
		},
		&cli.StringFlag{
			Category:    "data",
			Name:        "data-dir",
			Usage:       "serve this directory's data.json at " + loader.DefaultPath,
			Destination: &o.DataDir,
			EnvVars:     []string{"SORTVIZ_DATA_DIR"},
		},
	}
}

// RenderFlags returns the flags of the render command.
func RenderFlags(o *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "o",
			Aliases:     []string{"output"},
			Usage:       "write the image to `file` (default stdout)",
			Destination: &o.Output,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "image format, png or svg",
			Value:       o.Format,
			Destination: &o.Format,
		},
		&cli.Float64Flag{
			Name:        "width",
			Usage:       "image width in inches",
			Value:       o.Width,
			Destination: &o.Width,
		},
		&cli.Float64Flag{
			Name:        "height",
			Usage:       "image height in inches",
			Value:       o.Height,
			Destination: &o.Height,
		},
		&cli.BoolFlag{
			Name:        "log",
			Usage:       "use a log scale for the Y axis",
			Destination: &o.LogScale,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "chart title",
			Destination: &o.Title,
		},
	}
}

// TableFlags returns the flags of the table command.
func TableFlags(o *Options) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "csv",
			Usage:       "write CSV instead of an aligned table",
			Destination: &o.CSV,
		},
	}
}
