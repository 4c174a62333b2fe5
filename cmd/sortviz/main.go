// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sortviz views sorting algorithm benchmark results.
//
// Usage:
//
//	sortviz serve [--listen addr] [--data-dir dir] [flags]
//	sortviz render [-o file] [--format png|svg] [--log] [flags]
//	sortviz table [--csv] [flags]
//
// Each command loads the dataset written by the benchmark generator,
// by default results/data.json, once. The --data flag names another
// file or an http(s) URL. --metric selects comparisons (the default)
// or swaps, and --hide, which may be repeated, hides an algorithm.
//
// Serve runs an interactive viewer: a page with a line chart, a
// metric selector and a toggle for each algorithm. Render writes the
// chart as an image. Table prints the data behind the chart, one row
// per input size and one column per visible algorithm. An algorithm
// with no measurement at a size gets a blank cell.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sortviz/sortviz/app"
	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/chart"
	"github.com/sortviz/sortviz/internal/config"
	"github.com/sortviz/sortviz/internal/texttab"
	"github.com/sortviz/sortviz/loader"
	"github.com/sortviz/sortviz/view"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sortviz: %v\n", err)
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer, args []string) error {
	o := config.Defaults()
	log := logrus.New()
	log.SetOutput(stderr)

	setup := func(c *cli.Context) error {
		if err := o.Validate(c); err != nil {
			return err
		}
		l, err := config.Logger(o.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(l.GetLevel())
		log.SetFormatter(l.Formatter)
		return nil
	}

	a := &cli.App{
		Name:      "sortviz",
		Usage:     "view sorting algorithm benchmark results",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the interactive viewer",
				Flags:  append(config.Flags(o), config.ServeFlags(o)...),
				Before: setup,
				Action: func(c *cli.Context) error {
					return serve(c.Context, o, log)
				},
			},
			{
				Name:   "render",
				Usage:  "write the chart as an image",
				Flags:  append(config.Flags(o), config.RenderFlags(o)...),
				Before: setup,
				Action: func(c *cli.Context) error {
					return render(c.Context, c.App.Writer, o, log)
				},
			},
			{
				Name:   "table",
				Usage:  "print the chart data as a table",
				Flags:  append(config.Flags(o), config.TableFlags(o)...),
				Before: setup,
				Action: func(c *cli.Context) error {
					snap, err := load(c.Context, o, log)
					if err != nil {
						return err
					}
					if o.CSV {
						return writeCSV(c.App.Writer, snap)
					}
					return writeTable(c.App.Writer, snap)
				},
			},
		},
	}
	return a.Run(args)
}

// load mounts a view, loads it once and applies the configured
// metric and hidden algorithms.
func load(ctx context.Context, o *config.Options, log logrus.FieldLogger) (view.Snapshot, error) {
	st := view.New(&view.Options{Warn: config.Warner(log)})
	for _, alg := range o.Hide {
		if err := st.ToggleVisibility(alg); err != nil {
			return view.Snapshot{}, err
		}
	}
	if o.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.LoadTimeout)
		defer cancel()
	}
	if err := st.Load(ctx, o.Source()); err != nil {
		var ue *benchdata.UnavailableError
		if errors.As(err, &ue) {
			log.WithField("resource", ue.Resource).Debug(ue.Detail())
		}
		return view.Snapshot{}, err
	}
	m, err := o.Metric()
	if err != nil {
		return view.Snapshot{}, err
	}
	if err := st.SetMetric(m); err != nil {
		return view.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeTable prints the rows of snap as an aligned table followed by
// the dataset stats and the growth of each visible series.
func writeTable(w io.Writer, snap view.Snapshot) error {
	var tab texttab.Table
	for col := 0; col <= len(snap.Visible); col++ {
		tab.SetRight(col)
	}
	tab.Row().Cell("size")
	for _, alg := range snap.Visible {
		tab.Cell(alg)
	}
	tab.Rule()
	for _, r := range snap.Rows {
		tab.Row().Cell(strconv.Itoa(r.Size))
		for _, alg := range snap.Visible {
			v, ok := r.Value(alg)
			if !ok {
				tab.Cell("")
				continue
			}
			tab.Cell(formatValue(v))
		}
	}
	fmt.Fprintf(w, "%s\n\n", snap.Metric.Label())
	if err := tab.Format(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nsizes tested: %d, trials per size: %d, max size: %d\n",
		snap.Stats.Sizes, snap.Stats.Trials, snap.Stats.MaxSize)

	var growth texttab.Table
	for _, s := range snap.Summaries() {
		if s.Fitted() {
			growth.Row().Cell(s.Algorithm).Cell(fmt.Sprintf("n^%.2f", s.Exponent))
		}
	}
	fmt.Fprintln(w)
	return growth.Format(w)
}

// writeCSV prints the rows of snap as CSV. Missing measurements are
// empty fields.
func writeCSV(w io.Writer, snap view.Snapshot) error {
	cw := csv.NewWriter(w)
	cw.Write(append([]string{"size"}, snap.Visible...))
	for _, r := range snap.Rows {
		rec := []string{strconv.Itoa(r.Size)}
		for _, alg := range snap.Visible {
			if v, ok := r.Value(alg); ok {
				rec = append(rec, formatValue(v))
			} else {
				rec = append(rec, "")
			}
		}
		cw.Write(rec)
	}
	cw.Flush()
	return cw.Error()
}

func render(ctx context.Context, stdout io.Writer, o *config.Options, log logrus.FieldLogger) error {
	snap, err := load(ctx, o, log)
	if err != nil {
		return err
	}
	in := chart.Input{
		Rows:       snap.Rows,
		Metric:     snap.Metric,
		Visibility: snap.Visibility,
		Order:      snap.Algorithms,
	}
	opts := &chart.Options{
		Title:    o.Title,
		Width:    vg.Length(o.Width) * vg.Inch,
		Height:   vg.Length(o.Height) * vg.Inch,
		LogScale: o.LogScale,
	}
	if o.Output == "" {
		return chart.Render(stdout, o.Format, in, opts)
	}
	f, err := os.Create(o.Output)
	if err != nil {
		return err
	}
	if err := chart.Render(f, o.Format, in, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func serve(ctx context.Context, o *config.Options, log *logrus.Logger) error {
	m, err := o.Metric()
	if err != nil {
		return err
	}
	src := o.Source()
	if o.DataDir != "" && o.Data == config.Defaults().Data {
		src = loader.File{Path: filepath.Join(o.DataDir, filepath.Base(loader.DefaultPath))}
	}
	a := &app.App{
		Source:      src,
		Metric:      m,
		Hide:        o.Hide,
		LoadTimeout: o.LoadTimeout,
		DataDir:     o.DataDir,
		Log:         log,
	}
	mux := http.NewServeMux()
	a.RegisterOnMux(mux)
	srv := &http.Server{Addr: o.Listen, Handler: mux}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(sctx)
	}()

	// Load eagerly so problems with the dataset are logged at startup.
	go a.Snapshot(ctx)

	log.WithField("addr", o.Listen).Info("listening")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
