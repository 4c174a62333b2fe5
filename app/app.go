// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app implements the sortviz viewer server. Construct an App
// with a dataset Source and call RegisterOnMux to connect it with an
// HTTP server.
package app

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/internal/config"
	"github.com/sortviz/sortviz/loader"
	"github.com/sortviz/sortviz/view"
)

// App manages the viewer. The zero value is not usable; Source must
// be set.
//
// An App holds one mounted view at a time. The view loads its dataset
// on first use and keeps the outcome until Reload mounts a new one.
type App struct {
	// Source is the dataset location.
	Source loader.Source

	// Metric and Hide set the initial metric and hidden
	// algorithms of each newly mounted view. An empty Metric means
	// comparisons.
	Metric benchdata.Metric
	Hide   []string

	// LoadTimeout bounds each load. Zero means no limit.
	LoadTimeout time.Duration

	// DataDir, if set, is served at loader.DefaultPath as the
	// directory holding data.json.
	DataDir string

	// Log receives warnings and state changes. If nil, the
	// standard logrus logger is used.
	Log logrus.FieldLogger

	// Registry receives the app's metrics and is served at
	// /metrics. If nil, a new registry is created.
	Registry *prometheus.Registry

	initOnce sync.Once
	metrics  *metrics
	src      loader.Source

	mu  sync.Mutex
	cur *mount
}

// A mount is one lifetime of the view: created on first use or by
// Reload, loaded at most once.
type mount struct {
	state   *view.State
	initial sync.Once
}

func (a *App) init() {
	a.initOnce.Do(func() {
		if a.Log == nil {
			a.Log = logrus.StandardLogger()
		}
		if a.Registry == nil {
			a.Registry = prometheus.NewRegistry()
		}
		a.metrics = newMetrics(a.Registry)
		a.src = a.metrics.instrument(a.Source)
	})
}

// RegisterOnMux registers the app's URLs on mux.
func (a *App) RegisterOnMux(mux *http.ServeMux) {
	a.init()
	mux.HandleFunc("/", a.index)
	mux.HandleFunc("/api/state", a.apiState)
	mux.HandleFunc("/api/metric", a.apiMetric)
	mux.HandleFunc("/api/toggle", a.apiToggle)
	mux.HandleFunc("/api/reload", a.apiReload)
	mux.HandleFunc("/chart.png", a.chart("png"))
	mux.HandleFunc("/chart.svg", a.chart("svg"))
	mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	if a.DataDir != "" {
		file := filepath.Join(a.DataDir, filepath.Base(loader.DefaultPath))
		mux.HandleFunc(loader.DefaultPath, func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, file)
		})
	}
}

// newMount creates a view in the Loading phase with the App's hidden
// algorithms applied.
func (a *App) newMount() *mount {
	st := view.New(&view.Options{Warn: config.Warner(a.Log)})
	for _, alg := range a.Hide {
		if err := st.ToggleVisibility(alg); err != nil {
			a.Log.WithField("algorithm", alg).Warn("cannot hide: ", err)
		}
	}
	st.Subscribe(func(c view.Change, snap view.Snapshot) {
		a.metrics.changes.WithLabelValues(c.String()).Inc()
		log := a.Log.WithFields(logrus.Fields{"change": c.String(), "phase": snap.Phase.String()})
		switch c {
		case view.ChangeFailed:
			log.WithField("error", snap.Message).Error("dataset load failed")
		case view.ChangeLoaded:
			log.WithFields(logrus.Fields{"sizes": snap.Stats.Sizes, "trials": snap.Stats.Trials}).Info("dataset loaded")
		default:
			log.Debug("view changed")
		}
	})
	return &mount{state: st}
}

// view returns the current view, loaded. It mounts a view if there is
// none. Load failures are part of the view's state, not errors.
func (a *App) view(ctx context.Context) *view.State {
	a.mu.Lock()
	if a.cur == nil {
		a.cur = a.newMount()
	}
	m := a.cur
	a.mu.Unlock()

	a.load(ctx, m)
	return m.state
}

func (a *App) load(ctx context.Context, m *mount) {
	// A client that goes away must not fail the shared load.
	ctx = context.WithoutCancel(ctx)
	if a.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.LoadTimeout)
		defer cancel()
	}
	if err := m.state.Load(ctx, a.src); err != nil {
		return
	}
	m.initial.Do(func() {
		if a.Metric == "" || a.Metric == benchdata.Comparisons {
			return
		}
		if err := m.state.SetMetric(a.Metric); err != nil {
			a.Log.WithField("metric", a.Metric).Warn("cannot set initial metric: ", err)
		}
	})
}

// Reload discards the current view and loads a new one from Source.
func (a *App) Reload(ctx context.Context) *view.State {
	a.init()
	m := a.newMount()
	a.mu.Lock()
	a.cur = m
	a.mu.Unlock()
	a.load(ctx, m)
	return m.state
}

// Snapshot returns the current view, loading it if necessary.
func (a *App) Snapshot(ctx context.Context) view.Snapshot {
	a.init()
	return a.view(ctx).Snapshot()
}

// statusFor maps view errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, view.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, benchdata.ErrInvalidMetric), errors.Is(err, view.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
