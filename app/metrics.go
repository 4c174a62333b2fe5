// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/loader"
)

type metrics struct {
	loads        *prometheus.CounterVec
	loadDuration prometheus.Histogram
	records      prometheus.Gauge
	changes      *prometheus.CounterVec
	renders      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortviz",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by result.",
		}, []string{"result"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sortviz",
			Name:      "dataset_load_duration_seconds",
			Help:      "Time taken to load the dataset.",
			Buckets:   []float64{.01, .05, .25, 1, 5},
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sortviz",
			Name:      "dataset_records",
			Help:      "Number of records in the last loaded dataset.",
		}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortviz",
			Name:      "view_changes_total",
			Help:      "View state changes by kind.",
		}, []string{"change"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortviz",
			Name:      "chart_renders_total",
			Help:      "Chart images rendered by format.",
		}, []string{"format"}),
	}
	reg.MustRegister(m.loads, m.loadDuration, m.records, m.changes, m.renders)
	return m
}

// loadResult classifies a Source error for the loads counter.
func loadResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, benchdata.ErrResourceUnavailable):
		return "unavailable"
	case errors.Is(err, benchdata.ErrMalformedData):
		return "malformed"
	}
	return "error"
}

// instrument wraps src to record load counts and durations.
func (m *metrics) instrument(src loader.Source) loader.Source {
	return loader.SourceFunc(func(ctx context.Context) (*benchdata.Dataset, error) {
		start := time.Now()
		ds, err := src.Load(ctx)
		m.loadDuration.Observe(time.Since(start).Seconds())
		m.loads.WithLabelValues(loadResult(err)).Inc()
		if err == nil {
			m.records.Set(float64(len(ds.Results)))
		}
		return ds, err
	})
}
