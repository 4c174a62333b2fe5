// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"bytes"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/chart"
	"github.com/sortviz/sortviz/view"
)

// StateResponse is the JSON form of the view served by /api/state and
// returned by the mutating endpoints.
type StateResponse struct {
	view.Snapshot
	Growth []Growth `json:"growth,omitempty"`
}

// Growth is the fitted growth of one visible series: values grow
// roughly as Coef·n^Exponent.
type Growth struct {
	Algorithm string  `json:"algorithm"`
	Exponent  float64 `json:"exponent"`
	Coef      float64 `json:"coef"`
}

func newStateResponse(snap view.Snapshot) *StateResponse {
	resp := &StateResponse{Snapshot: snap}
	for _, s := range snap.Summaries() {
		if s.Fitted() {
			resp.Growth = append(resp.Growth, Growth{s.Algorithm, s.Exponent, s.Coef})
		}
	}
	return resp
}

func (a *App) writeState(w http.ResponseWriter, r *http.Request, snap view.Snapshot) {
	if r.FormValue("redirect") != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data, err := json.Marshal(newStateResponse(snap))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (a *App) apiState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.writeState(w, r, a.view(r.Context()).Snapshot())
}

func (a *App) apiMetric(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	m, err := benchdata.ParseMetric(r.Form.Get("m"))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	st := a.view(r.Context())
	if err := st.SetMetric(m); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	a.writeState(w, r, st.Snapshot())
}

func (a *App) apiToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	alg := r.Form.Get("algorithm")
	if alg == "" {
		http.Error(w, "missing algorithm parameter", 400)
		return
	}
	st := a.view(r.Context())
	if err := st.ToggleVisibility(alg); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	a.writeState(w, r, st.Snapshot())
}

func (a *App) apiReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.writeState(w, r, a.Reload(r.Context()).Snapshot())
}

// chart serves the current chart as an image in format. The query
// parameter log=1 selects a log-scale Y axis.
func (a *App) chart(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := a.view(r.Context()).Snapshot()
		if snap.Phase != view.PhaseReady {
			http.Error(w, snap.Message, http.StatusServiceUnavailable)
			return
		}
		in := chart.Input{
			Rows:       snap.Rows,
			Metric:     snap.Metric,
			Visibility: snap.Visibility,
			Order:      snap.Algorithms,
		}
		var buf bytes.Buffer
		if err := chart.Render(&buf, format, in, &chart.Options{LogScale: r.FormValue("log") == "1"}); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		a.metrics.renders.WithLabelValues(format).Inc()
		w.Header().Set("Content-Type", chart.ContentType(format))
		w.Header().Set("Cache-Control", "no-store")
		w.Write(buf.Bytes())
	}
}
