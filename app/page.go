// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/google/safehtml/template"
	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/view"
)

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sorting Algorithm Complexity Analysis</title>
{{if .Loading}}<meta http-equiv="refresh" content="1">{{end}}
<style>
body { font-family: sans-serif; background: #111827; color: #f3f4f6; margin: 2em; }
.error { color: #fca5a5; }
.controls form { display: inline; }
button { background: #1f2937; color: #9ca3af; border: 1px solid #374151; padding: .3em .8em; border-radius: 6px; }
button.active { color: #f3f4f6; border-color: #6366f1; }
.stats { display: flex; gap: 1em; margin-top: 1em; }
.stat-card { background: #1f2937; padding: 1em; border-radius: 8px; }
.stat-value { font-size: 1.5em; }
table { border-collapse: collapse; margin-top: 1em; }
td, th { padding: .2em .8em; text-align: right; }
</style>
</head>
<body>
{{if .Loading}}
<div class="loading"><p>Loading experiment data...</p></div>
{{else if .Failed}}
<div class="error">
<h2>Error Loading Data</h2>
<p>{{.Snap.Message}}</p>
<div class="instructions">
<h3>To generate the data:</h3>
<ol>
<li>Open a terminal in the project root</li>
<li>Run: <code>make run</code></li>
<li>Wait for the experiment to complete</li>
<li>Reload the data</li>
</ol>
<form method="post" action="/api/reload"><input type="hidden" name="redirect" value="1"><button type="submit">Reload</button></form>
</div>
</div>
{{else}}
<header>
<h1>Sorting Algorithm Complexity Analysis</h1>
<p class="subtitle">Empirical comparison of {{len .Snap.Algorithms}} sorting algorithms, {{.Snap.Stats.Trials}} trials per size</p>
</header>
<div class="controls">
<div class="metric-selector">
<label>Metric:</label>
{{range .Metrics}}<form method="post" action="/api/metric"><input type="hidden" name="redirect" value="1"><input type="hidden" name="m" value="{{.Name}}">{{if .Active}}<button type="submit" class="active">{{.Label}}</button>{{else}}<button type="submit">{{.Label}}</button>{{end}}</form>
{{end}}
</div>
<div class="algorithm-toggles">
<label>Algorithms:</label>
{{range .Toggles}}<form method="post" action="/api/toggle"><input type="hidden" name="redirect" value="1"><input type="hidden" name="algorithm" value="{{.Algorithm}}">{{if .Visible}}<button type="submit" class="active">{{.Algorithm}}</button>{{else}}<button type="submit">{{.Algorithm}}</button>{{end}}</form>
{{end}}
</div>
</div>
<div class="chart-container"><img src="/chart.png" alt="Line chart of the visible algorithms"></div>
<div class="stats">
<div class="stat-card"><div class="stat-label">Total Array Sizes Tested</div><div class="stat-value">{{.Snap.Stats.Sizes}}</div></div>
<div class="stat-card"><div class="stat-label">Trials per Size</div><div class="stat-value">{{.Snap.Stats.Trials}}</div></div>
<div class="stat-card"><div class="stat-label">Max Array Size</div><div class="stat-value">{{.Snap.Stats.MaxSize}}</div></div>
</div>
{{with .Growth}}
<table class="growth">
<tr><th>Algorithm</th><th>Growth</th></tr>
{{range .}}<tr><td>{{.Algorithm}}</td><td>n^{{fixed .Exponent}}</td></tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"fixed": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
}).Parse(pageHTML))

type pageData struct {
	Loading, Failed bool
	Snap            view.Snapshot
	Metrics         []metricButton
	Toggles         []toggle
	Growth          []Growth
}

type metricButton struct {
	Name, Label string
	Active      bool
}

type toggle struct {
	Algorithm string
	Visible   bool
}

func newPageData(snap view.Snapshot) *pageData {
	d := &pageData{
		Loading: snap.Phase == view.PhaseLoading,
		Failed:  snap.Phase == view.PhaseError,
		Snap:    snap,
		Growth:  newStateResponse(snap).Growth,
	}
	for _, m := range benchdata.Metrics {
		d.Metrics = append(d.Metrics, metricButton{string(m), m.Label(), m == snap.Metric})
	}
	for _, alg := range snap.Algorithms {
		d.Toggles = append(d.Toggles, toggle{alg, snap.Visibility[alg]})
	}
	return d
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := a.view(r.Context()).Snapshot()

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, newPageData(snap)); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if snap.Phase == view.PhaseError {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	w.Write(buf.Bytes())
}
