// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"github.com/sortviz/sortviz/internal/scale"
	"gonum.org/v1/plot"
)

// siTicks relabels the major ticks of an underlying Ticker with a
// common SI prefix, so an axis reads 250k, 500k rather than 2.5e+05.
type siTicks struct {
	plot.Ticker
}

func (t siTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.Ticker.Ticks(min, max)
	var vals []float64
	for _, tk := range ticks {
		if tk.Label != "" {
			vals = append(vals, tk.Value)
		}
	}
	s := scale.Common(vals)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = s.Format(ticks[i].Value)
		}
	}
	return ticks
}
