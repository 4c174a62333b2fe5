// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import "fmt"

// A Metric names one measured quantity of a Record.
type Metric string

const (
	Comparisons Metric = "comparisons"
	Swaps       Metric = "swaps"
)

// Metrics lists the valid metrics in display order.
var Metrics = []Metric{Comparisons, Swaps}

// ParseMetric returns the Metric named by s. It returns an error
// wrapping ErrInvalidMetric if s does not name a metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w %q (want comparisons or swaps)", ErrInvalidMetric, s)
	}
	return m, nil
}

// Valid reports whether m is one of Metrics.
func (m Metric) Valid() bool {
	return m == Comparisons || m == Swaps
}

// Label returns the human-readable axis label for m.
func (m Metric) Label() string {
	switch m {
	case Comparisons:
		return "Comparisons"
	case Swaps:
		return "Swaps"
	}
	return string(m)
}

// Value returns r's measurement for metric m.
func (m Metric) Value(r Record) (float64, error) {
	switch m {
	case Comparisons:
		return r.Comparisons, nil
	case Swaps:
		return r.Swaps, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidMetric, string(m))
}
