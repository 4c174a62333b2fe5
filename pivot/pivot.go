// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pivot turns a flat list of per-(algorithm, size) records
// into per-size rows with one column per algorithm, the shape a
// multi-series line chart consumes.
//
// Rows are sorted by size and every size appears once. A row holds a
// value for an algorithm only if some record measured that algorithm
// at that size; missing combinations are omitted rather than filled
// with zero. If several records share an (algorithm, size), the last
// one in input order wins.
package pivot

import (
	"fmt"
	"sort"

	"github.com/sortviz/sortviz/benchdata"
)

// A Row is the value of one metric for each algorithm measured at
// one input size.
type Row struct {
	Size   int                `json:"size"`
	Values map[string]float64 `json:"values"`
}

// Value returns the value of algorithm in r and whether it was
// measured.
func (r Row) Value(algorithm string) (float64, bool) {
	v, ok := r.Values[algorithm]
	return v, ok
}

// A Duplicate records that a record overwrote an earlier record for
// the same (algorithm, size).
type Duplicate struct {
	Algorithm string
	Size      int
	Index     int // index of the overwriting record in the input
	Prev      int // index of the record it overwrote
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// Warn, if non-nil, is called once for each duplicate
	// (algorithm, size) record.
	Warn func(format string, args ...interface{})
}

type key struct {
	algorithm string
	size      int
}

// A Builder accumulates records into rows for a single metric.
type Builder struct {
	metric benchdata.Metric
	warn   func(format string, args ...interface{})

	rows  map[int]*Row
	seen  map[key]int
	n     int
	dupes []Duplicate
}

// NewBuilder returns a Builder that pivots on metric. It returns an
// error wrapping benchdata.ErrInvalidMetric if metric is not valid.
func NewBuilder(metric benchdata.Metric, opts *BuilderOptions) (*Builder, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("pivot: %w %q", benchdata.ErrInvalidMetric, string(metric))
	}
	b := &Builder{
		metric: metric,
		rows:   make(map[int]*Row),
		seen:   make(map[key]int),
	}
	if opts != nil {
		b.warn = opts.Warn
	}
	return b, nil
}

// Add folds rec into the row for its size, replacing any earlier
// value for the same algorithm.
func (b *Builder) Add(rec benchdata.Record) {
	idx := b.n
	b.n++

	row := b.rows[rec.Size]
	if row == nil {
		row = &Row{Size: rec.Size, Values: make(map[string]float64)}
		b.rows[rec.Size] = row
	}
	k := key{rec.Algorithm, rec.Size}
	if prev, ok := b.seen[k]; ok {
		d := Duplicate{Algorithm: rec.Algorithm, Size: rec.Size, Index: idx, Prev: prev}
		b.dupes = append(b.dupes, d)
		if b.warn != nil {
			b.warn("duplicate record for %s at size %d (record %d replaces record %d)\n", d.Algorithm, d.Size, d.Index, d.Prev)
		}
	}
	b.seen[k] = idx
	// The metric was validated by NewBuilder.
	v, _ := b.metric.Value(rec)
	row.Values[rec.Algorithm] = v
}

// Rows returns the accumulated rows sorted by ascending size. The
// result does not share memory with b; the returned slice is empty,
// not nil, if no records were added.
func (b *Builder) Rows() []Row {
	rows := make([]Row, 0, len(b.rows))
	for _, r := range b.rows {
		vals := make(map[string]float64, len(r.Values))
		for a, v := range r.Values {
			vals[a] = v
		}
		rows = append(rows, Row{Size: r.Size, Values: vals})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Size < rows[j].Size
	})
	return rows
}

// Duplicates returns the duplicate records seen so far, in input order.
func (b *Builder) Duplicates() []Duplicate {
	return append([]Duplicate(nil), b.dupes...)
}

// Pivot returns the rows of ds for metric.
func Pivot(ds *benchdata.Dataset, metric benchdata.Metric) ([]Row, error) {
	return PivotWithOptions(ds, metric, nil)
}

// PivotWithOptions is like Pivot but passes opts to the Builder.
func PivotWithOptions(ds *benchdata.Dataset, metric benchdata.Metric, opts *BuilderOptions) ([]Row, error) {
	b, err := NewBuilder(metric, opts)
	if err != nil {
		return nil, err
	}
	for _, rec := range ds.Results {
		b.Add(rec)
	}
	return b.Rows(), nil
}

// Algorithms returns the algorithms that have at least one value in
// rows. Names in order come first, in that order; any others follow
// sorted by name.
func Algorithms(rows []Row, order []string) []string {
	present := make(map[string]bool)
	for _, r := range rows {
		for a := range r.Values {
			present[a] = true
		}
	}
	var out []string
	for _, a := range order {
		if present[a] {
			out = append(out, a)
			delete(present, a)
		}
	}
	var rest []string
	for a := range present {
		rest = append(rest, a)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
