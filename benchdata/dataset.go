// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdata defines the sorting benchmark dataset: the
// per-(algorithm, size) measurement records produced by the
// benchmark generator, the metadata describing how they were
// collected, and the JSON form they are exchanged in.
//
// A Dataset is read-only once decoded. Higher-level packages pivot
// it (package pivot), hold it in a view (package view), and draw it
// (package chart).
package benchdata

// A Record is one trial-averaged measurement of a single algorithm at
// a single input size.
type Record struct {
	Algorithm   string  `json:"algorithm"`
	Size        int     `json:"size"`
	Comparisons float64 `json:"comparisons"`
	Swaps       float64 `json:"swaps"`
}

// Metadata describes how a Dataset was collected.
type Metadata struct {
	// Trials is the number of runs each record was averaged over.
	Trials int `json:"trials"`

	// MaxSize is the largest input size measured.
	MaxSize int `json:"maxSize"`

	// StepSize is the distance between consecutive measured
	// sizes. It is zero if the generator did not report it.
	StepSize int `json:"stepSize,omitempty"`
}

// A Dataset is the full set of measurements loaded from one resource.
//
// Results keeps the order the records appeared in. Consumers that
// fold records together rely on that order (later records win).
type Dataset struct {
	Results  []Record `json:"results"`
	Metadata Metadata `json:"metadata"`
}

// Algorithms lists the algorithms the benchmark generator measures,
// in display order.
var Algorithms = []string{
	"Bubble Sort",
	"Insertion Sort",
	"Heap Sort",
	"Merge Sort",
	"Quick Sort",
	"Radix Sort",
}

// KnownAlgorithm reports whether name is one of Algorithms.
func KnownAlgorithm(name string) bool {
	for _, a := range Algorithms {
		if a == name {
			return true
		}
	}
	return false
}

// Sizes returns the number of distinct sizes in d.
func (d *Dataset) Sizes() int {
	seen := make(map[int]struct{})
	for _, r := range d.Results {
		seen[r.Size] = struct{}{}
	}
	return len(seen)
}

// UnknownAlgorithms returns the algorithm names in d that are not in
// Algorithms, in order of first appearance.
func (d *Dataset) UnknownAlgorithms() []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range d.Results {
		if seen[r.Algorithm] || KnownAlgorithm(r.Algorithm) {
			continue
		}
		seen[r.Algorithm] = true
		out = append(out, r.Algorithm)
	}
	return out
}
