// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"errors"
	"testing"
)

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics {
		got, err := ParseMetric(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMetric(%q) = %q, %v", m, got, err)
		}
	}
	for _, bad := range []string{"", "Comparisons", "time"} {
		if _, err := ParseMetric(bad); !errors.Is(err, ErrInvalidMetric) {
			t.Errorf("ParseMetric(%q): want ErrInvalidMetric, got %v", bad, err)
		}
	}
}

func TestMetricValue(t *testing.T) {
	r := Record{Algorithm: "Quick Sort", Size: 10, Comparisons: 25, Swaps: 9}
	check := func(m Metric, want float64) {
		t.Helper()
		got, err := m.Value(r)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if got != want {
			t.Errorf("%s: want %v, got %v", m, want, got)
		}
	}
	check(Comparisons, 25)
	check(Swaps, 9)

	if _, err := Metric("time").Value(r); !errors.Is(err, ErrInvalidMetric) {
		t.Errorf("want ErrInvalidMetric, got %v", err)
	}
}

func TestUnavailableError(t *testing.T) {
	err := error(&UnavailableError{Resource: "http://x/results/data.json", StatusCode: 404})
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Error("UnavailableError does not match ErrResourceUnavailable")
	}
	if errors.Is(err, ErrMalformedData) {
		t.Error("UnavailableError matches ErrMalformedData")
	}
	if err.Error() != UnavailableHint {
		t.Errorf("want %q, got %q", UnavailableHint, err.Error())
	}
	var ue *UnavailableError
	if !errors.As(err, &ue) || ue.Detail() != "http://x/results/data.json: 404 Not Found" {
		t.Errorf("bad detail %q", ue.Detail())
	}
}

func TestUnknownAlgorithms(t *testing.T) {
	d := &Dataset{Results: []Record{
		{Algorithm: "Bubble Sort", Size: 1},
		{Algorithm: "Shell Sort", Size: 1},
		{Algorithm: "Shell Sort", Size: 2},
		{Algorithm: "Tim Sort", Size: 2},
	}}
	got := d.UnknownAlgorithms()
	if len(got) != 2 || got[0] != "Shell Sort" || got[1] != "Tim Sort" {
		t.Errorf("UnknownAlgorithms = %q", got)
	}
	if n := d.Sizes(); n != 2 {
		t.Errorf("Sizes = %d, want 2", n)
	}
}
