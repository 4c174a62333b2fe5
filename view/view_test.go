// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/loader"
	"github.com/sortviz/sortviz/pivot"
)

func testDataset() *benchdata.Dataset {
	return &benchdata.Dataset{
		Results: []benchdata.Record{
			{Algorithm: "Bubble Sort", Size: 10, Comparisons: 45, Swaps: 20},
			{Algorithm: "Merge Sort", Size: 10, Comparisons: 33, Swaps: 15},
			{Algorithm: "Bubble Sort", Size: 20, Comparisons: 190, Swaps: 95},
		},
		Metadata: benchdata.Metadata{Trials: 5, MaxSize: 20, StepSize: 10},
	}
}

func static(ds *benchdata.Dataset, err error) (loader.Source, *int32) {
	var calls int32
	return loader.SourceFunc(func(ctx context.Context) (*benchdata.Dataset, error) {
		atomic.AddInt32(&calls, 1)
		return ds, err
	}), &calls
}

func TestNew(t *testing.T) {
	s := New(nil)
	snap := s.Snapshot()
	if snap.Phase != PhaseLoading || snap.Metric != benchdata.Comparisons {
		t.Errorf("want loading/comparisons, got %v/%v", snap.Phase, snap.Metric)
	}
	if len(snap.Visibility) != len(benchdata.Algorithms) {
		t.Fatalf("want %d visibility entries, got %v", len(benchdata.Algorithms), snap.Visibility)
	}
	for _, a := range benchdata.Algorithms {
		if !snap.Visibility[a] {
			t.Errorf("%s not visible initially", a)
		}
	}
	if snap.Rows != nil {
		t.Errorf("rows before load: %v", snap.Rows)
	}
}

func TestLoadReady(t *testing.T) {
	s := New(nil)
	src, calls := static(testDataset(), nil)
	if err := s.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseReady {
		t.Fatalf("want ready, got %v", snap.Phase)
	}
	want := []pivot.Row{
		{Size: 10, Values: map[string]float64{"Bubble Sort": 45, "Merge Sort": 33}},
		{Size: 20, Values: map[string]float64{"Bubble Sort": 190}},
	}
	if diff := cmp.Diff(want, snap.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Bubble Sort", "Merge Sort"}, snap.Visible); diff != "" {
		t.Errorf("visible (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Stats{Sizes: 2, Trials: 5, MaxSize: 20, StepSize: 10}, snap.Stats); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}

	// Settled: no second fetch.
	if err := s.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("want 1 load, got %d", n)
	}
}

func TestLoadNotFound(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := New(nil)
	var changes []Change
	s.Subscribe(func(c Change, _ Snapshot) { changes = append(changes, c) })

	err := s.Load(context.Background(), &loader.Client{BaseURL: srv.URL})
	if !errors.Is(err, benchdata.ErrResourceUnavailable) {
		t.Fatalf("want ErrResourceUnavailable, got %v", err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseError || snap.Message != "Data file not found. Run the data-generation step first!" {
		t.Errorf("got phase %v message %q", snap.Phase, snap.Message)
	}
	if snap.Rows != nil {
		t.Errorf("rows after failed load: %v", snap.Rows)
	}
	if diff := cmp.Diff([]Change{ChangeFailed}, changes); diff != "" {
		t.Errorf("changes (-want +got):\n%s", diff)
	}

	// Error is terminal: no retry.
	if err := s.Load(context.Background(), &loader.Client{BaseURL: srv.URL}); err == nil {
		t.Error("second load succeeded")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("want 1 request, got %d", n)
	}
	if err := s.SetMetric(benchdata.Swaps); err != ErrNotReady {
		t.Errorf("SetMetric in error phase: want ErrNotReady, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	s := New(nil)
	src, _ := static(nil, fmt.Errorf("%w: bad", benchdata.ErrMalformedData))
	if err := s.Load(context.Background(), src); !errors.Is(err, benchdata.ErrMalformedData) {
		t.Fatalf("got %v", err)
	}
	if snap := s.Snapshot(); snap.Phase != PhaseError || snap.Message != "malformed data: bad" {
		t.Errorf("got %v %q", snap.Phase, snap.Message)
	}
}

func TestLoadNilDataset(t *testing.T) {
	s := New(nil)
	src, _ := static(nil, nil)
	if err := s.Load(context.Background(), src); !errors.Is(err, benchdata.ErrMalformedData) {
		t.Fatalf("want ErrMalformedData, got %v", err)
	}
	// The State must still be usable.
	if err := s.ToggleVisibility("Heap Sort"); err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); snap.Phase != PhaseError {
		t.Errorf("want error phase, got %v", snap.Phase)
	}
}

func TestLoadSingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	var calls int32
	src := loader.SourceFunc(func(ctx context.Context) (*benchdata.Dataset, error) {
		atomic.AddInt32(&calls, 1)
		started <- struct{}{}
		<-release
		return testDataset(), nil
	})

	s := New(nil)
	var wg sync.WaitGroup
	errs := make([]error, 8)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = s.Load(context.Background(), src)
	}()
	<-started
	for i := 1; i < len(errs); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Load(context.Background(), src)
		}(i)
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("load %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("want 1 fetch, got %d", n)
	}
	if p := s.Phase(); p != PhaseReady {
		t.Errorf("want ready, got %v", p)
	}
}

func TestSetMetric(t *testing.T) {
	s := New(nil)
	if err := s.SetMetric(benchdata.Swaps); err != ErrNotReady {
		t.Errorf("before load: want ErrNotReady, got %v", err)
	}
	src, _ := static(testDataset(), nil)
	if err := s.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleVisibility("Quick Sort"); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()
	if err := s.SetMetric("time"); !errors.Is(err, benchdata.ErrInvalidMetric) {
		t.Errorf("want ErrInvalidMetric, got %v", err)
	}
	if err := s.SetMetric(benchdata.Swaps); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if diff := cmp.Diff(before.Visibility, snap.Visibility); diff != "" {
		t.Errorf("metric change altered visibility (-want +got):\n%s", diff)
	}
	if snap.Metric != benchdata.Swaps {
		t.Errorf("metric %v", snap.Metric)
	}
	if v, _ := snap.Rows[0].Value("Merge Sort"); v != 15 {
		t.Errorf("swaps for Merge Sort at 10: %v", v)
	}
}

func TestToggleVisibility(t *testing.T) {
	s := New(nil)
	// Allowed before load.
	if err := s.ToggleVisibility("Heap Sort"); err != nil {
		t.Fatal(err)
	}
	src, _ := static(testDataset(), nil)
	if err := s.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMetric(benchdata.Swaps); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()

	if err := s.ToggleVisibility("Bubble Sort"); err != nil {
		t.Fatal(err)
	}
	after := s.Snapshot()
	if after.Metric != benchdata.Swaps {
		t.Errorf("toggle changed metric to %v", after.Metric)
	}

	// Exactly one entry changes, and the rows do not.
	for _, a := range benchdata.Algorithms {
		flipped := before.Visibility[a] != after.Visibility[a]
		if flipped != (a == "Bubble Sort") {
			t.Errorf("%s: flipped=%v", a, flipped)
		}
	}
	if after.Visibility["Heap Sort"] {
		t.Error("Heap Sort toggle before load was lost")
	}
	if diff := cmp.Diff(before.Rows, after.Rows); diff != "" {
		t.Errorf("toggle changed rows:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Merge Sort"}, after.Visible); diff != "" {
		t.Errorf("visible (-want +got):\n%s", diff)
	}

	if err := s.ToggleVisibility("Bogo Sort"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("want ErrUnknownAlgorithm, got %v", err)
	}
	if diff := cmp.Diff(after.Visibility, s.Snapshot().Visibility); diff != "" {
		t.Errorf("unknown toggle changed visibility:\n%s", diff)
	}
}

func TestSubscribe(t *testing.T) {
	s := New(nil)
	var got []string
	cancel := s.Subscribe(func(c Change, snap Snapshot) {
		got = append(got, fmt.Sprintf("%v %v %v", c, snap.Phase, snap.Metric))
	})
	src, _ := static(testDataset(), nil)
	s.Load(context.Background(), src)
	s.SetMetric(benchdata.Swaps)
	s.ToggleVisibility("Quick Sort")
	cancel()
	s.ToggleVisibility("Quick Sort")

	want := []string{
		"loaded ready comparisons",
		"metric ready swaps",
		"visibility ready swaps",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSubscriberMutates(t *testing.T) {
	s := New(nil)
	var got []Change
	s.Subscribe(func(c Change, snap Snapshot) {
		got = append(got, c)
		if c == ChangeLoaded {
			// Must not deadlock; delivered after this call returns.
			s.SetMetric(benchdata.Swaps)
			if len(got) != 1 {
				t.Errorf("nested notification delivered early")
			}
		}
	})
	src, _ := static(testDataset(), nil)
	s.Load(context.Background(), src)
	if diff := cmp.Diff([]Change{ChangeLoaded, ChangeMetric}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSubscriberPanics(t *testing.T) {
	s := New(nil)
	n := 0
	s.Subscribe(func(c Change, snap Snapshot) {
		n++
		if n == 1 {
			panic("subscriber failed")
		}
	})
	func() {
		defer func() { recover() }()
		s.ToggleVisibility("Heap Sort")
	}()
	s.ToggleVisibility("Heap Sort")
	s.ToggleVisibility("Radix Sort")
	if n != 3 {
		t.Errorf("want 3 deliveries, got %d", n)
	}
	s.mu.Lock()
	pending := len(s.pending)
	s.mu.Unlock()
	if pending != 0 {
		t.Errorf("%d events left undelivered", pending)
	}
}

func TestDuplicatesWarn(t *testing.T) {
	ds := testDataset()
	ds.Results = append(ds.Results,
		benchdata.Record{Algorithm: "Bubble Sort", Size: 10, Comparisons: 99, Swaps: 1},
		benchdata.Record{Algorithm: "Shell Sort", Size: 10, Comparisons: 1, Swaps: 1},
	)
	var warnings []string
	s := New(&Options{Warn: func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}})
	src, _ := static(ds, nil)
	if err := s.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if v, _ := snap.Rows[0].Value("Bubble Sort"); v != 99 {
		t.Errorf("want 99, got %v", v)
	}
	if snap.Duplicates != 1 || len(warnings) != 2 {
		t.Errorf("duplicates %d warnings %q", snap.Duplicates, warnings)
	}
	for _, a := range snap.Visible {
		if a == "Shell Sort" {
			t.Error("unknown algorithm listed as visible")
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New(nil)
	src, _ := static(testDataset(), nil)
	s.Load(context.Background(), src)
	snap := s.Snapshot()
	snap.Visibility["Bubble Sort"] = false
	snap.Rows[0].Values["Bubble Sort"] = -1

	again := s.Snapshot()
	if !again.Visibility["Bubble Sort"] {
		t.Error("snapshot visibility aliases state")
	}
	if v, _ := again.Rows[0].Value("Bubble Sort"); v != 45 {
		t.Error("snapshot rows alias state")
	}
}

func TestSummaries(t *testing.T) {
	s := New(nil)
	src, _ := static(testDataset(), nil)
	s.Load(context.Background(), src)
	sums := s.Snapshot().Summaries()
	if len(sums) != 2 || sums[0].Algorithm != "Bubble Sort" || !sums[0].Fitted() || sums[1].Fitted() {
		t.Errorf("got %+v", sums)
	}
}

func TestPhaseText(t *testing.T) {
	for _, p := range []Phase{PhaseLoading, PhaseReady, PhaseError} {
		b, err := p.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var q Phase
		if err := q.UnmarshalText(b); err != nil || q != p {
			t.Errorf("%v: round trip gave %v, %v", p, q, err)
		}
	}
	var q Phase
	if err := q.UnmarshalText([]byte("done")); err == nil {
		t.Error("unknown phase accepted")
	}
}
