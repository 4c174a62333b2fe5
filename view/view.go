// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view holds the state of one mounted benchmark viewer: the
// load phase, the selected metric, and which algorithms are shown.
//
// A State loads its dataset at most once. Each mutation changes
// exactly one of phase, metric or visibility, and subscribers are
// told about it afterwards, in the order mutations happened.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/loader"
	"github.com/sortviz/sortviz/pivot"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotReady is returned by operations that need a loaded
	// dataset when the State is not in PhaseReady.
	ErrNotReady = errors.New("view not ready")

	// ErrUnknownAlgorithm is matched when a visibility operation
	// names an algorithm the State does not track.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// A Phase is the load phase of a State.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText encodes p as its String form.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes the String form of a Phase.
func (p *Phase) UnmarshalText(text []byte) error {
	for q := PhaseLoading; q <= PhaseError; q++ {
		if q.String() == string(text) {
			*p = q
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// A Change identifies the mutation a subscriber is being told about.
type Change int

const (
	ChangeLoaded Change = iota + 1
	ChangeFailed
	ChangeMetric
	ChangeVisibility
)

func (c Change) String() string {
	switch c {
	case ChangeLoaded:
		return "loaded"
	case ChangeFailed:
		return "failed"
	case ChangeMetric:
		return "metric"
	case ChangeVisibility:
		return "visibility"
	}
	return fmt.Sprintf("Change(%d)", int(c))
}

// Options configures a new State.
type Options struct {
	// Algorithms is the set of toggleable algorithms in display
	// order. If nil, benchdata.Algorithms is used.
	Algorithms []string

	// Warn, if non-nil, is called for recoverable problems with the
	// loaded dataset, such as duplicate records.
	Warn func(format string, args ...interface{})
}

// Stats summarizes the loaded dataset.
type Stats struct {
	Sizes    int `json:"sizes"` // distinct sizes tested
	Trials   int `json:"trials"`
	MaxSize  int `json:"maxSize"`
	StepSize int `json:"stepSize,omitempty"`
}

// A Snapshot is a consistent copy of a State. It shares no memory
// with the State it was taken from.
type Snapshot struct {
	Phase   Phase            `json:"phase"`
	Message string           `json:"message,omitempty"`
	Metric  benchdata.Metric `json:"metric"`

	// Algorithms is the display order of the tracked algorithms.
	Algorithms []string        `json:"algorithms"`
	Visibility map[string]bool `json:"visibility"`

	// Rows is the pivot of the dataset on Metric. It is nil unless
	// Phase is PhaseReady.
	Rows []pivot.Row `json:"rows"`

	// Visible lists the algorithms that are visible and have at
	// least one value in Rows, in display order.
	Visible []string `json:"visible"`

	Metadata   benchdata.Metadata `json:"metadata"`
	Stats      Stats              `json:"stats"`
	Duplicates int                `json:"duplicates"`
}

// Summaries returns the per-series summary of each visible algorithm.
func (s Snapshot) Summaries() []pivot.Summary {
	var out []pivot.Summary
	for _, a := range s.Visible {
		if sum, ok := pivot.Summarize(s.Rows, a); ok {
			out = append(out, sum)
		}
	}
	return out
}

type subscriber struct {
	id int
	f  func(Change, Snapshot)
}

type event struct {
	change Change
	snap   Snapshot
	subs   []subscriber
}

// A State is the view state of one mounted viewer. It is safe for
// concurrent use.
type State struct {
	order []string
	warn  func(format string, args ...interface{})

	load singleflight.Group

	mu         sync.Mutex
	phase      Phase
	message    string
	loadErr    error
	metric     benchdata.Metric
	visibility map[string]bool
	ds         *benchdata.Dataset
	rows       []pivot.Row
	dupes      int
	subs       []subscriber
	nextSub    int

	pending    []event
	delivering bool
}

// New returns a State in PhaseLoading showing comparisons with every
// algorithm visible.
func New(opts *Options) *State {
	s := &State{
		order:  benchdata.Algorithms,
		phase:  PhaseLoading,
		metric: benchdata.Comparisons,
	}
	if opts != nil {
		if opts.Algorithms != nil {
			s.order = opts.Algorithms
		}
		s.warn = opts.Warn
	}
	s.order = append([]string(nil), s.order...)
	s.visibility = make(map[string]bool, len(s.order))
	for _, a := range s.order {
		s.visibility[a] = true
	}
	return s
}

// Load reads the dataset from src and moves s to PhaseReady or
// PhaseError. Concurrent calls share a single read. Once s has left
// PhaseLoading, Load returns the settled result without reading src
// again; to load afresh, create a new State.
//
// The context of the call that starts the read governs it.
func (s *State) Load(ctx context.Context, src loader.Source) error {
	s.mu.Lock()
	if s.phase != PhaseLoading {
		err := s.loadErr
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	_, err, _ := s.load.Do("load", func() (interface{}, error) {
		s.mu.Lock()
		if s.phase != PhaseLoading {
			err := s.loadErr
			s.mu.Unlock()
			return nil, err
		}
		s.mu.Unlock()

		ds, err := src.Load(ctx)
		return nil, s.settle(ds, err)
	})
	return err
}

func (s *State) settle(ds *benchdata.Dataset, err error) error {
	s.mu.Lock()
	var rows []pivot.Row
	var dupes int
	if err == nil && ds == nil {
		err = fmt.Errorf("%w: no dataset", benchdata.ErrMalformedData)
	}
	if err == nil {
		b, berr := pivot.NewBuilder(s.metric, &pivot.BuilderOptions{Warn: s.warn})
		if berr != nil {
			err = berr
		} else {
			for _, rec := range ds.Results {
				b.Add(rec)
			}
			rows = b.Rows()
			dupes = len(b.Duplicates())
		}
	}
	if err != nil {
		s.phase = PhaseError
		s.message = err.Error()
		s.loadErr = err
		s.unlockAndNotify(ChangeFailed)
		return err
	}

	if s.warn != nil {
		for _, a := range ds.UnknownAlgorithms() {
			if _, ok := s.visibility[a]; !ok {
				s.warn("records for unknown algorithm %q will not be shown\n", a)
			}
		}
	}
	s.phase = PhaseReady
	s.ds = ds
	s.rows = rows
	s.dupes = dupes
	s.unlockAndNotify(ChangeLoaded)
	return nil
}

// SetMetric selects the metric to pivot on and recomputes the rows.
// It returns an error wrapping benchdata.ErrInvalidMetric if m is not
// a metric, and ErrNotReady if no dataset is loaded.
func (s *State) SetMetric(m benchdata.Metric) error {
	if !m.Valid() {
		return fmt.Errorf("view: %w %q", benchdata.ErrInvalidMetric, string(m))
	}
	s.mu.Lock()
	if s.phase != PhaseReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	// Duplicates were already reported on load.
	rows, err := pivot.Pivot(s.ds, m)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.metric = m
	s.rows = rows
	s.unlockAndNotify(ChangeMetric)
	return nil
}

// ToggleVisibility flips whether algorithm is shown. It returns an
// error wrapping ErrUnknownAlgorithm if s does not track algorithm.
// It may be called in any phase.
func (s *State) ToggleVisibility(algorithm string) error {
	s.mu.Lock()
	v, ok := s.visibility[algorithm]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("view: %w %q", ErrUnknownAlgorithm, algorithm)
	}
	s.visibility[algorithm] = !v
	s.unlockAndNotify(ChangeVisibility)
	return nil
}

// Subscribe arranges for f to be called after every mutation of s.
// Calls are made one at a time, in mutation order, without s locked.
// If f itself mutates s, the resulting notification is delivered
// after f returns. The returned function
// removes the subscription.
func (s *State) Subscribe(f func(Change, Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id, f})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Phase returns the current load phase.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *State) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:      s.phase,
		Message:    s.message,
		Metric:     s.metric,
		Algorithms: append([]string(nil), s.order...),
		Visibility: make(map[string]bool, len(s.visibility)),
		Duplicates: s.dupes,
	}
	for a, v := range s.visibility {
		snap.Visibility[a] = v
	}
	if s.phase != PhaseReady {
		return snap
	}

	snap.Rows = make([]pivot.Row, len(s.rows))
	for i, r := range s.rows {
		vals := make(map[string]float64, len(r.Values))
		for a, v := range r.Values {
			vals[a] = v
		}
		snap.Rows[i] = pivot.Row{Size: r.Size, Values: vals}
	}
	for _, a := range pivot.Algorithms(s.rows, s.order) {
		if s.visibility[a] {
			snap.Visible = append(snap.Visible, a)
		}
	}
	snap.Metadata = s.ds.Metadata
	snap.Stats = Stats{
		Sizes:    len(s.rows),
		Trials:   s.ds.Metadata.Trials,
		MaxSize:  s.ds.Metadata.MaxSize,
		StepSize: s.ds.Metadata.StepSize,
	}
	return snap
}

// unlockAndNotify queues c for the subscribers registered at the
// time of the mutation and releases s.mu. The first goroutine to find
// the queue idle delivers events, in order, until it is empty.
func (s *State) unlockAndNotify(c Change) {
	if len(s.subs) == 0 {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, event{c, s.snapshotLocked(), append([]subscriber(nil), s.subs...)})
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	s.mu.Unlock()
	done := false
	defer func() {
		// A panicking subscriber must not stall later deliveries.
		if !done {
			s.mu.Lock()
			s.delivering = false
			s.mu.Unlock()
		}
	}()
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.delivering = false
			done = true
			s.mu.Unlock()
			return
		}
		ev := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		for _, sub := range ev.subs {
			sub.f(ev.change, ev.snap)
		}
	}
}
