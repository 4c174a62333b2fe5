// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sortviz/sortviz/benchdata"
)

const dataJSON = `{"results": [{"algorithm": "Bubble Sort", "size": 10, "comparisons": 45, "swaps": 20}], "metadata": {"trials": 30, "maxSize": 10}}`

func TestClientLoad(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if have, want := r.URL.RequestURI(), DefaultPath; have != want {
			t.Errorf("RequestURI = %q, want %q", have, want)
		}
		fmt.Fprint(w, dataJSON)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL}
	d, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Results) != 1 || d.Results[0].Comparisons != 45 || d.Metadata.Trials != 30 {
		t.Errorf("unexpected dataset %+v", d)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("want exactly 1 request, got %d", n)
	}
}

func TestClientNotFound(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := (&Client{BaseURL: ts.URL}).Load(context.Background())
	if !errors.Is(err, benchdata.ErrResourceUnavailable) {
		t.Fatalf("want ErrResourceUnavailable, got %v", err)
	}
	if err.Error() != "Data file not found. Run the data-generation step first!" {
		t.Errorf("unexpected message %q", err)
	}
	if !NotExist(err) {
		t.Errorf("NotExist(%v) = false", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("failed load was retried: %d requests", n)
	}
}

func TestClientServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := (&Client{BaseURL: ts.URL}).Load(context.Background())
	var ue *benchdata.UnavailableError
	if !errors.As(err, &ue) || ue.StatusCode != 500 {
		t.Fatalf("want UnavailableError with status 500, got %v", err)
	}
	if NotExist(err) {
		t.Error("500 reported as NotExist")
	}
}

func TestClientMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer ts.Close()

	_, err := (&Client{BaseURL: ts.URL}).Load(context.Background())
	if !errors.Is(err, benchdata.ErrMalformedData) {
		t.Fatalf("want ErrMalformedData, got %v", err)
	}
}

func TestClientCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dataJSON)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Client{BaseURL: ts.URL}).Load(ctx)
	if !errors.Is(err, benchdata.ErrResourceUnavailable) || !errors.Is(err, context.Canceled) {
		t.Fatalf("want unavailable wrapping context.Canceled, got %v", err)
	}
}

func TestFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(dataJSON), 0666); err != nil {
		t.Fatal(err)
	}
	d, err := File{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Metadata.MaxSize != 10 {
		t.Errorf("MaxSize = %d", d.Metadata.MaxSize)
	}

	_, err = File{Path: filepath.Join(dir, "missing.json")}.Load(context.Background())
	if !errors.Is(err, benchdata.ErrResourceUnavailable) || !NotExist(err) {
		t.Errorf("want missing file to be unavailable, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	for _, test := range []struct {
		in   string
		want string // URL or file path
	}{
		{"http://localhost:8080", "http://localhost:8080/results/data.json"},
		{"http://localhost:8080/", "http://localhost:8080/results/data.json"},
		{"https://example.com/bench/data.json", "https://example.com/bench/data.json"},
		{"results/data.json", "results/data.json"},
	} {
		var got string
		switch s := Open(test.in).(type) {
		case *Client:
			got = s.URL()
		case File:
			got = s.Path
		default:
			t.Fatalf("Open(%q): unexpected %T", test.in, s)
		}
		if got != test.want {
			t.Errorf("Open(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestSourceFunc(t *testing.T) {
	want := &benchdata.Dataset{Metadata: benchdata.Metadata{Trials: 1}}
	var src Source = SourceFunc(func(ctx context.Context) (*benchdata.Dataset, error) {
		return want, nil
	})
	got, err := src.Load(context.Background())
	if err != nil || got != want {
		t.Errorf("got %v, %v", got, err)
	}
}
