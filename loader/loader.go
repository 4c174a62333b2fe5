// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader fetches a benchmark dataset from its single fixed
// location.
//
// Every Source performs exactly one read per Load call. There are no
// retries and no caching; a caller that wants at-most-one load per
// lifetime must arrange that itself (see package view).
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/sortviz/sortviz/benchdata"
)

// DefaultPath is the path the benchmark generator writes its results
// to, and the path the viewer requests them from.
const DefaultPath = "/results/data.json"

// A Source produces a dataset.
//
// Load returns an error matching benchdata.ErrResourceUnavailable if
// the resource cannot be read and benchdata.ErrMalformedData if it
// can be read but does not hold a valid dataset.
type Source interface {
	Load(ctx context.Context) (*benchdata.Dataset, error)
}

// SourceFunc adapts an ordinary function to a Source.
type SourceFunc func(ctx context.Context) (*benchdata.Dataset, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) (*benchdata.Dataset, error) {
	return f(ctx)
}

// A Client loads a dataset over HTTP.
type Client struct {
	// BaseURL is the scheme and host of the server, e.g.
	// "http://localhost:8080".
	BaseURL string

	// Path is appended to BaseURL. If empty, DefaultPath is used.
	Path string

	// HTTPClient is used to issue the request. If nil,
	// http.DefaultClient is used.
	HTTPClient *http.Client
}

// URL returns the full URL c requests.
func (c *Client) URL() string {
	p := c.Path
	if p == "" {
		p = DefaultPath
	}
	return strings.TrimSuffix(c.BaseURL, "/") + p
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Load issues one GET request for the dataset.
func (c *Client) Load(ctx context.Context) (*benchdata.Dataset, error) {
	u := c.URL()
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, &benchdata.UnavailableError{Resource: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &benchdata.UnavailableError{Resource: u, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &benchdata.UnavailableError{Resource: u, StatusCode: resp.StatusCode}
	}
	return benchdata.Decode(resp.Body)
}

// A File loads a dataset from the local file system.
type File struct {
	Path string
}

// Load reads and decodes the file once.
func (f File) Load(ctx context.Context) (*benchdata.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &benchdata.UnavailableError{Resource: f.Path, Err: err}
	}
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, &benchdata.UnavailableError{Resource: f.Path, Err: err}
	}
	defer r.Close()
	return benchdata.Decode(r)
}

// Open returns the Source for location. URLs with an http or https
// scheme are fetched with a Client; a URL naming only scheme and host
// gets DefaultPath. Anything else is treated as a file path.
func Open(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		rest := location[strings.Index(location, "//")+2:]
		if i := strings.Index(rest, "/"); i >= 0 && rest[i:] != "/" {
			return &Client{BaseURL: location[:len(location)-len(rest)+i], Path: rest[i:]}
		}
		return &Client{BaseURL: location}
	}
	return File{Path: location}
}

// NotExist reports whether err is an unavailable error caused by a
// missing file or a 404 response.
func NotExist(err error) bool {
	var ue *benchdata.UnavailableError
	if !errors.As(err, &ue) {
		return false
	}
	return ue.StatusCode == http.StatusNotFound || errors.Is(ue.Err, fs.ErrNotExist)
}
