// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// wireRecord and wireMetadata mirror Record and Metadata with pointer
// fields so that missing keys can be told apart from zero values.
type wireRecord struct {
	Algorithm   *string  `json:"algorithm"`
	Size        *int     `json:"size"`
	Comparisons *float64 `json:"comparisons"`
	Swaps       *float64 `json:"swaps"`
}

type wireMetadata struct {
	Trials   *int `json:"trials"`
	MaxSize  *int `json:"maxSize"`
	StepSize *int `json:"stepSize"`
}

type wireDataset struct {
	Results  *[]wireRecord `json:"results"`
	Metadata *wireMetadata `json:"metadata"`
}

// Decode reads a single JSON dataset from r and validates it.
//
// Any failure, whether a syntax error, a type mismatch, a missing
// field, or a value out of range, is reported as an error wrapping
// ErrMalformedData. Unknown keys are ignored.
func Decode(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	var w wireDataset
	if err := dec.Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("empty document")
		}
		return nil, malformed("%v", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, malformed("unexpected data after dataset")
	}
	return w.dataset()
}

func (w *wireDataset) dataset() (*Dataset, error) {
	if w.Results == nil {
		return nil, malformed("missing \"results\"")
	}
	if w.Metadata == nil {
		return nil, malformed("missing \"metadata\"")
	}
	md, err := w.Metadata.metadata()
	if err != nil {
		return nil, err
	}
	d := &Dataset{
		Results:  make([]Record, 0, len(*w.Results)),
		Metadata: md,
	}
	for i, wr := range *w.Results {
		r, err := wr.record()
		if err != nil {
			return nil, malformed("results[%d]: %v", i, err)
		}
		d.Results = append(d.Results, r)
	}
	return d, nil
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

func (w *wireRecord) record() (Record, error) {
	switch {
	case w.Algorithm == nil:
		return Record{}, fieldError(`missing "algorithm"`)
	case *w.Algorithm == "":
		return Record{}, fieldError(`empty "algorithm"`)
	case w.Size == nil:
		return Record{}, fieldError(`missing "size"`)
	case *w.Size < 0:
		return Record{}, fieldError(`negative "size"`)
	case w.Comparisons == nil:
		return Record{}, fieldError(`missing "comparisons"`)
	case *w.Comparisons < 0:
		return Record{}, fieldError(`negative "comparisons"`)
	case w.Swaps == nil:
		return Record{}, fieldError(`missing "swaps"`)
	case *w.Swaps < 0:
		return Record{}, fieldError(`negative "swaps"`)
	}
	return Record{
		Algorithm:   *w.Algorithm,
		Size:        *w.Size,
		Comparisons: *w.Comparisons,
		Swaps:       *w.Swaps,
	}, nil
}

func (w *wireMetadata) metadata() (Metadata, error) {
	switch {
	case w.Trials == nil:
		return Metadata{}, malformed(`metadata: missing "trials"`)
	case *w.Trials <= 0:
		return Metadata{}, malformed(`metadata: "trials" must be positive`)
	case w.MaxSize == nil:
		return Metadata{}, malformed(`metadata: missing "maxSize"`)
	case *w.MaxSize < 0:
		return Metadata{}, malformed(`metadata: negative "maxSize"`)
	case w.StepSize != nil && *w.StepSize < 0:
		return Metadata{}, malformed(`metadata: negative "stepSize"`)
	}
	md := Metadata{Trials: *w.Trials, MaxSize: *w.MaxSize}
	if w.StepSize != nil {
		md.StepSize = *w.StepSize
	}
	return md, nil
}

// Encode writes d to w in the form Decode accepts.
func Encode(w io.Writer, d *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
