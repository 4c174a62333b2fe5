// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrResourceUnavailable is matched by failures to obtain the
	// dataset resource at all: a missing file, a non-2xx status,
	// or a transport error.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrMalformedData is matched by failures to decode or validate
	// a dataset.
	ErrMalformedData = errors.New("malformed data")

	// ErrInvalidMetric is matched when a metric outside Metrics is
	// requested.
	ErrInvalidMetric = errors.New("invalid metric")
)

// UnavailableHint is the user-facing message for ErrResourceUnavailable.
const UnavailableHint = "Data file not found. Run the data-generation step first!"

// An UnavailableError reports that the dataset resource could not be
// read. Its Error method returns UnavailableHint; Detail describes
// the underlying failure for logs.
type UnavailableError struct {
	Resource   string // URL or file path
	StatusCode int    // HTTP status, or 0 if no response was received
	Err        error  // underlying error, if any
}

func (e *UnavailableError) Error() string {
	return UnavailableHint
}

// Detail returns a diagnostic description of e.
func (e *UnavailableError) Detail() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %d %s", e.Resource, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Resource, e.Err)
	}
	return e.Resource
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrResourceUnavailable
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedData, fmt.Sprintf(format, args...))
}
