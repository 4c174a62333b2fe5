// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pivot

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
)

// A Summary describes the series of one algorithm across rows.
type Summary struct {
	Algorithm string  `json:"algorithm"`
	Points    int     `json:"points"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`

	// Exponent and Coef fit value ≈ Coef·size^Exponent by least
	// squares on log(value) against log(size), using the points
	// where both are positive. Both are NaN if there are fewer than
	// two such points at distinct sizes.
	Exponent float64 `json:"-"`
	Coef     float64 `json:"-"`
}

// Fitted reports whether s has a growth estimate.
func (s Summary) Fitted() bool {
	return !math.IsNaN(s.Exponent)
}

// Summarize computes the Summary of algorithm in rows. It returns
// false if no row has a value for algorithm.
func Summarize(rows []Row, algorithm string) (Summary, bool) {
	var vals, logx, logy []float64
	for _, r := range rows {
		v, ok := r.Values[algorithm]
		if !ok {
			continue
		}
		vals = append(vals, v)
		if r.Size > 0 && v > 0 {
			logx = append(logx, math.Log(float64(r.Size)))
			logy = append(logy, math.Log(v))
		}
	}
	if len(vals) == 0 {
		return Summary{}, false
	}

	sample := stats.Sample{Xs: vals}
	lo, hi := sample.Bounds()
	s := Summary{
		Algorithm: algorithm,
		Points:    len(vals),
		Min:       lo,
		Max:       hi,
		Mean:      sample.Mean(),
		Exponent:  math.NaN(),
		Coef:      math.NaN(),
	}

	// Rows have distinct sizes, so two points are enough for a
	// non-degenerate fit.
	if len(logx) >= 2 {
		weights := make([]float64, len(logx))
		for i := range weights {
			weights[i] = 1
		}
		res := fit.PolynomialRegression(logx, logy, weights, 1)
		s.Coef = math.Exp(res.Coefficients[0])
		s.Exponent = res.Coefficients[1]
	}
	return s, true
}
