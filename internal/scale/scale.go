// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale formats operation counts with SI prefixes, such as
// 250k for 250000.
package scale

import (
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for a number and its
// representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point; -1 for exact
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // "k", "M", "G", "T" or ""
}

// Exact formats numbers with the fewest digits that represent them
// exactly, and no prefix.
var Exact = Scaler{-1, 1, ""}

var factors = []struct {
	factor float64
	prefix string
}{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
}

// Format formats val according to s. Zero is always "0".
func (s Scaler) Format(val float64) string {
	if val == 0 {
		return "0"
	}
	buf := make([]byte, 0, 16)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

// maxPrec bounds the digits Common will use after the decimal point.
const maxPrec = 3

// Common returns a Scaler for displaying all of vals together, such
// as the labels of one axis. The prefix is chosen by the value
// farthest from zero, and the precision is the least that shows every
// value without rounding, up to three digits.
func Common(vals []float64) Scaler {
	var max float64
	for _, v := range vals {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	s := Scaler{0, 1, ""}
	for _, f := range factors {
		if max >= f.factor {
			s.Factor, s.Prefix = f.factor, f.prefix
			break
		}
	}
	for ; s.Prec < maxPrec; s.Prec++ {
		if s.exact(vals) {
			break
		}
	}
	return s
}

// exact reports whether every value of vals is shown without
// rounding at s.Prec digits.
func (s Scaler) exact(vals []float64) bool {
	p := math.Pow(10, float64(s.Prec))
	for _, v := range vals {
		x := v / s.Factor * p
		if math.Abs(x-math.Round(x)) > 1e-9*math.Max(1, math.Abs(x)) {
			return false
		}
	}
	return true
}
