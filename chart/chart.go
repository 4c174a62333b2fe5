// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws pivoted benchmark rows as a multi-series line
// chart, one line per visible algorithm.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/sortviz/sortviz/benchdata"
	"github.com/sortviz/sortviz/pivot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrFormat is returned by Render for an unsupported image format.
var ErrFormat = errors.New("unsupported image format")

// Title is the default chart title.
const Title = "Sorting Algorithm Complexity Analysis"

// DefaultColors maps each known algorithm to its line colour.
var DefaultColors = map[string]color.Color{
	"Bubble Sort":    MustParseHex("#ef4444"),
	"Insertion Sort": MustParseHex("#f59e0b"),
	"Heap Sort":      MustParseHex("#10b981"),
	"Merge Sort":     MustParseHex("#3b82f6"),
	"Quick Sort":     MustParseHex("#8b5cf6"),
	"Radix Sort":     MustParseHex("#ec4899"),
}

// ParseHex parses a colour of the form "#rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("bad colour %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("bad colour %q: %v", s, err)
	}
	c.A = 0xff
	return c, nil
}

// MustParseHex is like ParseHex but panics on error.
func MustParseHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Input is what the chart is drawn from.
type Input struct {
	Rows   []pivot.Row
	Metric benchdata.Metric

	// Visibility selects the algorithms to draw. Algorithms absent
	// from Visibility are not drawn.
	Visibility map[string]bool

	// Order is the display order of algorithms. If nil,
	// benchdata.Algorithms is used.
	Order []string

	// Colors maps algorithms to line colours. If nil, DefaultColors
	// is used. Algorithms without a colour get one from
	// plotutil.DefaultColors.
	Colors map[string]color.Color
}

// A Series is one line of the chart.
type Series struct {
	Algorithm string
	Color     color.Color
	Points    plotter.XYs
}

// Series returns the lines to draw for in: one per visible algorithm
// with at least one value, in display order. Each line has a point
// only at the sizes where the algorithm was measured.
func (in Input) Series() []Series {
	order := in.Order
	if order == nil {
		order = benchdata.Algorithms
	}
	colors := in.Colors
	if colors == nil {
		colors = DefaultColors
	}

	var out []Series
	for i, a := range pivot.Algorithms(in.Rows, order) {
		if !in.Visibility[a] {
			continue
		}
		s := Series{Algorithm: a, Color: colors[a]}
		if s.Color == nil {
			s.Color = plotutil.Color(i)
		}
		for _, r := range in.Rows {
			if v, ok := r.Value(a); ok {
				s.Points = append(s.Points, plotter.XY{X: float64(r.Size), Y: v})
			}
		}
		out = append(out, s)
	}
	return out
}

// Options controls how a chart is drawn.
type Options struct {
	// Title is drawn above the chart. If empty, Title is used.
	Title string

	// Width and Height are the image size. If zero, 8in by 5in.
	Width, Height vg.Length

	// LogScale draws the Y axis on a log scale. Non-positive values
	// cannot be drawn on a log scale and are dropped.
	LogScale bool
}

// Plot builds the chart for in.
func Plot(in Input, opts *Options) (*plot.Plot, error) {
	if opts == nil {
		opts = &Options{}
	}
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = Title
	}
	p.X.Label.Text = "Array Size (n)"
	p.Y.Label.Text = in.Metric.Label()
	p.Legend.Top = true
	p.Legend.Left = true
	p.X.Tick.Marker = siTicks{plot.DefaultTicks{}}
	p.Y.Tick.Marker = siTicks{plot.DefaultTicks{}}

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Dashes = grid.Vertical.Dashes
	p.Add(grid)

	drawn := 0
	for _, s := range in.Series() {
		pts := s.Points
		if opts.LogScale {
			pts = positive(pts)
		}
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Algorithm, err)
		}
		l.LineStyle = draw.LineStyle{Color: s.Color, Width: vg.Points(2)}
		p.Add(l)
		p.Legend.Add(s.Algorithm, l)
		drawn++
	}
	// A log scale of an empty plot has no valid range.
	if opts.LogScale && drawn > 0 {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = siTicks{plot.LogTicks{}}
	}
	return p, nil
}

func positive(pts plotter.XYs) plotter.XYs {
	var out plotter.XYs
	for _, pt := range pts {
		if pt.Y > 0 {
			out = append(out, pt)
		}
	}
	return out
}

// Formats lists the image formats Render supports.
var Formats = []string{"png", "svg"}

// ContentType returns the MIME type of an image format.
func ContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// Render draws the chart for in to w as an image in format, which
// must be one of Formats.
func Render(w io.Writer, format string, in Input, opts *Options) error {
	ok := false
	for _, f := range Formats {
		ok = ok || f == format
	}
	if !ok {
		return fmt.Errorf("%w %q", ErrFormat, format)
	}
	if opts == nil {
		opts = &Options{}
	}
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 8 * vg.Inch
	}
	if height == 0 {
		height = 5 * vg.Inch
	}

	p, err := Plot(in, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
