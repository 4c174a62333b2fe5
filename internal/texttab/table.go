// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out column-aligned text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of a text table with one line per row.
//
// Row, Cell and Rule return the Table so calls can be chained.
type Table struct {
	rows  [][]cell
	rules map[int]bool // rows that are horizontal rules
	cols  int
	align []align // per column default
	gap   string
}

type cell struct {
	value string
	align align
	set   bool // alignment overrides the column default
}

type align int

const (
	alignLeft align = iota
	alignRight
)

// A CellOption modifies a single cell.
type CellOption func(c *cell)

var (
	Left  CellOption = func(c *cell) { c.align, c.set = alignLeft, true }
	Right CellOption = func(c *cell) { c.align, c.set = alignRight, true }
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// SetGap sets the text between columns. The default is two spaces.
func (t *Table) SetGap(gap string) *Table {
	t.gap = gap
	return t
}

// SetRight right-aligns column col unless a cell says otherwise.
// Columns are numbered from 0.
func (t *Table) SetRight(col int) *Table {
	for len(t.align) <= col {
		t.align = append(t.align, alignLeft)
	}
	t.align[col] = alignRight
	return t
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Rule adds a row drawn as a line of dashes across every column.
func (t *Table) Rule() *Table {
	if t.rules == nil {
		t.rules = make(map[int]bool)
	}
	t.rules[len(t.rows)] = true
	return t.Row()
}

// Cell appends a cell to the current row. An empty value leaves the
// cell blank.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	if n := len(t.rows[last]); n > t.cols {
		t.cols = n
	}
	return t
}

// Format lays out t and writes it to w. Trailing blanks are trimmed
// from every line.
func (t *Table) Format(w io.Writer) error {
	gap := t.gap
	if gap == "" {
		gap = "  "
	}
	widths := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var line strings.Builder
	for r, row := range t.rows {
		line.Reset()
		if t.rules[r] {
			for i, wd := range widths {
				if i > 0 {
					line.WriteString(gap)
				}
				line.WriteString(strings.Repeat("-", wd))
			}
		}
		for i, c := range row {
			if i > 0 {
				line.WriteString(gap)
			}
			a := c.align
			if !c.set && i < len(t.align) {
				a = t.align[i]
			}
			line.WriteString(a.pad(c.value, widths[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
