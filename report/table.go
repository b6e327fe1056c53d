// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// pad pads s to width w according to a. Left-aligned cells are
// not padded on the right; the caller pads them if another cell
// follows.
func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case alignCenter:
		return strings.Repeat(" ", n/2) + s
	case alignRight:
		return strings.Repeat(" ", n) + s
	}
	return s
}

type cell struct {
	value string
	align align
}

// table lays out rows of cells in columns separated by two spaces.
type table struct {
	rows [][]cell
}

// row starts a new row.
func (t *table) row() *table {
	t.rows = append(t.rows, nil)
	return t
}

// cell adds a cell to the current row.
func (t *table) cell(value string, a align) *table {
	if len(t.rows) == 0 {
		t.row()
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], cell{value, a})
	return t
}

// format writes t to w. Trailing spaces are trimmed from each line.
func (t *table) format(w io.Writer) error {
	var widths []int
	for _, r := range t.rows {
		for i, c := range r {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		for i, c := range r {
			if i > 0 {
				line.WriteString("  ")
			}
			s := c.align.pad(c.value, widths[i])
			line.WriteString(s)
			if n := widths[i] - utf8.RuneCountInString(s); n > 0 {
				line.WriteString(strings.Repeat(" ", n))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
