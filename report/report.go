// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats benchmark summaries as text tables, HTML, or
// CSV.
//
// Each format lays the summaries out one row per key, in the order
// the keys first appear in the input, with one column per kind of
// aggregate.
package report

import (
	"io"
	"math"
	"strconv"

	"github.com/linearbits/subframe/analyzer"
	"github.com/linearbits/subframe/benchstat"
)

// missing is printed for aggregates a key does not have.
const missing = "-"

type row struct {
	benchstat.Key
	values  []float64 // indexed like the kinds
	present []bool
	n       int
}

// group collects summaries into rows, one per key, and returns the
// kinds of the columns in order of first appearance.
func group(ss []benchstat.Summary) ([]analyzer.Kind, []*row) {
	var kinds []analyzer.Kind
	col := make(map[analyzer.Kind]int)
	for _, s := range ss {
		if _, ok := col[s.Kind]; !ok {
			col[s.Kind] = len(kinds)
			kinds = append(kinds, s.Kind)
		}
	}

	var rows []*row
	byKey := make(map[benchstat.Key]*row)
	for _, s := range ss {
		r := byKey[s.Key]
		if r == nil {
			r = &row{
				Key:     s.Key,
				values:  make([]float64, len(kinds)),
				present: make([]bool, len(kinds)),
			}
			byKey[s.Key] = r
			rows = append(rows, r)
		}
		r.values[col[s.Kind]] = s.Value
		r.present[col[s.Kind]] = true
		if s.N > r.n {
			r.n = s.N
		}
	}
	return kinds, rows
}

// scaler returns the scaler for r's values, chosen from its first
// finite aggregate.
func (r *row) scaler() Scaler {
	for i, v := range r.values {
		if r.present[i] && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return NewScaler(v, r.Unit)
		}
	}
	return NewScaler(0, r.Unit)
}

// formatted returns r's values as scaled strings.
func (r *row) formatted() []string {
	scale := r.scaler()
	out := make([]string, len(r.values))
	for i, v := range r.values {
		switch {
		case !r.present[i]:
			out[i] = missing
		case math.IsNaN(v) || math.IsInf(v, 0):
			out[i] = formatRaw(v)
		default:
			out[i] = scale(v)
		}
	}
	return out
}

// formatRaw formats v unscaled, as in "NaN" or "1.5e+06".
func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatText writes ss to w as an aligned text table. The config
// column is left blank when it repeats the previous row's.
func FormatText(w io.Writer, ss []benchstat.Summary) error {
	kinds, rows := group(ss)
	var t table
	t.row().cell("config", alignLeft).cell("name", alignLeft).cell("unit", alignLeft)
	for _, k := range kinds {
		t.cell(k.ShortName(), alignCenter)
	}
	t.cell("n", alignRight)

	last := ""
	for i, r := range rows {
		config := r.Config
		if i > 0 && config == last {
			config = ""
		}
		last = r.Config
		t.row().cell(config, alignLeft).cell(r.Benchmark, alignLeft).cell(r.Unit, alignLeft)
		for _, v := range r.formatted() {
			t.cell(v, alignRight)
		}
		t.cell(strconv.Itoa(r.n), alignRight)
	}
	return t.format(w)
}
