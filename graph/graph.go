// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph defines the plots handed to a renderer: named series
// of labeled values, plus the axis titles and the kind of chart to
// draw them as.
package graph

import (
	"errors"
	"fmt"
	"math"
)

// A Point is one labeled value in a Series.
type Point struct {
	Label string
	Value float64
}

// A Series is a named, ordered sequence of points.
type Series struct {
	Name   string
	Points []Point
}

// Add appends a point to s.
func (s *Series) Add(label string, value float64) {
	s.Points = append(s.Points, Point{label, value})
}

// Labels returns the labels of s's points in order.
func (s *Series) Labels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
	}
	return labels
}

// Values returns the values of s's points in order.
func (s *Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// A Kind is a kind of chart.
type Kind int

const (
	// Histogram draws a single series as bars.
	Histogram Kind = iota
	// Lines draws each series as a line over its point labels.
	Lines
	// ClusteredHistogram draws the series side by side for each
	// label.
	ClusteredHistogram
	// ClusteredLines draws several series over a shared set of
	// labels.
	ClusteredLines
	// StackedHistogram stacks the series' bars for each label.
	StackedHistogram
)

var kindNames = []string{
	Histogram:          "histogram",
	Lines:              "lines",
	ClusteredHistogram: "clustered-histogram",
	ClusteredLines:     "clustered-lines",
	StackedHistogram:   "stacked-histogram",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named name, as returned by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown plot kind %q", name)
}

// Clustered reports whether k draws several series over one shared
// set of labels.
func (k Kind) Clustered() bool {
	return k == ClusteredHistogram || k == ClusteredLines || k == StackedHistogram
}

// A Plot is a chart to be rendered.
type Plot struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// ErrNoSeries is returned by Validate for a plot with no data.
var ErrNoSeries = errors.New("graph: plot has no series")

// Validate checks that p can be rendered: it has at least one
// non-empty series, all values are finite, a Histogram has exactly
// one series, and the series of a clustered plot share the same
// labels in the same order.
func (p *Plot) Validate() error {
	if len(p.Series) == 0 {
		return ErrNoSeries
	}
	if p.Kind < 0 || int(p.Kind) >= len(kindNames) {
		return fmt.Errorf("graph: unknown plot kind %d", int(p.Kind))
	}
	if p.Kind == Histogram && len(p.Series) != 1 {
		return fmt.Errorf("graph: histogram needs exactly one series, have %d", len(p.Series))
	}
	for _, s := range p.Series {
		if len(s.Points) == 0 {
			return fmt.Errorf("graph: series %q is empty", s.Name)
		}
		for _, pt := range s.Points {
			if math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
				return fmt.Errorf("graph: series %q: value %v at %q is not finite", s.Name, pt.Value, pt.Label)
			}
		}
	}
	if p.Kind.Clustered() {
		want := p.Series[0].Labels()
		for _, s := range p.Series[1:] {
			if !equalStrings(want, s.Labels()) {
				return fmt.Errorf("graph: series %q labels %q differ from series %q labels %q",
					s.Name, s.Labels(), p.Series[0].Name, want)
			}
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
