// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analyzer provides buffered accumulators that compute a
// summary statistic over a stream of measurements.
//
// An Analyzer stores every observation in a growable buffer and
// computes its aggregate on demand, so any statistic over the full
// sample can be computed, and accumulators filled independently (for
// example, one per goroutine) can later be combined with Merge.
//
// Analyzers are not safe for concurrent use. Callers that measure
// from several goroutines should use one Analyzer per goroutine and
// merge them afterward.
package analyzer

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmpty is returned by Value when no observations have been added.
var ErrEmpty = errors.New("analyzer: no values")

// ErrIncompatibleMerge is returned (wrapped) by Merge when the two
// analyzers compute different kinds of aggregate.
var ErrIncompatibleMerge = errors.New("analyzer: incompatible merge")

const (
	// DefaultCapacity is the initial buffer capacity used by New.
	DefaultCapacity = 10

	// DefaultGrowthRate is the factor the buffer grows by when full.
	DefaultGrowthRate = 1.5
)

// An Analyzer accumulates float64 observations and computes an
// aggregate of Kind over them.
//
// The zero Analyzer is not usable; construct one with New.
type Analyzer struct {
	kind       Kind
	label      string
	growthRate float64

	// values[:count] are the observations. The rest of values is
	// scratch space left from earlier use.
	values []float64
	count  int

	// grows counts buffer reallocations.
	grows int
}

// An Option configures an Analyzer constructed by New.
type Option func(*config)

type config struct {
	label      string
	capacity   int
	growthRate float64
}

// WithLabel sets the analyzer's label. By default the label is the
// name of its Kind.
func WithLabel(label string) Option {
	return func(c *config) { c.label = label }
}

// WithCapacity sets the initial buffer capacity.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithGrowthRate sets the factor by which the buffer grows when full.
// It must be greater than 1.
func WithGrowthRate(rate float64) Option {
	return func(c *config) { c.growthRate = rate }
}

// New returns an empty Analyzer computing the given kind of aggregate.
func New(kind Kind, opts ...Option) (*Analyzer, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("analyzer: unknown kind %d", int(kind))
	}
	c := config{label: kind.String(), capacity: DefaultCapacity, growthRate: DefaultGrowthRate}
	for _, o := range opts {
		o(&c)
	}
	if c.capacity < 0 {
		return nil, fmt.Errorf("analyzer: negative capacity %d", c.capacity)
	}
	if !(c.growthRate > 1) || math.IsInf(c.growthRate, 1) {
		return nil, fmt.Errorf("analyzer: growth rate %v must be a finite number > 1", c.growthRate)
	}
	return &Analyzer{
		kind:       kind,
		label:      c.label,
		growthRate: c.growthRate,
		values:     make([]float64, c.capacity),
	}, nil
}

// MustNew is like New but panics if the options are invalid. It is
// intended for package-level analyzers and tests.
func MustNew(kind Kind, opts ...Option) *Analyzer {
	a, err := New(kind, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Kind returns the kind of aggregate a computes.
func (a *Analyzer) Kind() Kind {
	return a.kind
}

// Label returns a's label.
func (a *Analyzer) Label() string {
	return a.label
}

// Len returns the number of observations in a.
func (a *Analyzer) Len() int {
	return a.count
}

// Cap returns the current capacity of a's buffer.
func (a *Analyzer) Cap() int {
	return len(a.values)
}

// GrowthRate returns the factor a's buffer grows by when full.
func (a *Analyzer) GrowthRate() float64 {
	return a.growthRate
}

// Values returns a copy of the observations in insertion order.
func (a *Analyzer) Values() []float64 {
	return append([]float64(nil), a.values[:a.count]...)
}

// Add records observation v.
func (a *Analyzer) Add(v float64) {
	if a.count == len(a.values) {
		a.grow(a.count + 1)
	}
	a.values[a.count] = v
	a.count++
}

// grow enlarges the buffer geometrically until it holds at least need
// values.
func (a *Analyzer) grow(need int) {
	n := len(a.values)
	for n < need {
		n = nextCap(n, need, a.growthRate)
	}
	values := make([]float64, n)
	copy(values, a.values[:a.count])
	a.values = values
	a.grows++
}

// nextCap returns the capacity following n at the given growth rate.
// It is always at least n+1. If growing by rate would overflow an int,
// it returns just enough to hold need values.
func nextCap(n, need int, rate float64) int {
	c := math.Ceil(math.Max(float64(n)*rate, float64(n)+1))
	if c >= float64(math.MaxInt) {
		return max(need, n+1)
	}
	return int(c)
}

// Value returns the aggregate over all observations in a. It returns
// ErrEmpty if there are none.
func (a *Analyzer) Value() (float64, error) {
	if a.count == 0 {
		return 0, ErrEmpty
	}
	return a.kind.aggregate(a.values[:a.count]), nil
}

// Reset discards all observations. The buffer, growth rate and label
// are kept.
func (a *Analyzer) Reset() {
	a.count = 0
}

// Merge appends the observations of b to a, after a's own. a and b
// must compute the same Kind; otherwise, or if b is nil, Merge returns
// an error wrapping ErrIncompatibleMerge and neither is modified.
func (a *Analyzer) Merge(b *Analyzer) error {
	if b == nil {
		return fmt.Errorf("%w: cannot merge nil analyzer into %s analyzer %q",
			ErrIncompatibleMerge, a.kind, a.label)
	}
	if a.kind != b.kind {
		return fmt.Errorf("%w: cannot merge %s analyzer %q into %s analyzer %q",
			ErrIncompatibleMerge, b.kind, b.label, a.kind, a.label)
	}
	// Capture b's length first: b may be a.
	n := b.count
	if a.count+n > len(a.values) {
		a.grow(a.count + n)
	}
	copy(a.values[a.count:], b.values[:n])
	a.count += n
	return nil
}

// NewInstance returns an empty Analyzer with the same kind, label,
// capacity and growth rate as a.
func (a *Analyzer) NewInstance() *Analyzer {
	return &Analyzer{
		kind:       a.kind,
		label:      a.label,
		growthRate: a.growthRate,
		values:     make([]float64, len(a.values)),
	}
}

// String returns a summary of a of the form "label=value" or
// "label=<empty>".
func (a *Analyzer) String() string {
	v, err := a.Value()
	if err != nil {
		return a.label + "=<empty>"
	}
	return fmt.Sprintf("%s=%v", a.label, v)
}
