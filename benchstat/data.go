// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstat collects benchmark measurements into analyzers and
// summarizes them.
package benchstat

import (
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/linearbits/subframe/analyzer"
	"github.com/linearbits/subframe/benchfmt"
	"github.com/linearbits/subframe/graph"
)

// A Collection is a collection of benchmark measurements, with one
// set of analyzers per key.
//
// A Collection is not safe for concurrent use. To read inputs in
// parallel, fill one Collection per goroutine and Merge them.
type Collection struct {
	// Configs, Benchmarks, and Units give the set of configs,
	// benchmarks, and units from the keys in the order they were
	// first seen.
	Configs, Benchmarks, Units []string

	keys      []Key
	analyzers map[Key][]*analyzer.Analyzer
	protos    []*analyzer.Analyzer
}

// A Key identifies one metric (e.g., "ns/op", "B/op") from one
// benchmark (function name sans "Benchmark" prefix) in one
// configuration (typically the input file name).
type Key struct {
	Config, Benchmark, Unit string
}

// A Summary is the aggregate computed by one analyzer for one key.
type Summary struct {
	Key
	Label string
	Kind  analyzer.Kind
	Value float64
	// N is the number of measurements summarized.
	N int
}

// NewCollection returns an empty Collection that summarizes each key
// with one analyzer of each of the given kinds, constructed with opts.
// With no kinds, it uses the arithmetic mean.
func NewCollection(kinds []analyzer.Kind, opts ...analyzer.Option) (*Collection, error) {
	if len(kinds) == 0 {
		kinds = []analyzer.Kind{analyzer.Mean}
	}
	c := &Collection{analyzers: make(map[Key][]*analyzer.Analyzer)}
	seen := make(map[analyzer.Kind]bool)
	for _, k := range kinds {
		if seen[k] {
			return nil, fmt.Errorf("analyzer %s listed twice", k.ShortName())
		}
		seen[k] = true
		a, err := analyzer.New(k, opts...)
		if err != nil {
			return nil, err
		}
		c.protos = append(c.protos, a)
	}
	return c, nil
}

// Kinds returns the kinds of aggregate c computes for every key.
func (c *Collection) Kinds() []analyzer.Kind {
	kinds := make([]analyzer.Kind, len(c.protos))
	for i, p := range c.protos {
		kinds[i] = p.Kind()
	}
	return kinds
}

// Keys returns the keys in c in the order they were first seen.
func (c *Collection) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Analyzers returns the analyzers for key, in the order of c.Kinds(),
// or nil if key has no measurements.
func (c *Collection) Analyzers(key Key) []*analyzer.Analyzer {
	return c.analyzers[key]
}

// addAnalyzers returns the analyzers for key, creating them if needed.
func (c *Collection) addAnalyzers(key Key) []*analyzer.Analyzer {
	if as, ok := c.analyzers[key]; ok {
		return as
	}

	addString := func(strings *[]string, add string) {
		for _, s := range *strings {
			if s == add {
				return
			}
		}
		*strings = append(*strings, add)
	}
	addString(&c.Configs, key.Config)
	addString(&c.Benchmarks, key.Benchmark)
	addString(&c.Units, key.Unit)

	as := make([]*analyzer.Analyzer, len(c.protos))
	for i, p := range c.protos {
		as[i] = p.NewInstance()
	}
	c.keys = append(c.keys, key)
	c.analyzers[key] = as
	return as
}

// Add records measurement v under key.
func (c *Collection) Add(key Key, v float64) {
	for _, a := range c.addAnalyzers(key) {
		a.Add(v)
	}
}

// AddResult records every value of res. If config is "", the
// result's ".file" configuration is used.
func (c *Collection) AddResult(config string, res *benchfmt.Result) {
	if config == "" {
		config = res.GetConfig(".file")
	}
	key := Key{Config: config, Benchmark: string(res.Name)}
	for _, v := range res.Values {
		key.Unit = v.Unit
		c.Add(key, v.Value)
	}
}

// AddFile reads benchmark results from r and records them under the
// given config. Malformed lines are skipped and returned together as
// the error, after the rest of the input has been read.
func (c *Collection) AddFile(config string, r io.Reader) error {
	s := benchfmt.NewReader(r, config)
	var errs error
	for s.Scan() {
		switch rec := s.Result().(type) {
		case *benchfmt.Result:
			c.AddResult(config, rec)
		case *benchfmt.SyntaxError:
			errs = multierr.Append(errs, rec)
		}
	}
	if err := s.Err(); err != nil {
		return multierr.Append(errs, err)
	}
	return errs
}

// Merge adds all measurements of o to c, key by key, after c's own.
// c and o must compute the same kinds in the same order; otherwise
// Merge returns an error wrapping analyzer.ErrIncompatibleMerge and c
// is unchanged.
func (c *Collection) Merge(o *Collection) error {
	if len(c.protos) != len(o.protos) {
		return fmt.Errorf("%w: collections compute %d and %d aggregates",
			analyzer.ErrIncompatibleMerge, len(c.protos), len(o.protos))
	}
	for i, p := range c.protos {
		if k := o.protos[i].Kind(); k != p.Kind() {
			return fmt.Errorf("%w: aggregate %d is %s, not %s",
				analyzer.ErrIncompatibleMerge, i, k, p.Kind())
		}
	}
	for _, key := range o.keys {
		as := c.addAnalyzers(key)
		for i, b := range o.analyzers[key] {
			if err := as[i].Merge(b); err != nil {
				// Unreachable: kinds were checked above.
				return err
			}
		}
	}
	return nil
}

// Summaries returns one Summary per key and kind, with keys in the
// order they were first seen.
func (c *Collection) Summaries() []Summary {
	var out []Summary
	for _, key := range c.keys {
		for _, a := range c.analyzers[key] {
			v, err := a.Value()
			if err != nil {
				// Only keys without measurements fail,
				// and Add never creates those.
				continue
			}
			out = append(out, Summary{Key: key, Label: a.Label(), Kind: a.Kind(), Value: v, N: a.Len()})
		}
	}
	return out
}

// Series returns one series per config for the given unit, with one
// point per benchmark holding the aggregate of the given kind.
// Benchmarks a config has no measurements for are left out of its
// series.
func (c *Collection) Series(unit string, kind analyzer.Kind) ([]graph.Series, error) {
	idx := -1
	for i, p := range c.protos {
		if p.Kind() == kind {
			idx = i
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("collection does not compute %s", kind)
	}
	var out []graph.Series
	for _, config := range c.Configs {
		s := graph.Series{Name: config}
		for _, bench := range c.Benchmarks {
			as, ok := c.analyzers[Key{config, bench, unit}]
			if !ok {
				continue
			}
			v, err := as[idx].Value()
			if err != nil {
				continue
			}
			s.Add(bench, v)
		}
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no measurements with unit %q", unit)
	}
	return out, nil
}
