// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes the Go benchmark format.
//
// This implements the subset of the format documented at
// https://golang.org/design/14313-benchmark-format that is needed to
// feed benchmark measurements into analyzers: file configuration
// lines ("key: value") and benchmark result lines
// ("BenchmarkName N value unit [value unit...]"). Unit metadata lines
// are skipped.
//
// Values are kept exactly as they appear in the input; units are not
// tidied or rescaled.
package benchfmt

import "strings"

// A Result is a single benchmark result and all of its measurements.
type Result struct {
	// Config is the file configuration in effect for this result,
	// in the order keys first appeared. Keys are unique.
	Config []Config

	// Name is the full benchmark name without the "Benchmark"
	// prefix, including sub-benchmark configuration.
	Name Name

	// Iters is the number of iterations this result was averaged
	// over.
	Iters int

	// Values is this result's measurements and their units.
	Values []Value

	fileName string
	line     int
}

// A Config is a single key/value configuration pair. File is set for
// configuration read from a benchmark file and clear for
// configuration supplied by tooling, such as ".file".
type Config struct {
	Key   string
	Value string
	File  bool
}

// A Value is a single measurement and its unit.
type Value struct {
	Value float64
	Unit  string
}

// Pos returns the file name and line number a Result was read from,
// or "", 0 for a Result that was not read by a Reader.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone returns a copy of r that shares no state with r.
func (r *Result) Clone() *Result {
	return &Result{
		Config:   append([]Config(nil), r.Config...),
		Name:     r.Name,
		Iters:    r.Iters,
		Values:   append([]Value(nil), r.Values...),
		fileName: r.fileName,
		line:     r.line,
	}
}

// GetConfig returns the value of configuration key, or "" if it is
// not set.
func (r *Result) GetConfig(key string) string {
	if i := r.configIndex(key); i >= 0 {
		return r.Config[i].Value
	}
	return ""
}

// SetConfig sets key to value as internal configuration. An empty
// value deletes key, preserving the order of the remaining keys.
func (r *Result) SetConfig(key, value string) {
	r.setConfig(key, value, false)
}

// setConfig never modifies r.Config in place, since Results read
// from the same file share their configuration.
func (r *Result) setConfig(key, value string, file bool) {
	i := r.configIndex(key)
	if value == "" {
		if i >= 0 {
			cfg := make([]Config, 0, len(r.Config)-1)
			cfg = append(cfg, r.Config[:i]...)
			r.Config = append(cfg, r.Config[i+1:]...)
		}
		return
	}
	cfg := append(make([]Config, 0, len(r.Config)+1), r.Config...)
	if i >= 0 {
		cfg[i] = Config{key, value, file}
	} else {
		cfg = append(cfg, Config{key, value, file})
	}
	r.Config = cfg
}

func (r *Result) configIndex(key string) int {
	for i, cfg := range r.Config {
		if cfg.Key == key {
			return i
		}
	}
	return -1
}

// Value returns the measurement for the given unit.
func (r *Result) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// A Name is a full benchmark name, such as "Encode/size=1k-8".
type Name string

// Base returns the base part of the name, without sub-benchmark
// configuration or GOMAXPROCS suffix.
func (n Name) Base() string {
	s := string(n)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i]
	}
	base, _ := n.splitGomaxprocs()
	return base
}

// Gomaxprocs returns the GOMAXPROCS suffix of the name, such as
// "-8", or "" if there is none.
func (n Name) Gomaxprocs() string {
	_, procs := n.splitGomaxprocs()
	return procs
}

func (n Name) splitGomaxprocs() (prefix, gomaxprocs string) {
	s := string(n)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '-' && i < len(s)-1 {
			return s[:i], s[i:]
		}
		if !('0' <= s[i] && s[i] <= '9') {
			break
		}
	}
	return s, ""
}
