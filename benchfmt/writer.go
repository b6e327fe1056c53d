// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
)

// A Writer writes the Go benchmark format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first bool
	// fileConfig is the file configuration last written, in
	// order.
	fileConfig []Config
}

// NewWriter returns a writer that writes Go benchmark results to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true}
}

// Write writes res to w. If res's file configuration differs from the
// configuration last written, it first writes the changed keys.
// Internal configuration is not written.
func (w *Writer) Write(res *Result) error {
	var cfg []Config
	for _, c := range res.Config {
		if c.File {
			cfg = append(cfg, c)
		}
	}
	if !sameConfig(cfg, w.fileConfig) {
		w.writeFileConfig(cfg)
	}

	fmt.Fprintf(&w.buf, "Benchmark%s %d", res.Name, res.Iters)
	for _, val := range res.Values {
		fmt.Fprintf(&w.buf, " %s %s", formatValue(val.Value), val.Unit)
	}
	w.buf.WriteByte('\n')
	w.first = false

	// Writes to the buffer can't fail.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// formatValue formats v without an exponent unless it is very large
// or very small, so typical benchmark output is written back verbatim.
func formatValue(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sameConfig(a, b []Config) bool {
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

func (w *Writer) writeFileConfig(cfg []Config) {
	if !w.first {
		// Configuration blocks after results get an extra blank.
		w.buf.WriteByte('\n')
	}

	// Deleted keys are written with an empty value.
	have := make(map[string]string, len(w.fileConfig))
	for _, c := range w.fileConfig {
		have[c.Key] = c.Value
	}
	want := make(map[string]bool, len(cfg))
	for _, c := range cfg {
		want[c.Key] = true
	}
	for _, c := range w.fileConfig {
		if !want[c.Key] {
			fmt.Fprintf(&w.buf, "%s:\n", c.Key)
		}
	}
	for _, c := range cfg {
		if v, ok := have[c.Key]; !ok || v != c.Value {
			fmt.Fprintf(&w.buf, "%s: %s\n", c.Key, c.Value)
		}
	}
	w.buf.WriteByte('\n')

	w.fileConfig = append(w.fileConfig[:0], cfg...)
}
