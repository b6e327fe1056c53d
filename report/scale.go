// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"math"
)

// A Scaler is a function that scales and formats a measurement.
// All values in one column of a report are formatted with the same
// scaler, so that they share a suffix.
type Scaler func(float64) string

// NewScaler returns a Scaler appropriate for formatting the
// measurement val, which has the given unit. Time units ("ns/op",
// "sec/op") are scaled to s/ms/µs/ns, byte units get a "B" suffix,
// and everything else uses SI prefixes.
func NewScaler(val float64, unit string) Scaler {
	switch unit {
	case "ns/op":
		return timeScaler(val, 1e-9)
	case "sec/op":
		return timeScaler(val, 1)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return func(v float64) string { return fmt.Sprint(v) }
	}

	prescale := 1.0
	if unit == "MB/s" {
		prescale = 1e6
	}

	format, scale, suffix := siPrefix(math.Abs(val * prescale))
	switch {
	case unit == "B/op" || unit == "bytes":
		suffix += "B"
	case unit == "MB/s":
		suffix += "B/s"
	}
	scale /= prescale

	return func(v float64) string {
		return fmt.Sprintf(format+suffix, v/scale)
	}
}

var siPrefixes = []struct {
	scale  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
}

// siPrefix picks the largest prefix that leaves x at least 0.995,
// and a precision that shows three significant digits.
func siPrefix(x float64) (format string, scale float64, suffix string) {
	scale = 1
	for _, p := range siPrefixes {
		if x >= 0.995*p.scale {
			scale, suffix = p.scale, p.suffix
			break
		}
	}
	return digits(x / scale), scale, suffix
}

func digits(x float64) string {
	switch {
	case x >= 99.5:
		return "%.0f"
	case x >= 9.95:
		return "%.1f"
	}
	return "%.2f"
}

// timeScaler formats durations measured in units of toSec seconds.
func timeScaler(val, toSec float64) Scaler {
	var unit string
	var scale float64
	switch x := math.Abs(val * toSec); {
	case x >= 0.995:
		unit, scale = "s", 1
	case x >= 0.000995:
		unit, scale = "ms", 1e3
	case x >= 0.000000995:
		unit, scale = "µs", 1e6
	default:
		unit, scale = "ns", 1e9
	}
	format := digits(math.Abs(val*toSec*scale)) + unit
	return func(v float64) string {
		return fmt.Sprintf(format, v*toSec*scale)
	}
}
