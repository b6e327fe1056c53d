// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyzer

import (
	"fmt"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// A Kind selects the aggregate an Analyzer computes.
type Kind int

const (
	// Mean is the arithmetic mean, sum(xs)/len(xs).
	Mean Kind = iota

	// GeoMean is the geometric mean, exp(sum(ln xs)/len(xs)). It
	// is NaN if any value is <= 0.
	GeoMean

	// Variance is the sample variance, with divisor len(xs)-1. It
	// is 0 for a single value.
	Variance

	// StdDev is the sample standard deviation, sqrt(Variance).
	StdDev

	// Min is the smallest value.
	Min

	// Max is the largest value.
	Max

	// Median is the 0.5 quantile, interpolated between the two
	// middle values for an even number of values.
	Median

	// Sum is the sum of all values.
	Sum

	numKinds
)

type kindInfo struct {
	name, short string
	aggregate   func(xs []float64) float64
}

var kinds = [numKinds]kindInfo{
	Mean: {"Arithmetic mean", "mean", func(xs []float64) float64 {
		return stats.Sample{Xs: xs}.Sum() / float64(len(xs))
	}},
	GeoMean: {"Geometric mean", "geomean", stats.GeoMean},
	Variance: {"Variance", "variance", stats.Variance},
	StdDev:   {"Standard deviation", "stddev", stats.StdDev},
	Min: {"Minimum", "min", func(xs []float64) float64 {
		min, _ := stats.Bounds(xs)
		return min
	}},
	Max: {"Maximum", "max", func(xs []float64) float64 {
		_, max := stats.Bounds(xs)
		return max
	}},
	// Quantile sorts a copy, so the buffer keeps insertion order.
	Median: {"Median", "median", func(xs []float64) float64 {
		return stats.Sample{Xs: xs}.Quantile(0.5)
	}},
	Sum: {"Sum", "sum", func(xs []float64) float64 {
		return stats.Sample{Xs: xs}.Sum()
	}},
}

func (k Kind) valid() bool {
	return k >= 0 && k < numKinds
}

// String returns the human-readable name of k, which is also the
// default label of analyzers of this kind.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

// ShortName returns the short, lower-case name of k, as accepted by
// ParseKind.
func (k Kind) ShortName() string {
	if !k.valid() {
		return k.String()
	}
	return kinds[k].short
}

func (k Kind) aggregate(xs []float64) float64 {
	return kinds[k].aggregate(xs)
}

// Kinds returns all known kinds in order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// ParseKind returns the Kind with the given short name, such as "mean"
// or "stddev". Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := Kind(0); k < numKinds; k++ {
		if kinds[k].short == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown analyzer %q", name)
}

// ParseKinds parses a comma-separated list of kind short names.
func ParseKinds(list string) ([]Kind, error) {
	var ks []Kind
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		ks = append(ks, k)
	}
	return ks, nil
}
