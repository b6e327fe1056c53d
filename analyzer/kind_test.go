// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregates(t *testing.T) {
	check := func(k Kind, xs []float64, want float64) {
		t.Helper()
		a := feed(MustNew(k), xs...)
		got, err := a.Value()
		require.NoError(t, err)
		if math.IsNaN(want) {
			assert.True(t, math.IsNaN(got), "%v of %v = %v, want NaN", k, xs, got)
			return
		}
		assert.InDelta(t, want, got, 1e-9, "%v of %v", k, xs)
	}
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	check(Mean, xs, 5)
	check(Sum, xs, 40)
	check(Min, xs, 2)
	check(Max, xs, 9)
	check(Variance, xs, 32.0/7)
	check(StdDev, xs, math.Sqrt(32.0/7))
	check(Median, xs, 4.5)
	check(Median, []float64{9, 1, 5}, 5)
	check(GeoMean, []float64{1, 2, 4}, 2)
	check(GeoMean, []float64{1, 0, 4}, math.NaN())

	// A single value has zero sample variance.
	check(Variance, []float64{3}, 0)
	check(Min, []float64{-1}, -1)
}

func TestVarianceStable(t *testing.T) {
	// Naive sum-of-squares loses all precision here.
	a := MustNew(Variance)
	for _, x := range []float64{4, 7, 13, 16} {
		a.Add(1e9 + x)
	}
	v, err := a.Value()
	require.NoError(t, err)
	assert.InDelta(t, 30.0, v, 1e-6)
}

func TestMedianKeepsOrder(t *testing.T) {
	a := feed(MustNew(Median), 3, 1, 2)
	_, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, a.Values())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.ShortName())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	k, err := ParseKind(" StdDev ")
	require.NoError(t, err)
	assert.Equal(t, StdDev, k)

	_, err = ParseKind("mode")
	assert.Error(t, err)

	ks, err := ParseKinds("mean, min,,max")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Mean, Min, Max}, ks)

	_, err = ParseKinds("mean,bogus")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Arithmetic mean", Mean.String())
	assert.Equal(t, "geomean", GeoMean.ShortName())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
