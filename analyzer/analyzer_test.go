// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyzer

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(a *Analyzer, xs ...float64) *Analyzer {
	for _, x := range xs {
		a.Add(x)
	}
	return a
}

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}

func TestMeanScenario(t *testing.T) {
	a := feed(MustNew(Mean), 1, 2, 3)
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, "Arithmetic mean", a.Label())
}

func TestMeanRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 1; n < 200; n += 7 {
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = r.NormFloat64()*100 + 50
		}
		a := feed(MustNew(Mean), xs...)
		v, err := a.Value()
		require.NoError(t, err)
		assert.InDelta(t, sum(xs)/float64(n), v, 1e-9, "n=%d", n)
	}
}

func TestEmpty(t *testing.T) {
	for _, k := range Kinds() {
		a := MustNew(k)
		_, err := a.Value()
		assert.ErrorIs(t, err, ErrEmpty, "fresh %v", k)

		feed(a, 1, 2)
		a.Reset()
		_, err = a.Value()
		// Value must return the sentinel itself, not a wrapper.
		assert.True(t, err == ErrEmpty, "reset %v: got %v", k, err)
	}
}

func TestGrowth(t *testing.T) {
	a := MustNew(Mean, WithCapacity(2), WithGrowthRate(1.5))
	xs := []float64{5, 4, 3, 2, 1}
	feed(a, xs...)
	assert.GreaterOrEqual(t, a.grows, 2)
	assert.GreaterOrEqual(t, a.Cap(), 5)
	assert.Equal(t, xs, a.Values())
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestGrowthLogarithmic(t *testing.T) {
	const c0, rate, n = 4, 1.5, 100000
	a := MustNew(Sum, WithCapacity(c0), WithGrowthRate(rate))
	for i := 0; i < n; i++ {
		a.Add(1)
		if a.Cap() < a.Len() {
			t.Fatalf("capacity %d < length %d", a.Cap(), a.Len())
		}
	}
	bound := int(math.Ceil(math.Log(n/c0)/math.Log(rate))) + 1
	assert.LessOrEqual(t, a.grows, bound)
}

func TestNextCap(t *testing.T) {
	check := func(n int, rate float64, want int) {
		t.Helper()
		if got := nextCap(n, n+1, rate); got != want {
			t.Errorf("nextCap(%d, %v) = %d, want %d", n, rate, got, want)
		}
	}
	check(0, 1.5, 1)
	check(1, 1.5, 2)
	check(2, 1.5, 3)
	check(3, 1.5, 5)
	check(10, 1.5, 15)
	check(10, 1.01, 11)
	check(7, 2, 14)
	check(1, 1e300, 2)
	check(1<<40, 1e10, 1<<40+1)

	if got := nextCap(4, 9, 1e300); got != 9 {
		t.Errorf("nextCap(4, 9, 1e300) = %d, want 9", got)
	}
}

func TestHugeGrowthRate(t *testing.T) {
	a := feed(MustNew(Sum, WithCapacity(1), WithGrowthRate(1e300)), 1, 2, 3)
	assert.Equal(t, []float64{1, 2, 3}, a.Values())
	assert.GreaterOrEqual(t, a.Cap(), 3)

	b := feed(MustNew(Sum, WithCapacity(2), WithGrowthRate(1e300)), 4, 5)
	require.NoError(t, a.Merge(b))
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, 15.0, v)
}

func TestZeroCapacity(t *testing.T) {
	a := feed(MustNew(Max, WithCapacity(0)), 3, 9, 1)
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestInvalidOptions(t *testing.T) {
	_, err := New(Mean, WithCapacity(-1))
	assert.Error(t, err)
	for _, rate := range []float64{1, 0.5, -2, math.NaN(), math.Inf(1)} {
		_, err = New(Mean, WithGrowthRate(rate))
		assert.Error(t, err, "rate %v", rate)
	}
	_, err = New(Kind(42))
	assert.Error(t, err)
}

func TestResetReuse(t *testing.T) {
	xs := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	for _, k := range Kinds() {
		a := feed(MustNew(k, WithCapacity(1)), xs...)
		want, err := a.Value()
		require.NoError(t, err)
		capBefore := a.Cap()

		a.Reset()
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, capBefore, a.Cap())
		grows := a.grows
		feed(a, xs...)
		assert.Equal(t, grows, a.grows, "%v reallocated after reset", k)

		got, err := a.Value()
		require.NoError(t, err)
		fresh, _ := feed(MustNew(k), xs...).Value()
		assert.Equal(t, want, got, "%v", k)
		assert.Equal(t, fresh, got, "%v", k)
	}
}

func TestMerge(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{10, 20}
	a := feed(MustNew(Mean, WithCapacity(1)), xs...)
	b := feed(MustNew(Mean), ys...)
	require.NoError(t, a.Merge(b))

	assert.Equal(t, []float64{1, 2, 3, 10, 20}, a.Values())
	v, err := a.Value()
	require.NoError(t, err)
	assert.InDelta(t, (sum(xs)+sum(ys))/5, v, 1e-12)

	// b is untouched.
	assert.Equal(t, ys, b.Values())
}

func TestMergeEachKind(t *testing.T) {
	xs := []float64{2, 8, 4}
	ys := []float64{16, 1}
	all := append(append([]float64(nil), xs...), ys...)
	for _, k := range Kinds() {
		a := feed(MustNew(k), xs...)
		require.NoError(t, a.Merge(feed(MustNew(k), ys...)))
		got, err := a.Value()
		require.NoError(t, err)
		want, _ := feed(MustNew(k), all...).Value()
		assert.Equal(t, want, got, "%v", k)
	}
}

func TestMergeSelf(t *testing.T) {
	a := feed(MustNew(Sum, WithCapacity(3)), 1, 2, 3)
	require.NoError(t, a.Merge(a))
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, a.Values())
}

func TestMergeEmpty(t *testing.T) {
	a := MustNew(Min)
	require.NoError(t, a.Merge(MustNew(Min)))
	_, err := a.Value()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, a.Merge(feed(MustNew(Min), 7)))
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestMergeIncompatible(t *testing.T) {
	a := feed(MustNew(Mean), 1, 2)
	b := feed(MustNew(Variance), 3, 4, 5)
	capA, capB := a.Cap(), b.Cap()

	err := a.Merge(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleMerge))

	assert.Equal(t, []float64{1, 2}, a.Values())
	assert.Equal(t, []float64{3, 4, 5}, b.Values())
	assert.Equal(t, capA, a.Cap())
	assert.Equal(t, capB, b.Cap())
}

func TestMergeNil(t *testing.T) {
	a := feed(MustNew(Mean), 1, 2)
	err := a.Merge(nil)
	assert.ErrorIs(t, err, ErrIncompatibleMerge)
	assert.Equal(t, []float64{1, 2}, a.Values())
}

func TestNewInstance(t *testing.T) {
	a := feed(MustNew(Max, WithLabel("peak"), WithCapacity(2), WithGrowthRate(3)), 1, 2, 3)
	b := a.NewInstance()
	assert.Equal(t, Max, b.Kind())
	assert.Equal(t, "peak", b.Label())
	assert.Equal(t, a.Cap(), b.Cap())
	assert.Equal(t, 3.0, b.GrowthRate())
	assert.Equal(t, 0, b.Len())

	_, err := b.Value()
	assert.ErrorIs(t, err, ErrEmpty)

	// The two share no storage.
	b.Add(100)
	v, _ := a.Value()
	assert.Equal(t, 3.0, v)
	assert.Equal(t, []float64{1, 2, 3}, a.Values())
}

func TestValuesCopy(t *testing.T) {
	a := feed(MustNew(Sum), 1, 2)
	vs := a.Values()
	vs[0] = 100
	v, _ := a.Value()
	assert.Equal(t, 3.0, v)
}

func TestString(t *testing.T) {
	a := MustNew(Sum, WithLabel("total"))
	assert.Equal(t, "total=<empty>", a.String())
	feed(a, 1.5, 1)
	assert.Equal(t, "total=2.5", a.String())
}
