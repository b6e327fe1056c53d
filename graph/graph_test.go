// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func series(name string, kv ...interface{}) Series {
	s := Series{Name: name}
	for i := 0; i < len(kv); i += 2 {
		s.Add(kv[i].(string), kv[i+1].(float64))
	}
	return s
}

func TestValidate(t *testing.T) {
	check := func(p Plot, wantErr bool) {
		t.Helper()
		err := p.Validate()
		if wantErr {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
	a := series("a", "x", 1.0, "y", 2.0)
	b := series("b", "x", 3.0, "y", 4.0)
	c := series("c", "y", 3.0, "x", 4.0)

	check(Plot{Kind: Histogram, Series: []Series{a}}, false)
	check(Plot{Kind: Histogram, Series: []Series{a, b}}, true)
	check(Plot{Kind: Lines, Series: []Series{a, c}}, false)
	check(Plot{Kind: ClusteredHistogram, Series: []Series{a, b}}, false)
	check(Plot{Kind: StackedHistogram, Series: []Series{a, c}}, true)
	check(Plot{Kind: ClusteredLines, Series: []Series{a, series("d", "x", 1.0)}}, true)
	check(Plot{Kind: Lines, Series: []Series{{Name: "empty"}}}, true)
	check(Plot{Kind: Lines, Series: []Series{series("nan", "x", math.NaN())}}, true)
	check(Plot{Kind: Lines, Series: []Series{series("inf", "x", math.Inf(-1))}}, true)
	check(Plot{Kind: Kind(17), Series: []Series{a}}, true)

	assert.ErrorIs(t, (&Plot{}).Validate(), ErrNoSeries)
}

func TestSeries(t *testing.T) {
	s := series("s", "a", 1.0, "b", 2.0)
	assert.Equal(t, []string{"a", "b"}, s.Labels())
	assert.Equal(t, []float64{1, 2}, s.Values())
}

func TestParseKind(t *testing.T) {
	for k := Histogram; k <= StackedHistogram; k++ {
		got, err := ParseKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("pie")
	assert.Error(t, err)
	assert.True(t, StackedHistogram.Clustered())
	assert.False(t, Lines.Clustered())
}
