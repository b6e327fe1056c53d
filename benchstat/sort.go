// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"fmt"
	"sort"
	"strings"
)

// A SortFunc compares two summaries, reporting whether a sorts before b.
type SortFunc func(a, b *Summary) bool

// ByName sorts summaries by benchmark name, then unit.
func ByName(a, b *Summary) bool {
	if a.Benchmark != b.Benchmark {
		return a.Benchmark < b.Benchmark
	}
	return a.Unit < b.Unit
}

// ByConfig sorts summaries by config.
func ByConfig(a, b *Summary) bool {
	return a.Config < b.Config
}

// ByValue sorts summaries by their aggregate value.
func ByValue(a, b *Summary) bool {
	return a.Value < b.Value
}

// SortReverse returns a SortFunc that is the reverse of sortFunc.
func SortReverse(sortFunc SortFunc) SortFunc {
	return func(a, b *Summary) bool { return sortFunc(b, a) }
}

// Sort sorts ss in place by sortFunc. Summaries that compare equal
// keep their order.
func Sort(ss []Summary, sortFunc SortFunc) {
	if sortFunc == nil {
		return
	}
	sort.SliceStable(ss, func(i, j int) bool { return sortFunc(&ss[i], &ss[j]) })
}

var sortFuncs = map[string]SortFunc{
	"name":   ByName,
	"config": ByConfig,
	"value":  ByValue,
}

// ParseSort returns the SortFunc named by order: "name", "config" or
// "value", optionally prefixed with "-" to reverse it. The empty order
// means keep the read order and returns nil.
func ParseSort(order string) (SortFunc, error) {
	if order == "" || order == "none" {
		return nil, nil
	}
	name := strings.TrimPrefix(order, "-")
	f, ok := sortFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown sort order %q", order)
	}
	if name != order {
		f = SortReverse(f)
	}
	return f, nil
}
