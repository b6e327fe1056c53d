// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/linearbits/subframe/benchstat"
)

// FormatCSV writes ss to w as CSV with a header row. Values are
// written unscaled; missing aggregates are empty.
func FormatCSV(w io.Writer, ss []benchstat.Summary) error {
	kinds, rows := group(ss)
	cw := csv.NewWriter(w)

	header := []string{"config", "name", "unit"}
	for _, k := range kinds {
		header = append(header, k.ShortName())
	}
	header = append(header, "n")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{r.Config, r.Benchmark, r.Unit}
		for i, v := range r.values {
			if !r.present[i] {
				rec = append(rec, "")
			} else {
				rec = append(rec, formatRaw(v))
			}
		}
		rec = append(rec, strconv.Itoa(r.n))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
