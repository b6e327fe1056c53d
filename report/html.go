// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"
	"strconv"

	"github.com/google/safehtml/template"

	"github.com/linearbits/subframe/benchstat"
)

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='subframe'>
<tr><th>config<th>name<th>unit{{range .Kinds}}<th>{{.}}{{end}}<th>n
{{range .Rows -}}
<tr><td>{{.Config}}<td>{{.Benchmark}}<td>{{.Unit}}{{range .Values}}<td>{{.}}{{end}}<td>{{.N}}
{{end -}}
</table>
`))

type htmlRow struct {
	Config, Benchmark, Unit string
	Values                  []string
	N                       string
}

// HTMLHeader is the start of a standalone HTML page holding the
// output of FormatHTML.
const HTMLHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Performance Result Comparison</title>
<style>
.subframe tbody td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.subframe tr:nth-child(odd) { background: #f8f8f8; }
</style>
</head>
<body>
`

// HTMLFooter is the end of a standalone HTML page.
const HTMLFooter = `</body>
</html>
`

// FormatHTML writes ss to w as an HTML table. All text is escaped.
func FormatHTML(w io.Writer, ss []benchstat.Summary) error {
	kinds, rows := group(ss)
	data := struct {
		Kinds []string
		Rows  []htmlRow
	}{}
	for _, k := range kinds {
		data.Kinds = append(data.Kinds, k.ShortName())
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, htmlRow{
			Config:    r.Config,
			Benchmark: r.Benchmark,
			Unit:      r.Unit,
			Values:    r.formatted(),
			N:         strconv.Itoa(r.n),
		})
	}
	return htmlTemplate.Execute(w, data)
}
