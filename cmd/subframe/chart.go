// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/linearbits/subframe/analyzer"
	"github.com/linearbits/subframe/graph"
	"github.com/linearbits/subframe/render"
)

var chartCmd = &cobra.Command{
	Use:   "chart [flags] files...",
	Short: "Draw a chart of benchmark summaries",
	Long: `Chart draws one series per input file, with one point per benchmark, from the
aggregate of the measurements with the given unit. The image format follows
the extension of --out (png, svg, pdf, ...).`,
	RunE: runChart,
}

func init() {
	f := chartCmd.Flags()
	f.String("unit", "ns/op", "`unit` of the measurements to chart")
	f.String("kind", "mean", "`analyzer` whose aggregate is charted")
	f.String("plot", graph.ClusteredHistogram.String(), "plot `kind`: histogram, lines, clustered-histogram, clustered-lines, or stacked-histogram")
	f.String("title", "", "chart `title` (default the unit)")
	f.StringP("out", "o", "", "output `file`")
	f.String("publish", "", "also publish the chart to a directory or gs://bucket/prefix `target`")
	f.Float64("width", 20, "image width in `cm`")
	f.Float64("height", 10, "image height in `cm`")
	for _, name := range []string{"unit", "kind", "plot", "title", "out", "publish", "width", "height"} {
		if err := viper.BindPFlag("chart."+name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(chartCmd)
}

// chartName returns the artifact name for a chart of unit, as in
// "ns-per-op.png".
func chartName(unit, format string) string {
	return strings.ReplaceAll(unit, "/", "-per-") + "." + format
}

func runChart(cmd *cobra.Command, args []string) error {
	out, target := viper.GetString("chart.out"), viper.GetString("chart.publish")
	if out == "" && target == "" {
		return fmt.Errorf("chart needs --out or --publish")
	}
	kind, err := analyzer.ParseKind(viper.GetString("chart.kind"))
	if err != nil {
		return err
	}
	plotKind, err := graph.ParseKind(viper.GetString("chart.plot"))
	if err != nil {
		return err
	}
	kinds, opts, err := collectionConfig(kind)
	if err != nil {
		return err
	}

	c, err := load(cmd.Context(), args, kinds, opts)
	if err != nil {
		return err
	}
	unit := viper.GetString("chart.unit")
	series, err := c.Series(unit, kind)
	if err != nil {
		return err
	}
	p := &graph.Plot{
		Kind:   plotKind,
		Title:  viper.GetString("chart.title"),
		XLabel: "benchmark",
		YLabel: kind.ShortName() + " " + unit,
		Series: series,
	}
	if p.Title == "" {
		p.Title = unit
	}

	r := &render.Renderer{
		Width:  vg.Length(viper.GetFloat64("chart.width")) * vg.Centimeter,
		Height: vg.Length(viper.GetFloat64("chart.height")) * vg.Centimeter,
		Logger: logger,
	}
	if out != "" {
		if err := r.Render(p, out); err != nil {
			return err
		}
	}
	if target == "" {
		return nil
	}

	format, name := "png", chartName(unit, "png")
	if out != "" {
		format, name = render.Format(out), filepath.Base(out)
	}
	var buf bytes.Buffer
	if err := r.Encode(&buf, p, format); err != nil {
		return err
	}
	return publishTo(cmd, target, name, &buf)
}
