// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws graph plots to image files using gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/linearbits/subframe/graph"
)

// Default image dimensions.
const (
	DefaultWidth  = 20 * vg.Centimeter
	DefaultHeight = 10 * vg.Centimeter
	DefaultDPI    = 150
)

// barWidth is the width of one bar in a histogram.
const barWidth = vg.Length(12)

// A Renderer draws plots. The zero Renderer uses the default size and
// does not log.
type Renderer struct {
	Width, Height vg.Length
	// DPI is the resolution of raster formats.
	DPI    int
	Logger *zap.Logger
}

func (r *Renderer) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Renderer) size() (w, h vg.Length, dpi int) {
	w, h, dpi = r.Width, r.Height, r.DPI
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return w, h, dpi
}

// Format returns the image format for file, taken from its extension.
func Format(file string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
}

// Render draws p to file. The image format is chosen by the file's
// extension: png, svg, pdf, eps, jpg, or tif.
func (r *Renderer) Render(p *graph.Plot, file string) (err error) {
	wt, err := r.draw(p, Format(file))
	if err != nil {
		return fmt.Errorf("rendering %s: %w", file, err)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	if _, err := wt.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	r.logger().Info("rendered plot",
		zap.String("file", file),
		zap.Stringer("kind", p.Kind),
		zap.Int("series", len(p.Series)))
	return nil
}

// Encode draws p in the given image format and writes it to w.
func (r *Renderer) Encode(w io.Writer, p *graph.Plot, format string) error {
	wt, err := r.draw(p, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func (r *Renderer) draw(p *graph.Plot, format string) (io.WriterTo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	pl, err := build(p)
	if err != nil {
		return nil, err
	}
	w, h, dpi := r.size()
	r.logger().Debug("drawing plot",
		zap.String("title", p.Title),
		zap.String("format", format),
		zap.Float64("width_pt", float64(w)),
		zap.Float64("height_pt", float64(h)))

	if format == "png" {
		c := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
		pl.Draw(draw.New(c))
		return c, nil
	}
	return pl.WriterTo(w, h, format)
}

// build converts p into a gonum plot.
func build(p *graph.Plot) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	var err error
	switch p.Kind {
	case graph.Histogram, graph.ClusteredHistogram, graph.StackedHistogram:
		err = addBars(pl, p)
	case graph.Lines, graph.ClusteredLines:
		err = addLines(pl, p)
	default:
		err = fmt.Errorf("unknown plot kind %v", p.Kind)
	}
	if err != nil {
		return nil, err
	}
	return pl, nil
}

// addBars draws each series as bars over the first series' labels.
// Clustered series are offset side by side; stacked series are drawn
// on top of the previous one.
func addBars(pl *plot.Plot, p *graph.Plot) error {
	n := len(p.Series)
	var prev *plotter.BarChart
	for i, s := range p.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values()), barWidth)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		switch p.Kind {
		case graph.ClusteredHistogram:
			bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth
		case graph.StackedHistogram:
			if prev != nil {
				bars.StackOn(prev)
			}
		}
		pl.Add(bars)
		if n > 1 || s.Name != "" {
			pl.Legend.Add(s.Name, bars)
		}
		prev = bars
	}
	pl.NominalX(p.Series[0].Labels()...)
	return nil
}

// addLines draws each series as a line with points. The X axis holds
// every label of every series, in order of first appearance.
func addLines(pl *plot.Plot, p *graph.Plot) error {
	var labels []string
	index := make(map[string]int)
	for _, s := range p.Series {
		for _, pt := range s.Points {
			if _, ok := index[pt.Label]; !ok {
				index[pt.Label] = len(labels)
				labels = append(labels, pt.Label)
			}
		}
	}

	for i, s := range p.Series {
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(index[pt.Label])
			xys[j].Y = pt.Value
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		pl.Add(line, points)
		pl.Legend.Add(s.Name, line, points)
	}
	pl.NominalX(labels...)
	return nil
}
