// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/linearbits/subframe/benchfmt"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] files...",
	Short: "Re-emit selected benchmark results",
	Long: `Export reads benchmark results and writes the ones that match the filters back
out in the Go benchmark format, with their file configuration. --bench matches
the base benchmark name (without sub-benchmarks or the GOMAXPROCS suffix),
--procs selects one GOMAXPROCS value, and --unit keeps only that measurement.`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("bench", "", "keep benchmarks whose base name matches `regexp`")
	f.String("procs", "", "keep benchmarks run with GOMAXPROCS=`n`")
	f.String("unit", "", "keep only measurements with this `unit`")
	f.StringP("out", "o", "", "output `file` (default standard output)")
	for _, name := range []string{"bench", "procs", "unit", "out"} {
		if err := viper.BindPFlag("export."+name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(exportCmd)
}

// resultFilter selects and trims results for export.
type resultFilter struct {
	bench *regexp.Regexp
	procs string
	unit  string
}

// apply returns the result to write for res, or nil to drop it.
func (f *resultFilter) apply(res *benchfmt.Result) *benchfmt.Result {
	if f.bench != nil && !f.bench.MatchString(res.Name.Base()) {
		return nil
	}
	if f.procs != "" && res.Name.Gomaxprocs() != "-"+f.procs {
		return nil
	}
	if f.unit == "" {
		return res
	}
	v, ok := res.Value(f.unit)
	if !ok {
		return nil
	}
	out := res.Clone()
	out.Values = []benchfmt.Value{{Value: v, Unit: f.unit}}
	return out
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	filter := &resultFilter{
		procs: viper.GetString("export.procs"),
		unit:  viper.GetString("export.unit"),
	}
	if expr := viper.GetString("export.bench"); expr != "" {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("bad --bench: %w", err)
		}
		filter.bench = re
	}

	var w io.Writer = cmd.OutOrStdout()
	if out := viper.GetString("export.out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		w = f
	}

	files := &benchfmt.Files{Paths: args, AllowStdin: true, AllowLabels: true}
	bw := benchfmt.NewWriter(w)
	kept := 0
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *benchfmt.SyntaxError:
			logger.Warn("skipping malformed line",
				zap.String("file", rec.FileName),
				zap.Int("line", rec.Line),
				zap.String("error", rec.Msg))
		case *benchfmt.Result:
			res := filter.apply(rec)
			if res == nil {
				continue
			}
			if err := bw.Write(res); err != nil {
				return err
			}
			kept++
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	logger.Debug("exported results", zap.Int("results", kept))
	return nil
}
