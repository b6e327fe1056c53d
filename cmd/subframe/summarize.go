// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linearbits/subframe/benchstat"
	"github.com/linearbits/subframe/report"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [flags] files...",
	Short: "Print summaries of benchmark results",
	Long: `Summarize reads benchmark results and prints one row per file, benchmark, and
unit, with one column per analyzer. With no files, it reads standard input.`,
	RunE: runSummarize,
}

func init() {
	f := summarizeCmd.Flags()
	f.String("format", "text", "output `format`: text, html, or csv")
	f.String("sort", "", "sort `order`: name, config, or value, with a leading - to reverse")
	f.String("publish", "", "also publish the report to a directory or gs://bucket/prefix `target`")
	f.String("name", "", "artifact `name` for --publish (default summary.<format>)")
	for _, name := range []string{"format", "sort", "publish", "name"} {
		if err := viper.BindPFlag("summarize."+name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(summarizeCmd)
}

// formatters maps --format values to report functions.
var formatters = map[string]func(io.Writer, []benchstat.Summary) error{
	"text": report.FormatText,
	"csv":  report.FormatCSV,
	"html": func(w io.Writer, ss []benchstat.Summary) error {
		if _, err := io.WriteString(w, report.HTMLHeader); err != nil {
			return err
		}
		if err := report.FormatHTML(w, ss); err != nil {
			return err
		}
		_, err := io.WriteString(w, report.HTMLFooter)
		return err
	},
}

func runSummarize(cmd *cobra.Command, args []string) error {
	format := viper.GetString("summarize.format")
	formatter, ok := formatters[format]
	if !ok {
		return fmt.Errorf("unknown format %q", format)
	}
	order, err := benchstat.ParseSort(viper.GetString("summarize.sort"))
	if err != nil {
		return err
	}
	kinds, opts, err := collectionConfig()
	if err != nil {
		return err
	}

	c, err := load(cmd.Context(), args, kinds, opts)
	if err != nil {
		return err
	}
	ss := c.Summaries()
	benchstat.Sort(ss, order)

	var buf bytes.Buffer
	if err := formatter(&buf, ss); err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return err
	}

	if target := viper.GetString("summarize.publish"); target != "" {
		name := viper.GetString("summarize.name")
		if name == "" {
			name = "summary." + format
		}
		return publishTo(cmd, target, name, &buf)
	}
	return nil
}
