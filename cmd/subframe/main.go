// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Subframe summarizes, charts, and stores Go benchmark results.
//
// Usage:
//
//	subframe summarize [--analyzers list] [--format text|html|csv] [--sort order] files...
//	subframe chart [--unit unit] [--kind analyzer] [--plot kind] [--out file] [--publish target] files...
//	subframe store --driver driver --dsn dsn [--label label] files...
//	subframe show --driver driver --dsn dsn upload-id
//	subframe export [--bench regexp] [--procs n] [--unit unit] [-o file] files...
//
// Each input file should contain the concatenated output of a number
// of runs of ``go test -bench.'' An input of the form label=path uses
// label instead of the path to name its results. Files are read
// concurrently and each (file, benchmark, unit) triple is summarized by
// every analyzer named in --analyzers: mean, geomean, variance, stddev,
// min, max, median, or sum.
//
// Flags may also be set in a subframe.yaml file in the current
// directory (or the file named by --config), or through environment
// variables such as SUBFRAME_ANALYZERS.
//
// The chart command draws one series per input file with one point per
// benchmark, using the aggregate named by --kind for the measurements
// with the given unit. The image format follows the extension of --out.
// With --publish, the image is also copied to a directory or to a
// gs://bucket/prefix Cloud Storage location.
//
// The store command records the summaries in a SQL database (sqlite3,
// or mysql, including Cloud SQL through the cloudsql dialer) and prints
// the new upload ID, which show reads back.
//
// The export command writes the results that match its filters back
// out in the Go benchmark format.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/linearbits/subframe/analyzer"
	"github.com/linearbits/subframe/benchstat"
)

// logger is replaced by initConfig before any command runs.
var logger = zap.NewNop()

// rootCmd is the base command; every subcommand is attached to it.
var rootCmd = &cobra.Command{
	Use:   "subframe",
	Short: "Summarize, chart, and store Go benchmark results",
	Long: `Subframe reads the output of "go test -bench" and summarizes each benchmark
with streaming analyzers. The summaries can be printed as text, HTML, or CSV,
drawn as charts, or stored in a SQL database.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config `file` (default ./subframe.yaml)")
	pf.BoolP("verbose", "v", false, "log progress to standard error")
	pf.String("analyzers", "mean", "comma-separated `list` of analyzers to compute")
	pf.Int("capacity", analyzer.DefaultCapacity, "initial analyzer buffer capacity")
	pf.Float64("growth-rate", analyzer.DefaultGrowthRate, "analyzer buffer growth rate, greater than 1")
	for _, name := range []string{"config", "verbose", "analyzers", "capacity", "growth-rate"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig loads the config file and environment and sets up logging.
func initConfig(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("SUBFRAME")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("subframe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	level := zapcore.WarnLevel
	if viper.GetBool("verbose") {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config", zap.String("file", used))
	}
	return nil
}

// collectionConfig returns the analyzer kinds and options selected by
// the flags. extra kinds are added if not already listed.
func collectionConfig(extra ...analyzer.Kind) ([]analyzer.Kind, []analyzer.Option, error) {
	kinds, err := analyzer.ParseKinds(viper.GetString("analyzers"))
	if err != nil {
		return nil, nil, err
	}
	for _, k := range extra {
		if !containsKind(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	opts := []analyzer.Option{
		analyzer.WithCapacity(viper.GetInt("capacity")),
		analyzer.WithGrowthRate(viper.GetFloat64("growth-rate")),
	}
	// Validate the options once, before any file is read.
	if _, err := benchstat.NewCollection(kinds, opts...); err != nil {
		return nil, nil, err
	}
	return kinds, opts, nil
}

func containsKind(kinds []analyzer.Kind, k analyzer.Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
