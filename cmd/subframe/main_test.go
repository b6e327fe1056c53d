// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linearbits/subframe/benchfmt"
)

const oldTxt = `goos: linux

BenchmarkEncode 10 100 ns/op 8 B/op
BenchmarkEncode 10 300 ns/op 8 B/op
BenchmarkDecode 10 50 ns/op 4 B/op
BenchmarkDecode 10 bad ns/op
`

const newTxt = `BenchmarkEncode 10 80 ns/op 8 B/op
BenchmarkDecode 10 40 ns/op 2 B/op
`

// inputs writes the test inputs and returns them as label=path
// arguments.
func inputs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	var args []string
	for _, in := range []struct{ label, data string }{{"old", oldTxt}, {"new", newTxt}} {
		file := filepath.Join(dir, in.label+".txt")
		require.NoError(t, os.WriteFile(file, []byte(in.data), 0666))
		args = append(args, in.label+"="+file)
	}
	return args
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSubcommandsPresent(t *testing.T) {
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, want := range []string{"summarize", "chart", "store", "show", "export"} {
		assert.True(t, have[want], "missing subcommand %s", want)
	}
}

func TestCommandsHaveDescriptions(t *testing.T) {
	var check func(*cobra.Command)
	check = func(cmd *cobra.Command) {
		if cmd.Short == "" || cmd.Long == "" {
			t.Errorf("command %s missing Short/Long", cmd.Name())
		}
		for _, sc := range cmd.Commands() {
			check(sc)
		}
	}
	check(rootCmd)
}

func TestSummarize(t *testing.T) {
	args := append([]string{"summarize", "--analyzers", "mean,max", "--format", "csv"}, inputs(t)...)
	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, `config,name,unit,mean,max,n
old,Encode,ns/op,200,300,2
old,Encode,B/op,8,8,2
old,Decode,ns/op,50,50,1
old,Decode,B/op,4,4,1
new,Encode,ns/op,80,80,1
new,Encode,B/op,8,8,1
new,Decode,ns/op,40,40,1
new,Decode,B/op,2,2,1
`, out)

	_, err = run(t, "summarize", "--format", "xml", "--analyzers", "mean")
	assert.Error(t, err)
	_, err = run(t, "summarize", "--format", "text", "--analyzers", "mode")
	assert.Error(t, err)
	_, err = run(t, "summarize", "--format", "text", "--analyzers", "mean", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestChart(t *testing.T) {
	dir := t.TempDir()
	pub := t.TempDir()
	out := filepath.Join(dir, "chart.svg")
	args := append([]string{"chart", "--analyzers", "mean", "--kind", "median", "--plot", "clustered-histogram",
		"--out", out, "--publish", pub}, inputs(t)...)
	_, err := run(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	published, err := os.ReadFile(filepath.Join(pub, "chart.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(published), "<svg")

	// A histogram takes a single series.
	args = append([]string{"chart", "--analyzers", "mean", "--kind", "mean", "--plot", "histogram",
		"--out", out, "--publish", ""}, inputs(t)...)
	_, err = run(t, args...)
	assert.Error(t, err)
}

func TestStoreShow(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "summaries.db")
	args := append([]string{"store", "--analyzers", "mean", "--driver", "sqlite3", "--dsn", dsn, "--label", "nightly"}, inputs(t)...)
	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "show", "--driver", "sqlite3", "--dsn", dsn, "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, []string{"config", "name", "unit", "mean", "n"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"old", "Encode", "ns/op", "200ns", "2"}, strings.Fields(lines[1]))

	_, err = run(t, "show", "--driver", "sqlite3", "--dsn", dsn, "2")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	args := append([]string{"export", "--bench", "^Enc", "--unit", "ns/op"}, inputs(t)...)
	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, `goos: linux

BenchmarkEncode 10 100 ns/op
BenchmarkEncode 10 300 ns/op

goos:

BenchmarkEncode 10 80 ns/op
`, out)

	_, err = run(t, "export", "--bench", "(", "--unit", "")
	assert.Error(t, err)
}

func TestResultFilter(t *testing.T) {
	res := &benchfmt.Result{
		Name:   "Encode/size=1k-8",
		Iters:  10,
		Values: []benchfmt.Value{{Value: 100, Unit: "ns/op"}, {Value: 8, Unit: "B/op"}},
	}
	check := func(f resultFilter, want []benchfmt.Value) {
		t.Helper()
		got := f.apply(res)
		if want == nil {
			assert.Nil(t, got)
			return
		}
		require.NotNil(t, got)
		assert.Equal(t, want, got.Values)
	}
	check(resultFilter{}, res.Values)
	check(resultFilter{procs: "8"}, res.Values)
	check(resultFilter{procs: "4"}, nil)
	check(resultFilter{unit: "B/op"}, []benchfmt.Value{{Value: 8, Unit: "B/op"}})
	check(resultFilter{unit: "allocs/op"}, nil)

	// Trimming units works on a copy.
	assert.Len(t, res.Values, 2)
}
