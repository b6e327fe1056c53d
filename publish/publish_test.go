// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestDir(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := Dir{Root: root}

	require.NoError(t, d.Publish(ctx, "charts/ns-per-op.svg", strings.NewReader("<svg/>")))
	require.NoError(t, d.Publish(ctx, "report.txt", strings.NewReader("one")))
	require.NoError(t, d.Publish(ctx, "report.txt", strings.NewReader("two")))

	data, err := os.ReadFile(filepath.Join(root, "charts", "ns-per-op.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
	data, err = os.ReadFile(filepath.Join(root, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	for _, name := range []string{"", "/abs", "../escape", "a/../../b", "a//b"} {
		assert.Error(t, d.Publish(ctx, name, strings.NewReader("x")), "name %q", name)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, d.Publish(canceled, "late.txt", strings.NewReader("x")), context.Canceled)
}

func TestParseTarget(t *testing.T) {
	check := func(target string, want Target, wantErr bool) {
		t.Helper()
		got, err := ParseTarget(target)
		if wantErr {
			assert.Error(t, err, "target %q", target)
			return
		}
		require.NoError(t, err, "target %q", target)
		assert.Equal(t, want, got)
	}
	check("gs://bucket/reports/2026/", Target{Scheme: "gs", Bucket: "bucket", Path: "reports/2026"}, false)
	check("gs://bucket", Target{Scheme: "gs", Bucket: "bucket"}, false)
	check("out/charts", Target{Path: "out/charts"}, false)
	check("gs:///prefix", Target{}, true)
	check("s3://bucket/x", Target{}, true)
	check("", Target{}, true)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	p, err := Open(ctx, "gs://perf-results/nightly", option.WithoutAuthentication())
	require.NoError(t, err)
	g, ok := p.(*GCS)
	require.True(t, ok, "got %T", p)
	defer g.Close()
	assert.Equal(t, "perf-results", g.Bucket)
	assert.Equal(t, "nightly/ns-per-op.png", g.Object("ns-per-op.png"))

	p, err = Open(ctx, t.TempDir())
	require.NoError(t, err)
	_, ok = p.(Dir)
	assert.True(t, ok, "got %T", p)
}
