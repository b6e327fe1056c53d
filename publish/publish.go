// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish copies rendered reports and charts to their
// destination: a local directory or a Google Cloud Storage bucket.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"google.golang.org/api/option"
)

// A Publisher stores named artifacts.
type Publisher interface {
	// Publish stores the contents of r under name, replacing any
	// existing artifact with that name. name is a slash-separated
	// relative path.
	Publish(ctx context.Context, name string, r io.Reader) error
}

// checkName reports an error if name is not a relative path that
// stays inside its root.
func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	for _, elem := range strings.Split(name, "/") {
		if elem == ".." || elem == "." || elem == "" {
			return fmt.Errorf("invalid artifact name %q", name)
		}
	}
	return nil
}

// Dir publishes artifacts as files under Root.
type Dir struct {
	Root string
}

// Publish writes r to Root/name, creating directories as needed.
func (d Dir) Publish(ctx context.Context, name string, r io.Reader) (err error) {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	file := filepath.Join(d.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(file), 0777); err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	return nil
}

// A Target is a parsed publish destination.
type Target struct {
	// Scheme is "gs" for Cloud Storage and "" for a local directory.
	Scheme string
	// Bucket is the Cloud Storage bucket.
	Bucket string
	// Path is the object prefix for Cloud Storage, or the local
	// directory.
	Path string
}

// ParseTarget parses a destination of the form gs://bucket/prefix or
// a local directory path.
func ParseTarget(target string) (Target, error) {
	if target == "" {
		return Target{}, fmt.Errorf("empty publish target")
	}
	if rest, ok := strings.CutPrefix(target, "gs://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return Target{}, fmt.Errorf("publish target %q: missing bucket", target)
		}
		return Target{Scheme: "gs", Bucket: bucket, Path: strings.Trim(prefix, "/")}, nil
	}
	if i := strings.Index(target, "://"); i >= 0 {
		return Target{}, fmt.Errorf("publish target %q: unsupported scheme %q", target, target[:i])
	}
	return Target{Path: target}, nil
}

// Open returns a Publisher for target, as accepted by ParseTarget.
// opts configure the Cloud Storage client. If the returned Publisher
// is an io.Closer, the caller must close it.
func Open(ctx context.Context, target string, opts ...option.ClientOption) (Publisher, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}
	if t.Scheme == "gs" {
		g, err := NewGCS(ctx, t.Bucket, t.Path, opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return Dir{Root: t.Path}, nil
}
