// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GCS publishes artifacts as objects in a Cloud Storage bucket.
type GCS struct {
	Bucket string
	// Prefix is prepended to every object name.
	Prefix string

	client *storage.Client
}

// NewGCS returns a publisher writing to bucket under prefix. With no
// options, it authenticates with the application default credentials.
func NewGCS(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCS, error) {
	if len(opts) == 0 {
		ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("finding default credentials: %w", err)
		}
		opts = []option.ClientOption{option.WithTokenSource(ts)}
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCS{Bucket: bucket, Prefix: prefix, client: client}, nil
}

// Object returns the object name name is published as.
func (g *GCS) Object(name string) string {
	return path.Join(g.Prefix, name)
}

// Publish uploads r to the object Prefix/name. The upload is only
// committed if all of r was read.
func (g *GCS) Publish(ctx context.Context, name string, r io.Reader) error {
	if err := checkName(name); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.client.Bucket(g.Bucket).Object(g.Object(name)).NewWriter(ctx)
	w.ContentType = mime.TypeByExtension(path.Ext(name))
	if _, err := io.Copy(w, r); err != nil {
		// Canceling the context aborts the upload.
		cancel()
		w.Close()
		return fmt.Errorf("uploading gs://%s/%s: %w", g.Bucket, g.Object(name), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("uploading gs://%s/%s: %w", g.Bucket, g.Object(name), err)
	}
	return nil
}

// Close releases the storage client.
func (g *GCS) Close() error {
	return g.client.Close()
}
