// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linearbits/subframe/analyzer"
	"github.com/linearbits/subframe/benchfmt"
	"github.com/linearbits/subframe/benchstat"
)

// load reads every input concurrently into its own Collection and
// merges them, in input order, into one. Malformed lines are logged
// and skipped; an unreadable input fails the whole load.
func load(ctx context.Context, paths []string, kinds []analyzer.Kind, opts []analyzer.Option) (*benchstat.Collection, error) {
	files := benchfmt.Files{Paths: paths, AllowStdin: true, AllowLabels: true}
	inputs := files.Inputs()
	parts := make([]*benchstat.Collection, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := benchstat.NewCollection(kinds, opts...)
			if err != nil {
				return err
			}
			r, err := in.Open()
			if err != nil {
				return err
			}
			err = multierr.Append(c.AddFile(in.Label, r), r.Close())
			for _, e := range multierr.Errors(err) {
				var se *benchfmt.SyntaxError
				if !errors.As(e, &se) {
					return fmt.Errorf("reading %s: %w", in.Path, e)
				}
				logger.Warn("skipping malformed line",
					zap.String("file", se.FileName),
					zap.Int("line", se.Line),
					zap.String("error", se.Msg))
			}
			logger.Debug("read input",
				zap.String("path", in.Path),
				zap.String("label", in.Label),
				zap.Int("keys", len(c.Keys())))
			parts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all, err := benchstat.NewCollection(kinds, opts...)
	if err != nil {
		return nil, err
	}
	for _, c := range parts {
		if err := all.Merge(c); err != nil {
			return nil, err
		}
	}
	return all, nil
}
