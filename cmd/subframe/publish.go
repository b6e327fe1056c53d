// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/linearbits/subframe/publish"
)

// publishTo copies r to name at target.
func publishTo(cmd *cobra.Command, target, name string, r io.Reader) (err error) {
	p, err := publish.Open(cmd.Context(), target)
	if err != nil {
		return err
	}
	if c, ok := p.(io.Closer); ok {
		defer func() { err = multierr.Append(err, c.Close()) }()
	}
	if err := p.Publish(cmd.Context(), name, r); err != nil {
		return err
	}
	logger.Info("published", zap.String("target", target), zap.String("name", name))
	return nil
}
