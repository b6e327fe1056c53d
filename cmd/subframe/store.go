// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/linearbits/subframe/report"
	"github.com/linearbits/subframe/storage/db"
	_ "github.com/linearbits/subframe/storage/db/sqlite3"
)

var storeCmd = &cobra.Command{
	Use:   "store [flags] files...",
	Short: "Store benchmark summaries in a SQL database",
	Long: `Store summarizes benchmark results and records the summaries as a new upload
in a sqlite3 or mysql database, printing the upload ID. Cloud SQL instances
are reached with a DSN such as "user:@cloudsql(project:region:instance)/db".`,
	RunE: runStore,
}

var showCmd = &cobra.Command{
	Use:   "show [flags] upload-id",
	Short: "Print the summaries of a stored upload",
	Long:  `Show reads the summaries of one upload back from the database and prints them as a text table.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	for _, cmd := range []*cobra.Command{storeCmd, showCmd} {
		f := cmd.Flags()
		f.String("driver", "sqlite3", "database `driver`: sqlite3 or mysql")
		f.String("dsn", "", "database data source `name`")
	}
	storeCmd.Flags().String("label", "", "upload `label`")
	// The db.* keys are bound in openDB, once the running command is known.
	rootCmd.AddCommand(storeCmd, showCmd)
}

func bindDBFlags(cmd *cobra.Command) error {
	for _, name := range []string{"driver", "dsn", "label"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag("db."+name, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func openDB(cmd *cobra.Command) (*db.DB, error) {
	if err := bindDBFlags(cmd); err != nil {
		return nil, err
	}
	dsn := viper.GetString("db.dsn")
	if dsn == "" {
		return nil, fmt.Errorf("%s needs --dsn", cmd.Name())
	}
	return db.OpenSQL(viper.GetString("db.driver"), dsn)
}

func runStore(cmd *cobra.Command, args []string) (err error) {
	kinds, opts, err := collectionConfig()
	if err != nil {
		return err
	}
	d, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, d.Close()) }()

	c, err := load(cmd.Context(), args, kinds, opts)
	if err != nil {
		return err
	}
	u, err := d.NewUpload(cmd.Context(), viper.GetString("db.label"))
	if err != nil {
		return err
	}
	ss := c.Summaries()
	if err := u.InsertSummaries(cmd.Context(), ss); err != nil {
		return err
	}
	logger.Info("stored summaries", zap.String("upload", u.ID), zap.Int("summaries", len(ss)))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), u.ID)
	return err
}

func runShow(cmd *cobra.Command, args []string) (err error) {
	d, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, d.Close()) }()

	ss, err := d.ListSummaries(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(ss) == 0 {
		return fmt.Errorf("upload %s has no summaries", args[0])
	}
	return report.FormatText(cmd.OutOrStdout(), ss)
}
