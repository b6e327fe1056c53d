// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores benchmark summaries in a SQL database.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"go.uber.org/multierr"

	"github.com/linearbits/subframe/analyzer"
	"github.com/linearbits/subframe/benchstat"
)

// DB is a high-level interface to a summary database.
// It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertUpload  *sql.Stmt
	insertSummary *sql.Stmt
	listSummaries *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db, dataSourceName); err != nil {
			return nil, multierr.Append(err, db.Close())
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	if err := d.prepareStatements(); err != nil {
		return nil, multierr.Append(err, d.Close())
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB, string) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. The hook receives the data source name
// passed to OpenSQL. This is used by the sqlite3 package to configure
// connections. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(db *sql.DB, dataSourceName string) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255) NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS Summaries (
	UploadID BIGINT UNSIGNED,
	SummaryID BIGINT UNSIGNED,
	Config VARCHAR(255),
	Benchmark VARCHAR(255),
	Unit VARCHAR(64),
	Kind VARCHAR(32),
	Label VARCHAR(255),
	Value DOUBLE,
	N BIGINT,
{{if not .sqlite3}}
	Index (Benchmark(100), Unit),
{{end}}
	PRIMARY KEY (UploadID, SummaryID),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS SummariesBenchmarkUnit ON Summaries(Benchmark, Unit);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertUpload, err = db.sql.Prepare("INSERT INTO Uploads(Label) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertSummary, err = db.sql.Prepare("INSERT INTO Summaries(UploadID, SummaryID, Config, Benchmark, Unit, Kind, Label, Value, N) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.listSummaries, err = db.sql.Prepare("SELECT Config, Benchmark, Unit, Kind, Label, Value, N FROM Summaries WHERE UploadID = ? ORDER BY SummaryID")
	return err
}

// An Upload is a set of summaries stored together under one upload ID.
type Upload struct {
	// ID identifies the upload for ListSummaries and DeleteUpload.
	ID string
	// Label is a free-form description of the upload.
	Label string

	// id is the numeric value of ID, used as the primary key.
	id int64
	// summaryid is the index of the next summary to insert.
	summaryid int64
	// db is the underlying database that this upload is going to.
	db *DB
}

// NewUpload returns an upload for storing new summaries.
func (db *DB) NewUpload(ctx context.Context, label string) (*Upload, error) {
	res, err := db.insertUpload.ExecContext(ctx, label)
	if err != nil {
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Upload{
		ID:    strconv.FormatInt(i, 10),
		Label: label,
		id:    i,
		db:    db,
	}, nil
}

// InsertSummary inserts a single summary in u.
func (u *Upload) InsertSummary(ctx context.Context, s benchstat.Summary) error {
	return u.InsertSummaries(ctx, []benchstat.Summary{s})
}

// InsertSummaries inserts ss in u in a single transaction. Either all
// of them are stored or none are.
func (u *Upload) InsertSummaries(ctx context.Context, ss []benchstat.Summary) (err error) {
	tx, err := u.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, u.db.insertSummary)
	id := u.summaryid
	for _, s := range ss {
		if _, err := stmt.ExecContext(ctx, u.id, id, s.Config, s.Benchmark, s.Unit, s.Kind.ShortName(), s.Label, s.Value, s.N); err != nil {
			return fmt.Errorf("inserting summary %s/%s: %w", s.Benchmark, s.Unit, err)
		}
		id++
	}
	u.summaryid = id
	return nil
}

// ListSummaries returns the summaries stored in the upload with the
// given ID, in the order they were inserted.
func (db *DB) ListSummaries(ctx context.Context, uploadID string) ([]benchstat.Summary, error) {
	id, err := strconv.ParseInt(uploadID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid upload ID %q", uploadID)
	}
	rows, err := db.listSummaries.QueryContext(ctx, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []benchstat.Summary
	for rows.Next() {
		var s benchstat.Summary
		var kind string
		if err := rows.Scan(&s.Config, &s.Benchmark, &s.Unit, &kind, &s.Label, &s.Value, &s.N); err != nil {
			return nil, err
		}
		if s.Kind, err = analyzer.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("upload %s: %w", uploadID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteUpload deletes the upload with the given ID and all of its
// summaries.
func (db *DB) DeleteUpload(ctx context.Context, uploadID string) error {
	id, err := strconv.ParseInt(uploadID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid upload ID %q", uploadID)
	}
	res, err := db.sql.ExecContext(ctx, "DELETE FROM Uploads WHERE UploadID = ?", id)
	if err != nil {
		return err
	}
	return checkDeleted(uploadID, res)
}

// checkDeleted reports an error unless res deleted at least one row.
func checkDeleted(uploadID string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("upload %s: %w", uploadID, err)
	}
	if n == 0 {
		return fmt.Errorf("upload %s not found", uploadID)
	}
	return nil
}

// CountUploads returns the number of uploads in the database.
func (db *DB) CountUploads(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Uploads").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	var err error
	for _, stmt := range []*sql.Stmt{db.insertUpload, db.insertSummary, db.listSummaries} {
		if stmt != nil {
			err = multierr.Append(err, stmt.Close())
		}
	}
	return multierr.Append(err, db.sql.Close())
}
