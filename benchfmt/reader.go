// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Record is a single record read from a benchmark file. It is
// either a *Result or a *SyntaxError.
type Record interface {
	Pos() (fileName string, line int)
}

var _ Record = (*Result)(nil)
var _ Record = (*SyntaxError)(nil)

// A SyntaxError is a malformed line in a benchmark file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

// Pos returns the position of the malformed line.
func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Reader reads the Go benchmark format.
//
// Its API is modeled on bufio.Scanner. Each *Result is newly
// allocated, but Results from the same file share their Config slice,
// so callers must change configuration with SetConfig rather than by
// writing to Config directly.
type Reader struct {
	s        *bufio.Scanner
	err      error
	fileName string
	line     int

	config []Config
	rec    Record
}

// NewReader returns a Reader reading from r. fileName is used in error
// messages and Result positions.
//
// initConfig is an alternating sequence of keys and values installed
// as internal configuration before anything is read.
func NewReader(r io.Reader, fileName string, initConfig ...string) *Reader {
	if len(initConfig)%2 != 0 {
		panic("len(initConfig) must be a multiple of 2")
	}
	if fileName == "" {
		fileName = "<unknown>"
	}
	reader := &Reader{s: bufio.NewScanner(r), fileName: fileName}
	for i := 0; i < len(initConfig); i += 2 {
		reader.setConfig(initConfig[i], initConfig[i+1], false)
	}
	return reader
}

func (r *Reader) setConfig(key, value string, file bool) {
	res := Result{Config: r.config}
	res.setConfig(key, value, file)
	r.config = res.Config
}

// Scan advances to the next record and reports whether one was read.
// At EOF or on an I/O error it returns false, and Err reports the
// error, if any.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		if strings.HasPrefix(line, "Benchmark") {
			res, err := r.parseBenchmarkLine(line)
			if err != nil {
				r.rec = err
				return true
			}
			if res != nil {
				r.rec = res
				return true
			}
			continue
		}
		if key, val, ok := parseKeyValueLine(line); ok {
			r.setConfig(key, val, true)
		}
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	r.rec = nil
	return false
}

// Result returns the record read by the last call to Scan.
func (r *Reader) Result() Record {
	return r.rec
}

// Err returns the I/O error that stopped Scan, if any. Syntax errors
// are reported as records, not here.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) syntaxError(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)}
}

// parseKeyValueLine parses a "key: value" configuration line. Keys
// begin with a lower-case letter and contain no spaces or upper-case
// letters.
func parseKeyValueLine(line string) (key, val string, ok bool) {
	for i := 0; i < len(line); {
		c, n := utf8.DecodeRuneInString(line[i:])
		if i == 0 && !unicode.IsLower(c) {
			return "", "", false
		}
		if unicode.IsSpace(c) || unicode.IsUpper(c) {
			return "", "", false
		}
		if i > 0 && c == ':' {
			key, val = line[:i], line[i+1:]
			break
		}
		i += n
	}
	if key == "" {
		return "", "", false
	}
	if val == "" {
		return key, "", true
	}
	if val[0] != ' ' && val[0] != '\t' {
		return "", "", false
	}
	return key, strings.TrimLeft(val, " \t"), true
}

// parseBenchmarkLine parses a line starting with "Benchmark". It
// returns nil, nil for lines that only name a benchmark, as printed by
// "go test -v".
func (r *Reader) parseBenchmarkLine(line string) (*Result, *SyntaxError) {
	fields := strings.Fields(line[len("Benchmark"):])
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) == 1 {
		if strings.HasPrefix(line, "Benchmark"+fields[0]) && len(line) == len("Benchmark")+len(fields[0]) {
			return nil, nil
		}
		return nil, r.syntaxError("missing iteration count")
	}
	res := &Result{
		Config:   r.config,
		Name:     Name(fields[0]),
		fileName: r.fileName,
		line:     r.line,
	}
	iters, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, r.syntaxError("parsing iteration count: %v", err.(*strconv.NumError).Err)
	}
	res.Iters = iters

	rest := fields[2:]
	if len(rest) == 0 {
		return nil, r.syntaxError("missing measurements")
	}
	for len(rest) > 0 {
		v, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return nil, r.syntaxError("parsing measurement: %v", err.(*strconv.NumError).Err)
		}
		if len(rest) < 2 {
			return nil, r.syntaxError("missing units")
		}
		res.Values = append(res.Values, Value{v, rest[1]})
		rest = rest[2:]
	}
	return res, nil
}
