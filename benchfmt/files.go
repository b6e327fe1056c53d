// Copyright 2026 The Subframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// A Files reads benchmark results from a sequence of input files.
//
// Every Result gets a ".file" internal configuration key naming the
// input it came from. By default this is the path itself, with "#N"
// appended when the same path is given more than once. If AllowLabels
// is set, a path of the form label=path uses label instead.
type Files struct {
	// Paths is the list of file names to read.
	Paths []string

	// AllowStdin treats the path "-" as standard input, and an
	// empty Paths as a single "-".
	AllowStdin bool

	// AllowLabels permits label=path entries in Paths.
	AllowLabels bool

	inputs  []Input
	started bool

	reader  *Reader
	file    *os.File
	isStdin bool
	err     error
}

// An Input is one file to read and the label its results get.
type Input struct {
	Path, Label string
	Stdin       bool
}

// Open opens in for reading. Closing standard input is a no-op.
func (in Input) Open() (io.ReadCloser, error) {
	if in.Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(in.Path)
}

// Inputs resolves Paths into the list of inputs, in order, with labels
// disambiguated.
func (f *Files) Inputs() []Input {
	var inputs []Input
	if f.AllowStdin && len(f.Paths) == 0 {
		inputs = append(inputs, Input{"-", "-", true})
	}
	pathCount := make(map[string]int)
	labeled := make([]bool, 0, len(f.Paths))
	for _, path := range f.Paths {
		label, isLabeled := path, false
		if i := strings.Index(path, "="); f.AllowLabels && i >= 0 {
			label, path = path[:i], path[i+1:]
			isLabeled = true
		} else {
			pathCount[path]++
		}
		inputs = append(inputs, Input{path, label, f.AllowStdin && path == "-"})
		labeled = append(labeled, isLabeled)
	}
	// A repeated path would otherwise produce results with
	// indistinguishable configuration.
	offset := len(inputs) - len(labeled)
	pathI := make(map[string]int)
	for i, isLabeled := range labeled {
		inp := &inputs[offset+i]
		if isLabeled || pathCount[inp.Path] <= 1 {
			continue
		}
		inp.Label = fmt.Sprintf("%s#%d", inp.Path, pathI[inp.Path])
		pathI[inp.Path]++
	}
	return inputs
}

// Scan advances to the next record across all files and reports
// whether one was read. When it returns false, Err reports any I/O
// error.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if !f.started {
		f.inputs = f.Inputs()
		f.started = true
	}
	for {
		if f.file == nil {
			if len(f.inputs) == 0 {
				return false
			}
			inp := f.inputs[0]
			f.inputs = f.inputs[1:]
			if inp.Stdin {
				f.isStdin, f.file = true, os.Stdin
			} else {
				file, err := os.Open(inp.Path)
				if err != nil {
					f.err = err
					return false
				}
				f.isStdin, f.file = false, file
			}
			f.reader = NewReader(f.file, inp.Path, ".file", inp.Label)
		}

		if f.reader.Scan() {
			return true
		}
		if err := f.reader.Err(); err != nil {
			f.err = err
			f.close()
			return false
		}
		f.close()
	}
}

func (f *Files) close() {
	if !f.isStdin {
		f.file.Close()
	}
	f.file = nil
}

// Result returns the record read by the last call to Scan.
func (f *Files) Result() Record {
	return f.reader.Result()
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}
