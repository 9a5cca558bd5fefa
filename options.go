// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cudf

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/internal/compact"
)

// Options holds the optional parameters for configuring a Filter. These
// options apply to every call made through the Filter.
type Options struct {
	// Parallelism is the maximum number of goroutines used by a single call.
	// The default is runtime.GOMAXPROCS(0). A parallelism of 1 performs every
	// phase on the calling goroutine.
	Parallelism int

	// BlockRows is the number of rows processed by one task. Every phase of
	// a call splits its rows into blocks of this size. BlockRows must be a
	// multiple of 64 so that no bitmap word is shared between tasks. The
	// default is 64K rows.
	BlockRows int

	// DisableFastPaths disables the shortcuts taken when a mask selects every
	// row or no row, forcing every call through the full select, scan and
	// gather pipeline. Results are identical either way.
	DisableFastPaths bool

	// Verbose enables logging of a summary line for every call, and of every
	// validation failure, to Logger.
	Verbose bool

	// Logger used to write log messages.
	//
	// The default logger uses the Go standard library log package.
	Logger Logger

	// Metrics, if set, accumulates statistics about every call made through
	// the Filter. A single Metrics may be shared by several Filters.
	Metrics *Metrics
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.Parallelism <= 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
	if o.BlockRows <= 0 {
		o.BlockRows = compact.DefaultBlockRows
	} else if r := o.BlockRows % 64; r != 0 {
		o.BlockRows += 64 - r
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	return o
}

// Clone creates a shallow-copy of the supplied options. The Logger and
// Metrics are shared with the original.
func (o *Options) Clone() *Options {
	n := &Options{}
	if o != nil {
		*n = *o
	}
	return n
}

// String implements fmt.Stringer, rendering the options in the INI format
// read by Parse.
func (o *Options) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  block_rows=%d\n", o.BlockRows)
	fmt.Fprintf(&buf, "  disable_fast_paths=%t\n", o.DisableFastPaths)
	fmt.Fprintf(&buf, "  parallelism=%d\n", o.Parallelism)
	fmt.Fprintf(&buf, "  verbose=%t\n", o.Verbose)
	return buf.String()
}

// Parse parses the options from the specified string. Note that certain
// options cannot be parsed into populated fields. For example, the Logger and
// Metrics are not serialized and are left untouched.
//
// Blank lines and lines beginning with ';' or '#' are ignored. Unknown
// sections and keys are rejected.
func (o *Options) Parse(s string) error {
	var section string
	for lineNum, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			// Skip blank lines and comments.
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			section = line[1 : n-1]
			if section != "Options" {
				return errors.Newf("cudf: unknown section: %q", errors.Safe(section))
			}
			continue
		}
		pos := strings.Index(line, "=")
		if pos < 0 {
			const maxLen = 50
			if len(line) > maxLen {
				line = line[:maxLen-3] + "..."
			}
			return errors.Newf("cudf: invalid key=value syntax on line %d: %q",
				errors.Safe(lineNum+1), errors.Safe(line))
		}
		if section == "" {
			return errors.Newf("cudf: option outside of any section on line %d", errors.Safe(lineNum+1))
		}

		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])
		var err error
		switch key {
		case "block_rows":
			o.BlockRows, err = strconv.Atoi(value)
		case "disable_fast_paths":
			o.DisableFastPaths, err = strconv.ParseBool(value)
		case "parallelism":
			o.Parallelism, err = strconv.Atoi(value)
		case "verbose":
			o.Verbose, err = strconv.ParseBool(value)
		default:
			return errors.Newf("cudf: unknown option: %s.%s",
				errors.Safe(section), errors.Safe(key))
		}
		if err != nil {
			return errors.Wrapf(err, "cudf: parsing %s.%s", errors.Safe(section), errors.Safe(key))
		}
	}
	return nil
}

// Validate verifies that the options are mutually consistent. For example,
// BlockRows must be a positive multiple of 64. Every violation is reported,
// one per line.
func (o *Options) Validate() error {
	var buf strings.Builder
	if o.Parallelism < 1 {
		fmt.Fprintf(&buf, "Parallelism (%d) must be >= 1\n", o.Parallelism)
	}
	if o.BlockRows < 64 {
		fmt.Fprintf(&buf, "BlockRows (%d) must be >= 64\n", o.BlockRows)
	} else if o.BlockRows%64 != 0 {
		fmt.Fprintf(&buf, "BlockRows (%d) must be a multiple of 64\n", o.BlockRows)
	}
	if buf.Len() == 0 {
		return nil
	}
	return errors.New(buf.String())
}

func (o *Options) compactConfig() compact.Config {
	return compact.Config{Parallelism: o.Parallelism, BlockRows: o.BlockRows}
}
