// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cudf

import (
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/column"
	"github.com/degerli/cudf/internal/compact"
	"github.com/degerli/cudf/internal/invariants"
	"golang.org/x/sync/errgroup"
)

// Filter applies boolean masks to columns and tables using a fixed set of
// Options. A Filter holds no per-call state and is safe for concurrent use.
type Filter struct {
	opts *Options
	cfg  compact.Config
}

// New returns a Filter configured by opts. The options are copied, and any
// option left unset takes its default value. A nil opts is equivalent to the
// zero Options.
func New(opts *Options) *Filter {
	o := opts.Clone().EnsureDefaults()
	return &Filter{opts: o, cfg: o.compactConfig()}
}

// Options returns the Filter's effective options. The returned value must not
// be modified.
func (f *Filter) Options() *Options {
	return f.opts
}

var defaultFilter = New(nil)

// ApplyBooleanMask returns a new column holding the rows of src for which the
// corresponding row of mask is valid and true, in their original order. It
// uses the default Options.
//
// ApplyBooleanMask returns an error marked ErrInvalidArgument if mask is not a
// bool column or has a different number of rows than src, and an error marked
// ErrNullPointer if either column declares rows without the storage to back
// them. If src or mask has no rows the result is an empty column of src's
// type.
func ApplyBooleanMask(src, mask *column.Column) (*column.Column, error) {
	return defaultFilter.ApplyBooleanMask(src, mask)
}

// ApplyBooleanMaskTable returns a new table holding the rows of t for which
// the corresponding row of mask is valid and true. Every column of the result
// has the same type as the corresponding column of t. It uses the default
// Options, and fails under the same conditions as ApplyBooleanMask.
func ApplyBooleanMaskTable(t *column.Table, mask *column.Column) (*column.Table, error) {
	return defaultFilter.ApplyBooleanMaskTable(t, mask)
}

// ApplyBooleanMask is like the package-level ApplyBooleanMask, using the
// Filter's options.
func (f *Filter) ApplyBooleanMask(src, mask *column.Column) (*column.Column, error) {
	start := crtime.NowMono()
	if err := validateColumn(src, mask); err != nil {
		f.failed("apply_boolean_mask", err)
		return nil, err
	}
	if src.Size == 0 || mask.Size == 0 {
		f.succeeded("apply_boolean_mask", 0, 0, 1, outcomeShortCircuit, start)
		return src.Empty(), nil
	}

	s := compact.Select(mask, f.cfg)
	var out *column.Column
	o := outcomeGathered
	switch {
	case s.Len() == 0 && f.fastPaths():
		out, o = src.Empty(), outcomeShortCircuit
	case s.Len() == src.Size && f.fastPaths():
		out, o = src.Clone(), outcomeFastPath
	default:
		out = compact.Gather(src, s, f.cfg)
	}
	f.succeeded("apply_boolean_mask", src.Size, out.Size, 1, o, start)
	return out, nil
}

// ApplyBooleanMaskTable is like the package-level ApplyBooleanMaskTable, using
// the Filter's options.
//
// The mask is evaluated and scanned once for the whole table, and every
// column is gathered through the same map from output rows to source rows.
func (f *Filter) ApplyBooleanMaskTable(
	t *column.Table, mask *column.Column,
) (*column.Table, error) {
	start := crtime.NowMono()
	if err := validateTable(t, mask); err != nil {
		f.failed("apply_boolean_mask_table", err)
		return nil, err
	}
	if t.NumRows() == 0 || mask.Size == 0 {
		f.succeeded("apply_boolean_mask_table", 0, 0, t.NumColumns(), outcomeShortCircuit, start)
		return t.Empty(), nil
	}

	s := compact.Select(mask, f.cfg)
	var out *column.Table
	o := outcomeGathered
	switch {
	case s.Len() == 0 && f.fastPaths():
		out, o = t.Empty(), outcomeShortCircuit
	case s.Len() == t.NumRows() && f.fastPaths():
		out, o = mapColumns(t, (*column.Column).Clone), outcomeFastPath
	default:
		out = f.gatherTable(t, s)
	}
	f.succeeded("apply_boolean_mask_table", t.NumRows(), out.NumRows(), t.NumColumns(), o, start)
	return out, nil
}

// gatherTable gathers every column of t through s. When there are at least
// as many columns as goroutines available, columns are gathered concurrently
// with each column gathered serially; otherwise columns are gathered one at a
// time with each column split into blocks.
func (f *Filter) gatherTable(t *column.Table, s *compact.Selection) *column.Table {
	if s.Rows() != t.NumRows() {
		panic(errors.AssertionFailedf("gathering %d-row table through a %d-row selection",
			t.NumRows(), s.Rows()))
	}
	s.Scan()
	p := f.cfg.Parallelism
	if p < 2 || t.NumColumns() < p {
		return mapColumns(t, func(c *column.Column) *column.Column {
			return compact.Gather(c, s, f.cfg)
		})
	}
	serial := compact.Config{Parallelism: 1, BlockRows: f.cfg.BlockRows}
	cols := make([]*column.Column, t.NumColumns())
	var g errgroup.Group
	g.SetLimit(p)
	for i := range cols {
		g.Go(func() error {
			cols[i] = compact.Gather(t.Column(i), s, serial)
			return nil
		})
	}
	_ = g.Wait()
	return mustNewTable(cols)
}

func mapColumns(t *column.Table, fn func(*column.Column) *column.Column) *column.Table {
	cols := make([]*column.Column, t.NumColumns())
	for i := range cols {
		cols[i] = fn(t.Column(i))
	}
	return mustNewTable(cols)
}

// mustNewTable assembles the columns produced for a table. They are
// derived from one validated table through one selection, so a failure
// indicates a bug.
func mustNewTable(cols []*column.Column) *column.Table {
	t, err := column.NewTable(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// fastPaths returns true if the call may skip gathering when the mask selects
// every row or no row. Invariant builds randomly take the full pipeline so
// that both produce the same results.
func (f *Filter) fastPaths() bool {
	return !f.opts.DisableFastPaths && !invariants.Sometimes(25)
}

func (f *Filter) succeeded(
	op string, rowsIn, rowsOut, columns int, o outcome, start crtime.Mono,
) {
	elapsed := start.Elapsed()
	f.opts.Metrics.recordCall(rowsIn, rowsOut, o, elapsed)
	if f.opts.Verbose {
		f.opts.Logger.Infof("%s: %s rows in, %s rows out, %d columns, %s",
			op, crhumanize.Count(rowsIn, crhumanize.Compact),
			crhumanize.Count(rowsOut, crhumanize.Compact), columns, elapsed)
	}
}

func (f *Filter) failed(op string, err error) {
	f.opts.Metrics.recordError(err)
	if f.opts.Verbose {
		f.opts.Logger.Errorf("%s: %v", op, err)
	}
}
