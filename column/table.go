// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package column

import (
	"github.com/cockroachdb/redact"
	"github.com/degerli/cudf/internal/base"
)

// Table is an ordered sequence of columns that all have the same number of
// rows.
type Table struct {
	columns []*Column
	rows    int
}

// NewTable returns a table over the provided columns. The columns are
// retained, not copied. NewTable returns an error marked as
// base.ErrInvalidArgument if the columns' row counts differ, and one marked
// as base.ErrNullPointer if any column is nil.
func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{columns: columns}
	for i, c := range columns {
		if c == nil {
			return nil, base.NullPointerError(base.MsgNullInputData)
		}
		if i == 0 {
			t.rows = c.Size
		} else if c.Size != t.rows {
			return nil, base.InvalidArgumentError(base.MsgColumnSizeMismatch)
		}
	}
	return t, nil
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// NumRows returns the number of rows shared by every column of the table.
func (t *Table) NumRows() int {
	return t.rows
}

// Column returns the i-th column.
func (t *Table) Column(i int) *Column {
	return t.columns[i]
}

// Columns returns the table's columns. The returned slice must not be
// modified.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Empty returns a table with the same column types and zero rows.
func (t *Table) Empty() *Table {
	columns := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Empty()
	}
	return &Table{columns: columns}
}

// String returns a human-readable representation of the table.
func (t *Table) String() string {
	return redact.StringWithoutMarkers(t)
}

// SafeFormat implements redact.SafeFormatter.
func (t *Table) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("table: %d columns, %d rows", redact.Safe(len(t.columns)), redact.Safe(t.rows))
	for i, c := range t.columns {
		w.Printf("\n[%d] ", redact.Safe(i))
		c.SafeFormat(w, 'v')
	}
}
