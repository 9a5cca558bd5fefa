// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cudf

import (
	"github.com/degerli/cudf/column"
	"github.com/degerli/cudf/internal/base"
)

// validateColumn checks the arguments of ApplyBooleanMask. A negative row
// count is treated as missing storage. It returns nil without inspecting
// storage if either input has no rows; such calls return an empty result.
func validateColumn(src, mask *column.Column) error {
	if mask == nil {
		return base.NullPointerError(base.MsgNullBooleanMask)
	}
	if src == nil {
		return base.NullPointerError(base.MsgNullInputData)
	}
	if mask.Type != column.DataTypeBool {
		return base.InvalidArgumentError(base.MsgMaskNotBoolean)
	}
	if src.Size < 0 {
		return base.NullPointerError(base.MsgNullInputData)
	}
	if mask.Size < 0 {
		return base.NullPointerError(base.MsgNullBooleanMask)
	}
	if src.Size == 0 || mask.Size == 0 {
		return nil
	}
	if src.Size != mask.Size {
		return base.InvalidArgumentError(base.MsgColumnSizeMismatch)
	}
	if err := checkStorage(src, base.MsgNullInputData); err != nil {
		return err
	}
	return checkStorage(mask, base.MsgNullBooleanMask)
}

// validateTable checks the arguments of ApplyBooleanMaskTable. Every column of
// the table is checked with the same rules as the source of
// ApplyBooleanMask.
func validateTable(t *column.Table, mask *column.Column) error {
	if mask == nil {
		return base.NullPointerError(base.MsgNullBooleanMask)
	}
	if t == nil {
		return base.NullPointerError(base.MsgNullInputData)
	}
	if mask.Type != column.DataTypeBool {
		return base.InvalidArgumentError(base.MsgMaskNotBoolean)
	}
	if t.NumRows() < 0 {
		return base.NullPointerError(base.MsgNullInputData)
	}
	if mask.Size < 0 {
		return base.NullPointerError(base.MsgNullBooleanMask)
	}
	if t.NumRows() == 0 || mask.Size == 0 {
		return nil
	}
	if t.NumRows() != mask.Size {
		return base.InvalidArgumentError(base.MsgColumnSizeMismatch)
	}
	for i := 0; i < t.NumColumns(); i++ {
		if err := checkStorage(t.Column(i), base.MsgNullInputData); err != nil {
			return err
		}
	}
	return checkStorage(mask, base.MsgNullBooleanMask)
}

// checkStorage returns a null-pointer error carrying msg if the column's
// storage cannot back the rows it declares. A validity bitmap shorter than
// the column is as unusable as an absent one, and a category column without
// a dictionary has nothing for its indexes to refer to.
func checkStorage(c *column.Column, msg string) error {
	if !c.Type.Valid() {
		return base.InvalidArgumentError(base.MsgUnsupportedType)
	}
	switch {
	case c.Data == nil || len(c.Data) < c.Size*c.Type.Width():
		return base.NullPointerError(msg)
	case c.NullCount > 0 && !c.Validity.Present():
		return base.NullPointerError(msg)
	case c.Validity.Present() && c.Validity.Len() < c.Size:
		return base.NullPointerError(msg)
	case c.Type.Kind() == column.KindCategory && c.Dictionary == nil:
		return base.NullPointerError(msg)
	}
	return nil
}
