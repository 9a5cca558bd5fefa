// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package column defines the in-memory columns and tables consumed and
// produced by the compaction operators.
//
// A Column stores Size fixed-width values back to back in Data, in
// little-endian byte order, with an optional validity bitmap in which a set
// bit marks a valid (non-null) row. An absent validity bitmap means every row
// is valid.
package column

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/bitmap"
)

// Column is a homogeneous sequence of Size values of a single DataType.
//
// If Validity is present, NullCount must equal the number of clear bits in
// the first Size bits of Validity. If Validity is absent, NullCount must be
// zero.
//
// The fields are exported so that columns produced elsewhere in an engine can
// be handed to the operators without copying. Operators never mutate the
// columns they are given.
type Column struct {
	Type DataType
	// Data holds Size*Type.Width() bytes of little-endian values.
	Data []byte
	// Validity holds one bit per row; a set bit marks a valid row.
	Validity  bitmap.Bitmap
	Size      int
	NullCount int
	// Dictionary holds the distinct values referenced by a category column's
	// indexes. It is shared between a column and every column derived from it
	// and must never be mutated.
	Dictionary *Column
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return c.Size
}

// IsValid returns true if row i is not null.
func (c *Column) IsValid(i int) bool {
	return !c.Validity.Present() || c.Validity.Get(i)
}

// Empty returns a column of the same type with zero rows. Category columns
// keep their dictionary.
func (c *Column) Empty() *Column {
	return &Column{
		Type:       c.Type,
		Data:       AllocData(c.Type, 0),
		Dictionary: c.Dictionary,
	}
}

// Clone returns a deep copy of the column's values and validity. The
// dictionary, if any, is shared.
//
// A validity bitmap longer than the column is cut to the column's rows, and
// the null count is recomputed from the bits that remain.
func (c *Column) Clone() *Column {
	data := AllocData(c.Type, c.Size)
	copy(data, c.Data)
	out := &Column{
		Type:       c.Type,
		Data:       data,
		Size:       c.Size,
		Dictionary: c.Dictionary,
	}
	if c.Validity.Present() {
		out.Validity = bitmap.Make(c.Validity.Words(), c.Size).Clone()
		out.NullCount = out.Validity.CountZeros()
	}
	return out
}

// CheckInvariants returns an assertion failure if the column's cached state
// is inconsistent with its storage.
func (c *Column) CheckInvariants() error {
	if !c.Type.Valid() {
		return errors.AssertionFailedf("column has invalid data type %d", c.Type)
	}
	if want := c.Size * c.Type.Width(); len(c.Data) < want {
		return errors.AssertionFailedf("%s column of %d rows has %d data bytes; want %d",
			c.Type, c.Size, len(c.Data), want)
	}
	if c.Validity.Present() {
		if c.Validity.Len() != c.Size {
			return errors.AssertionFailedf("validity has %d bits; column has %d rows",
				c.Validity.Len(), c.Size)
		}
		if zeros := c.Validity.CountZeros(); zeros != c.NullCount {
			return errors.AssertionFailedf("null count %d does not match %d clear validity bits",
				c.NullCount, zeros)
		}
	} else if c.NullCount != 0 {
		return errors.AssertionFailedf("null count %d without validity", c.NullCount)
	}
	if (c.Type.Kind() == KindCategory) != (c.Dictionary != nil) {
		return errors.AssertionFailedf("%s column dictionary presence mismatch", c.Type)
	}
	return nil
}

// AllocData allocates zeroed storage for rows values of type t. The returned
// slice is 8-byte aligned so it may be reinterpreted as a slice of any
// fixed-width type.
func AllocData(t DataType, rows int) []byte {
	n := rows * t.Width()
	words := make([]uint64, (n+7)/8)
	if len(words) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), n)
}

// Fixed is a constraint that permits the Go types backing fixed-width data
// types.
type Fixed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Values returns the column's values reinterpreted as a []T. The slice aliases
// the column's storage. Values panics if T's size differs from the column's
// width.
//
// If the column's data is not aligned for T, Values returns a copy.
func Values[T Fixed](c *Column) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size != c.Type.Width() {
		panic(errors.AssertionFailedf("cannot view %s column as %d-byte values", c.Type, size))
	}
	return viewAs[T](c.Data[:c.Size*size])
}

func viewAs[T Fixed](b []byte) []T {
	var zero T
	size := uintptr(unsafe.Sizeof(zero))
	if len(b) == 0 {
		return []T{}
	}
	if uintptr(unsafe.Pointer(unsafe.SliceData(b)))%size != 0 {
		aligned := AllocData(DataTypeUint8, len(b))
		copy(aligned, b)
		b = aligned
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), uintptr(len(b))/size)
}

// Bool returns the boolean value of row i of a bool column, ignoring
// validity.
func (c *Column) Bool(i int) bool {
	return c.Data[i] != 0
}
