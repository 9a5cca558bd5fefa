// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package column

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
	"github.com/degerli/cudf/bitmap"
)

// New returns a column of type t holding a copy of values. If validity is
// non-nil, it must have one entry per value and false entries mark null rows;
// a nil validity produces a column without a validity bitmap.
//
// New panics if the size of T does not match the width of t.
func New[T Fixed](t DataType, values []T, validity []bool) *Column {
	var zero T
	if int(unsafe.Sizeof(zero)) != t.Width() || t.Kind() == KindCategory {
		panic(errors.AssertionFailedf("cannot build %s column from %T values", t, zero))
	}
	c := &Column{
		Type: t,
		Data: AllocData(t, len(values)),
		Size: len(values),
	}
	copy(viewAs[T](c.Data), values)
	c.setValidity(validity)
	return c
}

// FromBools returns a bool column holding values. Validity is interpreted as
// in New.
func FromBools(values []bool, validity []bool) *Column {
	c := &Column{
		Type: DataTypeBool,
		Data: AllocData(DataTypeBool, len(values)),
		Size: len(values),
	}
	for i, v := range values {
		if v {
			c.Data[i] = 1
		}
	}
	c.setValidity(validity)
	return c
}

// NewCategory returns a category column whose rows index into dict. Validity
// is interpreted as in New.
func NewCategory(indexes []int32, validity []bool, dict *Column) *Column {
	if dict == nil {
		panic(errors.AssertionFailedf("category column requires a dictionary"))
	}
	c := &Column{
		Type:       DataTypeCategory,
		Data:       AllocData(DataTypeCategory, len(indexes)),
		Size:       len(indexes),
		Dictionary: dict,
	}
	copy(viewAs[int32](c.Data), indexes)
	c.setValidity(validity)
	return c
}

// DictionaryEncode returns a category column holding values, whose dictionary
// is a column of type t with each distinct value once, in order of first
// appearance. Null rows are assigned index zero and do not contribute to the
// dictionary.
func DictionaryEncode[T interface {
	Fixed
	comparable
}](t DataType, values []T, validity []bool) *Column {
	var m swiss.Map[T, int32]
	m.Init(16)
	var distinct []T
	indexes := make([]int32, len(values))
	for i, v := range values {
		if validity != nil && !validity[i] {
			continue
		}
		idx, ok := m.Get(v)
		if !ok {
			idx = int32(len(distinct))
			m.Put(v, idx)
			distinct = append(distinct, v)
		}
		indexes[i] = idx
	}
	return NewCategory(indexes, validity, New(t, distinct, nil))
}

func (c *Column) setValidity(validity []bool) {
	if validity == nil {
		return
	}
	if len(validity) != c.Size {
		panic(errors.AssertionFailedf("validity has %d entries; column has %d rows", len(validity), c.Size))
	}
	c.Validity = bitmap.FromBools(validity)
	c.NullCount = c.Validity.CountZeros()
}
