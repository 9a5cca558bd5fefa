// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arrowcol converts between Arrow arrays and columns.
//
// Fixed-width Arrow arrays map onto the column type of the same width and
// signedness. Date32 and millisecond timestamps keep their temporal types.
// Arrow booleans are bit-packed and are expanded to one byte per row.
// Dictionary arrays with int32 indexes map onto category columns.
//
// Values are always copied, so a column never aliases Arrow-owned memory and
// arrays returned by ToArrow own their buffers.
package arrowcol

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/column"
	"github.com/degerli/cudf/internal/base"
)

// ErrUnsupportedType is returned, marked as an invalid-argument error, when
// a value cannot be represented on the other side of the conversion.
var ErrUnsupportedType = errors.New("arrowcol: unsupported type")

func unsupportedf(format string, args ...interface{}) error {
	err := errors.Mark(errors.Newf(format, args...), ErrUnsupportedType)
	return errors.Mark(err, base.ErrInvalidArgument)
}

// FromArrow returns a column holding a copy of the values and validity of a.
func FromArrow(a arrow.Array) (*column.Column, error) {
	if a == nil {
		return nil, base.NullPointerError(base.MsgNullInputData)
	}
	valid := validity(a)
	switch a := a.(type) {
	case *array.Boolean:
		vals := make([]bool, a.Len())
		for i := range vals {
			vals[i] = a.Value(i)
		}
		return column.FromBools(vals, valid), nil
	case *array.Int8:
		return column.New(column.DataTypeInt8, a.Int8Values(), valid), nil
	case *array.Int16:
		return column.New(column.DataTypeInt16, a.Int16Values(), valid), nil
	case *array.Int32:
		return column.New(column.DataTypeInt32, a.Int32Values(), valid), nil
	case *array.Int64:
		return column.New(column.DataTypeInt64, a.Int64Values(), valid), nil
	case *array.Uint8:
		return column.New(column.DataTypeUint8, a.Uint8Values(), valid), nil
	case *array.Uint16:
		return column.New(column.DataTypeUint16, a.Uint16Values(), valid), nil
	case *array.Uint32:
		return column.New(column.DataTypeUint32, a.Uint32Values(), valid), nil
	case *array.Uint64:
		return column.New(column.DataTypeUint64, a.Uint64Values(), valid), nil
	case *array.Float32:
		return column.New(column.DataTypeFloat32, a.Float32Values(), valid), nil
	case *array.Float64:
		return column.New(column.DataTypeFloat64, a.Float64Values(), valid), nil
	case *array.Date32:
		return column.New(column.DataTypeDate32, a.Date32Values(), valid), nil
	case *array.Timestamp:
		if unit := a.DataType().(*arrow.TimestampType).Unit; unit != arrow.Millisecond {
			return nil, unsupportedf("arrowcol: unsupported timestamp unit %s", unit)
		}
		return column.New(column.DataTypeTimestampMillis, a.TimestampValues(), valid), nil
	case *array.Dictionary:
		indices, ok := a.Indices().(*array.Int32)
		if !ok {
			return nil, unsupportedf("arrowcol: unsupported dictionary index type %s",
				a.Indices().DataType())
		}
		dict, err := FromArrow(a.Dictionary())
		if err != nil {
			return nil, err
		}
		if dict.Type.Kind() == column.KindCategory {
			return nil, unsupportedf("arrowcol: nested dictionaries are not supported")
		}
		return column.NewCategory(indices.Int32Values(), valid, dict), nil
	default:
		return nil, unsupportedf("arrowcol: unsupported arrow type %s", a.DataType())
	}
}

// validity returns the validity of every row of a, or nil if a has no nulls.
func validity(a arrow.Array) []bool {
	if a.NullN() == 0 {
		return nil
	}
	valid := make([]bool, a.Len())
	for i := range valid {
		valid[i] = a.IsValid(i)
	}
	return valid
}

// ToArrow returns an Arrow array holding a copy of the values and validity of
// c, allocated from mem. The caller must release the returned array.
func ToArrow(mem memory.Allocator, c *column.Column) (arrow.Array, error) {
	if c == nil {
		return nil, base.NullPointerError(base.MsgNullInputData)
	}
	valid := rowValidity(c)
	switch c.Type {
	case column.DataTypeBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		vals := make([]bool, c.Len())
		for i := range vals {
			vals[i] = c.Bool(i)
		}
		b.AppendValues(vals, valid)
		return b.NewArray(), nil
	case column.DataTypeInt8:
		b := array.NewInt8Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[int8](c), valid)
		return b.NewArray(), nil
	case column.DataTypeInt16:
		b := array.NewInt16Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[int16](c), valid)
		return b.NewArray(), nil
	case column.DataTypeInt32:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[int32](c), valid)
		return b.NewArray(), nil
	case column.DataTypeInt64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[int64](c), valid)
		return b.NewArray(), nil
	case column.DataTypeUint8:
		b := array.NewUint8Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[uint8](c), valid)
		return b.NewArray(), nil
	case column.DataTypeUint16:
		b := array.NewUint16Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[uint16](c), valid)
		return b.NewArray(), nil
	case column.DataTypeUint32:
		b := array.NewUint32Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[uint32](c), valid)
		return b.NewArray(), nil
	case column.DataTypeUint64:
		b := array.NewUint64Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[uint64](c), valid)
		return b.NewArray(), nil
	case column.DataTypeFloat32:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[float32](c), valid)
		return b.NewArray(), nil
	case column.DataTypeFloat64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[float64](c), valid)
		return b.NewArray(), nil
	case column.DataTypeDate32:
		b := array.NewDate32Builder(mem)
		defer b.Release()
		b.AppendValues(column.Values[arrow.Date32](c), valid)
		return b.NewArray(), nil
	case column.DataTypeTimestampMillis:
		b := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: arrow.Millisecond})
		defer b.Release()
		b.AppendValues(column.Values[arrow.Timestamp](c), valid)
		return b.NewArray(), nil
	case column.DataTypeCategory:
		return categoryToArrow(mem, c, valid)
	default:
		return nil, unsupportedf("arrowcol: unsupported column type %s", c.Type)
	}
}

func categoryToArrow(mem memory.Allocator, c *column.Column, valid []bool) (arrow.Array, error) {
	if c.Dictionary == nil {
		return nil, base.NullPointerError(base.MsgNullInputData)
	}
	dict, err := ToArrow(mem, c.Dictionary)
	if err != nil {
		return nil, err
	}
	defer dict.Release()

	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.AppendValues(column.Values[int32](c), valid)
	indices := b.NewArray()
	defer indices.Release()

	typ := &arrow.DictionaryType{
		IndexType: arrow.PrimitiveTypes.Int32,
		ValueType: dict.DataType(),
	}
	return array.NewDictionaryArray(typ, indices, dict), nil
}

// rowValidity returns the validity of every row of c, or nil if c has no
// validity bitmap.
func rowValidity(c *column.Column) []bool {
	if !c.Validity.Present() {
		return nil
	}
	valid := make([]bool, c.Len())
	for i := range valid {
		valid[i] = c.IsValid(i)
	}
	return valid
}

// FromRecord returns a table holding a copy of every column of rec.
func FromRecord(rec arrow.Record) (*column.Table, error) {
	if rec == nil {
		return nil, base.NullPointerError(base.MsgNullInputData)
	}
	cols := make([]*column.Column, rec.NumCols())
	for i := range cols {
		c, err := FromArrow(rec.Column(i))
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", rec.ColumnName(i))
		}
		cols[i] = c
	}
	return column.NewTable(cols...)
}

// ToRecord returns an Arrow record holding a copy of every column of t, with
// the provided field names. All fields are nullable. The caller must release
// the returned record.
func ToRecord(mem memory.Allocator, t *column.Table, names []string) (arrow.Record, error) {
	if t == nil {
		return nil, base.NullPointerError(base.MsgNullInputData)
	}
	if len(names) != t.NumColumns() {
		return nil, errors.Newf("arrowcol: %d names for %d columns", len(names), t.NumColumns())
	}
	arrs := make([]arrow.Array, t.NumColumns())
	defer func() {
		for _, a := range arrs {
			if a != nil {
				a.Release()
			}
		}
	}()
	fields := make([]arrow.Field, t.NumColumns())
	for i := range arrs {
		a, err := ToArrow(mem, t.Column(i))
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", names[i])
		}
		arrs[i] = a
		fields[i] = arrow.Field{Name: names[i], Type: a.DataType(), Nullable: true}
	}
	return array.NewRecord(arrow.NewSchema(fields, nil), arrs, int64(t.NumRows())), nil
}
