// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package testutils holds helpers shared by the tests of several packages.
package testutils

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/column"
)

// ParseColumn parses whitespace-separated values of the provided type, where
// "N" denotes a null row. For bool columns, "N1" denotes a null row whose
// underlying value is true. A validity bitmap is only built if some row is
// null or if forceValidity is set.
//
// Category columns are parsed as int64 values and dictionary encoded.
func ParseColumn(dt column.DataType, input string, forceValidity bool) (*column.Column, error) {
	fields := strings.Fields(input)
	validity := make([]bool, len(fields))
	hasNull := false
	for i, f := range fields {
		validity[i] = !strings.HasPrefix(f, "N")
		hasNull = hasNull || !validity[i]
	}
	if !hasNull && !forceValidity {
		validity = nil
	}

	switch dt {
	case column.DataTypeBool:
		vals := make([]bool, len(fields))
		for i, f := range fields {
			switch f {
			case "1", "true", "N1":
				vals[i] = true
			case "0", "false", "N", "N0":
			default:
				return nil, errors.Newf("invalid bool %q", f)
			}
		}
		return column.FromBools(vals, validity), nil
	case column.DataTypeInt8:
		return parseFixed(dt, fields, validity, parseSigned[int8](8))
	case column.DataTypeInt16:
		return parseFixed(dt, fields, validity, parseSigned[int16](16))
	case column.DataTypeInt32, column.DataTypeDate32:
		return parseFixed(dt, fields, validity, parseSigned[int32](32))
	case column.DataTypeInt64, column.DataTypeTimestampMillis:
		return parseFixed(dt, fields, validity, parseSigned[int64](64))
	case column.DataTypeUint8:
		return parseFixed(dt, fields, validity, parseUnsigned[uint8](8))
	case column.DataTypeUint16:
		return parseFixed(dt, fields, validity, parseUnsigned[uint16](16))
	case column.DataTypeUint32:
		return parseFixed(dt, fields, validity, parseUnsigned[uint32](32))
	case column.DataTypeUint64:
		return parseFixed(dt, fields, validity, parseUnsigned[uint64](64))
	case column.DataTypeFloat32:
		return parseFixed(dt, fields, validity, func(s string) (float32, error) {
			v, err := strconv.ParseFloat(s, 32)
			return float32(v), err
		})
	case column.DataTypeFloat64:
		return parseFixed(dt, fields, validity, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
	case column.DataTypeCategory:
		vals, err := parseValues(fields, parseSigned[int64](64))
		if err != nil {
			return nil, err
		}
		return column.DictionaryEncode(column.DataTypeInt64, vals, validity), nil
	default:
		return nil, errors.Newf("unsupported data type %s", dt)
	}
}

func parseFixed[T column.Fixed](
	dt column.DataType, fields []string, validity []bool, parse func(string) (T, error),
) (*column.Column, error) {
	vals, err := parseValues(fields, parse)
	if err != nil {
		return nil, err
	}
	return column.New(dt, vals, validity), nil
}

// parseValues parses every field, leaving the zero value for null rows.
func parseValues[T column.Fixed](fields []string, parse func(string) (T, error)) ([]T, error) {
	vals := make([]T, len(fields))
	for i, f := range fields {
		if strings.HasPrefix(f, "N") {
			continue
		}
		v, err := parse(f)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func parseSigned[T ~int8 | ~int16 | ~int32 | ~int64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bitSize)
		return T(v), err
	}
}

func parseUnsigned[T ~uint8 | ~uint16 | ~uint32 | ~uint64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bitSize)
		return T(v), err
	}
}
