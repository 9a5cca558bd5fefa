// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"github.com/degerli/cudf/column"
	"golang.org/x/exp/rand"
)

// generatedTypes are the column types of a generated table, in order. Tables
// with more columns repeat the sequence.
var generatedTypes = []column.DataType{
	column.DataTypeInt64,
	column.DataTypeFloat64,
	column.DataTypeInt32,
	column.DataTypeCategory,
	column.DataTypeTimestampMillis,
	column.DataTypeBool,
	column.DataTypeUint16,
	column.DataTypeInt8,
}

// categoryCardinality is the number of distinct values of a generated
// category column.
const categoryCardinality = 64

// generateTable returns a table of the configured shape. Every column has
// approximately nullFraction null rows; with a zero nullFraction, columns
// have no validity bitmap.
func generateTable(rng *rand.Rand, rows, columns int, nullFraction float64) *column.Table {
	cols := make([]*column.Column, columns)
	for i := range cols {
		cols[i] = generateColumn(rng, generatedTypes[i%len(generatedTypes)], rows, nullFraction)
	}
	t, err := column.NewTable(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// generateMask returns a mask in which approximately selectivity of the rows
// are true and approximately nullFraction are null.
func generateMask(rng *rand.Rand, rows int, selectivity, nullFraction float64) *column.Column {
	vals := make([]bool, rows)
	for i := range vals {
		vals[i] = rng.Float64() < selectivity
	}
	return column.FromBools(vals, generateValidity(rng, rows, nullFraction))
}

func generateValidity(rng *rand.Rand, rows int, nullFraction float64) []bool {
	if nullFraction <= 0 {
		return nil
	}
	validity := make([]bool, rows)
	for i := range validity {
		validity[i] = rng.Float64() >= nullFraction
	}
	return validity
}

func generateColumn(rng *rand.Rand, dt column.DataType, rows int, nullFraction float64) *column.Column {
	validity := generateValidity(rng, rows, nullFraction)
	switch dt {
	case column.DataTypeBool:
		vals := make([]bool, rows)
		for i := range vals {
			vals[i] = rng.Intn(2) == 0
		}
		return column.FromBools(vals, validity)
	case column.DataTypeInt8:
		return column.New(dt, generateValues(rng, rows, func(v uint64) int8 { return int8(v) }), validity)
	case column.DataTypeUint16:
		return column.New(dt, generateValues(rng, rows, func(v uint64) uint16 { return uint16(v) }), validity)
	case column.DataTypeInt32:
		return column.New(dt, generateValues(rng, rows, func(v uint64) int32 { return int32(v) }), validity)
	case column.DataTypeInt64:
		return column.New(dt, generateValues(rng, rows, func(v uint64) int64 { return int64(v) }), validity)
	case column.DataTypeTimestampMillis:
		// Millisecond timestamps spread over roughly 2020 to 2030.
		return column.New(dt, generateValues(rng, rows, func(v uint64) int64 {
			return 1577836800000 + int64(v%315360000000)
		}), validity)
	case column.DataTypeFloat64:
		vals := make([]float64, rows)
		for i := range vals {
			vals[i] = rng.NormFloat64()
		}
		return column.New(dt, vals, validity)
	case column.DataTypeCategory:
		vals := generateValues(rng, rows, func(v uint64) int64 { return int64(v % categoryCardinality) })
		return column.DictionaryEncode(column.DataTypeInt64, vals, validity)
	default:
		panic("unreachable")
	}
}

func generateValues[T column.Fixed](rng *rand.Rand, rows int, fn func(uint64) T) []T {
	vals := make([]T, rows)
	for i := range vals {
		vals[i] = fn(rng.Uint64())
	}
	return vals
}
