// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package column

// DataType describes the logical type of a column's values. Every data type
// has a fixed physical width; values of the same width share one physical
// representation.
type DataType uint8

const (
	// DataTypeInvalid represents an unset or invalid data type.
	DataTypeInvalid DataType = 0
	// DataTypeBool is a logical boolean stored as one byte per row. Any nonzero
	// byte is true.
	DataTypeBool DataType = 1
	// DataTypeInt8 is a data type encoding a signed 8-bit integer per row.
	DataTypeInt8 DataType = 2
	// DataTypeInt16 is a data type encoding a signed 16-bit integer per row.
	DataTypeInt16 DataType = 3
	// DataTypeInt32 is a data type encoding a signed 32-bit integer per row.
	DataTypeInt32 DataType = 4
	// DataTypeInt64 is a data type encoding a signed 64-bit integer per row.
	DataTypeInt64 DataType = 5
	// DataTypeUint8 is a data type encoding an unsigned 8-bit integer per row.
	DataTypeUint8 DataType = 6
	// DataTypeUint16 is a data type encoding an unsigned 16-bit integer per row.
	DataTypeUint16 DataType = 7
	// DataTypeUint32 is a data type encoding an unsigned 32-bit integer per row.
	DataTypeUint32 DataType = 8
	// DataTypeUint64 is a data type encoding an unsigned 64-bit integer per row.
	DataTypeUint64 DataType = 9
	// DataTypeFloat32 is a data type encoding an IEEE-754 float32 per row.
	DataTypeFloat32 DataType = 10
	// DataTypeFloat64 is a data type encoding an IEEE-754 float64 per row.
	DataTypeFloat64 DataType = 11
	// DataTypeDate32 is a data type encoding days since the Unix epoch as a
	// signed 32-bit integer per row.
	DataTypeDate32 DataType = 12
	// DataTypeTimestampMillis is a data type encoding milliseconds since the
	// Unix epoch as a signed 64-bit integer per row.
	DataTypeTimestampMillis DataType = 13
	// DataTypeCategory is a dictionary-encoded data type. Each row holds a
	// signed 32-bit index into the column's dictionary.
	DataTypeCategory DataType = 14

	dataTypesCount DataType = 15
)

var dataTypeName [dataTypesCount]string = [dataTypesCount]string{
	DataTypeInvalid:         "invalid",
	DataTypeBool:            "bool",
	DataTypeInt8:            "int8",
	DataTypeInt16:           "int16",
	DataTypeInt32:           "int32",
	DataTypeInt64:           "int64",
	DataTypeUint8:           "uint8",
	DataTypeUint16:          "uint16",
	DataTypeUint32:          "uint32",
	DataTypeUint64:          "uint64",
	DataTypeFloat32:         "float32",
	DataTypeFloat64:         "float64",
	DataTypeDate32:          "date32",
	DataTypeTimestampMillis: "timestamp_ms",
	DataTypeCategory:        "category",
}

var dataTypeWidth [dataTypesCount]int = [dataTypesCount]int{
	DataTypeBool:            1,
	DataTypeInt8:            1,
	DataTypeInt16:           2,
	DataTypeInt32:           4,
	DataTypeInt64:           8,
	DataTypeUint8:           1,
	DataTypeUint16:          2,
	DataTypeUint32:          4,
	DataTypeUint64:          8,
	DataTypeFloat32:         4,
	DataTypeFloat64:         8,
	DataTypeDate32:          4,
	DataTypeTimestampMillis: 8,
	DataTypeCategory:        4,
}

// String returns a human-readable string representation of the data type.
func (t DataType) String() string {
	if t >= dataTypesCount {
		return "unknown"
	}
	return dataTypeName[t]
}

// Valid returns true if t is a known data type other than DataTypeInvalid.
func (t DataType) Valid() bool {
	return t > DataTypeInvalid && t < dataTypesCount
}

// Width returns the number of bytes used to store one value of the data type,
// or zero for an invalid data type.
func (t DataType) Width() int {
	if t >= dataTypesCount {
		return 0
	}
	return dataTypeWidth[t]
}

// Kind classifies data types by how their values are interpreted when moved
// between columns.
type Kind uint8

const (
	// KindInvalid is the kind of DataTypeInvalid.
	KindInvalid Kind = iota
	// KindFixed is the kind of fixed-width numeric and temporal data types.
	KindFixed
	// KindBool is the kind of DataTypeBool.
	KindBool
	// KindCategory is the kind of dictionary-encoded data types. Values are
	// indexes into a dictionary that is shared, not owned, by the column.
	KindCategory
)

// Kind returns the kind of the data type.
func (t DataType) Kind() Kind {
	switch {
	case t == DataTypeBool:
		return KindBool
	case t == DataTypeCategory:
		return KindCategory
	case t.Valid():
		return KindFixed
	default:
		return KindInvalid
	}
}

// ParseDataType returns the data type with the provided name, as returned by
// DataType.String.
func ParseDataType(name string) (DataType, bool) {
	for t := DataTypeInvalid + 1; t < dataTypesCount; t++ {
		if dataTypeName[t] == name {
			return t, true
		}
	}
	return DataTypeInvalid, false
}
