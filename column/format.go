// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package column

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/redact"
)

// FormatValue returns a human-readable representation of row i, or "NULL" if
// the row is null. Category rows are rendered as their dictionary value.
func (c *Column) FormatValue(i int) string {
	if !c.IsValid(i) {
		return "NULL"
	}
	w := c.Type.Width()
	b := c.Data[i*w : (i+1)*w]
	switch c.Type {
	case DataTypeBool:
		return strconv.FormatBool(b[0] != 0)
	case DataTypeInt8:
		return strconv.FormatInt(int64(int8(b[0])), 10)
	case DataTypeInt16:
		return strconv.FormatInt(int64(int16(binary.LittleEndian.Uint16(b))), 10)
	case DataTypeInt32:
		return strconv.FormatInt(int64(int32(binary.LittleEndian.Uint32(b))), 10)
	case DataTypeInt64:
		return strconv.FormatInt(int64(binary.LittleEndian.Uint64(b)), 10)
	case DataTypeUint8:
		return strconv.FormatUint(uint64(b[0]), 10)
	case DataTypeUint16:
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint16(b)), 10)
	case DataTypeUint32:
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(b)), 10)
	case DataTypeUint64:
		return strconv.FormatUint(binary.LittleEndian.Uint64(b), 10)
	case DataTypeFloat32:
		return strconv.FormatFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), 'g', -1, 32)
	case DataTypeFloat64:
		return strconv.FormatFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)), 'g', -1, 64)
	case DataTypeDate32:
		days := int64(int32(binary.LittleEndian.Uint32(b)))
		return time.Unix(days*86400, 0).UTC().Format("2006-01-02")
	case DataTypeTimestampMillis:
		ms := int64(binary.LittleEndian.Uint64(b))
		return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000")
	case DataTypeCategory:
		idx := int(int32(binary.LittleEndian.Uint32(b)))
		if c.Dictionary == nil || idx < 0 || idx >= c.Dictionary.Size {
			return "#" + strconv.Itoa(idx) + "?"
		}
		return c.Dictionary.FormatValue(idx)
	default:
		return "?"
	}
}

// String returns a human-readable representation of the column.
func (c *Column) String() string {
	return redact.StringWithoutMarkers(c)
}

// SafeFormat implements redact.SafeFormatter. Column values are considered
// unsafe and are redacted from redactable output.
func (c *Column) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s[%d] nulls=%d", redact.SafeString(c.Type.String()), redact.Safe(c.Size), redact.Safe(c.NullCount))
	if c.Dictionary != nil {
		w.Printf(" dict=%d", redact.Safe(c.Dictionary.Size))
	}
	w.SafeString(":")
	for i := 0; i < c.Size; i++ {
		w.SafeString(" ")
		if !c.IsValid(i) {
			w.SafeString("NULL")
			continue
		}
		w.Print(c.FormatValue(i))
	}
}
