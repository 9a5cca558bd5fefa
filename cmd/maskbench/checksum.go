// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/degerli/cudf/bitmap"
	"github.com/degerli/cudf/column"
)

// checksum returns a hash of the type, values and validity of every column
// of t. Tables holding the same rows have the same checksum regardless of
// how they were produced.
func checksum(t *column.Table) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, c := range t.Columns() {
		buf[0] = byte(c.Type)
		_, _ = h.Write(buf[:1])
		_, _ = h.Write(c.Data[:c.Size*c.Type.Width()])
		if !c.Validity.Present() {
			continue
		}
		for w := 0; w < bitmap.WordsFor(c.Size); w++ {
			binary.LittleEndian.PutUint64(buf[:], c.Validity.Word(w))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}
