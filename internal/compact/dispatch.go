// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package compact

import (
	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/column"
	"golang.org/x/exp/constraints"
)

// gatherValues copies the values of the gathered rows from src into out.
// Values are moved as opaque words of the type's width, so a single routine
// per width serves every data type: integers, floats, temporal types, bools
// and category indexes alike.
func gatherValues(out, src *column.Column, gather []int, cfg Config) {
	switch w := src.Type.Width(); w {
	case 1:
		gatherFixed(column.Values[uint8](out), column.Values[uint8](src), gather, cfg)
	case 2:
		gatherFixed(column.Values[uint16](out), column.Values[uint16](src), gather, cfg)
	case 4:
		gatherFixed(column.Values[uint32](out), column.Values[uint32](src), gather, cfg)
	case 8:
		gatherFixed(column.Values[uint64](out), column.Values[uint64](src), gather, cfg)
	default:
		panic(errors.AssertionFailedf("unsupported %s column of width %d", src.Type, w))
	}
}

func gatherFixed[T constraints.Unsigned](dst, src []T, gather []int, cfg Config) {
	cfg.runBlocks(len(gather), func(_, start, end int) {
		for k := start; k < end; k++ {
			dst[k] = src[gather[k]]
		}
	})
}
