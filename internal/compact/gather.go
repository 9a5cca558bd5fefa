// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package compact

import (
	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/bitmap"
	"github.com/degerli/cudf/column"
	"github.com/degerli/cudf/internal/invariants"
)

// Gather returns a new column holding the rows of src selected by s, in
// source order. Every output row takes its validity from its source row; the
// mask's validity plays no part beyond selection. If src has no validity
// bitmap, neither does the output.
//
// The selection is scanned first if necessary. src must have exactly as many
// rows as the selection's mask. The gather itself is split into tasks as
// configured by cfg, which need not match the configuration of the selection.
func Gather(src *column.Column, s *Selection, cfg Config) *column.Column {
	if src.Size != s.Rows() {
		panic(errors.AssertionFailedf("gathering %d-row column through a %d-row selection",
			src.Size, s.Rows()))
	}
	s.Scan()
	out := &column.Column{
		Type: src.Type,
		Data: column.AllocData(src.Type, s.total),
		Size: s.total,
	}
	gatherValues(out, src, s.gather, cfg)
	if src.Validity.Present() {
		out.Validity, out.NullCount = gatherValidity(src.Validity, s.gather, cfg)
	}
	if src.Type.Kind() == column.KindCategory {
		out.Dictionary = src.Dictionary
	}
	if invariants.Enabled {
		if err := out.CheckInvariants(); err != nil {
			panic(err)
		}
	}
	return out
}

// gatherValidity returns the validity bitmap of the gathered rows and the
// number of clear bits in it. Output blocks start on word boundaries, so
// every word is written by exactly one block.
func gatherValidity(src bitmap.Bitmap, gather []int, cfg Config) (bitmap.Bitmap, int) {
	m := len(gather)
	words := make([]uint64, bitmap.WordsFor(m))
	nulls := make([]int, cfg.numBlocks(m))
	cfg.runBlocks(m, func(b, start, end int) {
		var word uint64
		for k := start; k < end; k++ {
			if src.Get(gather[k]) {
				word |= 1 << uint(k%64)
			} else {
				nulls[b]++
			}
			if k%64 == 63 || k == end-1 {
				words[k>>6] = word
				word = 0
			}
		}
	})
	var nullCount int
	for _, n := range nulls {
		nullCount += n
	}
	return bitmap.Make(words, m), nullCount
}
