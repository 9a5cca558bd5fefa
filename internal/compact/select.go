// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package compact

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/bitmap"
	"github.com/degerli/cudf/column"
	"github.com/degerli/cudf/internal/invariants"
)

// Keep returns true if row i of mask selects the corresponding source row. A
// row is selected only if the mask row is valid and true; a null mask row is
// treated exactly like a false one.
func Keep(mask *column.Column, i int) bool {
	return mask.IsValid(i) && mask.Data[i] != 0
}

// Selection holds the rows of a mask that are selected, and once scanned, the
// mapping from output rows to source rows.
type Selection struct {
	cfg  Config
	rows int
	// keep has a set bit for every selected row.
	keep bitmap.Bitmap
	// counts holds the number of selected rows in each block. Scan replaces
	// the counts with their exclusive prefix sum.
	counts []int
	total  int
	// gather maps each output row to its source row. It's nil until Scan.
	gather  []int
	scanned bool
}

// Select evaluates the mask predicate for every row of a bool mask column.
// The mask's storage must hold at least mask.Size values, and its validity,
// if present, at least mask.Size bits.
func Select(mask *column.Column, cfg Config) *Selection {
	if mask.Type != column.DataTypeBool {
		panic(errors.AssertionFailedf("cannot select with a %s mask", mask.Type))
	}
	n := mask.Size
	s := &Selection{
		cfg:    cfg,
		rows:   n,
		keep:   bitmap.New(n),
		counts: make([]int, cfg.numBlocks(n)),
	}
	words := s.keep.Words()
	validity := mask.Validity
	cfg.runBlocks(n, func(b, start, end int) {
		wStart, wEnd := start>>6, bitmap.WordsFor(end)
		for w := wStart; w < wEnd; w++ {
			words[w] = packBools(mask.Data[w<<6 : min((w+1)<<6, end)])
		}
		if validity.Present() {
			bitmap.AndWords(words[wStart:wEnd], validity.Words()[wStart:wEnd])
		}
		s.counts[b] = s.keep.CountRange(start, end)
	})
	for _, c := range s.counts {
		s.total += c
	}
	return s
}

// packBools packs up to 64 bool bytes into a word, setting bit j iff b[j] is
// nonzero.
func packBools(b []byte) uint64 {
	var word uint64
	for j, v := range b {
		if v != 0 {
			word |= 1 << uint(j)
		}
	}
	return word
}

// Rows returns the number of rows of the mask.
func (s *Selection) Rows() int {
	return s.rows
}

// Len returns the number of selected rows, which is the number of rows in
// every column gathered through the selection.
func (s *Selection) Len() int {
	return s.total
}

// Index returns the source row of output row k. The selection must have been
// scanned.
func (s *Selection) Index(k int) int {
	s.assertScanned()
	invariants.CheckBounds(k, s.total)
	return s.gather[k]
}

// String returns the selected rows, in order.
func (s *Selection) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rows=%d selected=%d:", s.rows, s.total)
	for i := s.keep.Successor(0); i < s.rows; i = s.keep.Successor(i + 1) {
		fmt.Fprintf(&sb, " %d", i)
	}
	return sb.String()
}

func (s *Selection) assertScanned() {
	if !s.scanned {
		panic(errors.AssertionFailedf("selection has not been scanned"))
	}
}
