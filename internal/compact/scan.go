// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package compact

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/bitmap"
	"github.com/degerli/cudf/internal/invariants"
)

// Scan computes the output index of every selected row and records the gather
// map. Scan is idempotent.
func (s *Selection) Scan() {
	if s.scanned {
		return
	}
	total := exclusiveScan(s.counts)
	if total != s.total {
		panic(errors.AssertionFailedf("scanned %d rows; selected %d", total, s.total))
	}
	s.gather = make([]int, s.total)
	s.cfg.runBlocks(s.rows, func(b, start, end int) {
		// The first selected row of the block lands at the block's offset;
		// every subsequent selected row lands one after its predecessor.
		k := s.counts[b]
		for w := start >> 6; w < bitmap.WordsFor(end); w++ {
			word := s.keep.Word(w)
			for word != 0 {
				s.gather[k] = w<<6 + bits.TrailingZeros64(word)
				k++
				word &= word - 1
			}
		}
		if invariants.Enabled && b+1 < len(s.counts) && k != s.counts[b+1] {
			panic(errors.AssertionFailedf("block %d ended at output row %d; next block begins at %d",
				b, k, s.counts[b+1]))
		}
	})
	s.scanned = true
}

// exclusiveScan replaces every element of counts with the sum of the elements
// preceding it, returning the sum of all elements.
func exclusiveScan(counts []int) int {
	sum := 0
	for i, c := range counts {
		counts[i] = sum
		sum += c
	}
	return sum
}
