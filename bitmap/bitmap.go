// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bitmap implements the packed bit sequences used as column validity
// masks and as selection vectors.
//
// Bit i of a bitmap lives in word i/64 at bit position i%64 (least significant
// bit first). Serialized as little-endian words, this is the same bit order
// Arrow uses for its validity buffers.
package bitmap

import (
	"math/bits"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf/internal/invariants"
)

// Bitmap is a bitmap structure built on a []uint64. A bitmap utilizes ~1
// physical bit/logical bit (~0.125 bytes/row). The bitmap is stored as
// (bitCount+63)/64 words.
//
// The zero Bitmap is absent: it has no words. Validity bitmaps use the absent
// bitmap to represent a column in which every row is valid.
//
// Bits beyond bitCount in the final word are ignored by every read operation.
type Bitmap struct {
	words    []uint64
	bitCount int
}

// WordsFor returns the number of 64-bit words required to hold n bits.
func WordsFor(n int) int {
	return (n + 63) >> 6 // divide by 64
}

// Make returns a Bitmap that reads from words supporting bitCount logical
// bits. The words slice is retained, not copied.
func Make(words []uint64, bitCount int) Bitmap {
	if len(words) < WordsFor(bitCount) {
		panic(errors.AssertionFailedf("bitmap of %d bits requires %d words; have %d",
			bitCount, WordsFor(bitCount), len(words)))
	}
	return Bitmap{words: words, bitCount: bitCount}
}

// New returns a Bitmap with n bits, all clear.
func New(n int) Bitmap {
	return Bitmap{words: make([]uint64, WordsFor(n)), bitCount: n}
}

// AllSet returns a Bitmap with n bits, all set.
func AllSet(n int) Bitmap {
	b := Builder{}
	b.Invert(n)
	return b.Finish(n)
}

// FromBools returns a Bitmap with bit i set iff v[i] is true.
func FromBools(v []bool) Bitmap {
	var b Builder
	for i := range v {
		if v[i] {
			b.Set(i, true)
		}
	}
	return b.Finish(len(v))
}

// Present returns true if the bitmap is backed by storage. An absent bitmap
// has no bits.
func (b Bitmap) Present() bool {
	return b.words != nil
}

// Len returns the number of logical bits in the bitmap.
func (b Bitmap) Len() int {
	return b.bitCount
}

// Get returns true if the bit at position i is set and false otherwise.
func (b Bitmap) Get(i int) bool {
	return (b.words[i>>6 /* i/64 */] & (1 << uint(i%64))) != 0
}

// Words returns the words backing the bitmap. Callers must not mutate the
// returned slice unless they own the bitmap.
func (b Bitmap) Words() []uint64 {
	return b.words
}

// Word returns the w-th word of the bitmap with any bits beyond the bitmap's
// length cleared.
func (b Bitmap) Word(w int) uint64 {
	word := b.words[w]
	if w == WordsFor(b.bitCount)-1 {
		if i := b.bitCount % 64; i != 0 {
			word &= (1 << i) - 1
		}
	}
	return word
}

// Count returns the number of set bits.
func (b Bitmap) Count() int {
	n := 0
	for w := 0; w < WordsFor(b.bitCount); w++ {
		n += bits.OnesCount64(b.Word(w))
	}
	return n
}

// CountRange returns the number of set bits in [start, end). Both start and
// end must be multiples of 64, except that end may equal the bitmap's length.
func (b Bitmap) CountRange(start, end int) int {
	n := 0
	for w := start >> 6; w < WordsFor(end); w++ {
		n += bits.OnesCount64(b.Word(w))
	}
	return n
}

// CountZeros returns the number of clear bits.
func (b Bitmap) CountZeros() int {
	return invariants.SafeSub(b.bitCount, b.Count())
}

// Successor returns the next bit greater than or equal to i set in the bitmap.
// Returns the number of bits represented by the bitmap if no next bit is set.
func (b Bitmap) Successor(i int) int {
	if i >= b.bitCount {
		return b.bitCount
	}
	// nextInWord returns the index of the smallest set bit with an index >= bit
	// within the provided word. The returned index is an index local to the
	// word.
	nextInWord := func(word uint64, bit uint) int {
		// Clear the trailing `bit` bits from the word and count the number of
		// trailing zeros.
		return bits.TrailingZeros64(word &^ ((1 << bit) - 1))
	}

	wordIdx := i >> 6 // i/64
	if next := nextInWord(b.Word(wordIdx), uint(i%64)); next < 64 {
		return wordIdx<<6 + next
	}
	nWords := WordsFor(b.bitCount)
	for wordIdx++; wordIdx < nWords; wordIdx++ {
		if word := b.Word(wordIdx); word != 0 {
			return wordIdx<<6 + bits.TrailingZeros64(word)
		}
	}
	return b.bitCount
}

// Clone returns a copy of the bitmap that shares no storage with b. Cloning
// an absent bitmap returns an absent bitmap.
func (b Bitmap) Clone() Bitmap {
	if !b.Present() {
		return Bitmap{}
	}
	words := slices.Clone(b.words[:WordsFor(b.bitCount)])
	if i := b.bitCount % 64; i != 0 {
		words[len(words)-1] &= (1 << i) - 1
	}
	return Bitmap{words: words, bitCount: b.bitCount}
}

// String returns a string representation of the entire bitmap, one character
// per bit in bit order, with a newline every 64 bits.
func (b Bitmap) String() string {
	if !b.Present() {
		return "absent"
	}
	var sb strings.Builder
	for i := 0; i < b.bitCount; i++ {
		if i > 0 && i%64 == 0 {
			sb.WriteByte('\n')
		}
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// AndWords combines src into dst, clearing every bit of dst that is clear in
// src. Both slices must have the same length.
func AndWords(dst, src []uint64) {
	if len(dst) != len(src) {
		panic(errors.AssertionFailedf("mismatched word counts: %d, %d", len(dst), len(src)))
	}
	for i := range dst {
		dst[i] &= src[i]
	}
}

// Builder constructs a Bitmap. Bits are default false.
type Builder struct {
	words []uint64
}

// Set sets the bit at position i if v is true and clears the bit at position i
// otherwise. Callers need not call Set if v is false and Set(i, true) has not
// been set yet.
func (b *Builder) Set(i int, v bool) {
	w := i >> 6 // divide by 64
	for len(b.words) <= w {
		b.words = append(b.words, 0)
	}
	if v {
		b.words[w] |= 1 << uint(i%64)
	} else {
		b.words[w] &^= 1 << uint(i%64)
	}
}

// Reset resets the bitmap to the empty state.
func (b *Builder) Reset() {
	clear(b.words)
	b.words = b.words[:0]
}

// Invert inverts the bitmap, setting all bits that are not set and clearing all
// bits that are set. If the bitmap's tail is sparse and is not large enough to
// represent nRows rows, it's first materialized.
func (b *Builder) Invert(nRows int) {
	// If the tail of b is sparse, fill in zeroes before inverting.
	nBitmapWords := WordsFor(nRows)
	if len(b.words) < nBitmapWords {
		b.words = slices.Grow(b.words, nBitmapWords-len(b.words))[:nBitmapWords]
	}
	for i := range b.words {
		b.words[i] = ^b.words[i]
	}
}

// Finish returns the Bitmap holding the first nRows bits set so far. Bits at
// or beyond nRows are cleared. The builder is reset and must not be used to
// mutate the returned bitmap.
func (b *Builder) Finish(nRows int) Bitmap {
	nBitmapWords := WordsFor(nRows)
	words := make([]uint64, nBitmapWords)
	copy(words, b.words)
	// Ensure the last word of the bitmap does not contain any set bits beyond
	// the last row.
	if i := nRows % 64; nBitmapWords > 0 && i != 0 {
		words[nBitmapWords-1] &= (1 << i) - 1
	}
	b.Reset()
	return Bitmap{words: words, bitCount: nRows}
}
