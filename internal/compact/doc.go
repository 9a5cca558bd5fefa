// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package compact implements stream compaction of columns under a boolean
// mask.
//
// Compaction runs in three phases:
//
//  1. Select evaluates the predicate for every row, producing a packed keep
//     bitmap and the number of kept rows in each block of rows.
//  2. Scan computes the exclusive prefix sum of the keep bitmap. The prefix
//     sum of a kept row is its index in the output. Scan runs as a two-level
//     scan: the per-block counts from Select are scanned into block offsets,
//     and then every block independently assigns output indexes to its kept
//     rows, recording the inverse mapping (output row to source row) as the
//     gather map.
//  3. Gather copies values and validity bits from the source rows named by the
//     gather map into a freshly allocated column.
//
// Select and Scan depend only on the mask, so a single Selection may be
// gathered from any number of columns of the same length; every output then
// shares the same row correspondence.
//
// Every phase splits its rows into blocks of Config.BlockRows rows, a
// multiple of 64 so that no two blocks share a bitmap word, and runs the
// blocks on up to Config.Parallelism goroutines.
package compact
