// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package cudf implements boolean-mask stream compaction over in-memory
// columns: given a source column (or table) and a boolean mask column of the
// same length, it produces a new column (or table) holding exactly the rows
// whose mask entry is valid and true, in their original order.
//
// A mask row that is null selects nothing, exactly like a false one. The
// validity of every selected row is taken from the source row, never from the
// mask, and the output's null count is recomputed from the selected rows.
// Inputs are never mutated.
//
// Compaction runs in three phases over blocks of rows: the mask is packed
// into a bitmap of selected rows, the per-block counts of selected rows are
// scanned into output offsets, and every column is gathered through the
// resulting map from output rows to source rows. For a table, the first two
// phases run once and every column is gathered through the same map.
//
// The package-level ApplyBooleanMask and ApplyBooleanMaskTable use default
// options. A Filter created with New applies its own Options to every call.
package cudf
