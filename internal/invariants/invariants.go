// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants exposes assertions that are only active in builds with
// the "invariants" or "race" build tags.
package invariants

import "math/rand/v2"

// Sometimes returns true percent% of the time if we were built with the
// "invariants" or "race" build tags. Otherwise, always returns false.
func Sometimes(percent int) bool {
	return Enabled && rand.Uint32N(100) < uint32(percent)
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}
