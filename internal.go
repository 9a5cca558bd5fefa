// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cudf

import "github.com/degerli/cudf/internal/base"

// ErrInvalidArgument marks errors returned for a mask that is not a boolean
// column or whose row count differs from the source's.
var ErrInvalidArgument = base.ErrInvalidArgument

// ErrNullPointer marks errors returned for an input that declares rows but is
// missing the storage backing them.
var ErrNullPointer = base.ErrNullPointer

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger = base.DefaultLogger
