// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/errors"

// ErrInvalidArgument marks errors caused by an argument whose type or shape
// is incompatible with the operation, such as a non-boolean mask or a mask
// whose row count differs from the source.
var ErrInvalidArgument = errors.New("cudf: invalid argument")

// ErrNullPointer marks errors caused by an input that declares rows but is
// missing the storage backing them.
var ErrNullPointer = errors.New("cudf: null pointer")

// The fixed messages carried by validation errors.
const (
	MsgNullInputData      = "Null input data"
	MsgNullBooleanMask    = "Null boolean_mask"
	MsgColumnSizeMismatch = "Column size mismatch"
	MsgMaskNotBoolean     = "Mask must be Boolean type"
	MsgUnsupportedType    = "Unsupported column type"
)

// InvalidArgumentError returns an error with the provided message marked as
// ErrInvalidArgument.
func InvalidArgumentError(msg string) error {
	return errors.Mark(errors.New(msg), ErrInvalidArgument)
}

// NullPointerError returns an error with the provided message marked as
// ErrNullPointer.
func NullPointerError(msg string) error {
	return errors.Mark(errors.New(msg), ErrNullPointer)
}

// IsInvalidArgument returns true if the error is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNullPointer returns true if the error is a null-pointer error.
func IsNullPointer(err error) bool {
	return errors.Is(err, ErrNullPointer)
}
