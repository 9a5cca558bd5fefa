// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	err := InvalidArgumentError(MsgColumnSizeMismatch)
	require.Equal(t, "Column size mismatch", err.Error())
	require.True(t, IsInvalidArgument(err))
	require.False(t, IsNullPointer(err))

	err = NullPointerError(MsgNullBooleanMask)
	require.Equal(t, "Null boolean_mask", err.Error())
	require.True(t, IsNullPointer(err))
	require.False(t, IsInvalidArgument(err))

	// The kind survives wrapping.
	wrapped := errors.Wrap(err, "filtering")
	require.True(t, IsNullPointer(wrapped))
	require.Equal(t, "filtering: Null boolean_mask", wrapped.Error())

	// Errors with the same message but no mark are of neither kind.
	require.False(t, IsNullPointer(errors.New(MsgNullBooleanMask)))
}
