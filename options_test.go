// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cudf

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/degerli/cudf/internal/compact"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestOptionsParse(t *testing.T) {
	datadriven.RunTest(t, "testdata/options", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "parse":
			var o Options
			if err := o.Parse(td.Input); err != nil {
				return fmt.Sprintf("error: %s", err)
			}
			if td.HasArg("validate") {
				if err := o.Validate(); err != nil {
					return fmt.Sprintf("invalid:\n%s", err)
				}
			}
			return o.String()
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func TestOptionsEnsureDefaults(t *testing.T) {
	var nilOpts *Options
	o := nilOpts.EnsureDefaults()
	require.Equal(t, runtime.GOMAXPROCS(0), o.Parallelism)
	require.Equal(t, compact.DefaultBlockRows, o.BlockRows)
	require.Equal(t, DefaultLogger{}, o.Logger)
	require.NoError(t, o.Validate())

	// BlockRows is rounded up to a multiple of 64.
	for _, tc := range []struct{ in, want int }{
		{1, 64}, {63, 64}, {64, 64}, {65, 128}, {1000, 1024},
	} {
		o := (&Options{BlockRows: tc.in}).EnsureDefaults()
		require.Equal(t, tc.want, o.BlockRows, "BlockRows=%d", tc.in)
		require.NoError(t, o.Validate())
	}

	// New does not modify the caller's options.
	user := &Options{BlockRows: 100}
	f := New(user)
	require.Equal(t, 100, user.BlockRows)
	require.Nil(t, user.Logger)
	require.Equal(t, 128, f.Options().BlockRows)
}

func TestOptionsRandomizedRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		o := &Options{
			Parallelism:      1 + rng.Intn(64),
			BlockRows:        64 * (1 + rng.Intn(4096)),
			DisableFastPaths: rng.Intn(2) == 0,
			Verbose:          rng.Intn(2) == 0,
		}
		var parsed Options
		require.NoError(t, parsed.Parse(o.String()))
		require.Equal(t, *o, parsed)
		require.NoError(t, parsed.Validate())
	}
}
