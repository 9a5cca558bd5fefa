// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/degerli/cudf/column"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGenerate(t *testing.T) {
	tbl := generateTable(rand.New(rand.NewSource(1)), 500, 10, 0.2)
	require.Equal(t, 10, tbl.NumColumns())
	require.Equal(t, 500, tbl.NumRows())
	for i := 0; i < tbl.NumColumns(); i++ {
		c := tbl.Column(i)
		require.Equal(t, generatedTypes[i%len(generatedTypes)], c.Type)
		require.NoError(t, c.CheckInvariants())
		require.True(t, c.Validity.Present())
	}
	require.LessOrEqual(t, tbl.Column(3).Dictionary.Len(), categoryCardinality)

	// The same seed generates the same table.
	again := generateTable(rand.New(rand.NewSource(1)), 500, 10, 0.2)
	require.Equal(t, tbl.String(), again.String())

	noNulls := generateTable(rand.New(rand.NewSource(2)), 100, 2, 0)
	require.False(t, noNulls.Column(0).Validity.Present())

	rng := rand.New(rand.NewSource(3))
	none := generateMask(rng, 1000, 0, 0)
	require.Equal(t, column.DataTypeBool, none.Type)
	require.Equal(t, 0, none.Validity.Len())
	for i := 0; i < none.Len(); i++ {
		require.False(t, none.Bool(i))
	}
	all := generateMask(rng, 1000, 1, 0.5)
	require.Greater(t, all.NullCount, 0)
	for i := 0; i < all.Len(); i++ {
		require.True(t, all.Bool(i))
	}
}

func TestMakeOptions(t *testing.T) {
	defer func() {
		optionsPath, parallelism, blockRows, disableFastPaths = "", 0, 0, false
	}()

	dir := t.TempDir()
	optionsPath = filepath.Join(dir, "OPTIONS")
	require.NoError(t, os.WriteFile(optionsPath, []byte(`
[Options]
  block_rows=256
  parallelism=3
  disable_fast_paths=true
`), 0644))

	opts, err := makeOptions()
	require.NoError(t, err)
	require.Equal(t, 3, opts.Parallelism)
	require.Equal(t, 256, opts.BlockRows)
	require.True(t, opts.DisableFastPaths)

	// Flags take precedence over the file.
	parallelism, blockRows = 5, 100
	opts, err = makeOptions()
	require.NoError(t, err)
	require.Equal(t, 5, opts.Parallelism)
	require.Equal(t, 128, opts.BlockRows)

	require.NoError(t, os.WriteFile(optionsPath, []byte("[Options]\n  bogus=1\n"), 0644))
	_, err = makeOptions()
	require.Error(t, err)

	optionsPath = filepath.Join(dir, "missing")
	_, err = makeOptions()
	require.Error(t, err)
}

func TestRunBench(t *testing.T) {
	saved := runConfig
	defer func() { runConfig = saved }()
	runConfig.rows = 2000
	runConfig.columns = 3
	runConfig.iterations = 3
	runConfig.seed = 1

	opts, err := makeOptions()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, runBench(&buf, opts))
	out := buf.String()
	require.Contains(t, out, "SELECTED")
	require.Contains(t, out, "P99(MS)")
	require.Contains(t, out, "errors: 0 invalid argument, 0 null pointer")
}

func TestChecksum(t *testing.T) {
	tbl := generateTable(rand.New(rand.NewSource(1)), 300, 8, 0.1)
	same := generateTable(rand.New(rand.NewSource(1)), 300, 8, 0.1)
	require.Equal(t, checksum(tbl), checksum(same))

	cols := append([]*column.Column(nil), same.Columns()...)
	cols[1] = cols[1].Clone()
	cols[1].Data[0]++
	changed, err := column.NewTable(cols...)
	require.NoError(t, err)
	require.NotEqual(t, checksum(tbl), checksum(changed))
}
