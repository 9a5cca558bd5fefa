// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package compact

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/crlib/testutils/leaktest"
	"github.com/cockroachdb/datadriven"
	"github.com/degerli/cudf/column"
	"github.com/degerli/cudf/internal/testutils"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func parseColumn(t *testing.T, dt column.DataType, input string, forceValidity bool) *column.Column {
	t.Helper()
	c, err := testutils.ParseColumn(dt, input, forceValidity)
	require.NoError(t, err)
	return c
}

func TestCompact(t *testing.T) {
	var mask *column.Column
	var sel *Selection
	var cfg Config
	datadriven.RunTest(t, "testdata/compact", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "mask":
			cfg = Config{BlockRows: 64}
			td.MaybeScanArgs(t, "block-rows", &cfg.BlockRows)
			td.MaybeScanArgs(t, "parallelism", &cfg.Parallelism)
			mask = parseColumn(t, column.DataTypeBool, td.Input, td.HasArg("validity"))
			sel = Select(mask, cfg)
			return sel.String()
		case "gather":
			var typ string
			td.ScanArgs(t, "type", &typ)
			dt, ok := column.ParseDataType(typ)
			require.True(t, ok, "unknown type %q", typ)
			src := parseColumn(t, dt, td.Input, td.HasArg("validity"))
			out := Gather(src, sel, cfg)
			var sb strings.Builder
			fmt.Fprintln(&sb, out.String())
			fmt.Fprintf(&sb, "validity: %s", out.Validity)
			return sb.String()
		default:
			panic(fmt.Sprintf("unknown command: %s", td.Cmd))
		}
	})
}

func TestKeep(t *testing.T) {
	// Every combination of mask value and mask validity.
	mask := column.FromBools([]bool{true, false, true, false}, []bool{true, true, false, false})
	var got []bool
	for i := 0; i < mask.Len(); i++ {
		got = append(got, Keep(mask, i))
	}
	require.Equal(t, []bool{true, false, false, false}, got)

	// A null mask row and a false mask row select identically.
	nullMask := column.FromBools([]bool{true, true}, []bool{false, false})
	falseMask := column.FromBools([]bool{false, false}, nil)
	require.Equal(t, Select(falseMask, Config{}).String(), Select(nullMask, Config{}).String())
}

func TestSelectRejectsNonBoolMask(t *testing.T) {
	mask := column.New(column.DataTypeFloat32, []float32{1}, nil)
	require.Panics(t, func() { Select(mask, Config{}) })
}

func TestScanIdempotent(t *testing.T) {
	mask := column.FromBools([]bool{false, true, true, false, true}, nil)
	sel := Select(mask, Config{})
	sel.Scan()
	sel.Scan()
	require.Equal(t, 5, sel.Rows())
	require.Equal(t, 3, sel.Len())
	require.Equal(t, []int{1, 2, 4}, []int{sel.Index(0), sel.Index(1), sel.Index(2)})
	require.Panics(t, func() { Select(mask, Config{}).Index(0) })
}

func TestGatherSharesSelection(t *testing.T) {
	mask := column.FromBools([]bool{true, false, true, true}, []bool{true, true, true, false})
	sel := Select(mask, Config{})
	a := Gather(column.New(column.DataTypeInt32, []int32{1, 2, 3, 4}, nil), sel, Config{})
	b := Gather(column.New(column.DataTypeFloat64, []float64{0.1, 0.2, 0.3, 0.4}, []bool{false, true, true, true}), sel, Config{})
	require.Equal(t, "int32[2] nulls=0: 1 3", a.String())
	require.Equal(t, "float64[2] nulls=1: NULL 0.3", b.String())
	require.Panics(t, func() { Gather(column.New(column.DataTypeInt32, []int32{1}, nil), sel, Config{}) })
}

func TestGatherCategorySharesDictionary(t *testing.T) {
	src := column.DictionaryEncode(column.DataTypeInt64, []int64{10, 20, 10, 30}, nil)
	mask := column.FromBools([]bool{false, true, true, true}, nil)
	out := Gather(src, Select(mask, Config{}), Config{})
	require.Same(t, src.Dictionary, out.Dictionary)
	require.Equal(t, 3, src.Dictionary.Len())
	require.Equal(t, []int32{1, 0, 2}, column.Values[int32](out))
	require.Equal(t, "category[3] nulls=0 dict=3: 20 10 30", out.String())
}

// referenceCompact is a row-at-a-time implementation of compaction used to
// check the pipeline.
func referenceCompact(src []int64, srcValid []bool, mask *column.Column) ([]int64, []bool) {
	var vals []int64
	var valid []bool
	for i := range src {
		if Keep(mask, i) {
			vals = append(vals, src[i])
			valid = append(valid, srcValid == nil || srcValid[i])
		}
	}
	return vals, valid
}

func TestCompactRandomized(t *testing.T) {
	defer leaktest.AfterTest(t)()

	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewSource(seed))

	for iter := 0; iter < 50; iter++ {
		n := rng.Intn(5000)
		cfg := Config{
			Parallelism: 1 + rng.Intn(8),
			BlockRows:   64 * (1 + rng.Intn(8)),
		}
		selectivity := rng.Float64()
		maskNulls := rng.Float64() * 0.5
		srcNulls := rng.Float64() * 0.5

		maskVals := make([]bool, n)
		maskValid := make([]bool, n)
		src := make([]int64, n)
		srcValid := make([]bool, n)
		for i := 0; i < n; i++ {
			maskVals[i] = rng.Float64() < selectivity
			maskValid[i] = rng.Float64() >= maskNulls
			src[i] = rng.Int63()
			srcValid[i] = rng.Float64() >= srcNulls
		}
		if rng.Intn(4) == 0 {
			maskValid = nil
		}
		if rng.Intn(4) == 0 {
			srcValid = nil
		}
		mask := column.FromBools(maskVals, maskValid)
		srcCol := column.New(column.DataTypeInt64, src, srcValid)

		sel := Select(mask, cfg)
		out := Gather(srcCol, sel, cfg)
		require.NoError(t, out.CheckInvariants())

		wantVals, wantValid := referenceCompact(src, srcValid, mask)
		require.Equal(t, len(wantVals), out.Len())
		require.Equal(t, len(wantVals), sel.Len())
		if len(wantVals) > 0 {
			require.Equal(t, wantVals, column.Values[int64](out))
		}
		require.Equal(t, srcValid != nil, out.Validity.Present())
		for k := range wantValid {
			require.Equal(t, wantValid[k], out.IsValid(k), "row %d", k)
		}

		// Every width shares the same selection and row correspondence.
		narrow := make([]int8, n)
		for i := range narrow {
			narrow[i] = int8(src[i])
		}
		out8 := Gather(column.New(column.DataTypeInt8, narrow, srcValid), sel, Config{Parallelism: 1})
		for k, v := range column.Values[int8](out8) {
			require.Equal(t, int8(wantVals[k]), v)
		}
	}
}

func BenchmarkCompact(b *testing.B) {
	const n = 1 << 20
	rng := rand.New(rand.NewSource(1))
	maskVals := make([]bool, n)
	src := make([]int64, n)
	for i := range maskVals {
		maskVals[i] = rng.Intn(2) == 0
		src[i] = int64(i)
	}
	mask := column.FromBools(maskVals, nil)
	srcCol := column.New(column.DataTypeInt64, src, nil)
	for _, parallelism := range []int{1, 4} {
		b.Run(fmt.Sprintf("parallelism=%d", parallelism), func(b *testing.B) {
			cfg := Config{Parallelism: parallelism}
			for i := 0; i < b.N; i++ {
				_ = Gather(srcCol, Select(mask, cfg), cfg)
			}
		})
	}
}
