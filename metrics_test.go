// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cudf

import (
	"sync"
	"testing"

	"github.com/cockroachdb/crlib/testutils/leaktest"
	"github.com/degerli/cudf/column"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := &Metrics{Latency: NewLatencyHistogram()}
	f := New(&Options{Metrics: m, DisableFastPaths: true, Parallelism: 2, BlockRows: 64})

	src := column.New(column.DataTypeInt64, []int64{1, 2, 3, 4}, nil)
	mask := column.FromBools([]bool{true, false, true, true}, nil)
	_, err := f.ApplyBooleanMask(src, mask)
	require.NoError(t, err)

	tbl, err := column.NewTable(src, src.Clone())
	require.NoError(t, err)
	_, err = f.ApplyBooleanMaskTable(tbl, mask)
	require.NoError(t, err)

	// Empty inputs short-circuit.
	_, err = f.ApplyBooleanMask(src.Empty(), mask.Empty())
	require.NoError(t, err)

	_, err = f.ApplyBooleanMask(src, column.FromBools([]bool{true}, nil))
	require.Error(t, err)
	_, err = f.ApplyBooleanMask(src, src)
	require.Error(t, err)
	_, err = f.ApplyBooleanMask(nil, mask)
	require.Error(t, err)

	require.Equal(t, Stats{
		Calls:                 6,
		RowsIn:                8,
		RowsOut:               6,
		ShortCircuits:         1,
		InvalidArgumentErrors: 2,
		NullPointerErrors:     1,
	}, m.Stats())
	require.Contains(t, m.String(), "errors: 2 invalid argument, 1 null pointer")

	// Only successful calls are observed by the latency histogram.
	var metric dto.Metric
	require.NoError(t, m.Latency.Write(&metric))
	require.Equal(t, uint64(3), metric.GetHistogram().GetSampleCount())
}

func TestMetricsFastPath(t *testing.T) {
	m := &Metrics{}
	f := New(&Options{Metrics: m})
	src := column.New(column.DataTypeInt32, []int32{1, 2}, nil)
	out, err := f.ApplyBooleanMask(src, column.FromBools([]bool{true, true}, nil))
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	s := m.Stats()
	require.Equal(t, int64(1), s.Calls)
	require.Equal(t, int64(2), s.RowsOut)
	// Invariant builds sometimes take the full pipeline instead.
	require.LessOrEqual(t, s.FastPaths, int64(1))
}

func TestMetricsNil(t *testing.T) {
	var m *Metrics
	require.Equal(t, Stats{}, m.Stats())
	f := New(&Options{})
	_, err := f.ApplyBooleanMask(nil, nil)
	require.Error(t, err)
}

func TestMetricsConcurrent(t *testing.T) {
	defer leaktest.AfterTest(t)()

	m := &Metrics{}
	f := New(&Options{Metrics: m, Parallelism: 2, BlockRows: 64})
	vals := make([]int32, 1000)
	maskVals := make([]bool, 1000)
	for i := range maskVals {
		maskVals[i] = i%3 == 0
	}
	src := column.New(column.DataTypeInt32, vals, nil)
	mask := column.FromBools(maskVals, nil)

	const goroutines, calls = 4, 25
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				out, err := f.ApplyBooleanMask(src, mask)
				require.NoError(t, err)
				require.Equal(t, 334, out.Len())
			}
		}()
	}
	wg.Wait()
	s := m.Stats()
	require.Equal(t, int64(goroutines*calls), s.Calls)
	require.Equal(t, int64(goroutines*calls*1000), s.RowsIn)
	require.Equal(t, int64(goroutines*calls*334), s.RowsOut)
}
