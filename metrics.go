// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cudf

import (
	"sync/atomic"
	"time"

	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/redact"
	"github.com/degerli/cudf/internal/base"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics accumulates statistics about the calls made through one or more
// Filters. All methods are safe for concurrent use, and a nil *Metrics
// records nothing.
type Metrics struct {
	// Latency, if set, observes the duration in seconds of every call that
	// returns without error.
	Latency prometheus.Histogram

	calls           atomic.Int64
	rowsIn          atomic.Int64
	rowsOut         atomic.Int64
	fastPaths       atomic.Int64
	shortCircuits   atomic.Int64
	invalidArgument atomic.Int64
	nullPointer     atomic.Int64
}

// NewLatencyHistogram returns a prometheus histogram suitable for
// Metrics.Latency. Its buckets grow exponentially from 10µs to ~10s.
func NewLatencyHistogram() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cudf",
		Name:      "apply_boolean_mask_duration_seconds",
		Help:      "Latency of boolean mask compaction calls.",
		Buckets:   prometheus.ExponentialBuckets(10e-6, 2, 20),
	})
}

// outcome describes how a successful call produced its result.
type outcome int8

const (
	// outcomeGathered is a call that ran the full pipeline.
	outcomeGathered outcome = iota
	// outcomeFastPath is a call whose mask selected every row.
	outcomeFastPath
	// outcomeShortCircuit is a call whose result has no rows without having
	// gathered anything.
	outcomeShortCircuit
)

func (m *Metrics) recordCall(rowsIn, rowsOut int, o outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.Add(1)
	m.rowsIn.Add(int64(rowsIn))
	m.rowsOut.Add(int64(rowsOut))
	switch o {
	case outcomeFastPath:
		m.fastPaths.Add(1)
	case outcomeShortCircuit:
		m.shortCircuits.Add(1)
	}
	if m.Latency != nil {
		m.Latency.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) recordError(err error) {
	if m == nil {
		return
	}
	m.calls.Add(1)
	switch {
	case base.IsInvalidArgument(err):
		m.invalidArgument.Add(1)
	case base.IsNullPointer(err):
		m.nullPointer.Add(1)
	}
}

// Stats returns a snapshot of the accumulated statistics.
func (m *Metrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		Calls:                 m.calls.Load(),
		RowsIn:                m.rowsIn.Load(),
		RowsOut:               m.rowsOut.Load(),
		FastPaths:             m.fastPaths.Load(),
		ShortCircuits:         m.shortCircuits.Load(),
		InvalidArgumentErrors: m.invalidArgument.Load(),
		NullPointerErrors:     m.nullPointer.Load(),
	}
}

// String implements fmt.Stringer.
func (m *Metrics) String() string {
	return m.Stats().String()
}

// Stats is a point-in-time snapshot of Metrics.
type Stats struct {
	// Calls is the number of calls made, including failed ones.
	Calls int64
	// RowsIn is the number of mask rows evaluated by successful calls.
	RowsIn int64
	// RowsOut is the number of rows produced by successful calls. For a
	// table, this counts rows, not cells.
	RowsOut int64
	// FastPaths is the number of calls whose mask selected every row and
	// whose result was copied from the source.
	FastPaths int64
	// ShortCircuits is the number of calls that returned an empty result
	// without gathering, because an input was empty or nothing was selected.
	ShortCircuits int64
	// InvalidArgumentErrors is the number of calls that failed with an error
	// marked ErrInvalidArgument.
	InvalidArgumentErrors int64
	// NullPointerErrors is the number of calls that failed with an error
	// marked ErrNullPointer.
	NullPointerErrors int64
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter.
func (s Stats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("calls: %s (fast paths %s, short circuits %s)\n",
		crhumanize.Count(s.Calls, crhumanize.Compact),
		crhumanize.Count(s.FastPaths, crhumanize.Compact),
		crhumanize.Count(s.ShortCircuits, crhumanize.Compact))
	w.Printf("rows: %s in, %s out\n",
		crhumanize.Count(s.RowsIn, crhumanize.Compact),
		crhumanize.Count(s.RowsOut, crhumanize.Compact))
	w.Printf("errors: %d invalid argument, %d null pointer\n",
		redact.Safe(s.InvalidArgumentErrors), redact.Safe(s.NullPointerErrors))
}
