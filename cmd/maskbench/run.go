// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

const (
	minLatency = 1 * time.Microsecond
	maxLatency = 100 * time.Second
)

var runConfig = struct {
	rows             int
	columns          int
	selectivity      float64
	nullFraction     float64
	maskNullFraction float64
	iterations       int
	seed             uint64
}{
	rows:         1 << 20,
	columns:      4,
	selectivity:  0.5,
	nullFraction: 0.1,
	iterations:   20,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the table filter benchmark",
	Long: `
Generate a table and a boolean mask with the configured shape, filter the
table with the mask repeatedly, and report latency percentiles.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := makeOptions()
		if err != nil {
			return err
		}
		return runBench(cmd.OutOrStdout(), opts)
	},
}

func clampLatency(d time.Duration) time.Duration {
	return max(minLatency, min(maxLatency, d))
}

func runBench(w io.Writer, opts *cudf.Options) error {
	cfg := runConfig
	if cfg.seed == 0 {
		cfg.seed = uint64(time.Now().UnixNano())
	}
	if cfg.iterations < 1 {
		cfg.iterations = 1
	}
	log.Printf("seed: %d", cfg.seed)
	rng := rand.New(rand.NewSource(cfg.seed))

	tbl := generateTable(rng, cfg.rows, cfg.columns, cfg.nullFraction)
	mask := generateMask(rng, cfg.rows, cfg.selectivity, cfg.maskNullFraction)

	opts.Metrics = &cudf.Metrics{}
	f := cudf.New(opts)
	hist := hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 1)
	var selected int
	var sum uint64
	start := crtime.NowMono()
	for i := 0; i < cfg.iterations; i++ {
		callStart := crtime.NowMono()
		out, err := f.ApplyBooleanMaskTable(tbl, mask)
		if err != nil {
			return err
		}
		if err := hist.RecordValue(clampLatency(callStart.Elapsed()).Nanoseconds()); err != nil {
			// Values are clamped to the histogram's range.
			panic(fmt.Sprintf("recording value: %s", err))
		}
		// Every iteration must produce the same table.
		if s := checksum(out); i == 0 {
			sum = s
		} else if s != sum {
			return errors.AssertionFailedf("iteration %d produced checksum %016x; want %016x", i, s, sum)
		}
		selected = out.NumRows()
	}
	elapsed := start.Elapsed()

	ms := func(v int64) string {
		return fmt.Sprintf("%.3f", time.Duration(v).Seconds()*1000)
	}
	rowsPerSec := float64(cfg.rows) * float64(cfg.iterations) / elapsed.Seconds()

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"rows", "columns", "selected", "iterations",
		"p50(ms)", "p95(ms)", "p99(ms)", "pMax(ms)", "rows/sec", "checksum"})
	tw.Append([]string{
		string(crhumanize.Count(cfg.rows, crhumanize.Compact)),
		fmt.Sprint(cfg.columns),
		string(crhumanize.Count(selected, crhumanize.Compact)),
		fmt.Sprint(cfg.iterations),
		ms(hist.ValueAtQuantile(50)),
		ms(hist.ValueAtQuantile(95)),
		ms(hist.ValueAtQuantile(99)),
		ms(hist.ValueAtQuantile(100)),
		string(crhumanize.Count(int64(rowsPerSec), crhumanize.Compact)),
		fmt.Sprintf("%016x", sum),
	})
	tw.Render()
	fmt.Fprintf(w, "\n%s", opts.Metrics)
	return nil
}
