// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	blockRows        int
	disableFastPaths bool
	optionsPath      string
	parallelism      int
	verbose          bool
)

var rootCmd = &cobra.Command{
	Use:   "maskbench [command] (flags)",
	Short: "boolean mask compaction benchmarking tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		runCmd,
		optionsCmd,
	)

	for _, cmd := range []*cobra.Command{runCmd, optionsCmd} {
		cmd.Flags().IntVarP(
			&parallelism, "parallelism", "p", 0, "maximum goroutines per call (0 means GOMAXPROCS)")
		cmd.Flags().IntVar(
			&blockRows, "block-rows", 0, "rows processed by one task (0 means the default)")
		cmd.Flags().BoolVar(
			&disableFastPaths, "disable-fast-paths", false,
			"always run the full select, scan and gather pipeline")
		cmd.Flags().StringVar(
			&optionsPath, "options", "", "path of an OPTIONS file read before applying flags")
		cmd.Flags().BoolVarP(
			&verbose, "verbose", "v", false, "log a summary of every call")
	}

	runCmd.Flags().IntVar(
		&runConfig.rows, "rows", runConfig.rows, "number of rows in the generated table")
	runCmd.Flags().IntVar(
		&runConfig.columns, "columns", runConfig.columns, "number of columns in the generated table")
	runCmd.Flags().Float64Var(
		&runConfig.selectivity, "selectivity", runConfig.selectivity,
		"fraction of mask rows that are true")
	runCmd.Flags().Float64Var(
		&runConfig.nullFraction, "null-fraction", runConfig.nullFraction,
		"fraction of null rows in every generated column")
	runCmd.Flags().Float64Var(
		&runConfig.maskNullFraction, "mask-null-fraction", runConfig.maskNullFraction,
		"fraction of null rows in the mask")
	runCmd.Flags().IntVarP(
		&runConfig.iterations, "iterations", "n", runConfig.iterations,
		"number of times the table is filtered")
	runCmd.Flags().Uint64Var(
		&runConfig.seed, "seed", runConfig.seed, "seed of the data generator (0 means random)")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
