// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/degerli/cudf"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "print the effective filter options",
	Long: `
Print the options a filter would run with, after reading the OPTIONS file
named by --options and applying the flags.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := makeOptions()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), opts.String())
		return nil
	},
}

// makeOptions returns the filter options described by the OPTIONS file and
// the flags, with defaults applied. Flags that were set take precedence over
// the file.
func makeOptions() (*cudf.Options, error) {
	opts := &cudf.Options{}
	if optionsPath != "" {
		data, err := os.ReadFile(optionsPath)
		if err != nil {
			return nil, err
		}
		if err := opts.Parse(string(data)); err != nil {
			return nil, errors.Wrapf(err, "reading %s", optionsPath)
		}
	}
	if parallelism != 0 {
		opts.Parallelism = parallelism
	}
	if blockRows != 0 {
		opts.BlockRows = blockRows
	}
	opts.DisableFastPaths = opts.DisableFastPaths || disableFastPaths
	opts.Verbose = opts.Verbose || verbose
	opts.EnsureDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
