// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package compact

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultBlockRows is the default number of rows processed by one task.
const DefaultBlockRows = 64 << 10

// Config configures how the phases of compaction are split into tasks.
type Config struct {
	// Parallelism is the maximum number of goroutines running tasks of a
	// single phase. Values below 2 run every task on the calling goroutine.
	Parallelism int
	// BlockRows is the number of rows processed by one task. It must be a
	// positive multiple of 64.
	BlockRows int
}

func (c Config) blockRows() int {
	if c.BlockRows <= 0 {
		return DefaultBlockRows
	}
	if c.BlockRows%64 != 0 {
		panic(errors.AssertionFailedf("block rows %d is not a multiple of 64", c.BlockRows))
	}
	return c.BlockRows
}

// numBlocks returns the number of blocks needed to cover n rows.
func (c Config) numBlocks(n int) int {
	br := c.blockRows()
	return (n + br - 1) / br
}

// runBlocks invokes fn once for every block covering the rows [0, n). Each
// call receives the block's index and its row range [start, end). Blocks run
// on up to c.Parallelism goroutines; runBlocks returns once every block has
// completed. A single block, or a parallelism below 2, runs inline.
func (c Config) runBlocks(n int, fn func(block, start, end int)) {
	br := c.blockRows()
	nBlocks := c.numBlocks(n)
	if nBlocks <= 1 || c.Parallelism < 2 {
		for b := 0; b < nBlocks; b++ {
			fn(b, b*br, min((b+1)*br, n))
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(c.Parallelism)
	for b := 0; b < nBlocks; b++ {
		g.Go(func() error {
			fn(b, b*br, min((b+1)*br, n))
			return nil
		})
	}
	_ = g.Wait()
}
