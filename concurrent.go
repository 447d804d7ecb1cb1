// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// runsPerWorker controls the chunking of maximal intervals, a few chunks
// per worker keep the load balanced without a goroutine per interval.
const runsPerWorker = 4

// AggregateConcurrent is like [Aggregate] but splits the maximal
// intervals with up to workers goroutines. workers < 1 means GOMAXPROCS.
//
// The result is identical to Aggregate. A canceled ctx stops the
// splitting and returns ctx.Err().
func AggregateConcurrent(ctx context.Context, blocks []Block, workers int) ([]Block, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ivs, err := sortedIntervals(slices.Values(blocks))
	if err != nil {
		return nil, err
	}

	runs := slices.Collect(Coalesce(slices.Values(ivs)))
	if len(runs) == 0 {
		return nil, nil
	}

	chunkSize := max(1, len(runs)/(workers*runsPerWorker))
	chunks := slices.Collect(slices.Chunk(runs, chunkSize))
	parts := make([][]Block, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var part []Block
			for _, run := range chunk {
				part = slices.AppendSeq(part, Split(run))
			}
			parts[i] = part
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(parts...), nil
}
