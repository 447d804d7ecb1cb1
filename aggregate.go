// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"fmt"
	"iter"
	"net/netip"
	"slices"
)

// Aggregate returns the unique minimal set of CIDR blocks covering
// exactly the addresses of the input blocks, sorted ascending.
//
// Duplicates, overlaps and host bits in the input are allowed.
// The first block with a prefix length > 32 aborts the call with an
// [*InvalidPrefixLengthError], no partial result is returned.
//
// An empty input returns a nil result.
func Aggregate(blocks []Block) ([]Block, error) {
	return AggregateSeq(slices.Values(blocks))
}

// AggregateSeq is like [Aggregate] for an input iterator.
func AggregateSeq(seq iter.Seq[Block]) ([]Block, error) {
	ivs, err := sortedIntervals(seq)
	if err != nil {
		return nil, err
	}

	var result []Block
	for run := range Coalesce(slices.Values(ivs)) {
		result = slices.AppendSeq(result, Split(run))
	}
	return result, nil
}

// AggregatePrefixes is like [Aggregate] for netip prefixes.
// All prefixes must be IPv4, otherwise the error wraps [ErrNotIPv4].
func AggregatePrefixes(pfxs []netip.Prefix) ([]netip.Prefix, error) {
	blocks := make([]Block, 0, len(pfxs))
	for _, pfx := range pfxs {
		b, err := BlockFrom(pfx)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", pfx, err)
		}
		blocks = append(blocks, b)
	}

	result, err := Aggregate(blocks)
	if err != nil {
		return nil, err
	}

	out := make([]netip.Prefix, 0, len(result))
	for _, b := range result {
		out = append(out, b.Prefix())
	}
	return out, nil
}

// IsAggregated reports whether blocks is already its own aggregation:
// every block masked, sorted, disjoint and no two blocks mergeable.
func IsAggregated(blocks []Block) bool {
	for _, b := range blocks {
		if !b.IsValid() || b.Masked() != b {
			return false
		}
	}

	result, err := Aggregate(blocks)
	if err != nil {
		return false
	}
	return slices.Equal(result, blocks)
}

// Coverage returns the number of distinct addresses covered by blocks.
// Errors are the same as for [Aggregate].
func Coverage(blocks []Block) (uint64, error) {
	ivs, err := sortedIntervals(slices.Values(blocks))
	if err != nil {
		return 0, err
	}

	var n uint64
	for run := range Coalesce(slices.Values(ivs)) {
		n += run.Len()
	}
	return n, nil
}

// sortedIntervals normalizes all blocks and sorts the intervals,
// the precondition for Coalesce.
func sortedIntervals(seq iter.Seq[Block]) ([]Interval, error) {
	var ivs []Interval
	for b := range seq {
		iv, err := b.Interval()
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}

	slices.SortFunc(ivs, cmpInterval)
	return ivs, nil
}
