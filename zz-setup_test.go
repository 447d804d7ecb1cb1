// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"fmt"
	"net/netip"
	"testing"
)

// this file contains helpers for other test functions

// workLoadN to adjust loops for tests with -short
func workLoadN() int {
	if testing.Short() {
		return 100
	}
	return 1_000
}

// abbreviation
var mpa = netip.MustParseAddr

// abbreviation and panic on non masked input
var mpp = func(s string) netip.Prefix {
	pfx := netip.MustParsePrefix(s)
	if pfx == pfx.Masked() {
		return pfx
	}
	panic(fmt.Sprintf("%s is not canonicalized as %s", s, pfx.Masked()))
}

// blocks parses the CIDRs, host bits allowed
func blocks(cidrs ...string) []Block {
	if len(cidrs) == 0 {
		return nil
	}
	result := make([]Block, 0, len(cidrs))
	for _, s := range cidrs {
		result = append(result, MustBlock(s))
	}
	return result
}

// blocksFrom converts the prefixes, panics on non IPv4
func blocksFrom(pfxs []netip.Prefix) []Block {
	result := make([]Block, 0, len(pfxs))
	for _, pfx := range pfxs {
		b, err := BlockFrom(pfx)
		if err != nil {
			panic(err)
		}
		result = append(result, b)
	}
	return result
}

// checkAggregated reports a violation of the result invariants:
// valid, masked, sorted, disjoint and no mergeable neighbors.
func checkAggregated(t *testing.T, result []Block) {
	t.Helper()

	for i, b := range result {
		if !b.IsValid() {
			t.Fatalf("block %d: invalid %v", i, b)
		}
		if b.Masked() != b {
			t.Fatalf("block %d: %v has host bits set", i, b)
		}
		if i == 0 {
			continue
		}

		prev := result[i-1]
		pi, _ := prev.Interval()
		ci, _ := b.Interval()

		if pi.End > uint64(ci.Start) {
			t.Fatalf("blocks %d, %d: %v and %v overlap or are unsorted", i-1, i, prev, b)
		}

		// siblings are mergeable into their supernet
		if prev.Bits == b.Bits && prev.Bits > 0 && pi.End == uint64(ci.Start) {
			super := Block{Addr: prev.Addr, Bits: prev.Bits - 1}
			if super.Masked() == super {
				t.Fatalf("blocks %d, %d: %v and %v are mergeable into %v", i-1, i, prev, b, super)
			}
		}
	}
}
