// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package aggip aggregates IPv4 prefixes into the unique minimal set of
// CIDR blocks covering exactly the same addresses.
//
// The pipeline has four stages:
//
//   - Normalize: a block (address, prefix length) becomes a half-open
//     interval [start, end), host bits are masked off
//   - sort:      intervals are ordered by start, then by end
//   - Coalesce:  overlapping and adjacent intervals are merged into
//     maximal disjoint runs
//   - Split:     every run is cut into the fewest aligned power-of-two
//     blocks
//
// [Aggregate] drives all stages and is the main entry point. [Coalesce] and
// [Split] are exported as lazy iterators for callers streaming large inputs.
//
// The result is deterministic and independent of the input order, duplicates
// and overlaps don't matter and aggregation is idempotent:
//
//	Aggregate(Aggregate(x)) == Aggregate(x)
//
// This makes it a building block for routing-table compaction, firewall-rule
// minimization and address-allocation reporting.
//
// Only IPv4 is supported. All functions are pure and safe for concurrent use.
package aggip
