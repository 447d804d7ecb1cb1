// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"cmp"
	"net/netip"
)

// maxEnd is the exclusive end of the IPv4 address space, 2^32.
// It doesn't fit into an address, that's why Interval.End is an uint64.
const maxEnd = uint64(1) << 32

// Interval is a half-open range [Start, End) of IPv4 addresses.
//
// End is exclusive and may be 2^32 for intervals reaching 255.255.255.255.
// A valid interval has End > Start.
type Interval struct {
	Start uint32
	End   uint64
}

// Normalize maps the block (addr, bits) to its address interval.
// Host bits in addr outside the prefix mask are ignored.
//
// Normalize returns an [*InvalidPrefixLengthError] if bits is not in 0..=32.
func Normalize(addr uint32, bits int) (Interval, error) {
	if bits < 0 || bits > 32 {
		return Interval{}, &InvalidPrefixLengthError{Bits: bits}
	}

	// blockSize is 2^32 for bits == 0, hence uint64
	blockSize := uint64(1) << (32 - bits)
	start := uint64(addr) &^ (blockSize - 1)

	return Interval{Start: uint32(start), End: start + blockSize}, nil
}

// IntervalFrom returns the interval with the inclusive bounds first and last.
// Both must be IPv4 addresses and first must not be greater than last.
func IntervalFrom(first, last netip.Addr) (Interval, error) {
	if !first.Is4() || !last.Is4() {
		return Interval{}, ErrNotIPv4
	}

	start, stop := addrToUint32(first), addrToUint32(last)
	if start > stop {
		return Interval{}, ErrInvalidRange
	}

	return Interval{Start: start, End: uint64(stop) + 1}, nil
}

// IsValid reports whether iv is a non-empty interval inside the IPv4 space.
func (iv Interval) IsValid() bool {
	return iv.End > uint64(iv.Start) && iv.End <= maxEnd
}

// Len returns the number of addresses in iv.
func (iv Interval) Len() uint64 {
	if !iv.IsValid() {
		return 0
	}
	return iv.End - uint64(iv.Start)
}

// First returns the first address of iv.
func (iv Interval) First() netip.Addr {
	return uint32ToAddr(iv.Start)
}

// Last returns the last, inclusive, address of iv.
// The result is the zero Addr for an invalid interval.
func (iv Interval) Last() netip.Addr {
	if !iv.IsValid() {
		return netip.Addr{}
	}
	return uint32ToAddr(uint32(iv.End - 1))
}

// String returns iv in inclusive range notation "first-last".
func (iv Interval) String() string {
	if !iv.IsValid() {
		return "invalid Interval"
	}
	return iv.First().String() + "-" + iv.Last().String()
}

// cmpInterval orders by start and then by end, both ascending.
func cmpInterval(a, b Interval) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}
