// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package random generates seeded random IPv4 addresses and prefixes
// for tests, fuzzing and benchmarks.
package random

import (
	"encoding/binary"
	"math/rand/v2"
	"net/netip"
)

// IP4 returns a random IPv4 address.
func IP4(prng *rand.Rand) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], prng.Uint32())
	return netip.AddrFrom4(b)
}

// Prefix4 returns a random masked IPv4 prefix, bits in 0..=32.
func Prefix4(prng *rand.Rand) netip.Prefix {
	bits := prng.IntN(33)
	pfx, err := IP4(prng).Prefix(bits)
	if err != nil {
		panic(err)
	}
	return pfx
}

// Unmasked4 returns a random IPv4 prefix, host bits are NOT cleared.
func Unmasked4(prng *rand.Rand) netip.Prefix {
	return netip.PrefixFrom(IP4(prng), prng.IntN(33))
}

// PrefixesIn returns n random IPv4 prefixes inside window, with prefix
// lengths between window.Bits() and 32. About every fourth prefix keeps
// random host bits. Duplicates are possible and intended.
func PrefixesIn(prng *rand.Rand, window netip.Prefix, n int) []netip.Prefix {
	window = window.Masked()
	a4 := window.Addr().As4()
	base := binary.BigEndian.Uint32(a4[:])
	hostBits := 32 - window.Bits()

	// skew towards long prefixes, the interesting merges happen there
	minBits := window.Bits() + hostBits/2

	pfxs := make([]netip.Prefix, 0, n)
	for range n {
		var offset uint32
		if hostBits > 0 {
			offset = prng.Uint32() & (uint32(1)<<hostBits - 1)
		}

		var b [4]byte
		binary.BigEndian.PutUint32(b[:], base|offset)

		bits := minBits + prng.IntN(33-minBits)
		pfx := netip.PrefixFrom(netip.AddrFrom4(b), bits)
		if prng.IntN(4) != 0 {
			pfx = pfx.Masked()
		}
		pfxs = append(pfxs, pfx)
	}
	return pfxs
}

// RealWorldPrefixes4 returns n unique masked prefixes with bits in 8..=28,
// outside of the reserved 240.0.0.0/8.
func RealWorldPrefixes4(prng *rand.Rand, n int) []netip.Prefix {
	reserved := netip.MustParsePrefix("240.0.0.0/8")
	seen := make(map[netip.Prefix]bool, n)

	pfxs := make([]netip.Prefix, 0, n)
	for len(pfxs) < n {
		bits := 8 + prng.IntN(21)
		pfx, err := IP4(prng).Prefix(bits)
		if err != nil {
			panic(err)
		}

		if pfx.Overlaps(reserved) || seen[pfx] {
			continue
		}
		seen[pfx] = true
		pfxs = append(pfxs, pfx)
	}
	return pfxs
}
