// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"iter"
	"math/bits"
)

// Split returns an iterator over the minimal sequence of aligned
// CIDR blocks whose union is exactly iv, in ascending order.
//
// An invalid interval yields nothing.
func Split(iv Interval) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		if !iv.IsValid() {
			return
		}

		// uint64, start may reach 2^32 at the end of the loop
		start, end := uint64(iv.Start), iv.End

		for start < end {
			sizeBits := firstBlockBits(start, end)

			if !yield(Block{Addr: uint32(start), Bits: uint8(32 - sizeBits)}) {
				// early exit
				return
			}

			start += uint64(1) << sizeBits
		}
	}
}

// firstBlockBits returns the host bits of the biggest block starting at
// start that is aligned and doesn't overflow end.
//
//	start < end <= 2^32
func firstBlockBits(start, end uint64) int {
	// floor(log2(remaining)), remaining > 0
	maxSizeBits := bits.Len64(end-start) - 1

	// start == 0 is aligned on every size, TrailingZeros64(0) is 64
	alignBits := bits.TrailingZeros64(start)

	return min(maxSizeBits, alignBits, 32)
}
