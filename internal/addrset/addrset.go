/*
Copyright 2014 Will Fitzgerald. All rights reserved.
Use of this source code is governed by a BSD-style
license that can be found in the LICENSE file.
*/

// Package addrset implements a bitmap of the IPv4 addresses inside a
// fixed window prefix, one bit per address.
//
// It is the brute force coverage oracle for the aggregation tests:
// two prefix lists cover the same addresses inside the window iff
// their sets are equal.
//
// The word handling is a stripped down version of:
//
//	github.com/bits-and-blooms/bitset
//
// All bugs belong to me.
package addrset

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math/bits"
	"net/netip"
)

// the wordSize of a bit set
const wordSize = uint(64)

// log2WordSize is lg(wordSize)
const log2WordSize = uint(6)

// MinWindowBits limits the memory of a Set to 2^24 bits, 2MiB.
const MinWindowBits = 8

// A Set is a set of IPv4 addresses inside the window.
type Set struct {
	window netip.Prefix
	base   uint32
	size   uint
	set    []uint64
}

// New creates an empty Set for the masked window.
// It panics if window is not IPv4 or shorter than MinWindowBits.
func New(window netip.Prefix) Set {
	if !window.IsValid() || !window.Addr().Is4() || window.Bits() < MinWindowBits {
		panic(fmt.Sprintf("addrset: invalid window %v", window))
	}
	window = window.Masked()
	size := uint(1) << (32 - window.Bits())

	return Set{
		window: window,
		base:   toUint32(window.Addr()),
		size:   size,
		set:    make([]uint64, wordsNeeded(size)),
	}
}

// Window returns the masked window prefix.
func (s Set) Window() netip.Prefix {
	return s.window
}

// wordsNeeded calculates the number of words needed for i bits.
func wordsNeeded(i uint) int {
	return int((i + (wordSize - 1)) >> log2WordSize)
}

// wordsIndex calculates the index of words in a `uint64`
func wordsIndex(i uint) uint {
	return i & (wordSize - 1)
}

// index maps addr to its bit, ok is false outside the window.
func (s Set) index(addr uint32) (uint, bool) {
	if addr < s.base || uint(addr-s.base) >= s.size {
		return 0, false
	}
	return uint(addr - s.base), true
}

// Add inserts addr, it reports false if addr is outside the window.
func (s *Set) Add(addr uint32) bool {
	i, ok := s.index(addr)
	if !ok {
		return false
	}
	s.set[i>>log2WordSize] |= 1 << wordsIndex(i)
	return true
}

// AddPrefix inserts all addresses of pfx inside the window and
// reports whether pfx was completely inside the window.
func (s *Set) AddPrefix(pfx netip.Prefix) bool {
	if !pfx.IsValid() || !pfx.Addr().Is4() {
		return false
	}
	pfx = pfx.Masked()

	first := uint64(toUint32(pfx.Addr()))
	last := first + (uint64(1) << (32 - pfx.Bits())) - 1

	lo := max(first, uint64(s.base))
	hi := min(last, uint64(s.base)+uint64(s.size)-1)

	for a := lo; a <= hi; a++ {
		i := uint(a - uint64(s.base))

		// fast path, whole word
		if wordsIndex(i) == 0 && hi-a >= uint64(wordSize)-1 {
			s.set[i>>log2WordSize] = ^uint64(0)
			a += uint64(wordSize) - 1
			continue
		}
		s.set[i>>log2WordSize] |= 1 << wordsIndex(i)
	}

	return lo == first && hi == last
}

// Contains reports whether addr is in the set.
func (s Set) Contains(addr uint32) bool {
	i, ok := s.index(addr)
	if !ok {
		return false
	}
	return s.set[i>>log2WordSize]&(1<<wordsIndex(i)) != 0
}

// Count (number of set addresses).
func (s Set) Count() uint {
	var cnt int
	for _, x := range s.set {
		cnt += bits.OnesCount64(x)
	}
	return uint(cnt)
}

// Equal reports whether s and o have the same window and addresses.
func (s Set) Equal(o Set) bool {
	if s.window != o.window {
		return false
	}
	for i := range s.set {
		if s.set[i] != o.set[i] {
			return false
		}
	}
	return true
}

// nextSet returns the next bit set from the specified index,
// including possibly the current index.
func (s Set) nextSet(i uint) (uint, bool) {
	x := int(i >> log2WordSize)
	if x >= len(s.set) {
		return 0, false
	}
	w := s.set[x] >> wordsIndex(i)
	if w != 0 {
		return i + uint(bits.TrailingZeros64(w)), true
	}
	x++
	for x < len(s.set) {
		if s.set[x] != 0 {
			return uint(x)*wordSize + uint(bits.TrailingZeros64(s.set[x])), true
		}
		x++
	}
	return 0, false
}

// All iterates over all addresses in ascending order.
func (s Set) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for idx, word := range s.set {
			for word != 0 {
				u := uint(idx)<<log2WordSize + uint(bits.TrailingZeros64(word))

				if !yield(s.base + uint32(u)) {
					return
				}

				// clear the rightmost set bit
				word &= word - 1
			}
		}
	}
}

// Runs iterates over the maximal runs of consecutive addresses,
// as inclusive first and last address, in ascending order.
func (s Set) Runs() iter.Seq2[uint32, uint32] {
	return func(yield func(uint32, uint32) bool) {
		i, ok := s.nextSet(0)
		for ok {
			j := i
			for j+1 < s.size && s.set[(j+1)>>log2WordSize]&(1<<wordsIndex(j+1)) != 0 {
				j++
			}

			if !yield(s.base+uint32(i), s.base+uint32(j)) {
				return
			}
			i, ok = s.nextSet(j + 1)
		}
	}
}

func toUint32(a netip.Addr) uint32 {
	a4 := a.As4()
	return binary.BigEndian.Uint32(a4[:])
}
