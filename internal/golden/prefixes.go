// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden provides a simple and slow prefix aggregation,
// implemented as repeated passes over a sorted slice of prefixes,
// as golden reference for aggip.
//
// It shares no code with aggip: prefixes are merged as netip values,
// a covered prefix is dropped and two sibling prefixes are replaced by
// their supernet, until a pass changes nothing.
package golden

import (
	"cmp"
	"fmt"
	"net/netip"
	"slices"
	"strings"
)

// Prefixes is a list of IPv4 prefixes.
type Prefixes []netip.Prefix

func (p Prefixes) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, pfx := range p {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pfx.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Insert appends the masked pfx, duplicates are allowed.
func (p *Prefixes) Insert(pfx netip.Prefix) {
	if !pfx.IsValid() || !pfx.Addr().Is4() {
		panic(fmt.Sprintf("golden: not an IPv4 prefix: %v", pfx))
	}
	*p = append(*p, pfx.Masked())
}

// Sorted returns a sorted copy.
func (p Prefixes) Sorted() Prefixes {
	result := slices.Clone(p)
	slices.SortFunc(result, CmpPrefix)
	return result
}

// Aggregate returns the minimal prefix list covering the same addresses.
func (p Prefixes) Aggregate() Prefixes {
	work := p.Sorted()

	for {
		next, changed := mergePass(work)
		if !changed {
			return next
		}
		work = next
	}
}

// mergePass is one forward scan over the sorted prefixes.
func mergePass(in Prefixes) (out Prefixes, changed bool) {
	for _, pfx := range in {
		if len(out) == 0 {
			out = append(out, pfx)
			continue
		}
		last := out[len(out)-1]

		// sorted by addr and bits, an overlap means last covers pfx
		if last.Overlaps(pfx) {
			changed = true
			continue
		}

		if isSibling(last, pfx) {
			out[len(out)-1] = netip.PrefixFrom(last.Addr(), last.Bits()-1).Masked()
			changed = true
			continue
		}

		out = append(out, pfx)
	}
	return out, changed
}

// isSibling reports whether a and b are the two halves of the same supernet.
func isSibling(a, b netip.Prefix) bool {
	if a == b || a.Bits() != b.Bits() || a.Bits() == 0 {
		return false
	}
	sa := netip.PrefixFrom(a.Addr(), a.Bits()-1).Masked()
	sb := netip.PrefixFrom(b.Addr(), b.Bits()-1).Masked()
	return sa == sb
}

// Covers reports whether addr is covered by any prefix, linear scan.
func (p Prefixes) Covers(addr netip.Addr) bool {
	for _, pfx := range p {
		if pfx.Contains(addr) {
			return true
		}
	}
	return false
}

// CmpPrefix, helper function, compare func for prefix sort,
// all cidrs are already normalized
func CmpPrefix(a, b netip.Prefix) int {
	if cmpAddr := a.Addr().Compare(b.Addr()); cmpAddr != 0 {
		return cmpAddr
	}

	return cmp.Compare(a.Bits(), b.Bits())
}
