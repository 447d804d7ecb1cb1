// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import "iter"

// Coalesce returns an iterator over the maximal disjoint intervals
// covering the input intervals, in ascending order.
//
// The input MUST be sorted by Start, Coalesce doesn't sort.
// Overlapping and touching intervals are merged, e.g.
// [10,20) and [20,30) become [10,30).
//
// The scan is lazy and single pass, only the running interval is held.
func Coalesce(seq iter.Seq[Interval]) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		var cur Interval
		seeded := false

		for iv := range seq {
			if !seeded {
				cur, seeded = iv, true
				continue
			}

			// end is exclusive, equality means adjacent
			if cur.End >= uint64(iv.Start) {
				cur.End = max(cur.End, iv.End)
				cur.Start = min(cur.Start, iv.Start)
				continue
			}

			if !yield(cur) {
				// early exit
				return
			}
			cur = iv
		}

		if seeded {
			yield(cur)
		}
	}
}
