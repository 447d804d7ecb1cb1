// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package cidrtext converts IPv4 CIDR text to and from aggip blocks.
//
// Accepted forms are "A.B.C.D/N", with or without host bits, and a bare
// "A.B.C.D" meaning a /32. Ranges are written "A.B.C.D-E.F.G.H".
package cidrtext

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gaissmai/aggip"
)

// ParseBlock parses a CIDR or a bare IPv4 address.
//
// A prefix length outside 0..=32 returns an error matching
// aggip.ErrInvalidPrefixLength, IPv6 text returns aggip.ErrNotIPv4.
func ParseBlock(s string) (aggip.Block, error) {
	addrText, bitsText, hasBits := strings.Cut(s, "/")

	addr, err := netip.ParseAddr(addrText)
	if err != nil {
		return aggip.Block{}, errors.Wrapf(err, "parse %q", s)
	}
	if !addr.Is4() {
		return aggip.Block{}, errors.Wrapf(aggip.ErrNotIPv4, "parse %q", s)
	}

	bits := 32
	if hasBits {
		bits, err = strconv.Atoi(bitsText)
		if err != nil {
			return aggip.Block{}, errors.Wrapf(err, "parse %q: prefix length", s)
		}

		// no sign and no leading zeros, as netip.ParsePrefix
		if strconv.Itoa(bits) != bitsText {
			return aggip.Block{}, errors.Errorf("parse %q: prefix length %q not in canonical form", s, bitsText)
		}
	}

	if bits < 0 || bits > 32 {
		return aggip.Block{}, errors.Wrapf(&aggip.InvalidPrefixLengthError{Bits: bits}, "parse %q", s)
	}

	return aggip.BlockFrom(netip.PrefixFrom(addr, bits))
}

// ParseRange parses an inclusive address range "first-last".
func ParseRange(s string) (aggip.Interval, error) {
	firstText, lastText, ok := strings.Cut(s, "-")
	if !ok {
		return aggip.Interval{}, errors.Errorf("parse %q: missing '-' in range", s)
	}
	return ParseRangeBounds(firstText, lastText)
}

// ParseRangeBounds parses the inclusive range bounds given as two strings.
func ParseRangeBounds(firstText, lastText string) (aggip.Interval, error) {
	first, err := netip.ParseAddr(strings.TrimSpace(firstText))
	if err != nil {
		return aggip.Interval{}, errors.Wrap(err, "parse range start")
	}

	last, err := netip.ParseAddr(strings.TrimSpace(lastText))
	if err != nil {
		return aggip.Interval{}, errors.Wrap(err, "parse range end")
	}

	iv, err := aggip.IntervalFrom(first, last)
	if err != nil {
		return aggip.Interval{}, errors.Wrapf(err, "range %s-%s", first, last)
	}
	return iv, nil
}

// Format returns the masked CIDR text of b,
// with the inclusive address range appended if withRange is set.
func Format(b aggip.Block, withRange bool) string {
	if !withRange {
		return b.String()
	}
	first, last := b.Range()
	return b.String() + " " + first.String() + "-" + last.String()
}
