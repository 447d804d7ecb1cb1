// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrset

import (
	"net/netip"
	"slices"
	"testing"
)

var mpp = netip.MustParsePrefix

func TestNewPanics(t *testing.T) {
	tests := []netip.Prefix{
		{},
		mpp("::/64"),
		mpp("10.0.0.0/7"),
		mpp("0.0.0.0/0"),
	}

	for _, window := range tests {
		t.Run(window.String(), func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("New(%v) must panic", window)
				}
			}()
			New(window)
		})
	}
}

func TestWindowMasked(t *testing.T) {
	s := New(mpp("10.1.2.3/16"))
	if got, want := s.Window(), mpp("10.1.0.0/16"); got != want {
		t.Errorf("Window(), want %v, got %v", want, got)
	}
}

func TestAddContains(t *testing.T) {
	s := New(mpp("10.0.0.0/24"))

	if !s.Add(0x0a00_0005) {
		t.Error("Add inside window must succeed")
	}
	if s.Add(0x0a00_0100) {
		t.Error("Add outside window must fail")
	}
	if s.Add(0x09ff_ffff) {
		t.Error("Add below window must fail")
	}

	if !s.Contains(0x0a00_0005) {
		t.Error("Contains(10.0.0.5), want true")
	}
	if s.Contains(0x0a00_0006) {
		t.Error("Contains(10.0.0.6), want false")
	}
	if s.Contains(0x0a00_0100) {
		t.Error("Contains outside window, want false")
	}
	if got := s.Count(); got != 1 {
		t.Errorf("Count(), want 1, got %d", got)
	}
}

func TestAddPrefix(t *testing.T) {
	tests := []struct {
		pfx    netip.Prefix
		inside bool
		count  uint
	}{
		{mpp("10.0.0.0/32"), true, 1},
		{mpp("10.0.0.64/26"), true, 64},
		{mpp("10.0.0.1/24"), true, 256},
		{mpp("10.0.1.0/24"), true, 256},
		{mpp("10.0.0.0/15"), false, 65536},
		{mpp("0.0.0.0/0"), false, 65536},
		{mpp("11.0.0.0/8"), false, 0},
		{mpp("2001:db8::/32"), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pfx.String(), func(t *testing.T) {
			s := New(mpp("10.0.0.0/16"))
			if got := s.AddPrefix(tt.pfx); got != tt.inside {
				t.Errorf("AddPrefix(%v), want %v, got %v", tt.pfx, tt.inside, got)
			}
			if got := s.Count(); got != tt.count {
				t.Errorf("Count(), want %d, got %d", tt.count, got)
			}
		})
	}
}

func TestAddPrefixUnaligned(t *testing.T) {
	// exercise the bit path before and after the whole word path
	s := New(mpp("10.0.0.0/24"))
	s.AddPrefix(mpp("10.0.0.60/30"))
	s.AddPrefix(mpp("10.0.0.64/26"))
	s.AddPrefix(mpp("10.0.0.128/31"))

	if got := s.Count(); got != 4+64+2 {
		t.Errorf("Count(), want %d, got %d", 4+64+2, got)
	}

	runs := collectRuns(s)
	want := [][2]uint32{{0x0a00_003c, 0x0a00_0081}}
	if !slices.Equal(runs, want) {
		t.Errorf("Runs(), want %x, got %x", want, runs)
	}
}

func TestEqual(t *testing.T) {
	a := New(mpp("10.0.0.0/16"))
	b := New(mpp("10.0.0.0/16"))
	c := New(mpp("10.1.0.0/16"))

	if !a.Equal(b) {
		t.Error("empty sets with same window must be equal")
	}
	if a.Equal(c) {
		t.Error("sets with different windows must not be equal")
	}

	a.AddPrefix(mpp("10.0.0.0/23"))
	b.AddPrefix(mpp("10.0.0.0/24"))
	if a.Equal(b) {
		t.Error("sets with different addresses must not be equal")
	}

	b.AddPrefix(mpp("10.0.1.0/24"))
	if !a.Equal(b) {
		t.Error("sets with same addresses must be equal")
	}
}

func TestAll(t *testing.T) {
	s := New(mpp("192.168.0.0/24"))
	s.AddPrefix(mpp("192.168.0.254/31"))
	s.Add(0xc0a8_0000)
	s.Add(0xc0a8_0040)

	got := slices.Collect(s.All())
	want := []uint32{0xc0a8_0000, 0xc0a8_0040, 0xc0a8_00fe, 0xc0a8_00ff}
	if !slices.Equal(got, want) {
		t.Errorf("All(), want %x, got %x", want, got)
	}

	// early exit
	for range s.All() {
		break
	}
}

func TestRuns(t *testing.T) {
	s := New(mpp("10.0.0.0/16"))
	s.AddPrefix(mpp("10.0.0.0/24"))
	s.AddPrefix(mpp("10.0.1.0/24"))
	s.AddPrefix(mpp("10.0.3.0/25"))
	s.AddPrefix(mpp("10.0.255.255/32"))

	got := collectRuns(s)
	want := [][2]uint32{
		{0x0a00_0000, 0x0a00_01ff},
		{0x0a00_0300, 0x0a00_037f},
		{0x0a00_ffff, 0x0a00_ffff},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Runs(), want %x, got %x", want, got)
	}
}

func TestRunsSmallWindow(t *testing.T) {
	s := New(mpp("10.0.0.0/30"))
	s.Add(0x0a00_0000)
	s.Add(0x0a00_0003)

	got := collectRuns(s)
	want := [][2]uint32{{0x0a00_0000, 0x0a00_0000}, {0x0a00_0003, 0x0a00_0003}}
	if !slices.Equal(got, want) {
		t.Errorf("Runs(), want %x, got %x", want, got)
	}
}

func collectRuns(s Set) (runs [][2]uint32) {
	for first, last := range s.Runs() {
		runs = append(runs, [2]uint32{first, last})
	}
	return runs
}
