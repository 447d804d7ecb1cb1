// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"errors"
	"net/netip"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		addr uint32
		bits int
		want Interval
	}{
		{0x0a00_0000, 24, Interval{0x0a00_0000, 0x0a00_0100}},
		{0x0a00_0101, 24, Interval{0x0a00_0100, 0x0a00_0200}}, // host bits
		{0x0a00_0101, 32, Interval{0x0a00_0101, 0x0a00_0102}},
		{0x0000_0000, 0, Interval{0, 1 << 32}},
		{0xffff_ffff, 0, Interval{0, 1 << 32}},
		{0xffff_ffff, 32, Interval{0xffff_ffff, 1 << 32}},
		{0xffff_ffff, 1, Interval{0x8000_0000, 1 << 32}},
		{0x7fff_ffff, 1, Interval{0, 0x8000_0000}},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.addr, tt.bits)
		if err != nil {
			t.Errorf("Normalize(%#x, %d), unexpected error: %v", tt.addr, tt.bits, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%#x, %d), want %v, got %v", tt.addr, tt.bits, tt.want, got)
		}
		if !got.IsValid() {
			t.Errorf("Normalize(%#x, %d), got invalid interval %v", tt.addr, tt.bits, got)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, bits := range []int{-1, 33, 64, 255} {
		_, err := Normalize(0, bits)
		if err == nil {
			t.Fatalf("Normalize(0, %d), expected error", bits)
		}

		if !errors.Is(err, ErrInvalidPrefixLength) {
			t.Errorf("Normalize(0, %d), error %v must match ErrInvalidPrefixLength", bits, err)
		}

		var plErr *InvalidPrefixLengthError
		if !errors.As(err, &plErr) || plErr.Bits != bits {
			t.Errorf("Normalize(0, %d), want InvalidPrefixLengthError{%d}, got %#v", bits, bits, err)
		}
	}

	err := &InvalidPrefixLengthError{Bits: 33}
	if got, want := err.Error(), "invalid prefix length: 33"; got != want {
		t.Errorf("Error(), want %q, got %q", want, got)
	}
}

func TestIntervalFrom(t *testing.T) {
	iv, err := IntervalFrom(mpa("10.0.0.0"), mpa("10.0.1.255"))
	if err != nil {
		t.Fatal(err)
	}
	if want := (Interval{0x0a00_0000, 0x0a00_0200}); iv != want {
		t.Errorf("IntervalFrom, want %v, got %v", want, iv)
	}

	iv, err = IntervalFrom(mpa("0.0.0.0"), mpa("255.255.255.255"))
	if err != nil {
		t.Fatal(err)
	}
	if iv.Len() != 1<<32 {
		t.Errorf("whole space Len(), want %d, got %d", uint64(1<<32), iv.Len())
	}

	if _, err = IntervalFrom(mpa("10.0.0.1"), mpa("10.0.0.0")); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("first > last, want ErrInvalidRange, got %v", err)
	}
	if _, err = IntervalFrom(mpa("::1"), mpa("10.0.0.0")); !errors.Is(err, ErrNotIPv4) {
		t.Errorf("IPv6, want ErrNotIPv4, got %v", err)
	}
	if _, err = IntervalFrom(netip.Addr{}, mpa("10.0.0.0")); !errors.Is(err, ErrNotIPv4) {
		t.Errorf("zero Addr, want ErrNotIPv4, got %v", err)
	}
}

func TestIntervalString(t *testing.T) {
	tests := []struct {
		iv   Interval
		want string
	}{
		{Interval{0x0a00_0000, 0x0a00_0200}, "10.0.0.0-10.0.1.255"},
		{Interval{0, 1 << 32}, "0.0.0.0-255.255.255.255"},
		{Interval{0xffff_ffff, 1 << 32}, "255.255.255.255-255.255.255.255"},
		{Interval{5, 5}, "invalid Interval"},
		{Interval{0, 1<<32 + 1}, "invalid Interval"},
	}

	for _, tt := range tests {
		if got := tt.iv.String(); got != tt.want {
			t.Errorf("String(), want %q, got %q", tt.want, got)
		}
	}
}

func TestIntervalLen(t *testing.T) {
	tests := []struct {
		iv   Interval
		want uint64
	}{
		{Interval{0x0a00_0000, 0x0a00_0200}, 512},
		{Interval{0, 1 << 32}, 1 << 32},
		{Interval{7, 8}, 1},
		{Interval{8, 7}, 0},
	}

	for _, tt := range tests {
		if got := tt.iv.Len(); got != tt.want {
			t.Errorf("%v.Len(), want %d, got %d", tt.iv, tt.want, got)
		}
	}

	if last := (Interval{8, 7}).Last(); last.IsValid() {
		t.Errorf("Last() of invalid interval, want zero Addr, got %v", last)
	}
}

func TestCmpInterval(t *testing.T) {
	a := Interval{10, 20}
	b := Interval{10, 30}
	c := Interval{11, 12}

	if cmpInterval(a, b) >= 0 || cmpInterval(b, a) <= 0 {
		t.Error("same start must be ordered by end")
	}
	if cmpInterval(b, c) >= 0 {
		t.Error("must be ordered by start first")
	}
	if cmpInterval(a, a) != 0 {
		t.Error("equal intervals must compare 0")
	}
}
