// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"encoding/binary"
	"net/netip"
)

// Block is an IPv4 CIDR block, a base address plus a prefix length.
//
// A Block is canonical if Addr has all host bits cleared, see [Block.Masked].
// Non-canonical blocks are accepted everywhere and masked on the way in.
type Block struct {
	Addr uint32
	Bits uint8
}

// BlockFrom converts an IPv4 prefix, host bits are preserved.
// Invalid prefixes and IPv6 prefixes, 4in6 included, return [ErrNotIPv4].
func BlockFrom(pfx netip.Prefix) (Block, error) {
	if !pfx.IsValid() || !pfx.Addr().Is4() {
		return Block{}, ErrNotIPv4
	}
	return Block{Addr: addrToUint32(pfx.Addr()), Bits: uint8(pfx.Bits())}, nil
}

// MustBlock is like [BlockFrom] but panics on error.
// It is intended for tests and package level variables.
func MustBlock(s string) Block {
	b, err := BlockFrom(netip.MustParsePrefix(s))
	if err != nil {
		panic(err)
	}
	return b
}

// IsValid reports whether the prefix length is in 0..=32.
func (b Block) IsValid() bool {
	return b.Bits <= 32
}

// Masked returns b with the host bits cleared.
// An invalid block is returned unchanged.
func (b Block) Masked() Block {
	iv, err := b.Interval()
	if err != nil {
		return b
	}
	return Block{Addr: iv.Start, Bits: b.Bits}
}

// Interval returns the address interval covered by b, see [Normalize].
func (b Block) Interval() (Interval, error) {
	return Normalize(b.Addr, int(b.Bits))
}

// Size returns the number of addresses in b, 0 for an invalid block.
func (b Block) Size() uint64 {
	if !b.IsValid() {
		return 0
	}
	return uint64(1) << (32 - b.Bits)
}

// Range returns the first and last address covered by b.
// For an invalid block both are the zero Addr.
func (b Block) Range() (first, last netip.Addr) {
	iv, err := b.Interval()
	if err != nil {
		return
	}
	return iv.First(), iv.Last()
}

// Prefix returns b as masked netip.Prefix.
// For an invalid block the zero Prefix is returned.
func (b Block) Prefix() netip.Prefix {
	if !b.IsValid() {
		return netip.Prefix{}
	}
	return netip.PrefixFrom(uint32ToAddr(b.Masked().Addr), int(b.Bits))
}

// String returns the CIDR notation of the masked block,
// or "invalid Prefix" if b is invalid.
func (b Block) String() string {
	return b.Prefix().String()
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// The output is the masked CIDR notation.
func (b Block) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, &InvalidPrefixLengthError{Bits: int(b.Bits)}
	}
	return b.Prefix().AppendTo(nil), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// Host bits in the text are preserved, as with [BlockFrom].
func (b *Block) UnmarshalText(text []byte) error {
	pfx, err := netip.ParsePrefix(string(text))
	if err != nil {
		return err
	}

	blk, err := BlockFrom(pfx)
	if err != nil {
		return err
	}

	*b = blk
	return nil
}

func addrToUint32(a netip.Addr) uint32 {
	a4 := a.As4()
	return binary.BigEndian.Uint32(a4[:])
}

func uint32ToAddr(u uint32) netip.Addr {
	var a4 [4]byte
	binary.BigEndian.PutUint32(a4[:], u)
	return netip.AddrFrom4(a4)
}
