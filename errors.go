// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package aggip

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidPrefixLength is matched by every [InvalidPrefixLengthError].
	ErrInvalidPrefixLength = errors.New("invalid prefix length")

	// ErrNotIPv4 is returned by the netip conversion helpers for
	// invalid or non IPv4 prefixes and addresses.
	ErrNotIPv4 = errors.New("not an IPv4 prefix")

	// ErrInvalidRange is returned by IntervalFrom if first > last.
	ErrInvalidRange = errors.New("first address greater than last address")
)

// InvalidPrefixLengthError reports a prefix length outside 0..=32.
type InvalidPrefixLengthError struct {
	Bits int
}

func (e *InvalidPrefixLengthError) Error() string {
	return ErrInvalidPrefixLength.Error() + ": " + strconv.Itoa(e.Bits)
}

// Is makes errors.Is(err, ErrInvalidPrefixLength) true.
func (e *InvalidPrefixLengthError) Is(target error) bool {
	return target == ErrInvalidPrefixLength
}
