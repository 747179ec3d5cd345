// Copyright 2021 Aleksandr Demakin. All rights reserved.

// Package ieee754 decomposes binary floating-point values of 16, 32, and
// 64 bits into their IEEE 754 fields, classifies them per the IEEE 754-2008
// taxonomy, reconstructs values from raw integer fields, and implements the
// standard's totalOrder predicate, which defines a strict total order over
// all bit patterns of a width, including distinct NaN payloads and signed
// zeros.
package ieee754

import (
	"encoding/binary"

	"golang.org/x/xerrors"
)

// Format describes the field layout of one of the supported widths.
type Format struct {
	// Width is the total number of bits, one of 16, 32, 64.
	Width int
	// ExpBits is the number of stored exponent bits.
	ExpBits int
	// MantBits is the number of stored mantissa bits.
	MantBits int
}

var formats = map[int]*Format{
	16: {Width: 16, ExpBits: 5, MantBits: 10},
	32: {Width: 32, ExpBits: 8, MantBits: 23},
	64: {Width: 64, ExpBits: 11, MantBits: 52},
}

// FormatFor returns the format descriptor for a width.
// Returns ErrBadWidth if the width is not 16, 32, or 64.
func FormatFor(width int) (*Format, error) {
	f, ok := formats[width]
	if !ok {
		return nil, xerrors.Errorf("width %d: %w", width, ErrBadWidth)
	}
	return f, nil
}

// Bias is the constant subtracted from the stored exponent
// to obtain the unbiased exponent, 2^(ExpBits-1) - 1.
func (f *Format) Bias() uint64 {
	return 1<<uint(f.ExpBits-1) - 1
}

func (f *Format) expMask() uint64 {
	return 1<<uint(f.ExpBits) - 1
}

func (f *Format) mantMask() uint64 {
	return 1<<uint(f.MantBits) - 1
}

// snapWidth reproduces the legacy width rule: any requested width below 32
// becomes 16, anything in [32, 63) becomes 32, the rest becomes 64.
// The 63 boundary is intentional, see DESIGN.md.
func snapWidth(width int) int {
	switch {
	case width < 32:
		return 16
	case width < 63:
		return 32
	default:
		return 64
	}
}

// ByteOrder selects the byte-level layout used by FromBytes.
type ByteOrder int

const (
	// BigEndian stores the most significant byte first.
	BigEndian ByteOrder = iota
	// LittleEndian stores the least significant byte first.
	LittleEndian
	// Network is an alias for BigEndian.
	Network
	// Native is the byte order of the host.
	Native
	// NativeAligned behaves like Native; there is no alignment
	// to speak of for a lone 2/4/8-byte buffer.
	NativeAligned
)

func (o ByteOrder) order() binary.ByteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case Native, NativeAligned:
		return binary.NativeEndian
	default:
		return binary.BigEndian
	}
}

// String returns the name of the byte order.
func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	case Network:
		return "network"
	case Native:
		return "native"
	case NativeAligned:
		return "native-aligned"
	default:
		return "unknown"
	}
}
