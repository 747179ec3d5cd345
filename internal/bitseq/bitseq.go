// Package bitseq implements fixed-length bit sequences of up to 64 bits,
// backed by a single uint64. Index 0 addresses the most significant bit.
// Sequences are immutable values, any modification returns a copy.
package bitseq

import (
	"math/bits"
	"strings"
)

// Seq is an immutable, MSB-first sequence of 0 to 64 bits.
type Seq struct {
	bits uint64
	size int
}

func mask(size int) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(size) - 1
}

// New returns an all-zero sequence of the given size.
func New(size int) Seq {
	checkSize(size)
	return Seq{size: size}
}

// FromUint64 returns a sequence of the given size holding the low
// 'size' bits of v, most significant bit first.
func FromUint64(v uint64, size int) Seq {
	checkSize(size)
	return Seq{bits: v & mask(size), size: size}
}

func checkSize(size int) {
	if size < 0 || size > 64 {
		panic("bitseq: size out of range")
	}
}

// Len returns the number of bits in the sequence.
func (s Seq) Len() int {
	return s.size
}

// Uint64 returns the sequence as an unsigned integer,
// the first bit being the most significant.
func (s Seq) Uint64() uint64 {
	return s.bits
}

// Bit returns the bit at position i. It panics if i is out of range.
func (s Seq) Bit(i int) uint {
	if i < 0 || i >= s.size {
		panic("bitseq: index out of range")
	}
	return uint(s.bits>>uint(s.size-1-i)) & 1
}

// WithBit returns a copy of the sequence with the bit at position i
// set to b. It panics if i is out of range.
func (s Seq) WithBit(i int, b uint) Seq {
	if i < 0 || i >= s.size {
		panic("bitseq: index out of range")
	}
	pos := uint(s.size - 1 - i)
	if b&1 == 1 {
		s.bits |= 1 << pos
	} else {
		s.bits &^= 1 << pos
	}
	return s
}

// Any reports whether at least one bit is set.
func (s Seq) Any() bool {
	return s.bits != 0
}

// All reports whether every bit is set.
// An empty sequence reports true.
func (s Seq) All() bool {
	return s.bits == mask(s.size)
}

// OnesCount returns the number of set bits.
func (s Seq) OnesCount() int {
	return bits.OnesCount64(s.bits)
}

// Slice returns the subsequence [from, to). It panics on invalid bounds.
func (s Seq) Slice(from, to int) Seq {
	if from < 0 || to > s.size || from > to {
		panic("bitseq: slice bounds out of range")
	}
	size := to - from
	return Seq{bits: s.bits >> uint(s.size-to) & mask(size), size: size}
}

// Concat returns the concatenation of s and o.
// It panics if the combined length exceeds 64 bits.
func (s Seq) Concat(o Seq) Seq {
	size := s.size + o.size
	checkSize(size)
	return Seq{bits: s.bits<<uint(o.size) | o.bits, size: size}
}

// String renders the sequence as a literal string of '0' and '1' runes.
func (s Seq) String() string {
	var b strings.Builder
	b.Grow(s.size)
	for i := 0; i < s.size; i++ {
		if s.Bit(i) == 1 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
