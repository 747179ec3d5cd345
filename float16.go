package ieee754

import (
	"math"
	"math/bits"
)

const (
	f16ExpMask  = 0x1f
	f16Shift    = 10
	f16Bias     = 15
	f16SignMask = 1 << 15
	f16FracMask = 1<<f16Shift - 1

	f64ExpMask  = 0x7ff
	f64Shift    = 52
	f64Bias     = 1023
	f64FracMask = 1<<f64Shift - 1
)

// packFloat16 converts a float64 into the IEEE 754 binary16 bit pattern,
// rounding to nearest even. Overflows become infinities, NaN payloads keep
// their most significant bits.
func packFloat16(f float64) uint16 {
	b := math.Float64bits(f)
	sign := uint16(b>>48) & f16SignMask
	exp := int(b>>f64Shift) & f64ExpMask
	frac := b & f64FracMask

	if exp == f64ExpMask { // Inf or NaN
		if frac == 0 {
			return sign | f16ExpMask<<f16Shift
		}
		nan := sign | f16ExpMask<<f16Shift | uint16(frac>>(f64Shift-f16Shift))
		if nan&f16FracMask == 0 {
			// payload truncated to nothing, keep it a quiet NaN
			nan |= 1 << (f16Shift - 1)
		}
		return nan
	}
	if exp == 0 && frac == 0 {
		return sign
	}

	e := exp - f64Bias + f16Bias
	if e >= f16ExpMask {
		return sign | f16ExpMask<<f16Shift // overflow
	}
	m := frac | 1<<f64Shift
	shift := uint(f64Shift - f16Shift)
	if e <= 0 { // subnormal half
		if e < -f16Shift {
			return sign // underflow
		}
		shift += uint(1 - e)
		e = 0
	}
	half := uint64(1) << (shift - 1)
	rem := m & (1<<shift - 1)
	m >>= shift
	if rem > half || rem == half && m&1 == 1 {
		m++
	}
	if e == 0 {
		// a carry out of the subnormal range lands exactly
		// on the smallest normal number
		return sign | uint16(m)
	}
	if m >= 1<<(f16Shift+1) {
		m >>= 1
		if e++; e >= f16ExpMask {
			return sign | f16ExpMask<<f16Shift
		}
	}
	return sign | uint16(e)<<f16Shift | uint16(m)&f16FracMask
}

// unpackFloat16 converts a binary16 bit pattern into the float64 it
// represents. The conversion is exact for every pattern; NaN payloads are
// shifted into the high mantissa bits, preserving the signaling bit position.
func unpackFloat16(h uint16) float64 {
	sign := uint64(h&f16SignMask) << 48
	exp := uint64(h>>f16Shift) & f16ExpMask
	frac := uint64(h & f16FracMask)

	switch {
	case exp == 0:
		l := bits.Len64(frac)
		if l == 0 { // zero
			return math.Float64frombits(sign)
		}
		// renormalize the subnormal
		frac = frac << uint(f16Shift-l+1) & f16FracMask
		exp = f64Bias - (f16Bias + f16Shift - 1) + uint64(l) - 1
	case exp == f16ExpMask: // Inf or NaN
		exp = f64ExpMask
	default:
		exp += f64Bias - f16Bias
	}
	return math.Float64frombits(sign | exp<<f64Shift | frac<<(f64Shift-f16Shift))
}
