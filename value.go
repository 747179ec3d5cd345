// Copyright 2021 Aleksandr Demakin. All rights reserved.

package ieee754

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/avdva/ieee754/internal/bitseq"
)

// Sign is the symbolic sign of a value.
type Sign int

const (
	// Plus is the sign of values with a zero sign bit.
	Plus Sign = iota
	// Minus is the sign of values with a set sign bit.
	Minus
)

// String returns "+" or "-".
func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Value is an immutable IEEE 754 binary floating-point value of a fixed
// width, decomposed into its sign, exponent, and mantissa fields and
// classified at construction. The zero Value is not usable; obtain values
// from one of the constructors. All mutating operations return new values.
//
// For a 64-bit value the bit layout is
//
//	63 62        52 51                                                  0
//	s  eeeeeeeeeee  mmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmm
//
// with bit indices counted from the most significant bit: index 0 is the
// sign, indices [1, 1+e) the stored exponent, the rest the mantissa.
type Value struct {
	format *Format
	seq    bitseq.Seq
	fl     float64
	cls    class
}

func newValue(f *Format, seq bitseq.Seq) Value {
	exponent := seq.Slice(1, 1+f.ExpBits)
	mantissa := seq.Slice(1+f.ExpBits, f.Width)
	return Value{
		format: f,
		seq:    seq,
		fl:     unpackFloat(f, seq.Uint64()),
		cls:    classify(f, exponent, mantissa),
	}
}

func packFloat(f *Format, v float64) uint64 {
	switch f.Width {
	case 16:
		return uint64(packFloat16(v))
	case 32:
		return uint64(math.Float32bits(float32(v)))
	default:
		return math.Float64bits(v)
	}
}

func unpackFloat(f *Format, pattern uint64) float64 {
	switch f.Width {
	case 16:
		return unpackFloat16(uint16(pattern))
	case 32:
		return float64(math.Float32frombits(uint32(pattern)))
	default:
		return math.Float64frombits(pattern)
	}
}

// FromFloat64 returns the value of v packed into the given width.
// It never fails: the width is snapped to the nearest supported one
// (w < 32 becomes 16, 32 <= w < 63 becomes 32, the rest becomes 64),
// and every float64 has a representation at every width, with overflows
// becoming infinities and narrowing done by rounding to nearest even.
func FromFloat64(v float64, width int) Value {
	f := formats[snapWidth(width)]
	return newValue(f, bitseq.FromUint64(packFloat(f, v), f.Width))
}

// FromDigitString parses digits as an integer numeral in the given base
// (one of 2, 10, 16), right-pads its minimal big-endian byte form with zero
// bytes up to width/8 bytes, and reinterprets the result as the bit pattern
// of a width-bit float. A negative numeral maps to its two's complement at
// the given width; forcePositive discards the sign before parsing (for base
// 2 it clears the leading bit, which is the sign bit of the pattern).
// Returns a ParseError if digits is not a valid numeral or does not fit.
func FromDigitString(digits string, width, base int, forcePositive bool) (Value, error) {
	f, err := FormatFor(width)
	if err != nil {
		return Value{}, err
	}
	switch base {
	case 2, 10, 16:
	default:
		return Value{}, xerrors.Errorf("base %d: %w", base, ErrBadBase)
	}
	if forcePositive {
		if base == 2 && len(digits) > 0 {
			digits = "0" + digits[1:]
		} else {
			digits = strings.TrimPrefix(digits, "-")
		}
	}
	x, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Value{}, &ParseError{Input: digits, Base: base, Err: errors.New("invalid numeral")}
	}
	if x.Sign() < 0 {
		x.Add(x, new(big.Int).Lsh(big.NewInt(1), uint(width)))
	}
	if x.Sign() < 0 || x.BitLen() > width {
		return Value{}, &ParseError{Input: digits, Base: base, Err: xerrors.Errorf("does not fit into %d bits", width)}
	}
	buf := make([]byte, width/8)
	copy(buf, x.Bytes())
	return newValue(f, bitseq.FromUint64(readPattern(f, buf, BigEndian), f.Width)), nil
}

// FromBytes reinterprets b as the bit pattern of a width-bit float, reading
// the bytes in the given order. Returns a LengthMismatchError if the buffer
// length is inconsistent with the width.
func FromBytes(b []byte, width int, order ByteOrder) (Value, error) {
	f, err := FormatFor(width)
	if err != nil {
		return Value{}, err
	}
	if len(b)*8 != width {
		return Value{}, &LengthMismatchError{Len: len(b), Width: width}
	}
	return newValue(f, bitseq.FromUint64(readPattern(f, b, order), f.Width)), nil
}

func readPattern(f *Format, b []byte, order ByteOrder) uint64 {
	bo := order.order()
	switch f.Width {
	case 16:
		return uint64(bo.Uint16(b))
	case 32:
		return uint64(bo.Uint32(b))
	default:
		return bo.Uint64(b)
	}
}

// FromFields reconstructs a value from its raw integer fields. The sign
// must be a single bit, and the stored exponent and mantissa must fit into
// the field widths of the format; each field is zero-extended to its fixed
// width. Exact inverse of Fields.
func FromFields(width int, sign, exponent, mantissa uint64) (Value, error) {
	f, err := FormatFor(width)
	if err != nil {
		return Value{}, err
	}
	if sign > 1 {
		return Value{}, xerrors.Errorf("sign %d: %w", sign, ErrBadSign)
	}
	if bits.Len64(exponent) > f.ExpBits {
		return Value{}, &OverflowError{Field: "exponent", Bits: f.ExpBits}
	}
	if bits.Len64(mantissa) > f.MantBits {
		return Value{}, &OverflowError{Field: "mantissa", Bits: f.MantBits}
	}
	pattern := sign<<uint(width-1) | exponent<<uint(f.MantBits) | mantissa
	return newValue(f, bitseq.FromUint64(pattern, width)), nil
}

// Fields returns the width and the raw integer fields of the value.
func (v Value) Fields() (width int, sign, exponent, mantissa uint64) {
	return v.format.Width, uint64(v.SignBit()), v.StoredExp(), v.StoredMantissa()
}

// Width returns the total number of bits, one of 16, 32, 64.
func (v Value) Width() int {
	return v.format.Width
}

// Bits returns the full packed bit pattern, the sign bit being
// the most significant.
func (v Value) Bits() uint64 {
	return v.seq.Uint64()
}

// SignBit returns the raw sign bit.
func (v Value) SignBit() uint {
	return v.seq.Bit(0)
}

// Sign returns the symbolic sign.
func (v Value) Sign() Sign {
	if v.SignBit() == 1 {
		return Minus
	}
	return Plus
}

// SignMinus reports whether the sign bit is set. Note that it is true
// for negative zero and negatively-signed NaNs as well.
func (v Value) SignMinus() bool {
	return v.SignBit() == 1
}

// Float64 returns the numeric value the bit pattern represents.
// The conversion from 16- and 32-bit patterns is exact, except that NaN
// payloads are not observable through the result.
func (v Value) Float64() float64 {
	return v.fl
}

// StoredExp returns the stored (biased) exponent field as an unsigned integer.
func (v Value) StoredExp() uint64 {
	return v.cls.storedExp
}

// StoredMantissa returns the mantissa field as an unsigned integer.
func (v Value) StoredMantissa() uint64 {
	return v.seq.Uint64() & v.format.mantMask()
}

// Exp returns the unbiased exponent, storedExp - bias + 1, such that the
// value equals Significand * 2^Exp for finite nonzero values. It is 0 for
// zeros, infinities, and NaNs by convention.
func (v Value) Exp() int {
	return v.cls.exp
}

// Bias returns the exponent bias of the format.
func (v Value) Bias() uint64 {
	return v.format.Bias()
}

// Emin returns the smallest Exp of a normal value of this format.
func (v Value) Emin() int {
	return 2 - int(v.format.Bias())
}

// Emax returns the largest Exp of a normal value of this format.
func (v Value) Emax() int {
	return int(v.format.Bias()) + 1
}

// Radix returns the floating-point base, which is always 2.
func (v Value) Radix() int {
	return 2
}

// IsZero reports whether the value is a zero of either sign.
func (v Value) IsZero() bool {
	return v.cls.zero
}

// IsSubnormal reports whether the value is finite, nonzero, and has
// an all-zero stored exponent.
func (v Value) IsSubnormal() bool {
	return v.cls.subnormal
}

// IsNormal reports whether the value is finite, nonzero, and not subnormal.
func (v Value) IsNormal() bool {
	return v.cls.normal
}

// IsInf reports whether the value is an infinity of either sign.
func (v Value) IsInf() bool {
	return v.cls.inf
}

// IsNaN reports whether the value is a NaN.
func (v Value) IsNaN() bool {
	return v.cls.nan
}

// IsSignaling reports whether the value is a signaling NaN,
// one with a zero leading mantissa bit.
func (v Value) IsSignaling() bool {
	return v.cls.signaling
}

// IsQuiet reports whether the value is a quiet NaN,
// one with a set leading mantissa bit.
func (v Value) IsQuiet() bool {
	return v.cls.quiet
}

// IsFinite reports whether the value is zero, subnormal, or normal.
func (v Value) IsFinite() bool {
	return v.cls.finite
}

// IsCanonical reports whether the value is canonical. A NaN counts as
// non-canonical when it is quiet and carries set payload bits beyond the
// quiet bit; this is a documented approximation of the standard's
// canonical-NaN notion, kept for compatibility.
func (v Value) IsCanonical() bool {
	return v.cls.canonical
}

// NaNPayload returns the mantissa payload below the quiet bit
// as an unsigned integer, and 0 for non-NaN values.
func (v Value) NaNPayload() uint64 {
	if !v.cls.nan {
		return 0
	}
	return v.StoredMantissa() & (v.format.mantMask() >> 1)
}

// Significand returns the significand as a float64: the mantissa with the
// implicit leading bit applied, in [0.5, 1) for normal values and [0, 0.5)
// for subnormals and zeros. It is +Inf for infinities and NaN for NaNs.
func (v Value) Significand() float64 {
	return v.cls.sigFloat
}

// SignificandDecimal returns the exact decimal significand.
// It is decimal zero for infinities and NaNs.
func (v Value) SignificandDecimal() decimal.Decimal {
	return v.cls.sig
}

// SignificandTerms returns the 1-indexed positions k of the set significand
// bits, so that the significand equals the sum of 2^-k over them.
// It is nil for infinities and NaNs.
func (v Value) SignificandTerms() []int {
	return append([]int(nil), v.cls.terms...)
}

// Bit returns the bit at position i, counted from the most significant bit.
// Returns ErrBitIndex if i is outside [0, width).
func (v Value) Bit(i int) (uint, error) {
	if i < 0 || i >= v.format.Width {
		return 0, xerrors.Errorf("bit %d of a %d-bit value: %w", i, v.format.Width, ErrBitIndex)
	}
	return v.seq.Bit(i), nil
}

// WithBit returns a value with the bit at position i set to bit.
// If the bit already has that value, the receiver itself is returned,
// otherwise the pattern is copied and reclassified.
func (v Value) WithBit(i int, bit uint) (Value, error) {
	if i < 0 || i >= v.format.Width {
		return Value{}, xerrors.Errorf("bit %d of a %d-bit value: %w", i, v.format.Width, ErrBitIndex)
	}
	if bit > 1 {
		return Value{}, xerrors.Errorf("bit value %d: %w", bit, ErrBadBit)
	}
	if v.seq.Bit(i) == bit {
		return v, nil
	}
	return newValue(v.format, v.seq.WithBit(i, bit)), nil
}

// WithBitFlipped returns a value with the bit at position i inverted.
func (v Value) WithBitFlipped(i int) (Value, error) {
	bit, err := v.Bit(i)
	if err != nil {
		return Value{}, err
	}
	return v.WithBit(i, bit^1)
}

// Abs returns the value with the sign bit cleared. The operation is
// bit-level: it applies to zeros and NaNs as well.
func (v Value) Abs() Value {
	return newValue(v.format, v.seq.WithBit(0, 0))
}

// Eq reports whether both values have the same width and bit pattern.
// Unlike numeric comparison, it distinguishes bit patterns:
// +0 and -0 are not Eq, two identical NaNs are.
func (v Value) Eq(other Value) bool {
	return v.format.Width == other.format.Width && v.seq.Uint64() == other.seq.Uint64()
}

// BitString returns the canonical sign_exponent_mantissa rendering,
// each group as a literal 0/1 string of its fixed width.
func (v Value) BitString() string {
	var b strings.Builder
	b.Grow(v.format.Width + 2)
	b.WriteString(v.seq.Slice(0, 1).String())
	b.WriteByte('_')
	b.WriteString(v.seq.Slice(1, 1+v.format.ExpBits).String())
	b.WriteByte('_')
	b.WriteString(v.seq.Slice(1+v.format.ExpBits, v.format.Width).String())
	return b.String()
}

// String returns the canonical bit string.
func (v Value) String() string {
	return v.BitString()
}

// GoString returns debug string representation.
func (v Value) GoString() string {
	return v.BitString() + fmt.Sprintf(" {w:%d, %v}", v.format.Width, v.fl)
}

// MarshalJSON marshals the value as its canonical bit string;
// the width is recoverable from the string length.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.BitString() + `"`), nil
}

// UnmarshalJSON parses a bit string produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return &ParseError{Input: string(data), Base: 2, Err: errors.New("not a json string")}
	}
	parsed, err := parseBitString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func parseBitString(s string) (Value, error) {
	fail := func(err error) (Value, error) {
		return Value{}, &ParseError{Input: s, Base: 2, Err: err}
	}
	parts := strings.Split(s, "_")
	if len(parts) != 3 || len(parts[0]) != 1 {
		return fail(errors.New("want sign_exponent_mantissa"))
	}
	width := len(parts[0]) + len(parts[1]) + len(parts[2])
	f, err := FormatFor(width)
	if err != nil {
		return fail(err)
	}
	if len(parts[1]) != f.ExpBits || len(parts[2]) != f.MantBits {
		return fail(errors.New("group lengths do not match the format"))
	}
	var fields [3]uint64
	for i, p := range parts {
		u, err := strconv.ParseUint(p, 2, 64)
		if err != nil {
			return fail(err)
		}
		fields[i] = u
	}
	return FromFields(width, fields[0], fields[1], fields[2])
}
