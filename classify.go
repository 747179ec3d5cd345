// Copyright 2021 Aleksandr Demakin. All rights reserved.

package ieee754

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/avdva/ieee754/internal/bitseq"
)

// class holds everything derived from the raw bit groups.
// It is computed once at construction and never mutated.
type class struct {
	zero      bool
	subnormal bool
	normal    bool
	inf       bool
	nan       bool
	signaling bool
	quiet     bool
	finite    bool
	canonical bool

	storedExp uint64
	exp       int

	// significand of the value with the implicit leading bit applied,
	// in [0.5, 1) for normals, [0, 0.5) for subnormals and zero.
	sig      decimal.Decimal
	sigFloat float64
	terms    []int
}

var five = big.NewInt(5)

// classify derives the category flags and the numeric interpretation of a
// bit pattern partitioned into sign, exponent, and mantissa groups.
// It is total: every partition classifies into exactly one of
// zero/subnormal/normal/infinite/NaN.
func classify(f *Format, exponent, mantissa bitseq.Seq) class {
	var c class

	expZero := !exponent.Any()
	expOnes := exponent.All()
	mantZero := !mantissa.Any()

	c.zero = expZero && mantZero
	c.subnormal = expZero && !mantZero
	c.inf = expOnes && mantZero
	c.nan = expOnes && !mantZero
	c.signaling = c.nan && mantissa.Bit(0) == 0
	c.quiet = c.nan && mantissa.Bit(0) == 1
	c.normal = !c.zero && !c.subnormal && !c.inf && !c.nan
	c.finite = c.zero || c.subnormal || c.normal
	c.canonical = !c.nan || c.signaling || !mantissa.Slice(1, mantissa.Len()).Any()

	c.storedExp = exponent.Uint64()
	if c.finite && !c.zero {
		c.exp = int(c.storedExp) - int(f.Bias()) + 1
	}

	switch {
	case c.inf:
		c.sigFloat = math.Inf(1)
	case c.nan:
		c.sigFloat = math.NaN()
	default:
		sig := mantissa
		if c.normal {
			sig = bitseq.FromUint64(1, 1).Concat(mantissa)
		}
		c.sig, c.terms = sigDecimal(sig)
		c.sigFloat, _ = c.sig.Float64()
	}
	return c
}

// sigDecimal computes Σ 2^-k over the set bit positions k of sig,
// 1-indexed from the leading bit, as an exact decimal:
// for an n-bit sequence with integer value v, Σ 2^-k = v*5^n * 10^-n.
// It also returns the contributing positions.
func sigDecimal(sig bitseq.Seq) (decimal.Decimal, []int) {
	var terms []int
	for i := 0; i < sig.Len(); i++ {
		if sig.Bit(i) == 1 {
			terms = append(terms, i+1)
		}
	}
	n := sig.Len()
	num := new(big.Int).SetUint64(sig.Uint64())
	num.Mul(num, new(big.Int).Exp(five, big.NewInt(int64(n)), nil))
	return decimal.NewFromBigInt(num, -int32(n)), terms
}
