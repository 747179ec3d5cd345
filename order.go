// Copyright 2021 Aleksandr Demakin. All rights reserved.

package ieee754

// TotalOrder reports whether x precedes or equals y under the IEEE 754-2008
// totalOrder predicate. Unlike <=, it defines a strict total order over every
// bit pattern of a width: -NaN precedes everything, +NaN follows everything,
// -0 precedes +0, and same-signed NaNs are ordered by their mantissa field
// taken as an unsigned integer (ascending for positive sign, descending for
// negative), which places signaling NaNs before quiet ones on the positive
// side. Returns a WidthMismatchError if the operands have different widths.
func TotalOrder(x, y Value) (bool, error) {
	if x.Width() != y.Width() {
		return false, &WidthMismatchError{X: x.Width(), Y: y.Width()}
	}
	return totalOrder(x, y), nil
}

// TotalOrderMag compares the magnitudes of x and y: it is TotalOrder with
// the sign bits cleared.
func TotalOrderMag(x, y Value) (bool, error) {
	if x.Width() != y.Width() {
		return false, &WidthMismatchError{X: x.Width(), Y: y.Width()}
	}
	return totalOrder(x.Abs(), y.Abs()), nil
}

func totalOrder(x, y Value) bool {
	if x.IsNaN() || y.IsNaN() {
		return nanOrder(x, y)
	}
	// Numeric comparison resolves every non-NaN pair except
	// equal-valued distinct patterns.
	if x.fl < y.fl {
		return true
	}
	if x.fl > y.fl {
		return false
	}
	if x.IsZero() && y.IsZero() {
		// -0 precedes +0, equal-signed zeros are equal
		return !(x.SignBit() == 0 && y.SignBit() == 1)
	}
	// equal nonzero values or equal infinities: sign-and-exponent tie-break
	if x.SignMinus() && y.SignMinus() {
		return x.Exp() >= y.Exp()
	}
	return x.Exp() <= y.Exp()
}

func nanOrder(x, y Value) bool {
	switch {
	case !x.IsNaN(): // y is the NaN: x precedes it iff it sits on the positive side
		return y.SignBit() == 0
	case !y.IsNaN(): // x is the NaN: it precedes iff it sits on the negative side
		return x.SignBit() == 1
	case x.SignBit() != y.SignBit():
		return x.SignBit() == 1
	case x.SignBit() == 1:
		return x.StoredMantissa() >= y.StoredMantissa()
	default:
		return x.StoredMantissa() <= y.StoredMantissa()
	}
}
