package ieee754

import (
	"errors"
	"fmt"
)

var (
	// ErrBadWidth is returned when a width is not one of 16, 32, 64.
	ErrBadWidth = errors.New("width must be 16, 32, or 64")
	// ErrBadSign is returned by FromFields when the sign field
	// is wider than a single bit.
	ErrBadSign = errors.New("sign must be a single bit")
	// ErrBadBit is returned when a bit value is not 0 or 1.
	ErrBadBit = errors.New("bit must be 0 or 1")
	// ErrBitIndex is returned when a bit index is outside [0, width).
	ErrBitIndex = errors.New("bit index out of range")
	// ErrBadBase is returned by FromDigitString for bases other than 2, 10, 16.
	ErrBadBase = errors.New("base must be 2, 10, or 16")
)

// ParseError is returned by FromDigitString when the input
// is not a valid numeral in the requested base, or does not
// fit into the requested width.
type ParseError struct {
	Input string
	Base  int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q in base %d: %v", e.Input, e.Base, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LengthMismatchError is returned by FromBytes when the buffer length
// is inconsistent with the declared width.
type LengthMismatchError struct {
	Len   int
	Width int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("got %d bytes, want %d for a %d-bit value", e.Len, e.Width/8, e.Width)
}

// OverflowError is returned by FromFields when a field value
// exceeds its declared bit width.
type OverflowError struct {
	Field string
	Bits  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("value too large for %s: at most %d bits", e.Field, e.Bits)
}

// WidthMismatchError is returned by TotalOrder and TotalOrderMag
// when the operands have different widths.
type WidthMismatchError struct {
	X, Y int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("cannot order a %d-bit value against a %d-bit value", e.X, e.Y)
}
