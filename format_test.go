package ieee754

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFor(t *testing.T) {
	a := assert.New(t)
	for _, width := range []int{16, 32, 64} {
		f, err := FormatFor(width)
		if a.NoError(err) {
			a.Equal(width, f.Width)
			a.Equal(width, 1+f.ExpBits+f.MantBits)
		}
	}
	for _, width := range []int{0, 8, 24, 63, 128} {
		_, err := FormatFor(width)
		a.ErrorIs(err, ErrBadWidth)
	}
}

func TestByteOrderNames(t *testing.T) {
	a := assert.New(t)
	a.Equal("big-endian", BigEndian.String())
	a.Equal("little-endian", LittleEndian.String())
	a.Equal("network", Network.String())
	a.Equal("native", Native.String())
	a.Equal("native-aligned", NativeAligned.String())
}

func TestFromBytesNative(t *testing.T) {
	a := assert.New(t)
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], math.Float64bits(1.5))
	for _, order := range []ByteOrder{Native, NativeAligned} {
		v, err := FromBytes(buf[:], 64, order)
		if a.NoError(err) {
			a.Equal(1.5, v.Float64())
		}
	}
}
