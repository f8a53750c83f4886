package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

func TestRawRoundTrip(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	enc, err := Encode(buf, format.CompressionRaw, [3]int{2, 2, 2}, format.DtypeU16)
	require.NoError(t, err)
	require.Equal(t, buf, enc)

	dec, err := Decode(enc, format.CompressionRaw, [3]int{2, 2, 2}, format.DtypeU16)
	require.NoError(t, err)
	require.Equal(t, buf, dec)
}

func TestZstdRoundTrip(t *testing.T) {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i % 7)
	}

	enc, err := Encode(buf, format.CompressionZstd, [3]int{4, 4, 4}, format.DtypeU8)
	require.NoError(t, err)
	require.NotEmpty(t, enc)

	dec, err := Decode(enc, format.CompressionZstd, [3]int{4, 4, 4}, format.DtypeU8)
	require.NoError(t, err)
	require.Equal(t, buf, dec)
}

func TestZstdEmptyInput(t *testing.T) {
	enc, err := Encode(nil, format.CompressionZstd, [3]int{0, 0, 0}, format.DtypeU8)
	require.NoError(t, err)

	dec, err := Decode(enc, format.CompressionZstd, [3]int{0, 0, 0}, format.DtypeU8)
	require.NoError(t, err)
	require.Empty(t, dec)
}

func TestUnknownCodec(t *testing.T) {
	_, err := Encode([]byte{1}, format.CompressionTag(99), [3]int{1, 1, 1}, format.DtypeU8)
	require.True(t, errors.Is(err, errs.ErrUnknownCodec))

	_, err = Decode([]byte{1}, format.CompressionTag(99), [3]int{1, 1, 1}, format.DtypeU8)
	require.True(t, errors.Is(err, errs.ErrUnknownCodec))
}

func TestRescaleU16ToU8(t *testing.T) {
	// Two 16-bit samples: 0 and max (65535). After rescale, the first
	// should map near 0 and the second should saturate at 255.
	buf := make([]byte, 4)
	buf[0], buf[1] = 0x00, 0x00
	buf[2], buf[3] = 0xFF, 0xFF

	out := rescaleU16ToU8(buf)
	require.Len(t, out, 2)
	require.Equal(t, uint8(0), out[0])
	require.Equal(t, uint8(255), out[1])
}

func TestRescaleU16ToU8AllZero(t *testing.T) {
	buf := make([]byte, 8)
	out := rescaleU16ToU8(buf)
	require.Equal(t, make([]byte, 4), out)
}
