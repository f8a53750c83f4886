package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
)

func TestDtypeByteSize(t *testing.T) {
	size, err := DtypeU16.ByteSize()
	require.NoError(t, err)
	require.Equal(t, 2, size)

	size, err = DtypeU8.ByteSize()
	require.NoError(t, err)
	require.Equal(t, 1, size)
}

func TestDtypeValidateUnknown(t *testing.T) {
	var d Dtype = 99
	err := d.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnknownDtype))
}

func TestCompressionTagString(t *testing.T) {
	require.Equal(t, "Raw", CompressionRaw.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "H264", CompressionH264.String())
	require.Equal(t, "AV1", CompressionAV1.String())
	require.False(t, CompressionZstd.IsVideo())
	require.True(t, CompressionAV1.IsVideo())
}
