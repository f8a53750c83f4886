package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/voxel"
)

func buildTestVolume(t *testing.T, channels int, shape [3]int) *voxel.Array4D {
	t.Helper()

	vol, err := voxel.NewArray4D(channels, shape, format.DtypeU8)
	require.NoError(t, err)
	for i := range vol.Data {
		vol.Data[i] = byte(i % 241)
	}

	return vol
}

func TestArchiveRoundTripFullVolume(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 2, [3]int{10, 12, 8})

	var w Writer
	err := w.Create(context.Background(), dir, vol, [3]int{6, 6, 6}, [3]int{3, 3, 3}, [3]uint64{4, 4, 40}, format.CompressionRaw, 2)
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, [4]int{2, 10, 12, 8}, r.Shape())

	got, err := r.Slice(0, 2, 0, 10, 0, 12, 0, 8)
	require.NoError(t, err)
	require.Equal(t, vol.Data, got.Data)
}

func TestArchiveRoundTripPartialRegionAcrossShards(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 1, [3]int{16, 16, 16})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{6, 6, 6}, [3]int{3, 3, 3}, [3]uint64{1, 1, 1}, format.CompressionRaw, 2))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	// This region spans macro-chunk boundaries on every axis (shards tile
	// at 6, 6, 6; this query covers x in [4,10), straddling chunk 0 and 1).
	got, err := r.Slice(0, 1, 4, 10, 2, 9, 5, 15)
	require.NoError(t, err)

	ch, err := vol.Channel(0)
	require.NoError(t, err)
	expected := voxel.Extract(ch.Data, ch.Shape, [3][2]int{{4, 10}, {2, 9}, {5, 15}}, 1)

	gotCh, err := got.Channel(0)
	require.NoError(t, err)
	require.Equal(t, expected, gotCh.Data)
}

func TestArchiveGetPixel(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 1, [3]int{8, 8, 8})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{4, 4, 4}, [3]int{2, 2, 2}, [3]uint64{1, 1, 1}, format.CompressionRaw, 2))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	ch, err := vol.Channel(0)
	require.NoError(t, err)
	expected := voxel.Extract(ch.Data, ch.Shape, [3][2]int{{5, 6}, {3, 4}, {7, 8}}, 1)

	got, err := r.GetPixel(0, 5, 3, 7)
	require.NoError(t, err)
	require.Equal(t, uint16(expected[0]), got)
}

func TestArchiveSliceNegativeIndex(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 1, [3]int{8, 8, 8})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{4, 4, 4}, [3]int{2, 2, 2}, [3]uint64{1, 1, 1}, format.CompressionRaw, 1))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Slice(0, 1, -1, 4, 0, 4, 0, 4)
	require.ErrorIs(t, err, errs.ErrNegativeIndex)
}

func TestArchiveSliceIncorrectRangeOrder(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 1, [3]int{8, 8, 8})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{4, 4, 4}, [3]int{2, 2, 2}, [3]uint64{1, 1, 1}, format.CompressionRaw, 1))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Slice(0, 1, 4, 2, 0, 4, 0, 4)
	require.ErrorIs(t, err, errs.ErrIncorrectRangeOrder)
}

func TestArchiveSliceChannelOutOfRange(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 2, [3]int{8, 8, 8})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{4, 4, 4}, [3]int{2, 2, 2}, [3]uint64{1, 1, 1}, format.CompressionRaw, 1))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Slice(1, 3, 0, 4, 0, 4, 0, 4)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestArchiveSliceSpatialOutOfRange(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 1, [3]int{8, 8, 8})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{4, 4, 4}, [3]int{2, 2, 2}, [3]uint64{1, 1, 1}, format.CompressionRaw, 1))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Slice(0, 1, 0, 9, 0, 4, 0, 4)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestArchiveSliceEmptyRangeYieldsEmptyResult(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 1, [3]int{8, 8, 8})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{4, 4, 4}, [3]int{2, 2, 2}, [3]uint64{1, 1, 1}, format.CompressionRaw, 1))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.Slice(0, 1, 3, 3, 0, 4, 0, 4)
	require.NoError(t, err)
	require.Equal(t, [3]int{0, 4, 4}, got.Shape)
	require.Empty(t, got.Data)
}

func TestArchiveReaderString(t *testing.T) {
	dir := t.TempDir()
	vol := buildTestVolume(t, 1, [3]int{4, 4, 4})

	var w Writer
	require.NoError(t, w.Create(context.Background(), dir, vol, [3]int{4, 4, 4}, [3]int{2, 2, 2}, [3]uint64{4, 4, 40}, format.CompressionRaw, 1))

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	require.Contains(t, r.String(), "sisf archive at")
}
