package shard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/voxel"
)

func writeTestShard(t *testing.T, shape, microSize [3]int) (*Reader, *voxel.Array) {
	t.Helper()

	dir := t.TempDir()
	vol := buildTestVolume(t, shape)

	var w Writer
	dataPath := filepath.Join(dir, "shard.data")
	metaPath := filepath.Join(dir, "shard.meta")

	require.NoError(t, w.Write(context.Background(), dataPath, metaPath, vol, microSize, format.CompressionRaw, 4, nil))

	r, err := Open(dataPath, metaPath)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	return r, vol
}

func TestSlicePartialRegion(t *testing.T) {
	r, vol := writeTestShard(t, [3]int{10, 10, 10}, [3]int{4, 4, 4})

	got, err := r.Slice(2, 7, 0, 5, 3, 9)
	require.NoError(t, err)
	require.Equal(t, [3]int{5, 5, 6}, got.Shape)

	expected := voxel.Extract(vol.Data, vol.Shape, [3][2]int{{2, 7}, {0, 5}, {3, 9}}, 1)
	require.Equal(t, expected, got.Data)
}

func TestSliceEmptyRangeYieldsEmptyResult(t *testing.T) {
	r, _ := writeTestShard(t, [3]int{6, 6, 6}, [3]int{3, 3, 3})

	got, err := r.Slice(2, 2, 0, 6, 0, 6)
	require.NoError(t, err)
	require.Equal(t, [3]int{0, 6, 6}, got.Shape)
	require.Empty(t, got.Data)
}

func TestSliceNegativeIndex(t *testing.T) {
	r, _ := writeTestShard(t, [3]int{4, 4, 4}, [3]int{2, 2, 2})

	_, err := r.Slice(-1, 2, 0, 2, 0, 2)
	require.True(t, errors.Is(err, errs.ErrNegativeIndex))
}

func TestSliceIncorrectRangeOrder(t *testing.T) {
	r, _ := writeTestShard(t, [3]int{4, 4, 4}, [3]int{2, 2, 2})

	_, err := r.Slice(3, 1, 0, 2, 0, 2)
	require.True(t, errors.Is(err, errs.ErrIncorrectRangeOrder))
}

func TestSliceOutOfRange(t *testing.T) {
	r, _ := writeTestShard(t, [3]int{4, 4, 4}, [3]int{2, 2, 2})

	_, err := r.Slice(0, 5, 0, 2, 0, 2)
	require.True(t, errors.Is(err, errs.ErrIndexOutOfRange))
}

func TestChunkExtentTruncatesAtBoundary(t *testing.T) {
	r, _ := writeTestShard(t, [3]int{10, 10, 10}, [3]int{4, 4, 4})

	// 10 voxels tiled by 4: chunks at 0,4,8 -> extents 4,4,2
	require.Equal(t, [3]int{2, 4, 4}, r.ChunkExtent(2, 0, 0))
	require.Equal(t, [3]int{4, 4, 4}, r.ChunkExtent(0, 0, 0))
}

func TestIndexOfMatchesGridLayout(t *testing.T) {
	r, _ := writeTestShard(t, [3]int{8, 8, 8}, [3]int{4, 4, 4})

	require.Equal(t, 0, r.IndexOf(0, 0, 0))
	require.Equal(t, 1, r.IndexOf(0, 0, 1))
	require.Equal(t, 2, r.IndexOf(0, 1, 0))
	require.Equal(t, 4, r.IndexOf(1, 0, 0))
}

func TestLocateOutOfRange(t *testing.T) {
	r, _ := writeTestShard(t, [3]int{4, 4, 4}, [3]int{2, 2, 2})

	_, err := r.Locate(999)
	require.True(t, errors.Is(err, errs.ErrIndexOutOfRange))
}
