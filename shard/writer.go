package shard

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/header"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/internal/pool"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/tile"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/voxel"
)

// Writer encodes one macro-chunk into a shard: a .data file of
// concatenated compressed micro-chunks and a .meta file holding the
// ShardHeader and chunk index.
type Writer struct{}

// chunkResult is the promise a worker fulfills once it finishes encoding
// one micro-chunk. Modeled on zstd-seekable-format-go's encodeResult: the
// producer hands out an ordered channel per micro-chunk before dispatching
// the work, so the consumer can drain strictly in submission order even
// though workers finish out of order.
type chunkResult struct {
	buf []byte
	err error
}

// Write enumerates the micro-chunks tiling vol in (x,y,z) lexicographic
// order, compresses them concurrently across workers goroutines, and
// streams the results to dataPath in submission order. It then writes the
// ShardHeader and chunk index to metaPath in one call.
//
// crop records the voxel window exposed to readers; a nil crop defaults to
// the full extent of vol, matching create_shard's behavior when its crop
// argument is omitted.
func (Writer) Write(
	ctx context.Context,
	dataPath, metaPath string,
	vol *voxel.Array,
	microSize [3]int,
	tag format.CompressionTag,
	workers int,
	crop *[3][2]int,
) error {
	if err := vol.Validate(); err != nil {
		return err
	}

	itemSize, err := vol.Dtype.ByteSize()
	if err != nil {
		return err
	}

	xRanges := tile.Tile(vol.Shape[0], microSize[0])
	yRanges := tile.Tile(vol.Shape[1], microSize[1])
	zRanges := tile.Tile(vol.Shape[2], microSize[2])

	dataFile, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("shard: create data file: %w", err)
	}
	defer dataFile.Close()

	// Only the compression workers count against the workers limit; the
	// producer and the ordered consumer run outside it.
	g, gCtx := errgroup.WithContext(ctx)
	var workerGroup errgroup.Group
	if workers > 0 {
		workerGroup.SetLimit(workers)
	}

	queue := make(chan chan chunkResult, len(xRanges)*len(yRanges)*len(zRanges))

	g.Go(func() error {
		defer close(queue)
		defer workerGroup.Wait()

		for _, xr := range xRanges {
			for _, yr := range yRanges {
				for _, zr := range zRanges {
					cropWindow := [3][2]int{{xr.Start, xr.End}, {yr.Start, yr.End}, {zr.Start, zr.End}}
					shape := [3]int{xr.Len(), yr.Len(), zr.Len()}

					ch := make(chan chunkResult, 1)
					select {
					case <-gCtx.Done():
						return nil
					case queue <- ch:
					}

					workerGroup.Go(func() error {
						raw := voxel.Extract(vol.Data, vol.Shape, cropWindow, itemSize)

						enc, err := codecEncode(raw, tag, shape, vol.Dtype)

						select {
						case <-gCtx.Done():
						case ch <- chunkResult{buf: enc, err: err}:
							close(ch)
						}

						return nil
					})
				}
			}
		}

		return nil
	})

	var entries []header.IndexEntry
	var offset int64

	g.Go(func() error {
		for {
			var ch <-chan chunkResult
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case c, ok := <-queue:
				if !ok {
					return nil
				}
				ch = c
			}

			var result chunkResult
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case result = <-ch:
			}

			if result.err != nil {
				return fmt.Errorf("shard: encode micro-chunk: %w", result.err)
			}

			n, err := dataFile.Write(result.buf)
			if err != nil {
				return fmt.Errorf("shard: write micro-chunk: %w", err)
			}

			entries = append(entries, header.IndexEntry{
				Offset: uint64(offset),
				Length: uint32(n),
			})
			offset += int64(n)
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if err := dataFile.Sync(); err != nil {
		return fmt.Errorf("shard: sync data file: %w", err)
	}

	return writeMeta(metaPath, vol, microSize, tag, crop, entries)
}

// codecEncode is a package-level var so tests can override it to avoid
// shelling out to ffmpeg; by default it calls codec.Encode.
var codecEncode = defaultCodecEncode

func writeMeta(
	metaPath string,
	vol *voxel.Array,
	microSize [3]int,
	tag format.CompressionTag,
	crop *[3][2]int,
	entries []header.IndexEntry,
) error {
	cropWindow := [3][2]int{
		{0, vol.Shape[0]},
		{0, vol.Shape[1]},
		{0, vol.Shape[2]},
	}
	if crop != nil {
		cropWindow = *crop
	}

	h := header.ShardHeader{
		Version:      header.CurrentVersion,
		Dtype:        vol.Dtype,
		ChannelCount: 1,
		Compression:  tag,
		MicroChunk:   [3]uint16{uint16(microSize[0]), uint16(microSize[1]), uint16(microSize[2])},
		Size:         [3]uint64{uint64(vol.Shape[0]), uint64(vol.Shape[1]), uint64(vol.Shape[2])},
		Crop: [6]uint64{
			uint64(cropWindow[0][0]), uint64(cropWindow[0][1]),
			uint64(cropWindow[1][0]), uint64(cropWindow[1][1]),
			uint64(cropWindow[2][0]), uint64(cropWindow[2][1]),
		},
	}

	total := header.ShardHeaderSize + len(entries)*header.IndexEntrySize
	buf := pool.GetShardBuffer(total)

	buf = append(buf, h.Bytes()...)
	for _, e := range entries {
		buf = append(buf, e.Bytes()...)
	}

	err := os.WriteFile(metaPath, buf, 0o644)
	pool.PutShardBuffer(buf)
	if err != nil {
		return fmt.Errorf("shard: write meta file: %w", err)
	}

	return nil
}
