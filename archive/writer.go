package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/header"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/shard"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/tile"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/voxel"
)

// Writer splits a full volume across the macro-chunk grid and writes one
// shard per (channel, i, j, k), mirroring create_sisf's nested loop order.
type Writer struct{}

// Create writes a new archive under dir: metadata.bin plus a data/ and
// meta/ directory holding one shard per macro-chunk. Macro-chunks are
// written serially, one at a time; only the micro-chunks within a single
// shard are compressed concurrently (spec.md §4.5/§5).
func (Writer) Create(
	ctx context.Context,
	dir string,
	vol *voxel.Array4D,
	macroSize, microSize [3]int,
	res [3]uint64,
	tag format.CompressionTag,
	workers int,
) error {
	for _, sub := range []string{dir, filepath.Join(dir, "data"), filepath.Join(dir, "meta")} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return fmt.Errorf("archive: create directory %s: %w", sub, err)
		}
	}

	h := header.ArchiveHeader{
		Version:      header.CurrentVersion,
		Dtype:        vol.Dtype,
		ChannelCount: uint16(vol.Channels),
		MacroChunk:   [3]uint16{uint16(macroSize[0]), uint16(macroSize[1]), uint16(macroSize[2])},
		Resolution:   res,
		Size:         [3]uint64{uint64(vol.Shape[0]), uint64(vol.Shape[1]), uint64(vol.Shape[2])},
	}

	if err := os.WriteFile(filepath.Join(dir, metadataFileName), h.Bytes(), 0o644); err != nil {
		return fmt.Errorf("archive: write metadata: %w", err)
	}

	itemSize, err := vol.Dtype.ByteSize()
	if err != nil {
		return err
	}

	xRanges := tile.Tile(vol.Shape[0], macroSize[0])
	yRanges := tile.Tile(vol.Shape[1], macroSize[1])
	zRanges := tile.Tile(vol.Shape[2], macroSize[2])

	var shardWriter shard.Writer

	for c := 0; c < vol.Channels; c++ {
		channel, err := vol.Channel(c)
		if err != nil {
			return err
		}

		for i, xr := range xRanges {
			for j, yr := range yRanges {
				for k, zr := range zRanges {
					crop := [3][2]int{{xr.Start, xr.End}, {yr.Start, yr.End}, {zr.Start, zr.End}}
					raw := voxel.Extract(channel.Data, channel.Shape, crop, itemSize)
					macroVol := &voxel.Array{
						Shape: [3]int{xr.Len(), yr.Len(), zr.Len()},
						Dtype: vol.Dtype,
						Data:  raw,
					}

					dataPath, metaPath := shardPaths(dir, i, j, k, c)
					if err := shardWriter.Write(ctx, dataPath, metaPath, macroVol, microSize, tag, workers, nil); err != nil {
						return fmt.Errorf("archive: write shard (%d,%d,%d,%d): %w", i, j, k, c, err)
					}
				}
			}
		}
	}

	return nil
}
