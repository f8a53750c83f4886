package archive

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/header"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/shard"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/tile"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/voxel"
)

// defaultShardCacheSize bounds the number of concurrently open shard
// readers an archive.Reader keeps warm.
const defaultShardCacheSize = 64

// chunkKey identifies one shard by its macro-chunk grid coordinates and
// channel.
type chunkKey struct {
	i, j, k, c int
}

// Reader serves random-access reads against a whole SISF archive: an
// ArchiveHeader parsed once at Open, and an LRU of open shard.Readers
// opened lazily as queries touch new macro-chunks.
type Reader struct {
	dir    string
	Header header.ArchiveHeader
	cache  *lru.Cache[chunkKey, *shard.Reader]
	macro  [3]int
}

// Open parses dir/metadata.bin and prepares an empty shard cache.
func Open(dir string) (*Reader, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFileName))
	if err != nil {
		return nil, fmt.Errorf("archive: read metadata: %w", err)
	}

	h, err := header.ParseArchiveHeader(data)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		dir:    dir,
		Header: h,
		macro:  [3]int{int(h.MacroChunk[0]), int(h.MacroChunk[1]), int(h.MacroChunk[2])},
	}

	cache, err := lru.NewWithEvict[chunkKey, *shard.Reader](defaultShardCacheSize, func(_ chunkKey, sr *shard.Reader) {
		sr.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("archive: create shard cache: %w", err)
	}
	r.cache = cache

	return r, nil
}

// Close evicts every cached shard.Reader, closing its underlying data
// file.
func (r *Reader) Close() {
	r.cache.Purge()
}

// Shape returns the archive's (channel, x, y, z) extent.
func (r *Reader) Shape() [4]int {
	return [4]int{int(r.Header.ChannelCount), int(r.Header.Size[0]), int(r.Header.Size[1]), int(r.Header.Size[2])}
}

// GetChunk returns the shard.Reader for macro-chunk (i, j, k) on channel c,
// opening and caching it on first access.
func (r *Reader) GetChunk(i, j, k, c int) (*shard.Reader, error) {
	key := chunkKey{i, j, k, c}

	if sr, ok := r.cache.Get(key); ok {
		return sr, nil
	}

	dataPath, metaPath := shardPaths(r.dir, i, j, k, c)

	sr, err := shard.Open(dataPath, metaPath)
	if err != nil {
		return nil, fmt.Errorf("archive: open shard (%d,%d,%d,%d): %w", i, j, k, c, err)
	}

	r.cache.Add(key, sr)

	return sr, nil
}

// Slice reads the sub-region [c0,c1) x [x0,x1) x [y0,y1) x [z0,z1) of the
// archive, assembling it out of however many shards it overlaps. It
// mirrors sisf.__getitem__'s validation and running-origin assembly loop.
func (r *Reader) Slice(c0, c1, x0, x1, y0, y1, z0, z1 int) (*voxel.Array4D, error) {
	channelCount := int(r.Header.ChannelCount)
	shape := [3]int{int(r.Header.Size[0]), int(r.Header.Size[1]), int(r.Header.Size[2])}

	if c0 < 0 || c1 < 0 || x0 < 0 || y0 < 0 || z0 < 0 {
		return nil, errs.ErrNegativeIndex
	}
	if c1 < c0 {
		return nil, errs.ErrIncorrectRangeOrder
	}
	if c0 != c1 && (c1 > channelCount || c0 >= channelCount) {
		return nil, errs.ErrIndexOutOfRange
	}

	starts := [3]int{x0, y0, z0}
	stops := [3]int{x1, y1, z1}
	for i := 0; i < 3; i++ {
		if stops[i] < starts[i] {
			return nil, errs.ErrIncorrectRangeOrder
		}
		if starts[i] == stops[i] {
			continue
		}
		if stops[i] > shape[i] || starts[i] >= shape[i] {
			return nil, errs.ErrIndexOutOfRange
		}
	}

	out, err := voxel.NewArray4D(c1-c0, [3]int{x1 - x0, y1 - y0, z1 - z0}, r.Header.Dtype)
	if err != nil {
		return nil, err
	}

	itemSize, err := r.Header.Dtype.ByteSize()
	if err != nil {
		return nil, err
	}

	xInters := tile.IntersectTile(x0, x1, r.macro[0])
	yInters := tile.IntersectTile(y0, y1, r.macro[1])
	zInters := tile.IntersectTile(z0, z1, r.macro[2])

	for c := c0; c < c1; c++ {
		outChannel, err := out.Channel(c - c0)
		if err != nil {
			return nil, err
		}

		xStart := 0
		for _, xi := range xInters {
			xSize := xi.Sub.Len()
			yStart := 0
			for _, yi := range yInters {
				ySize := yi.Sub.Len()
				zStart := 0
				for _, zi := range zInters {
					zSize := zi.Sub.Len()

					i := xi.Tile.Start / r.macro[0]
					j := yi.Tile.Start / r.macro[1]
					k := zi.Tile.Start / r.macro[2]

					sr, err := r.GetChunk(i, j, k, c)
					if err != nil {
						return nil, err
					}

					sub, err := sr.Slice(xi.Sub.Start, xi.Sub.End, yi.Sub.Start, yi.Sub.End, zi.Sub.Start, zi.Sub.End)
					if err != nil {
						return nil, err
					}

					voxel.Paste(
						outChannel.Data, outChannel.Shape, [3]int{xStart, yStart, zStart},
						sub.Data, sub.Shape, [3][2]int{{0, sub.Shape[0]}, {0, sub.Shape[1]}, {0, sub.Shape[2]}},
						itemSize,
					)

					zStart += zSize
				}
				yStart += ySize
			}
			xStart += xSize
		}
	}

	return out, nil
}

// GetPixel reads a single voxel at (c, x, y, z), mirroring
// sisf_chunk.read_pixel's single-voxel fast path. U8 archives are
// zero-extended to uint16.
func (r *Reader) GetPixel(c, x, y, z int) (uint16, error) {
	i := x / r.macro[0]
	j := y / r.macro[1]
	k := z / r.macro[2]

	sr, err := r.GetChunk(i, j, k, c)
	if err != nil {
		return 0, err
	}

	localX := x - i*r.macro[0]
	localY := y - j*r.macro[1]
	localZ := z - k*r.macro[2]

	chunk, err := sr.Slice(localX, localX+1, localY, localY+1, localZ, localZ+1)
	if err != nil {
		return 0, err
	}

	switch r.Header.Dtype {
	case format.DtypeU16:
		return uint16(chunk.Data[0]) | uint16(chunk.Data[1])<<8, nil
	default:
		return uint16(chunk.Data[0]), nil
	}
}

// String returns a one-line human-readable summary, mirroring
// sisf.__repr__ in original_source/sisf.py.
func (r *Reader) String() string {
	return fmt.Sprintf(
		"<sisf archive at %s (%dx%dx%d voxels, macro %dx%dx%d, res %d/%d/%dnm)>",
		r.dir,
		r.Header.Size[0], r.Header.Size[1], r.Header.Size[2],
		r.Header.MacroChunk[0], r.Header.MacroChunk[1], r.Header.MacroChunk[2],
		r.Header.Resolution[0], r.Header.Resolution[1], r.Header.Resolution[2],
	)
}
