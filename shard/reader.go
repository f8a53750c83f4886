package shard

import (
	"fmt"
	"os"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/header"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/internal/pool"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/tile"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/voxel"
)

// Reader serves random-access reads against one shard: a 86-byte header
// plus chunk index parsed once at Open, and a data file read on demand per
// query. It is grounded on sisf_chunk in original_source/sisf.py.
type Reader struct {
	data    *os.File
	Header  header.ShardHeader
	entries []header.IndexEntry
	counts  [3]int
}

// Open parses metaPath's header and chunk index and opens dataPath for
// random-access reads.
func Open(dataPath, metaPath string) (*Reader, error) {
	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("shard: read meta file: %w", err)
	}
	if len(metaBytes) < header.ShardHeaderSize {
		return nil, errs.ErrCorruptIndex
	}

	h, err := header.ParseShardHeader(metaBytes[:header.ShardHeaderSize])
	if err != nil {
		return nil, err
	}

	indexBytes := metaBytes[header.ShardHeaderSize:]
	if len(indexBytes)%header.IndexEntrySize != 0 {
		return nil, errs.ErrCorruptIndex
	}

	n := len(indexBytes) / header.IndexEntrySize
	entries := make([]header.IndexEntry, n)
	for i := 0; i < n; i++ {
		e, err := header.ParseIndexEntry(indexBytes[i*header.IndexEntrySize : (i+1)*header.IndexEntrySize])
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("shard: open data file: %w", err)
	}

	return &Reader{
		data:    f,
		Header:  h,
		entries: entries,
		counts:  h.MicroChunkCounts(),
	}, nil
}

// Close releases the underlying data file.
func (r *Reader) Close() error {
	return r.data.Close()
}

// IndexOf returns the flat chunk-table index of the micro-chunk at grid
// coordinates (dx, dy, dz), mirroring sisf_chunk.find_index's index
// arithmetic over already-divided chunk coordinates.
func (r *Reader) IndexOf(dx, dy, dz int) int {
	return dx*r.counts[1]*r.counts[2] + dy*r.counts[2] + dz
}

// Locate returns the (offset, length) of the micro-chunk at chunk-table
// index idx.
func (r *Reader) Locate(idx int) (header.IndexEntry, error) {
	if idx < 0 || idx >= len(r.entries) {
		return header.IndexEntry{}, errs.ErrIndexOutOfRange
	}

	return r.entries[idx], nil
}

// ChunkExtent returns the voxel extent of the micro-chunk at grid
// coordinates (dx, dy, dz), truncated at the shard's boundary, mirroring
// sisf_chunk.get_chunk_size.
func (r *Reader) ChunkExtent(dx, dy, dz int) [3]int {
	coords := [3]int{dx, dy, dz}
	microSize := [3]int{int(r.Header.MicroChunk[0]), int(r.Header.MicroChunk[1]), int(r.Header.MicroChunk[2])}
	size := [3]int{int(r.Header.Size[0]), int(r.Header.Size[1]), int(r.Header.Size[2])}

	var extent [3]int
	for i := 0; i < 3; i++ {
		end := (coords[i] + 1) * microSize[i]
		if end > size[i] {
			end = size[i]
		}
		extent[i] = end - coords[i]*microSize[i]
	}

	return extent
}

// FetchRaw reads the compressed bytes of the micro-chunk at chunk-table
// index idx, without decoding them.
func (r *Reader) FetchRaw(idx int) ([]byte, error) {
	entry, err := r.Locate(idx)
	if err != nil {
		return nil, err
	}

	buf := pool.GetChunkBuffer(int(entry.Length))[:entry.Length]

	if _, err := r.data.ReadAt(buf, int64(entry.Offset)); err != nil {
		pool.PutChunkBuffer(buf)
		return nil, fmt.Errorf("shard: read micro-chunk: %w", err)
	}

	out := make([]byte, entry.Length)
	copy(out, buf)
	pool.PutChunkBuffer(buf)

	return out, nil
}

// FetchChunk reads and decodes the micro-chunk at grid coordinates
// (dx, dy, dz), mirroring sisf_chunk.get_chunk_numpy.
func (r *Reader) FetchChunk(dx, dy, dz int) (*voxel.Array, error) {
	idx := r.IndexOf(dx, dy, dz)

	raw, err := r.FetchRaw(idx)
	if err != nil {
		return nil, err
	}

	shape := r.ChunkExtent(dx, dy, dz)

	decoded, err := defaultCodecDecode(raw, r.Header.Compression, shape, r.Header.Dtype)
	if err != nil {
		return nil, err
	}

	return &voxel.Array{Shape: shape, Dtype: r.Header.Dtype, Data: decoded}, nil
}

// Slice reads the sub-region [x0,x1) x [y0,y1) x [z0,z1) of the shard's
// cropped coordinate space, assembling it out of however many micro-chunks
// it overlaps. It mirrors sisf_chunk.__getitem__'s validation and
// running-origin chunk-assembly loop.
func (r *Reader) Slice(x0, x1, y0, y1, z0, z1 int) (*voxel.Array, error) {
	starts := [3]int{x0, y0, z0}
	stops := [3]int{x1, y1, z1}
	cropSize := r.Header.CropSize()
	shape := [3]int{int(cropSize[0]), int(cropSize[1]), int(cropSize[2])}
	cropStart := [3]int{int(r.Header.Crop[0]), int(r.Header.Crop[2]), int(r.Header.Crop[4])}

	for i := 0; i < 3; i++ {
		if starts[i] < 0 || stops[i] < 0 {
			return nil, errs.ErrNegativeIndex
		}
		if stops[i] < starts[i] {
			return nil, errs.ErrIncorrectRangeOrder
		}
		if starts[i] == stops[i] {
			// An empty range is valid at any position, including the
			// upper boundary, per spec.md's "start == stop yields an
			// empty result" tie-break.
			continue
		}
		if stops[i] > shape[i] || starts[i] >= shape[i] {
			return nil, errs.ErrIndexOutOfRange
		}
	}

	itemSize, err := r.Header.Dtype.ByteSize()
	if err != nil {
		return nil, err
	}

	outShape := [3]int{stops[0] - starts[0], stops[1] - starts[1], stops[2] - starts[2]}
	out, err := voxel.NewArray(outShape, r.Header.Dtype)
	if err != nil {
		return nil, err
	}

	microSize := [3]int{int(r.Header.MicroChunk[0]), int(r.Header.MicroChunk[1]), int(r.Header.MicroChunk[2])}

	xInters := tile.IntersectTile(starts[0]+cropStart[0], stops[0]+cropStart[0], microSize[0])
	yInters := tile.IntersectTile(starts[1]+cropStart[1], stops[1]+cropStart[1], microSize[1])
	zInters := tile.IntersectTile(starts[2]+cropStart[2], stops[2]+cropStart[2], microSize[2])

	xStart := 0
	for _, xi := range xInters {
		xSize := xi.Sub.Len()
		yStart := 0
		for _, yi := range yInters {
			ySize := yi.Sub.Len()
			zStart := 0
			for _, zi := range zInters {
				zSize := zi.Sub.Len()

				dx := xi.Tile.Start / microSize[0]
				dy := yi.Tile.Start / microSize[1]
				dz := zi.Tile.Start / microSize[2]

				chunk, err := r.FetchChunk(dx, dy, dz)
				if err != nil {
					return nil, err
				}

				srcWindow := [3][2]int{
					{xi.Sub.Start, xi.Sub.End},
					{yi.Sub.Start, yi.Sub.End},
					{zi.Sub.Start, zi.Sub.End},
				}
				voxel.Paste(out.Data, out.Shape, [3]int{xStart, yStart, zStart}, chunk.Data, chunk.Shape, srcWindow, itemSize)

				zStart += zSize
			}
			yStart += ySize
		}
		xStart += xSize
	}

	return out, nil
}
