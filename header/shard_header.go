package header

import (
	"encoding/binary"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

// ShardHeaderSize is the fixed size in bytes of a shard's .meta prefix:
// seven uint16 fields followed by nine uint64 fields. See SPEC_FULL.md §0
// for why this is 86 bytes, not the 66 spec.md's prose states.
const ShardHeaderSize = 86

// ShardHeader is the fixed header at the start of a shard's .meta file,
// describing one macro-chunk: its dtype, compression tag, micro-chunk
// tiling size, actual extent, and the crop window exposed to readers.
type ShardHeader struct {
	Version      uint16
	Dtype        format.Dtype
	ChannelCount uint16 // always 1
	Compression  format.CompressionTag
	MicroChunk   [3]uint16 // micro-chunk size in voxels (X, Y, Z)
	Size         [3]uint64 // actual macro-chunk extent in voxels (X, Y, Z)
	Crop         [6]uint64 // (x0, x1, y0, y1, z0, z1)
}

// CropSize returns the voxel extent the crop window exposes per axis.
func (h *ShardHeader) CropSize() [3]uint64 {
	return [3]uint64{
		h.Crop[1] - h.Crop[0],
		h.Crop[3] - h.Crop[2],
		h.Crop[5] - h.Crop[4],
	}
}

// MicroChunkCounts returns the per-axis number of micro-chunks tiling this
// shard: ceil(Size[i] / MicroChunk[i]).
func (h *ShardHeader) MicroChunkCounts() [3]int {
	var n [3]int
	for i := 0; i < 3; i++ {
		m := uint64(h.MicroChunk[i])
		n[i] = int((h.Size[i] + m - 1) / m)
	}

	return n
}

// Bytes serializes h into a new 86-byte little-endian buffer.
func (h *ShardHeader) Bytes() []byte {
	b := make([]byte, ShardHeaderSize)

	binary.LittleEndian.PutUint16(b[0:2], h.Version)
	binary.LittleEndian.PutUint16(b[2:4], uint16(h.Dtype))
	binary.LittleEndian.PutUint16(b[4:6], h.ChannelCount)
	binary.LittleEndian.PutUint16(b[6:8], uint16(h.Compression))
	binary.LittleEndian.PutUint16(b[8:10], h.MicroChunk[0])
	binary.LittleEndian.PutUint16(b[10:12], h.MicroChunk[1])
	binary.LittleEndian.PutUint16(b[12:14], h.MicroChunk[2])

	off := 14
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint64(b[off:off+8], h.Size[i])
		off += 8
	}
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint64(b[off:off+8], h.Crop[i])
		off += 8
	}

	return b
}

// Parse decodes h from exactly ShardHeaderSize bytes.
func (h *ShardHeader) Parse(data []byte) error {
	if len(data) != ShardHeaderSize {
		return errs.ErrCorruptIndex
	}

	h.Version = binary.LittleEndian.Uint16(data[0:2])
	h.Dtype = format.Dtype(binary.LittleEndian.Uint16(data[2:4]))
	h.ChannelCount = binary.LittleEndian.Uint16(data[4:6])
	h.Compression = format.CompressionTag(binary.LittleEndian.Uint16(data[6:8]))
	h.MicroChunk[0] = binary.LittleEndian.Uint16(data[8:10])
	h.MicroChunk[1] = binary.LittleEndian.Uint16(data[10:12])
	h.MicroChunk[2] = binary.LittleEndian.Uint16(data[12:14])

	off := 14
	for i := 0; i < 3; i++ {
		h.Size[i] = binary.LittleEndian.Uint64(data[off : off+8])
		off += 8
	}
	for i := 0; i < 6; i++ {
		h.Crop[i] = binary.LittleEndian.Uint64(data[off : off+8])
		off += 8
	}

	if err := h.Dtype.Validate(); err != nil {
		return err
	}
	if h.Version != CurrentVersion {
		return errs.ErrVersionMismatch
	}

	return nil
}

// ParseShardHeader decodes a new ShardHeader from exactly ShardHeaderSize
// bytes.
func ParseShardHeader(data []byte) (ShardHeader, error) {
	var h ShardHeader
	if err := h.Parse(data); err != nil {
		return ShardHeader{}, err
	}

	return h, nil
}
