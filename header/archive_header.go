package header

import (
	"encoding/binary"
	"fmt"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

// ArchiveHeaderSize is the fixed size in bytes of metadata.bin: six uint16
// fields followed by six uint64 fields, per SPEC_FULL.md §0.
const ArchiveHeaderSize = 60

// CurrentVersion is the only archive/shard format version this package
// understands.
const CurrentVersion = 1

// ArchiveHeader is the fixed 60-byte header stored at the start of
// metadata.bin. It carries the channel count, per-channel volume shape,
// macro-chunk size, and voxel resolution for an entire archive.
type ArchiveHeader struct {
	Version      uint16
	Dtype        format.Dtype
	ChannelCount uint16
	MacroChunk   [3]uint16 // macro-chunk size in voxels (X, Y, Z)
	Resolution   [3]uint64 // voxel resolution in nanometers (X, Y, Z)
	Size         [3]uint64 // per-channel volume shape in voxels (X, Y, Z)
}

// Bytes serializes h into a new 60-byte little-endian buffer.
func (h *ArchiveHeader) Bytes() []byte {
	b := make([]byte, ArchiveHeaderSize)

	binary.LittleEndian.PutUint16(b[0:2], h.Version)
	binary.LittleEndian.PutUint16(b[2:4], uint16(h.Dtype))
	binary.LittleEndian.PutUint16(b[4:6], h.ChannelCount)
	binary.LittleEndian.PutUint16(b[6:8], h.MacroChunk[0])
	binary.LittleEndian.PutUint16(b[8:10], h.MacroChunk[1])
	binary.LittleEndian.PutUint16(b[10:12], h.MacroChunk[2])
	binary.LittleEndian.PutUint64(b[12:20], h.Resolution[0])
	binary.LittleEndian.PutUint64(b[20:28], h.Resolution[1])
	binary.LittleEndian.PutUint64(b[28:36], h.Resolution[2])
	binary.LittleEndian.PutUint64(b[36:44], h.Size[0])
	binary.LittleEndian.PutUint64(b[44:52], h.Size[1])
	binary.LittleEndian.PutUint64(b[52:60], h.Size[2])

	return b
}

// Parse decodes h from exactly ArchiveHeaderSize bytes.
func (h *ArchiveHeader) Parse(data []byte) error {
	if len(data) != ArchiveHeaderSize {
		return errs.ErrCorruptIndex
	}

	h.Version = binary.LittleEndian.Uint16(data[0:2])
	h.Dtype = format.Dtype(binary.LittleEndian.Uint16(data[2:4]))
	h.ChannelCount = binary.LittleEndian.Uint16(data[4:6])
	h.MacroChunk[0] = binary.LittleEndian.Uint16(data[6:8])
	h.MacroChunk[1] = binary.LittleEndian.Uint16(data[8:10])
	h.MacroChunk[2] = binary.LittleEndian.Uint16(data[10:12])
	h.Resolution[0] = binary.LittleEndian.Uint64(data[12:20])
	h.Resolution[1] = binary.LittleEndian.Uint64(data[20:28])
	h.Resolution[2] = binary.LittleEndian.Uint64(data[28:36])
	h.Size[0] = binary.LittleEndian.Uint64(data[36:44])
	h.Size[1] = binary.LittleEndian.Uint64(data[44:52])
	h.Size[2] = binary.LittleEndian.Uint64(data[52:60])

	if err := h.Dtype.Validate(); err != nil {
		return err
	}
	if h.Version != CurrentVersion {
		return errs.ErrVersionMismatch
	}

	return nil
}

// String returns a one-line human-readable summary of the header fields,
// mirroring sisf.__repr__ in original_source/sisf.py.
func (h ArchiveHeader) String() string {
	return fmt.Sprintf(
		"ArchiveHeader{version=%d, dtype=%s, channels=%d, macro=%dx%dx%d, size=%dx%dx%d, res=%d/%d/%dnm}",
		h.Version, h.Dtype, h.ChannelCount,
		h.MacroChunk[0], h.MacroChunk[1], h.MacroChunk[2],
		h.Size[0], h.Size[1], h.Size[2],
		h.Resolution[0], h.Resolution[1], h.Resolution[2],
	)
}

// ParseArchiveHeader decodes a new ArchiveHeader from exactly
// ArchiveHeaderSize bytes.
func ParseArchiveHeader(data []byte) (ArchiveHeader, error) {
	var h ArchiveHeader
	if err := h.Parse(data); err != nil {
		return ArchiveHeader{}, err
	}

	return h, nil
}
