package header

import (
	"encoding/binary"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
)

// IndexEntrySize is the fixed size in bytes of a single chunk index entry:
// an 8-byte offset followed by a 4-byte length, packed with no padding.
const IndexEntrySize = 12

// IndexEntry locates one encoded micro-chunk blob within a shard's .data
// file.
type IndexEntry struct {
	Offset uint64
	Length uint32
}

// Bytes serializes e into a new 12-byte little-endian buffer.
func (e IndexEntry) Bytes() []byte {
	b := make([]byte, IndexEntrySize)
	binary.LittleEndian.PutUint64(b[0:8], e.Offset)
	binary.LittleEndian.PutUint32(b[8:12], e.Length)

	return b
}

// ParseIndexEntry decodes an IndexEntry from exactly IndexEntrySize bytes.
// It returns errs.ErrCorruptIndex if data is short, matching spec.md §4.4's
// CorruptIndex condition for a truncated index read.
func ParseIndexEntry(data []byte) (IndexEntry, error) {
	if len(data) != IndexEntrySize {
		return IndexEntry{}, errs.ErrCorruptIndex
	}

	return IndexEntry{
		Offset: binary.LittleEndian.Uint64(data[0:8]),
		Length: binary.LittleEndian.Uint32(data[8:12]),
	}, nil
}
