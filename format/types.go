// Package format defines the small value types shared across the SISF
// container format: voxel data types and micro-chunk compression tags.
package format

import "github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"

// Dtype identifies the unsigned integer element type stored in a volume.
type Dtype uint16

const (
	// DtypeU16 represents 16-bit unsigned voxels. This is the code used by
	// the reference writer/reader (1 = U16).
	DtypeU16 Dtype = 1
	// DtypeU8 represents 8-bit unsigned voxels (2 = U8).
	DtypeU8 Dtype = 2
)

// String implements fmt.Stringer.
func (d Dtype) String() string {
	switch d {
	case DtypeU16:
		return "U16"
	case DtypeU8:
		return "U8"
	default:
		return "Unknown"
	}
}

// ByteSize returns the size in bytes of a single element of this dtype.
func (d Dtype) ByteSize() (int, error) {
	switch d {
	case DtypeU16:
		return 2, nil
	case DtypeU8:
		return 1, nil
	default:
		return 0, errs.ErrUnknownDtype
	}
}

// Validate returns errs.ErrUnknownDtype if d is not a recognized dtype.
func (d Dtype) Validate() error {
	_, err := d.ByteSize()
	return err
}

// CompressionTag identifies the codec applied to every micro-chunk within a
// shard. The numeric values are part of the on-disk format and must not be
// renumbered.
type CompressionTag uint16

const (
	// CompressionRaw stores micro-chunks verbatim, uncompressed.
	CompressionRaw CompressionTag = 0
	// CompressionZstd compresses micro-chunks with Zstandard.
	CompressionZstd CompressionTag = 1
	// CompressionH264 delegates to an external H.264 video encoder.
	CompressionH264 CompressionTag = 2
	// CompressionAV1 delegates to an external AV1 video encoder.
	CompressionAV1 CompressionTag = 3
)

// String implements fmt.Stringer.
func (c CompressionTag) String() string {
	switch c {
	case CompressionRaw:
		return "Raw"
	case CompressionZstd:
		return "Zstd"
	case CompressionH264:
		return "H264"
	case CompressionAV1:
		return "AV1"
	default:
		return "Unknown"
	}
}

// IsVideo reports whether the tag delegates to an external video encoder.
func (c CompressionTag) IsVideo() bool {
	return c == CompressionH264 || c == CompressionAV1
}
