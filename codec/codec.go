// Package codec implements C1, the compression-tag dispatcher. Every
// micro-chunk in a shard is encoded and decoded through Encode/Decode using
// the shard's single compression tag (spec.md §4.1).
package codec

import (
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

// Encode compresses a raw, row-major micro-chunk buffer under the given
// compression tag. shape and dtype are only consulted by the video tags
// (H264/AV1), which need to know the frame geometry and whether a U16→U8
// rescale is required.
func Encode(buf []byte, tag format.CompressionTag, shape [3]int, dtype format.Dtype) ([]byte, error) {
	switch tag {
	case format.CompressionRaw:
		return rawEncode(buf)
	case format.CompressionZstd:
		return zstdEncode(buf)
	case format.CompressionH264, format.CompressionAV1:
		return videoEncode(buf, tag, shape, dtype)
	default:
		return nil, errs.ErrUnknownCodec
	}
}

// Decode reverses Encode, recovering the raw micro-chunk buffer. For the
// video tags (H264/AV1) it returns the decoded 8-bit frame stream; the
// U16→U8 rescale applied by Encode is not undone.
func Decode(data []byte, tag format.CompressionTag, shape [3]int, dtype format.Dtype) ([]byte, error) {
	switch tag {
	case format.CompressionRaw:
		return rawDecode(data)
	case format.CompressionZstd:
		return zstdDecode(data)
	case format.CompressionH264, format.CompressionAV1:
		return videoDecode(data)
	default:
		return nil, errs.ErrUnknownCodec
	}
}
