package shard

import (
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/codec"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

// defaultCodecEncode and defaultCodecDecode delegate to the codec package.
// The writer reaches defaultCodecEncode through the package-level
// codecEncode var, so tests can substitute a fake encoder; the reader calls
// defaultCodecDecode directly.
func defaultCodecEncode(buf []byte, tag format.CompressionTag, shape [3]int, dtype format.Dtype) ([]byte, error) {
	return codec.Encode(buf, tag, shape, dtype)
}

func defaultCodecDecode(data []byte, tag format.CompressionTag, shape [3]int, dtype format.Dtype) ([]byte, error) {
	return codec.Decode(data, tag, shape, dtype)
}
