// Package sisf is the top-level facade over the Sharded Image Storage
// Format: Create writes a volume to a new archive directory, Open reads
// one back. It mirrors the shape of mebo's root facade, delegating
// everything to the archive package.
package sisf

import (
	"context"

	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/archive"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/voxel"
)

// Create writes vol to a new archive at dir, tiled into macroSize
// macro-chunks each further tiled into microSize micro-chunks compressed
// under tag, using workers goroutines per shard.
func Create(
	ctx context.Context,
	dir string,
	vol *voxel.Array4D,
	macroSize, microSize [3]int,
	res [3]uint64,
	tag format.CompressionTag,
	workers int,
) error {
	var w archive.Writer
	return w.Create(ctx, dir, vol, macroSize, microSize, res, tag, workers)
}

// Open opens an existing archive at dir for random-access reads.
func Open(dir string) (*archive.Reader, error) {
	return archive.Open(dir)
}
