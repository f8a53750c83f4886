// Package pool holds reusable scratch-buffer pools for shard I/O. Unlike a
// general-purpose growable buffer, every caller here knows the exact byte
// count it needs before asking for a buffer (a micro-chunk's compressed
// length from its IndexEntry, or a shard's header+index size computed from
// fixed struct sizes), so the pool only needs to hand back a slice of at
// least that capacity, not grow one incrementally.
package pool

import "sync"

// Default and maximum-retained capacities for the two pools. Chunk
// buffers hold the compressed bytes of one micro-chunk at a time; shard
// buffers hold one
// ShardHeader plus its chunk index, which can run large for many-chunk
// shards. Buffers larger than the max are discarded on Put rather than
// retained, so one oversized shard doesn't bloat every future Get.
const (
	ChunkBufferDefaultSize  = 1024 * 16       // 16KiB
	ChunkBufferMaxThreshold = 1024 * 128      // 128KiB
	ShardBufferDefaultSize  = 1024 * 1024     // 1MiB
	ShardBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

var (
	chunkPool = sync.Pool{New: func() any { b := make([]byte, 0, ChunkBufferDefaultSize); return &b }}
	shardPool = sync.Pool{New: func() any { b := make([]byte, 0, ShardBufferDefaultSize); return &b }}
)

// GetChunkBuffer returns a zero-length []byte with at least n bytes of
// capacity from the micro-chunk pool, used by shard.Reader.FetchRaw to
// stage one compressed micro-chunk's raw bytes for the duration of a
// single ReadAt plus copy-out.
func GetChunkBuffer(n int) []byte {
	return get(&chunkPool, n)
}

// PutChunkBuffer returns b to the micro-chunk pool.
func PutChunkBuffer(b []byte) {
	put(&chunkPool, b, ChunkBufferMaxThreshold)
}

// GetShardBuffer returns a zero-length []byte with at least n bytes of
// capacity from the shard pool, used by shard.Writer to assemble one
// shard's ShardHeader and chunk index ahead of the single write to its
// .meta file.
func GetShardBuffer(n int) []byte {
	return get(&shardPool, n)
}

// PutShardBuffer returns b to the shard pool.
func PutShardBuffer(b []byte) {
	put(&shardPool, b, ShardBufferMaxThreshold)
}

func get(p *sync.Pool, n int) []byte {
	bp, _ := p.Get().(*[]byte)
	if cap(*bp) < n {
		*bp = make([]byte, 0, n)
	}

	return (*bp)[:0]
}

func put(p *sync.Pool, b []byte, maxRetainedCap int) {
	if cap(b) > maxRetainedCap {
		return
	}

	p.Put(&b)
}
