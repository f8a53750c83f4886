// Package shard implements C3 (the shard writer) and C4 (the shard
// reader): the unit of a SISF archive holding one macro-chunk, tiled
// internally into micro-chunks that are each compressed independently
// under a single compression tag.
//
// Writer enumerates micro-chunks, compresses them concurrently across a
// bounded worker pool, and streams them to the shard's .data file in
// submission order while building the chunk index that goes into the
// .meta file. Reader does the reverse: it parses the .meta file once and
// resolves arbitrary sub-region queries against the .data file on demand.
//
// Both are grounded on original_source/src/pySISF/sisf.py's
// create_shard/create_shard_worker (writer) and sisf_chunk (reader), with
// the writer's ordered concurrent-compression pipeline adapted from the
// promise-channel pattern in zstd-seekable-format-go's ConcurrentWriter.
package shard
