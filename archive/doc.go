// Package archive implements C5 (the archive writer) and C6 (the archive
// reader): the top-level SISF container holding a full (channel, x, y, z)
// volume tiled into macro-chunks, each of which is an independent shard.
//
// Writer splits a volume across the macro-chunk grid and hands each
// macro-chunk to shard.Writer in turn (spec.md §4.5/§5 — macro-chunk
// writes are not parallelized against each other, only the micro-chunks
// within one shard are). Reader resolves a 4-D slice query against
// however many shards it overlaps, caching open shard.Readers in an LRU
// keyed by (i, j, k, c) to amortize repeated sweeps over the same region.
//
// Both are grounded on original_source/src/pySISF/sisf.py's
// create_sisf/sisf classes; the shard cache itself has no counterpart in
// the original (spec.md §4.6/§9 calls it out as "not required for
// correctness") but is wired in anyway since hashicorp/golang-lru/v2 is
// already part of the dependency stack this module draws from.
package archive
