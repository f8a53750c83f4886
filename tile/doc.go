// Package tile implements C2, the chunk-grid iterator shared by the shard
// writer, shard reader, archive writer, and archive reader. It tiles a
// [0,length) axis into fixed-size [start,end) ranges and, given a query
// range, yields each tile it overlaps along with the sub-range of that tile
// the query actually touches.
//
// The same two functions serve both the macro-chunk grid (archive over
// shards) and the micro-chunk grid (shard over voxel blocks) — spec.md §9
// calls this out explicitly ("two-level intersection... implement it
// once"), grounded on original_source/src/pySISF/sisf.py's
// iterate_bounded and sisf_chunk.iterate_chunks.
package tile
