// Package header implements the three fixed-size binary structures of the
// SISF container format (spec.md §6): the archive header stored in
// metadata.bin, the per-shard header stored at the start of a .meta file,
// and the chunk index entries that follow it.
//
// Every structure here exposes a Bytes() encoder and a ParseXxx() decoder
// operating on little-endian encoding/binary, the same shape mebo's
// section.NumericHeader uses for its own fixed header. Field offsets and
// exact sizes are pinned to original_source/src/pySISF/sisf.py's struct
// layouts (see SPEC_FULL.md §0), not to the (self-inconsistent) prose in
// spec.md §3/§4.4.
package header
