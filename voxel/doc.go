// Package voxel provides a small row-major 3-D array type and the copy
// primitives SISF uses to slice a macro-chunk out of a full volume (writer
// side) and to paste decoded micro-chunks back into a query's output
// buffer (reader side).
//
// The copy arithmetic is grounded on the go-zarr reader example's copyND:
// per-axis intersection of a source window against a destination window,
// with a bulk copy() on the innermost contiguous dimension and an
// element-by-element fallback otherwise.
package voxel
