package tile

// Range is a half-open [Start, End) span along one axis.
type Range struct {
	Start int
	End   int
}

// Len returns the number of elements the range spans.
func (r Range) Len() int {
	return r.End - r.Start
}

// Tile divides [0, length) into consecutive [Start, End) ranges of size
// step, with the final range truncated to length if it does not divide
// evenly. It mirrors iterate_bounded's behavior: the loop always emits at
// least one range when length > 0, and never emits a range beyond length.
func Tile(length, step int) []Range {
	if length <= 0 || step <= 0 {
		return nil
	}

	var ranges []Range
	for start := 0; start < length; start += step {
		end := start + step
		if end > length {
			end = length
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}

	return ranges
}

// Intersection describes one tile a query range overlaps: Tile is the
// tile's own [Start,End) bounds on the grid, and Sub is the portion of that
// tile, expressed in tile-local coordinates, the query actually covers.
type Intersection struct {
	Tile Range
	Sub  Range
}

// IntersectTile tiles the grid at step and returns, in ascending tile
// order, every tile overlapping the query range [rStart, rStop). It is
// grounded on sisf_chunk.iterate_chunks: for each candidate tile
// [cstart,cend) the in-tile sub-range is
// (max(cstart,rStart)-cstart, min(cend,rStop)-cstart).
//
// rStart must be <= rStop; an empty query (rStart == rStop) yields no
// intersections.
func IntersectTile(rStart, rStop, step int) []Intersection {
	if step <= 0 || rStart >= rStop {
		return nil
	}

	var out []Intersection
	first := step * (rStart / step)
	last := step * ((rStop + step - 1) / step)

	for cstart := first; cstart < last; cstart += step {
		cend := cstart + step

		sstart := max(cstart, rStart) - cstart
		send := min(cend, rStop) - cstart

		out = append(out, Intersection{
			Tile: Range{Start: cstart, End: cend},
			Sub:  Range{Start: sstart, End: send},
		})
	}

	return out
}
