package voxel

// copyND copies a copyShape-sized window from src (laid out with
// srcStrides, starting at srcOffset) into dst (laid out with dstStrides,
// starting at dstOffset), in units of itemSize bytes per element. It bulk
// copies whenever the innermost axis is contiguous on both sides and falls
// back to an element-by-element copy otherwise.
func copyND(
	dst []byte, dstStrides, dstOffset [3]int,
	src []byte, srcStrides, srcOffset [3]int,
	copyShape [3]int, itemSize int,
) {
	startSrcIdx := srcOffset[0]*srcStrides[0] + srcOffset[1]*srcStrides[1] + srcOffset[2]*srcStrides[2]
	startDstIdx := dstOffset[0]*dstStrides[0] + dstOffset[1]*dstStrides[1] + dstOffset[2]*dstStrides[2]

	var iterate func(dim int, srcIdx, dstIdx int)
	iterate = func(dim int, srcIdx, dstIdx int) {
		if dim == 2 {
			n := copyShape[dim]
			if srcStrides[dim] == 1 && dstStrides[dim] == 1 {
				byteLen := n * itemSize
				srcStart := srcIdx * itemSize
				dstStart := dstIdx * itemSize
				copy(dst[dstStart:dstStart+byteLen], src[srcStart:srcStart+byteLen])

				return
			}
			for i := 0; i < n; i++ {
				srcStart := (srcIdx + i*srcStrides[dim]) * itemSize
				dstStart := (dstIdx + i*dstStrides[dim]) * itemSize
				copy(dst[dstStart:dstStart+itemSize], src[srcStart:srcStart+itemSize])
			}

			return
		}

		for i := 0; i < copyShape[dim]; i++ {
			iterate(dim+1, srcIdx+i*srcStrides[dim], dstIdx+i*dstStrides[dim])
		}
	}

	iterate(0, startSrcIdx, startDstIdx)
}

// Extract copies the sub-region [crop[i][0], crop[i][1]) of each axis i out
// of src (shaped shape, itemSize bytes per element) into a freshly
// allocated contiguous buffer. It is the writer-side counterpart of
// create_shard_worker's numpy slicing: used to cut a macro-chunk out of a
// full volume, and a micro-chunk out of a macro-chunk.
func Extract(src []byte, shape [3]int, crop [3][2]int, itemSize int) []byte {
	outShape := [3]int{
		crop[0][1] - crop[0][0],
		crop[1][1] - crop[1][0],
		crop[2][1] - crop[2][0],
	}

	n := outShape[0] * outShape[1] * outShape[2]
	out := make([]byte, n*itemSize)

	srcStrides := strides(shape)
	dstStrides := strides(outShape)
	srcOffset := [3]int{crop[0][0], crop[1][0], crop[2][0]}

	copyND(out, dstStrides, [3]int{0, 0, 0}, src, srcStrides, srcOffset, outShape, itemSize)

	return out
}

// Paste copies src (shaped srcShape) into dst (shaped dstShape) at
// dstOrigin, taking only the sub-window [srcWindow[i][0], srcWindow[i][1])
// of src along each axis. It is the reader-side counterpart used to
// assemble decoded micro-chunks into a query's output buffer, mirroring
// sisf_chunk.__getitem__'s running-origin bookkeeping.
func Paste(dst []byte, dstShape [3]int, dstOrigin [3]int, src []byte, srcShape [3]int, srcWindow [3][2]int, itemSize int) {
	copyShape := [3]int{
		srcWindow[0][1] - srcWindow[0][0],
		srcWindow[1][1] - srcWindow[1][0],
		srcWindow[2][1] - srcWindow[2][0],
	}

	dstStrides := strides(dstShape)
	srcStrides := strides(srcShape)
	srcOffset := [3]int{srcWindow[0][0], srcWindow[1][0], srcWindow[2][0]}

	copyND(dst, dstStrides, dstOrigin, src, srcStrides, srcOffset, copyShape, itemSize)
}
