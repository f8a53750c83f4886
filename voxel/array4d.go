package voxel

import (
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

// Array4D is a row-major (C, X, Y, Z) volume: one contiguous 3-D Array per
// channel, concatenated channel-major. It is the archive-level counterpart
// of Array, mirroring the (channel_count, *size) shape exposed by
// original_source/sisf.py's sisf.shape property.
type Array4D struct {
	Channels int
	Shape    [3]int // per-channel (X, Y, Z) extent
	Dtype    format.Dtype
	Data     []byte
}

// NewArray4D allocates a zero-filled Array4D.
func NewArray4D(channels int, shape [3]int, dtype format.Dtype) (*Array4D, error) {
	itemSize, err := dtype.ByteSize()
	if err != nil {
		return nil, err
	}

	n := channels * shape[0] * shape[1] * shape[2]

	return &Array4D{
		Channels: channels,
		Shape:    shape,
		Dtype:    dtype,
		Data:     make([]byte, n*itemSize),
	}, nil
}

// Channel returns the Array backing channel c, sharing storage with a.
func (a *Array4D) Channel(c int) (*Array, error) {
	if c < 0 || c >= a.Channels {
		return nil, errs.ErrIndexOutOfRange
	}

	itemSize, err := a.Dtype.ByteSize()
	if err != nil {
		return nil, err
	}

	perChannel := a.Shape[0] * a.Shape[1] * a.Shape[2] * itemSize
	start := c * perChannel

	return &Array{
		Shape: a.Shape,
		Dtype: a.Dtype,
		Data:  a.Data[start : start+perChannel],
	}, nil
}
