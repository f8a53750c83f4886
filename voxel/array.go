package voxel

import (
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/errs"
	"github.com/Cai-Lab-at-University-of-Michigan/sisf-go/format"
)

// Array is a row-major 3-D (X, Y, Z) array of a single SISF dtype, backed
// by a flat byte slice. Z varies fastest, matching the original
// implementation's C-order numpy arrays.
type Array struct {
	Shape [3]int
	Dtype format.Dtype
	Data  []byte
}

// NewArray allocates a zero-filled Array of the given shape and dtype.
func NewArray(shape [3]int, dtype format.Dtype) (*Array, error) {
	itemSize, err := dtype.ByteSize()
	if err != nil {
		return nil, err
	}

	n := shape[0] * shape[1] * shape[2]

	return &Array{
		Shape: shape,
		Dtype: dtype,
		Data:  make([]byte, n*itemSize),
	}, nil
}

// strides returns the C-order element strides for shape.
func strides(shape [3]int) [3]int {
	return [3]int{shape[1] * shape[2], shape[2], 1}
}

// Validate checks that Data's length matches Shape and Dtype.
func (a *Array) Validate() error {
	itemSize, err := a.Dtype.ByteSize()
	if err != nil {
		return err
	}

	n := a.Shape[0] * a.Shape[1] * a.Shape[2]
	if len(a.Data) != n*itemSize {
		return errs.ErrInvalidDimensions
	}

	return nil
}
