// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/conv2d/internal/tensor"
)

// RawTensor is a buffer handle plus its shape descriptor.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Zero-copy float32 access via AsFloat32()
//   - Strided views via View(), which share the parent's memory
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
//	row, _ := raw.View(tensor.Shape{1, 1, 1, 4}, []int{16, 16, 4, 1}, 4)
type RawTensor = tensor.RawTensor

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// DataType identifies the element type of a tensor.
type DataType = tensor.DataType

// Device identifies where a tensor's memory lives.
type Device = tensor.Device

// Element types. The kernels accept Float32 only.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Devices. Only CPU has a backend.
const (
	CPU  = tensor.CPU
	CUDA = tensor.CUDA
)

// Errors wrapped by Shape.Dims4 and Shape.Validate.
var (
	ErrRank   = tensor.ErrRank
	ErrExtent = tensor.ErrExtent
)

// NewRaw allocates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromFloat32 creates a CPU float32 tensor holding a copy of data.
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat32(data, shape)
}

// Zeros creates a zero-filled CPU float32 tensor.
func Zeros(shape Shape) (*RawTensor, error) {
	return tensor.Zeros(shape)
}

// Full creates a CPU float32 tensor filled with value.
func Full(shape Shape, value float32) (*RawTensor, error) {
	return tensor.Full(shape, value)
}

// Arange creates a CPU float32 tensor holding 0, 1, 2, ... in row-major order.
func Arange(shape Shape) (*RawTensor, error) {
	return tensor.Arange(shape)
}

// Uniform creates a CPU float32 tensor with values drawn from U(-bound, bound).
func Uniform(shape Shape, bound float64, rng *rand.Rand) (*RawTensor, error) {
	return tensor.Uniform(shape, bound, rng)
}
