package tensor

import (
	"fmt"
	"math/rand"
)

// FromFloat32 creates a CPU float32 tensor holding a copy of data.
//
// Example:
//
//	t, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d doesn't match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	raw, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		return nil, err
	}
	copy(raw.AsFloat32(), data)
	return raw, nil
}

// Zeros creates a zero-filled CPU float32 tensor.
func Zeros(shape Shape) (*RawTensor, error) {
	return NewRaw(shape, Float32, CPU)
}

// Full creates a CPU float32 tensor filled with value.
func Full(shape Shape, value float32) (*RawTensor, error) {
	raw, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		return nil, err
	}
	data := raw.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return raw, nil
}

// Arange creates a CPU float32 tensor holding 0, 1, 2, ... in row-major order.
func Arange(shape Shape) (*RawTensor, error) {
	raw, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		return nil, err
	}
	data := raw.AsFloat32()
	for i := range data {
		data[i] = float32(i)
	}
	return raw, nil
}

// Uniform creates a CPU float32 tensor with values drawn from U(-bound, bound).
// A nil rng uses the global math/rand source.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
func Uniform(shape Shape, bound float64, rng *rand.Rand) (*RawTensor, error) {
	raw, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		return nil, err
	}
	data := raw.AsFloat32()
	for i := range data {
		var u float64
		if rng != nil {
			u = rng.Float64()
		} else {
			u = rand.Float64() //nolint:gosec // not security-critical
		}
		data[i] = float32((u*2.0 - 1.0) * bound)
	}
	return raw, nil
}
