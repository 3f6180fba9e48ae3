package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawAllTypes(t *testing.T) {
	types := []struct {
		dtype       DataType
		elementSize int
	}{
		{Float32, 4},
		{Float64, 8},
	}

	shape := Shape{2, 3}
	for _, tt := range types {
		raw, err := NewRaw(shape, tt.dtype, CPU)
		if err != nil {
			t.Fatalf("NewRaw(%v, %v) failed: %v", shape, tt.dtype, err)
		}

		if raw.DType() != tt.dtype {
			t.Errorf("DType = %v, want %v", raw.DType(), tt.dtype)
		}

		expectedByteSize := 6 * tt.elementSize // 2*3 elements
		if raw.ByteSize() != expectedByteSize {
			t.Errorf("ByteSize = %d, want %d for type %v", raw.ByteSize(), expectedByteSize, tt.dtype)
		}
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	invalidShapes := []Shape{
		{0},
		{-1},
		{2, 0},
		{2, -3},
	}

	for _, shape := range invalidShapes {
		_, err := NewRaw(shape, Float32, CPU)
		if err == nil {
			t.Errorf("NewRaw(%v) should fail but didn't", shape)
		}
	}
}

func TestNewRawIsZeroFilled(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3, 4, 5}, Float32, CPU)
	require.NoError(t, err)
	for i, v := range raw.AsFloat32() {
		require.Zerof(t, v, "element %d", i)
	}
}

func TestRawTensorAsWrongTypePanics(t *testing.T) {
	raw32, _ := NewRaw(Shape{2}, Float32, CPU)
	assert.NotPanics(t, func() { _ = raw32.AsFloat32() })

	raw64, _ := NewRaw(Shape{2}, Float64, CPU)
	assert.Panics(t, func() { _ = raw64.AsFloat32() })
}

func TestRawTensorIsContiguous(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)
	assert.True(t, raw.IsContiguous())

	// Transposed view.
	transposed, err := raw.View(Shape{3, 2}, []int{1, 3}, 0)
	require.NoError(t, err)
	assert.False(t, transposed.IsContiguous())

	// A row-major view of the same memory is contiguous.
	flat, err := raw.View(Shape{6}, []int{1}, 0)
	require.NoError(t, err)
	assert.True(t, flat.IsContiguous())

	// Size-1 dimensions may carry any stride.
	row, err := raw.View(Shape{1, 3}, []int{99, 1}, 3)
	require.NoError(t, err)
	assert.True(t, row.IsContiguous())
}

func TestRawTensorViewSharesBuffer(t *testing.T) {
	raw, err := Arange(Shape{2, 3})
	require.NoError(t, err)

	row, err := raw.View(Shape{1, 3}, []int{3, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4, 5}, row.AsFloat32())

	row.AsFloat32()[0] = 42
	assert.Equal(t, float32(42), raw.AsFloat32()[3])
}

func TestRawTensorViewOutOfBounds(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)

	tests := []struct {
		name    string
		shape   Shape
		strides []int
		offset  int
	}{
		{"too many elements", Shape{7}, []int{1}, 0},
		{"stride past end", Shape{2, 3}, []int{4, 1}, 0},
		{"offset past end", Shape{1, 3}, []int{3, 1}, 4},
		{"negative offset", Shape{3}, []int{1}, -1},
		{"negative stride", Shape{3}, []int{-1}, 2},
		{"rank mismatch", Shape{2, 3}, []int{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := raw.View(tt.shape, tt.strides, tt.offset)
			assert.Error(t, err)
		})
	}
}

func TestRawTensorZero(t *testing.T) {
	raw, err := Full(Shape{3, 3}, 7)
	require.NoError(t, err)
	raw.Zero()
	assert.Equal(t, make([]float32, 9), raw.AsFloat32())
}

func TestFromFloat32(t *testing.T) {
	src := []float32{1, 2, 3, 4}
	raw, err := FromFloat32(src, Shape{1, 1, 2, 2})
	require.NoError(t, err)

	src[0] = 100 // the tensor holds a copy
	assert.Equal(t, []float32{1, 2, 3, 4}, raw.AsFloat32())
	assert.Equal(t, CPU, raw.Device())
	assert.Equal(t, Float32, raw.DType())

	_, err = FromFloat32(src, Shape{3})
	assert.Error(t, err)
}

func TestUniformBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	raw, err := Uniform(Shape{64, 64}, 0.5, rng)
	require.NoError(t, err)
	for _, v := range raw.AsFloat32() {
		require.GreaterOrEqual(t, v, float32(-0.5))
		require.LessOrEqual(t, v, float32(0.5))
	}
}

func TestShapeComputeStrides(t *testing.T) {
	assert.Equal(t, []int{60, 20, 5, 1}, Shape{2, 3, 4, 5}.ComputeStrides())
	assert.Equal(t, []int{}, Shape{}.ComputeStrides())
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.True(t, Shape{1, 2}.Equal(Shape{1, 2}))
	assert.False(t, Shape{1, 2}.Equal(Shape{2, 1}))
	assert.False(t, Shape{1, 2}.Equal(Shape{1, 2, 1}))
}

func TestDataTypeAndDeviceNames(t *testing.T) {
	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, "float64", Float64.String())
	assert.Equal(t, "unknown", DataType(9).String())
	assert.Panics(t, func() { _ = DataType(9).Size() })

	assert.Equal(t, "CPU", CPU.String())
	assert.Equal(t, "CUDA", CUDA.String())
	assert.Equal(t, "Device(7)", Device(7).String())
}
