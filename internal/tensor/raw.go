package tensor

import (
	"fmt"
	"unsafe"
)

// Device is where a tensor's memory lives. Only CPU has a backend; a CUDA
// tensor reaching the CPU kernels is rejected as a precondition failure.
type Device int

// Devices.
const (
	CPU Device = iota
	CUDA
)

func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	}
	return fmt.Sprintf("Device(%d)", int(d))
}

// RawTensor is an opaque buffer handle plus its shape descriptor.
//
// The kernels only ever see a RawTensor after it has been validated as a
// contiguous, row-major float32 buffer on the backend's device. Views created
// with View may carry arbitrary strides and are rejected by that validation.
type RawTensor struct {
	data   []byte // whole allocation, shared with views
	shape  Shape
	stride []int // in elements
	dtype  DataType
	device Device
	offset int // first element of this view inside data
}

// NewRaw allocates a zero-filled row-major tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("new tensor %v: %w", shape, err)
	}
	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

func (r *RawTensor) Shape() Shape     { return r.shape }
func (r *RawTensor) Strides() []int   { return r.stride }
func (r *RawTensor) DType() DataType  { return r.dtype }
func (r *RawTensor) Device() Device   { return r.device }
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// ByteSize is the logical size in bytes, ignoring strides.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the underlying bytes from the view's first element onward.
// Writes are visible through every view of the same allocation.
func (r *RawTensor) Data() []byte {
	return r.data[r.offset*r.dtype.Size():]
}

// IsContiguous reports whether the tensor is laid out row-major without gaps.
func (r *RawTensor) IsContiguous() bool {
	want := r.shape.ComputeStrides()
	for i, s := range r.stride {
		// Strides of size-1 dimensions never address memory.
		if r.shape[i] != 1 && s != want[i] {
			return false
		}
	}
	return true
}

// AsFloat32 reinterprets the data in place as NumElements float32 values.
// It panics unless the tensor is Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor: AsFloat32 on %s tensor", r.dtype))
	}
	data := r.Data()
	//nolint:gosec // length bounded by NumElements, which View and NewRaw keep inside data
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// Zero clears every element of a contiguous tensor.
func (r *RawTensor) Zero() {
	clear(r.Data()[:r.ByteSize()])
}

// View returns a tensor sharing r's buffer with the given shape, element strides
// and element offset. The view must stay inside the underlying buffer.
//
// Example:
//
//	// Transposed [W, H] view over a contiguous [H, W] tensor.
//	t, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	v, _ := t.View(tensor.Shape{3, 2}, []int{1, 3}, 0)
func (r *RawTensor) View(shape Shape, strides []int, offset int) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("view %v: %w", shape, err)
	}
	if len(strides) != len(shape) {
		return nil, fmt.Errorf("view: %d strides for %d dimensions", len(strides), len(shape))
	}

	last := offset
	for i, dim := range shape {
		if strides[i] < 0 {
			return nil, fmt.Errorf("view: negative stride %d at index %d", strides[i], i)
		}
		last += (dim - 1) * strides[i]
	}
	capacity := len(r.data) / r.dtype.Size()
	if offset < 0 || last >= capacity || offset+shape.NumElements() > capacity {
		return nil, fmt.Errorf("view: shape %v with strides %v at offset %d exceeds %d elements",
			shape, strides, offset, capacity)
	}

	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: append([]int(nil), strides...),
		dtype:  r.dtype,
		device: r.device,
		offset: offset,
	}, nil
}
