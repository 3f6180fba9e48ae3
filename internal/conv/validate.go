package conv

import (
	"github.com/born-ml/conv2d/internal/tensor"
)

// ValidateBuffer checks that t can be handed to a kernel running on device:
// non-nil, on device, float32, rank 4 and contiguous. op names the entry point
// and name the argument in the returned *Error.
func ValidateBuffer(op, name string, t *tensor.RawTensor, device tensor.Device) error {
	switch {
	case t == nil:
		return newError(ErrPrecondition, op, name, "is nil")
	case t.Device() != device:
		return newError(ErrPrecondition, op, name, "must be a %s tensor, got %s", device, t.Device())
	case t.DType() != tensor.Float32:
		return newError(ErrPrecondition, op, name, "must be float32, got %s", t.DType())
	case len(t.Shape()) != 4:
		_, _, _, _, err := t.Shape().Dims4()
		return newError(ErrPrecondition, op, name, "must be 4D: %v", err)
	case !t.IsContiguous():
		return newError(ErrPrecondition, op, name, "must be contiguous, got strides %v", t.Strides())
	}
	return nil
}

// CheckShape reports ErrShapeMismatch when t's shape differs from want.
func CheckShape(op, name string, t *tensor.RawTensor, want tensor.Shape) error {
	if !t.Shape().Equal(want) {
		return newError(ErrShapeMismatch, op, name, "has shape %v, want %v", t.Shape(), want)
	}
	return nil
}
