package ops

import (
	"fmt"

	"github.com/born-ml/conv2d/internal/tensor"
)

// Verify that Conv2DOp implements Operation.
var _ Operation = (*Conv2DOp)(nil)

// Conv2DOp records a 2D convolution for the backward pass.
//
// Forward: output = Conv2D(input, weight, stride, padding)
//
// Backward (gradients):
//   - d_input:  transposed convolution of d_output with weight
//   - d_weight: correlation of input with d_output
//
// References:
//   - "A guide to convolution arithmetic for deep learning" (Dumoulin & Visin, 2016)
type Conv2DOp struct {
	input   *tensor.RawTensor
	weight  *tensor.RawTensor
	output  *tensor.RawTensor
	stride  [2]int
	padding [2]int
}

// NewConv2DOp creates a new Conv2D operation.
func NewConv2DOp(input, weight, output *tensor.RawTensor, stride, padding [2]int) *Conv2DOp {
	return &Conv2DOp{
		input:   input,
		weight:  weight,
		output:  output,
		stride:  stride,
		padding: padding,
	}
}

// Forward runs the convolution on backend and records it.
func Forward(backend tensor.Backend, input, weight *tensor.RawTensor, stride, padding [2]int) (*Conv2DOp, error) {
	output, err := backend.Conv2D(input, weight, stride, padding)
	if err != nil {
		return nil, err
	}
	return NewConv2DOp(input, weight, output, stride, padding), nil
}

// Inputs returns the input tensors.
func (op *Conv2DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input, op.weight}
}

// Output returns the output tensor.
func (op *Conv2DOp) Output() *tensor.RawTensor {
	return op.output
}

// Stride returns the [height, width] stride of the recorded call.
func (op *Conv2DOp) Stride() [2]int {
	return op.stride
}

// Padding returns the [height, width] padding of the recorded call.
func (op *Conv2DOp) Padding() [2]int {
	return op.padding
}

// Backward computes gradients for Conv2D.
//
// Given:
//   - outputGrad: ∂L/∂output [N, K, Oh, Ow]
//
// Compute:
//   - inputGrad:  ∂L/∂input  [N, C, H, W]
//   - weightGrad: ∂L/∂weight [K, C, R, S]
//
// The saved stride and padding are reused, so the backend derives the same
// output shape as the forward pass did.
func (op *Conv2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error) {
	inputGrad, weightGrad, err := backend.Conv2DBackward(op.input, outputGrad, op.weight, op.stride, op.padding)
	if err != nil {
		return nil, fmt.Errorf("conv2d op: %w", err)
	}
	return []*tensor.RawTensor{inputGrad, weightGrad}, nil
}
