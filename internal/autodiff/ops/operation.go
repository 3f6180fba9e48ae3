// Package ops defines the differentiable operations recorded during a forward
// pass.
//
// An operation saves what its backward pass needs (inputs, hyperparameters)
// and turns the gradient of its output into gradients of its inputs. The
// arithmetic itself is delegated to a tensor.Backend.
package ops

import "github.com/born-ml/conv2d/internal/tensor"

// Operation represents a differentiable operation.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// The returned slice is aligned with Inputs.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) ([]*tensor.RawTensor, error)

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
