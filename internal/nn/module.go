// Package nn implements the Conv2D layer on top of the convolution backend.
//
// This package provides:
//   - Module interface: Forward plus trainable parameters
//   - Parameter: a weight tensor with its gradient
//   - Conv2D: 2D convolution layer without bias
//   - MSELoss: mean squared error with its gradient
//   - KaimingUniform: weight initialisation
//
// Design inspired by PyTorch's nn.Module.
package nn

import (
	"github.com/born-ml/conv2d/internal/tensor"
)

// Module is the base interface for neural network components.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.RawTensor) (*tensor.RawTensor, error)

	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter
}
