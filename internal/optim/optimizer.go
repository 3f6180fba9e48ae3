// Package optim implements optimization algorithms for training the Conv2D layer.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Design inspired by PyTorch's torch.optim.
//
// Example usage:
//
//	optimizer := optim.NewSGD(layer.Parameters(), optim.SGDConfig{LR: 0.01})
//
//	for step := range steps {
//	    output, _ := layer.Forward(input)
//	    loss, grad, _ := nn.MSELoss(output, targets)
//	    _, _ = layer.Backward(grad)
//
//	    optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/conv2d/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies the gradient stored on each parameter.
	// Parameters without a gradient are skipped.
	Step() error

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// gradientOf returns the gradient of param as float32 data, or nil when
// the parameter has no gradient yet.
func gradientOf(param *nn.Parameter) ([]float32, error) {
	if param == nil || param.Grad() == nil {
		return nil, nil
	}
	grad := param.Grad()
	if !grad.Shape().Equal(param.Tensor().Shape()) {
		return nil, fmt.Errorf("optim: %s: gradient shape %v != parameter shape %v",
			param.Name(), grad.Shape(), param.Tensor().Shape())
	}
	return grad.AsFloat32(), nil
}
