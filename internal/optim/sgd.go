package optim

import (
	"fmt"

	"github.com/born-ml/conv2d/internal/nn"
	"github.com/born-ml/conv2d/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(layer.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*nn.Parameter
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter][]float32
}

// Verify that SGD implements Optimizer.
var _ Optimizer = (*SGD)(nil)

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter][]float32),
	}
}

// Step performs a single optimization step.
//
// Applies gradient descent update to all parameters:
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
func (s *SGD) Step() error {
	for _, param := range s.params {
		grad, err := gradientOf(param)
		if err != nil {
			return err
		}
		if grad == nil {
			// Parameter didn't take part in the backward pass, skip
			continue
		}

		paramData := param.Tensor().AsFloat32()
		if s.momentum == 0 {
			for i, g := range grad {
				paramData[i] -= s.lr * g
			}
			continue
		}

		velocity, ok := s.velocities[param]
		if !ok {
			velocity = make([]float32, len(paramData))
			s.velocities[param] = velocity
		}
		for i, g := range grad {
			velocity[i] = s.momentum*velocity[i] + g
			paramData[i] -= s.lr * velocity[i]
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}

// StateDict returns the optimizer state.
//
// With momentum, this exports a copy of the velocity buffer of each parameter
// that has one. State keys: "velocity.{param_index}".
func (s *SGD) StateDict() (map[string]*tensor.RawTensor, error) {
	stateDict := make(map[string]*tensor.RawTensor)
	if s.momentum == 0 {
		return stateDict, nil
	}

	for i, param := range s.params {
		velocity, ok := s.velocities[param]
		if !ok {
			continue // No velocity yet
		}
		raw, err := tensor.FromFloat32(velocity, param.Tensor().Shape())
		if err != nil {
			return nil, fmt.Errorf("sgd state: %w", err)
		}
		stateDict[fmt.Sprintf("velocity.%d", i)] = raw
	}
	return stateDict, nil
}
