// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training the Conv2D layer.
//
// # Basic Usage
//
//	optimizer := optim.NewSGD(layer.Parameters(), optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//
//	for step := range steps {
//	    output, _ := layer.Forward(input)
//	    _, grad, _ := nn.MSELoss(output, targets)
//	    _, _ = layer.Backward(grad)
//	    _ = optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"github.com/born-ml/conv2d/internal/optim"
	"github.com/born-ml/conv2d/nn"
)

// Optimizer is the interface for all optimizers.
type Optimizer = optim.Optimizer

// SGD implements Stochastic Gradient Descent with optional momentum.
type SGD = optim.SGD

// SGDConfig holds configuration for SGD.
type SGDConfig = optim.SGDConfig

// Adam implements the Adam optimizer.
type Adam = optim.Adam

// AdamConfig holds configuration for Adam.
type AdamConfig = optim.AdamConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// NewAdam creates a new Adam optimizer.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}
