// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the Conv2D layer and its training helpers.
//
// # Basic Usage
//
//	backend := cpu.New()
//	layer, err := nn.NewConv2D(nn.Conv2DConfig{
//	    InChannels:  3,
//	    OutChannels: 16,
//	    KernelSize:  [2]int{3, 3},
//	    Padding:     [2]int{1, 1},
//	}, backend)
//
//	output, err := layer.Forward(input)
//	loss, grad, err := nn.MSELoss(output, targets)
//	gradInput, err := layer.Backward(grad)
package nn

import (
	"math/rand"

	"github.com/born-ml/conv2d/internal/nn"
	"github.com/born-ml/conv2d/tensor"
)

// Module interface defines the common interface for neural network modules.
type Module = nn.Module

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Conv2D represents a 2D convolutional layer without bias.
type Conv2D = nn.Conv2D

// Conv2DConfig holds the hyperparameters of a Conv2D layer.
type Conv2DConfig = nn.Conv2DConfig

// ErrNoForward is returned by Conv2D.Backward before any Forward call.
var ErrNoForward = nn.ErrNoForward

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	conv, err := nn.NewConv2D(nn.Conv2DConfig{InChannels: 1, OutChannels: 32, KernelSize: [2]int{3, 3}}, backend)
func NewConv2D(cfg Conv2DConfig, backend tensor.Backend) (*Conv2D, error) {
	return nn.NewConv2D(cfg, backend)
}

// MSELoss returns mean((predictions - targets)²) and its gradient w.r.t.
// predictions.
func MSELoss(predictions, targets *tensor.RawTensor) (float64, *tensor.RawTensor, error) {
	return nn.MSELoss(predictions, targets)
}

// KaimingUniform draws a tensor from the Kaiming uniform distribution.
func KaimingUniform(shape tensor.Shape, fanIn int, a float64, rng *rand.Rand) (*tensor.RawTensor, error) {
	return nn.KaimingUniform(shape, fanIn, a, rng)
}
