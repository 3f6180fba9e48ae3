// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/conv2d/internal/tensor"

// Backend defines the convolution entry points a compute backend exposes.
//
// Implementations:
//   - backend/cpu: pure Go direct convolution
//
// Example:
//
//	backend := cpu.New()
//	output, err := backend.Conv2D(input, weight, [2]int{1, 1}, [2]int{1, 1})
//	gradInput, gradWeight, err := backend.Conv2DBackward(input, gradOutput, weight, [2]int{1, 1}, [2]int{1, 1})
type Backend = tensor.Backend
