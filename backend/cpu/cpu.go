// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for 2D convolution.
//
// # Overview
//
// The backend implements direct (non-im2col) NCHW cross-correlation and its
// backward pass. Work is split into independent output rows, input rows and
// filter planes and run on a bounded goroutine pool, so every cell is written
// by exactly one goroutine and results do not depend on scheduling.
//
// # Configuration
//
// New reads CONV2D_NUM_THREADS, CONV2D_MIN_CHUNK and CONV2D_SEQUENTIAL from
// the environment. NewWithConfig takes an explicit parallel.Config.
package cpu

import (
	internalcpu "github.com/born-ml/conv2d/internal/backend/cpu"
	"github.com/born-ml/conv2d/internal/parallel"
	"github.com/born-ml/conv2d/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Config controls how kernels are split across goroutines.
type Config = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend configured from the environment.
//
// Example:
//
//	import (
//	    "github.com/born-ml/conv2d/backend/cpu"
//	    "github.com/born-ml/conv2d/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.Zeros(tensor.Shape{1, 3, 32, 32})
//	    w, _ := tensor.Uniform(tensor.Shape{8, 3, 3, 3}, 0.2, nil)
//	    y, err := backend.Conv2D(x, w, [2]int{1, 1}, [2]int{1, 1})
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns a parallel configuration using every CPU.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}
