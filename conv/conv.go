// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package conv exposes the convolution parameter contract: the output shape
// resolver, the per-call parameter descriptor and the error kinds returned by
// every convolution entry point.
//
// Errors are matched with errors.Is against the sentinel kinds, or unpacked
// with errors.As into *Error for the failing argument:
//
//	_, err := backend.Conv2D(input, weight, stride, padding)
//	switch {
//	case errors.Is(err, conv.ErrInvalidConfig):
//	    // stride, padding or kernel size rejected
//	case errors.Is(err, conv.ErrShapeMismatch):
//	    // channel count or buffer shape disagrees
//	case errors.Is(err, conv.ErrPrecondition):
//	    // nil, non-contiguous, wrong device/dtype/rank buffer
//	}
package conv

import (
	"github.com/born-ml/conv2d/internal/conv"
	"github.com/born-ml/conv2d/tensor"
)

// Params describes one convolution invocation.
type Params = conv.Params

// Error is the error type returned by convolution entry points.
type Error = conv.Error

// Error kinds.
var (
	ErrPrecondition  = conv.ErrPrecondition
	ErrInvalidConfig = conv.ErrInvalidConfig
	ErrShapeMismatch = conv.ErrShapeMismatch
)

// Resolve computes the output extent (Oh, Ow) of a convolution of an h×w
// input with an r×s kernel, stride (u, v) and zero padding (p, q).
func Resolve(h, w, r, s, u, v, p, q int) (oh, ow int, err error) {
	return conv.Resolve(h, w, r, s, u, v, p, q)
}

// NewParams derives the convolution parameters from the input and weight shapes.
func NewParams(input, weight tensor.Shape, stride, padding [2]int) (Params, error) {
	return conv.NewParams(input, weight, stride, padding)
}
