// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the buffer handle consumed by the convolution
// operator.
//
// # Overview
//
// A RawTensor is a flat byte buffer, shared with its views, plus a shape,
// element strides, an element offset, a data type and a device tag. The
// convolution entry points accept only contiguous float32 CPU tensors of
// rank 4; other tensors are rejected with a precondition error.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/conv2d/backend/cpu"
//	    "github.com/born-ml/conv2d/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    input, _ := tensor.Arange(tensor.Shape{1, 1, 4, 4})
//	    weight, _ := tensor.Full(tensor.Shape{1, 1, 2, 2}, 1)
//
//	    output, err := backend.Conv2D(input, weight, [2]int{1, 1}, [2]int{0, 0})
//	    // output: [1, 1, 3, 3] = 10 14 18 / 26 30 34 / 42 46 50
//	}
//
// # Layout
//
// Tensors are row-major (C order). Views created with RawTensor.View may be
// strided; use IsContiguous to check before handing them to a kernel.
package tensor
