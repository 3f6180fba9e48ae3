// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package conv_test

import (
	"fmt"

	"github.com/born-ml/conv2d/conv"
	"github.com/born-ml/conv2d/tensor"
)

func ExampleResolve() {
	oh, ow, err := conv.Resolve(28, 28, 5, 5, 1, 1, 2, 2)
	fmt.Println(oh, ow, err)

	_, _, err = conv.Resolve(4, 4, 7, 7, 1, 1, 1, 1)
	fmt.Println(err)
	// Output:
	// 28 28 <nil>
	// conv2d resolve: invalid configuration: kernel height 7 exceeds padded input height 6
}

func ExampleNewParams() {
	p, err := conv.NewParams(tensor.Shape{2, 3, 32, 32}, tensor.Shape{16, 3, 3, 3}, [2]int{2, 2}, [2]int{1, 1})
	if err != nil {
		panic(err)
	}
	fmt.Println(p.OutputShape())
	// Output:
	// [2 16 16 16]
}
