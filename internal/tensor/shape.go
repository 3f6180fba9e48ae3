package tensor

import (
	"errors"
	"fmt"
)

// Errors returned by Shape.Dims4.
var (
	ErrRank   = errors.New("tensor: wrong rank")
	ErrExtent = errors.New("tensor: non-positive extent")
)

// Shape lists the extent of each dimension, outermost first.
type Shape []int

// NumElements returns the product of the extents. A rank-0 shape holds one
// element.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate fails when any extent is zero or negative.
func (s Shape) Validate() error {
	for i, d := range s {
		if d <= 0 {
			return fmt.Errorf("%w: dim %d is %d", ErrExtent, i, d)
		}
	}
	return nil
}

// Dims4 unpacks a rank-4 shape such as [N, C, H, W] or [K, C, R, S].
// It wraps ErrRank when s is not rank 4 and ErrExtent when an extent is not
// positive.
func (s Shape) Dims4() (d0, d1, d2, d3 int, err error) {
	if len(s) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("%w: want 4 dims, got %d", ErrRank, len(s))
	}
	if err := s.Validate(); err != nil {
		return 0, 0, 0, 0, err
	}
	return s[0], s[1], s[2], s[3], nil
}

// Equal reports whether s and other have the same rank and extents.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, d := range s {
		if other[i] != d {
			return false
		}
	}
	return true
}

func (s Shape) Clone() Shape {
	return append(Shape(make([]int, 0, len(s))), s...)
}

// ComputeStrides returns the row-major element strides of s: the innermost
// stride is 1 and each outer stride is the next stride times the next extent.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}
