// Package conv holds the parameter contract shared by the forward and backward
// convolution kernels: the Params descriptor, the output shape resolver and the
// validation applied to caller buffers before any kernel runs.
package conv

import (
	"errors"
	"fmt"

	"github.com/born-ml/conv2d/internal/tensor"
)

// Params describes one convolution invocation.
//
// Input is [N, C, H, W], weight is [K, C, R, S] and output is [N, K, Oh, Ow].
// U and V are the strides along height and width, P and Q the zero padding.
// A Params value is built per call by NewParams and never mutated.
type Params struct {
	N, C, H, W int
	K, R, S    int
	U, V       int
	P, Q       int
	Oh, Ow     int
}

// Resolve computes the output extent of a convolution:
//
//	Oh = (h - r + 2p)/u + 1
//	Ow = (w - s + 2q)/v + 1
//
// It fails with ErrInvalidConfig when a stride is not positive, a padding is
// negative, or the kernel does not fit inside the padded input.
func Resolve(h, w, r, s, u, v, p, q int) (oh, ow int, err error) {
	switch {
	case h <= 0 || w <= 0 || r <= 0 || s <= 0:
		return 0, 0, newError(ErrInvalidConfig, "resolve", "extent",
			"input %dx%d and kernel %dx%d must be positive", h, w, r, s)
	case u <= 0 || v <= 0:
		return 0, 0, newError(ErrInvalidConfig, "resolve", "stride", "must be positive, got [%d %d]", u, v)
	case p < 0 || q < 0:
		return 0, 0, newError(ErrInvalidConfig, "resolve", "padding", "must be non-negative, got [%d %d]", p, q)
	case r > h+2*p:
		return 0, 0, newError(ErrInvalidConfig, "resolve", "kernel",
			"height %d exceeds padded input height %d", r, h+2*p)
	case s > w+2*q:
		return 0, 0, newError(ErrInvalidConfig, "resolve", "kernel",
			"width %d exceeds padded input width %d", s, w+2*q)
	}

	oh = (h-r+2*p)/u + 1
	ow = (w-s+2*q)/v + 1
	return oh, ow, nil
}

// NewParams derives the convolution parameters from the input and weight
// shapes. Both forward and backward build their Params through this function
// so the gradient shapes always match what the forward pass produced.
func NewParams(input, weight tensor.Shape, stride, padding [2]int) (Params, error) {
	n, c, h, w, err := input.Dims4()
	if err != nil {
		return Params{}, shapeError("input", "[N,C,H,W]", err)
	}
	k, wc, r, s, err := weight.Dims4()
	if err != nil {
		return Params{}, shapeError("weight", "[K,C,R,S]", err)
	}
	if wc != c {
		return Params{}, newError(ErrShapeMismatch, "params", "weight",
			"has %d input channels, input has %d", wc, c)
	}

	p := Params{
		N: n, C: c, H: h, W: w,
		K: k, R: r, S: s,
		U: stride[0], V: stride[1],
		P: padding[0], Q: padding[1],
	}

	oh, ow, err := Resolve(p.H, p.W, p.R, p.S, p.U, p.V, p.P, p.Q)
	if err != nil {
		return Params{}, err
	}
	p.Oh, p.Ow = oh, ow
	return p, nil
}

// shapeError maps a Shape.Dims4 failure onto the error taxonomy: a wrong rank
// is a caller precondition, a non-positive extent an invalid configuration.
func shapeError(arg, layout string, err error) error {
	if errors.Is(err, tensor.ErrRank) {
		return newError(ErrPrecondition, "params", arg, "must be 4D %s: %v", layout, err)
	}
	return newError(ErrInvalidConfig, "params", arg, "%v", err)
}

// InputShape returns [N, C, H, W].
func (p Params) InputShape() tensor.Shape {
	return tensor.Shape{p.N, p.C, p.H, p.W}
}

// WeightShape returns [K, C, R, S].
func (p Params) WeightShape() tensor.Shape {
	return tensor.Shape{p.K, p.C, p.R, p.S}
}

// OutputShape returns [N, K, Oh, Ow].
func (p Params) OutputShape() tensor.Shape {
	return tensor.Shape{p.N, p.K, p.Oh, p.Ow}
}

// String returns a compact description of the invocation.
func (p Params) String() string {
	return fmt.Sprintf("Conv2D(input=[%d %d %d %d], weight=[%d %d %d %d], stride=[%d %d], padding=[%d %d], output=[%d %d %d %d])",
		p.N, p.C, p.H, p.W, p.K, p.C, p.R, p.S, p.U, p.V, p.P, p.Q, p.N, p.K, p.Oh, p.Ow)
}
