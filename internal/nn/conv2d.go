package nn

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/conv2d/internal/autodiff/ops"
	"github.com/born-ml/conv2d/internal/conv"
	"github.com/born-ml/conv2d/internal/tensor"
)

// ErrNoForward is returned by Backward when no forward pass was recorded.
var ErrNoForward = errors.New("conv2d: backward called before forward")

// Conv2DConfig holds the hyperparameters of a Conv2D layer.
type Conv2DConfig struct {
	InChannels  int
	OutChannels int
	KernelSize  [2]int // [height, width]
	Stride      [2]int // Defaults to [1, 1] when zero.
	Padding     [2]int
	Rand        *rand.Rand // Source for weight initialisation; nil uses math/rand.
}

// Conv2D is a 2D convolutional layer without bias.
//
// Performs cross-correlation: output = Conv2D(input, weight)
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding_h - kernel_h) / stride_h + 1
//	out_w = (width + 2*padding_w - kernel_w) / stride_w + 1
//
// Example:
//
//	// 1 channel -> 6 channels, 5x5 kernel
//	layer, err := nn.NewConv2D(nn.Conv2DConfig{InChannels: 1, OutChannels: 6, KernelSize: [2]int{5, 5}}, backend)
//
//	output, err := layer.Forward(input) // [32, 1, 28, 28] -> [32, 6, 24, 24]
//	gradInput, err := layer.Backward(gradOutput)
type Conv2D struct {
	inChannels  int
	outChannels int
	kernelSize  [2]int
	stride      [2]int
	padding     [2]int
	rng         *rand.Rand

	weight *Parameter // [out_channels, in_channels, kernel_h, kernel_w]

	last    *ops.Conv2DOp
	backend tensor.Backend
}

// Verify that Conv2D implements Module.
var _ Module = (*Conv2D)(nil)

// NewConv2D creates a new 2D convolutional layer with Kaiming uniform
// initialization (a = sqrt(5)).
func NewConv2D(cfg Conv2DConfig, backend tensor.Backend) (*Conv2D, error) {
	if cfg.Stride == [2]int{} {
		cfg.Stride = [2]int{1, 1}
	}
	switch {
	case cfg.InChannels <= 0 || cfg.OutChannels <= 0:
		return nil, fmt.Errorf("conv2d: invalid channels in=%d, out=%d: %w",
			cfg.InChannels, cfg.OutChannels, conv.ErrInvalidConfig)
	case cfg.KernelSize[0] <= 0 || cfg.KernelSize[1] <= 0:
		return nil, fmt.Errorf("conv2d: invalid kernel size %v: %w", cfg.KernelSize, conv.ErrInvalidConfig)
	case cfg.Stride[0] <= 0 || cfg.Stride[1] <= 0:
		return nil, fmt.Errorf("conv2d: invalid stride %v: %w", cfg.Stride, conv.ErrInvalidConfig)
	case cfg.Padding[0] < 0 || cfg.Padding[1] < 0:
		return nil, fmt.Errorf("conv2d: invalid padding %v: %w", cfg.Padding, conv.ErrInvalidConfig)
	}

	c := &Conv2D{
		inChannels:  cfg.InChannels,
		outChannels: cfg.OutChannels,
		kernelSize:  cfg.KernelSize,
		stride:      cfg.Stride,
		padding:     cfg.Padding,
		rng:         cfg.Rand,
		backend:     backend,
	}
	if err := c.ResetParameters(); err != nil {
		return nil, err
	}
	return c, nil
}

// ResetParameters re-draws the weight from U(-1/sqrt(fan_in), 1/sqrt(fan_in))
// and drops any stored gradient.
func (c *Conv2D) ResetParameters() error {
	// fan_in = in_channels * kernel_h * kernel_w
	fanIn := c.inChannels * c.kernelSize[0] * c.kernelSize[1]
	weight, err := KaimingUniform(c.WeightShape(), fanIn, math.Sqrt(5), c.rng)
	if err != nil {
		return fmt.Errorf("conv2d: init weight: %w", err)
	}
	c.weight = NewParameter("conv2d.weight", weight)
	c.last = nil
	return nil
}

// Forward performs the forward pass and records it for Backward.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, out_channels, out_h, out_w].
func (c *Conv2D) Forward(input *tensor.RawTensor) (*tensor.RawTensor, error) {
	op, err := ops.Forward(c.backend, input, c.weight.Tensor(), c.stride, c.padding)
	if err != nil {
		return nil, err
	}
	c.last = op
	return op.Output(), nil
}

// Backward propagates gradOutput through the last forward pass. It returns
// the input gradient and stores the weight gradient on the weight parameter.
func (c *Conv2D) Backward(gradOutput *tensor.RawTensor) (*tensor.RawTensor, error) {
	if c.last == nil {
		return nil, ErrNoForward
	}
	grads, err := c.last.Backward(gradOutput, c.backend)
	if err != nil {
		return nil, err
	}
	c.weight.SetGrad(grads[1])
	return grads[0], nil
}

// Weight returns the weight parameter.
func (c *Conv2D) Weight() *Parameter {
	return c.weight
}

// Parameters returns all trainable parameters.
func (c *Conv2D) Parameters() []*Parameter {
	return []*Parameter{c.weight}
}

// String returns a string representation of the layer.
func (c *Conv2D) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d), stride=(%d, %d), padding=(%d, %d), bias=false)",
		c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1],
		c.stride[0], c.stride[1],
		c.padding[0], c.padding[1])
}

// OutChannels returns the number of output channels.
func (c *Conv2D) OutChannels() int {
	return c.outChannels
}

// InChannels returns the number of input channels.
func (c *Conv2D) InChannels() int {
	return c.inChannels
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D) KernelSize() [2]int {
	return c.kernelSize
}

// Stride returns the stride [height, width].
func (c *Conv2D) Stride() [2]int {
	return c.stride
}

// Padding returns the padding [height, width].
func (c *Conv2D) Padding() [2]int {
	return c.padding
}

// WeightShape returns [out_channels, in_channels, kernel_h, kernel_w].
func (c *Conv2D) WeightShape() tensor.Shape {
	return tensor.Shape{c.outChannels, c.inChannels, c.kernelSize[0], c.kernelSize[1]}
}

// ComputeOutputSize computes output spatial dimensions for given input size.
//
// Returns: [out_height, out_width].
func (c *Conv2D) ComputeOutputSize(inputH, inputW int) ([2]int, error) {
	outH, outW, err := conv.Resolve(inputH, inputW,
		c.kernelSize[0], c.kernelSize[1],
		c.stride[0], c.stride[1],
		c.padding[0], c.padding[1])
	if err != nil {
		return [2]int{}, err
	}
	return [2]int{outH, outW}, nil
}
