package cpu

import (
	"fmt"
	"time"

	"github.com/born-ml/conv2d/internal/conv"
	"github.com/born-ml/conv2d/internal/logutil"
	"github.com/born-ml/conv2d/internal/parallel"
	"github.com/born-ml/conv2d/internal/tensor"
)

// Conv2DBackward computes the gradients of a Conv2D call.
//
// Given gradOutput = ∂L/∂output [N, K, Oh, Ow], returns
//   - gradInput:  ∂L/∂input  [N, C, H, W]
//   - gradWeight: ∂L/∂weight [K, C, R, S]
//
// stride and padding must be the values the matching forward call used;
// gradOutput is checked against the output shape they imply. Both gradients
// are freshly allocated.
//
// References:
//   - "A guide to convolution arithmetic for deep learning" (Dumoulin & Visin, 2016)
func (cpu *CPUBackend) Conv2DBackward(
	input, gradOutput, weight *tensor.RawTensor,
	stride, padding [2]int,
) (gradInput, gradWeight *tensor.RawTensor, err error) {
	p, err := cpu.backwardParams(input, gradOutput, weight, stride, padding)
	if err != nil {
		return nil, nil, err
	}

	gradInput, err = tensor.NewRaw(p.InputShape(), tensor.Float32, cpu.device)
	if err != nil {
		return nil, nil, fmt.Errorf("conv2d backward: failed to create input gradient: %w", err)
	}
	gradWeight, err = tensor.NewRaw(p.WeightShape(), tensor.Float32, cpu.device)
	if err != nil {
		return nil, nil, fmt.Errorf("conv2d backward: failed to create weight gradient: %w", err)
	}

	cpu.runBackward(p, input, gradOutput, weight, gradInput, gradWeight)
	return gradInput, gradWeight, nil
}

// Conv2DBackwardInto is Conv2DBackward writing into caller-allocated gradient
// buffers shaped like input and weight. Both are fully overwritten.
func (cpu *CPUBackend) Conv2DBackwardInto(
	gradInput, gradWeight, input, gradOutput, weight *tensor.RawTensor,
	stride, padding [2]int,
) error {
	p, err := cpu.backwardParams(input, gradOutput, weight, stride, padding)
	if err != nil {
		return err
	}
	if err := conv.ValidateBuffer("backward", "grad_input", gradInput, cpu.device); err != nil {
		return err
	}
	if err := conv.CheckShape("backward", "grad_input", gradInput, p.InputShape()); err != nil {
		return err
	}
	if err := conv.ValidateBuffer("backward", "grad_weight", gradWeight, cpu.device); err != nil {
		return err
	}
	if err := conv.CheckShape("backward", "grad_weight", gradWeight, p.WeightShape()); err != nil {
		return err
	}

	cpu.runBackward(p, input, gradOutput, weight, gradInput, gradWeight)
	return nil
}

func (cpu *CPUBackend) backwardParams(
	input, gradOutput, weight *tensor.RawTensor,
	stride, padding [2]int,
) (conv.Params, error) {
	if err := conv.ValidateBuffer("backward", "input", input, cpu.device); err != nil {
		return conv.Params{}, err
	}
	if err := conv.ValidateBuffer("backward", "grad_output", gradOutput, cpu.device); err != nil {
		return conv.Params{}, err
	}
	if err := conv.ValidateBuffer("backward", "weight", weight, cpu.device); err != nil {
		return conv.Params{}, err
	}

	p, err := conv.NewParams(input.Shape(), weight.Shape(), stride, padding)
	if err != nil {
		return conv.Params{}, err
	}
	if err := conv.CheckShape("backward", "grad_output", gradOutput, p.OutputShape()); err != nil {
		return conv.Params{}, err
	}
	return p, nil
}

func (cpu *CPUBackend) runBackward(p conv.Params, input, gradOutput, weight, gradInput, gradWeight *tensor.RawTensor) {
	defer logutil.TraceSince("conv2d backward", time.Now(), "params", p)

	gradOutputData := gradOutput.AsFloat32()
	conv2dInputBackwardFloat32(p, gradOutputData, weight.AsFloat32(), gradInput.AsFloat32(), cpu.parallel)
	conv2dWeightBackwardFloat32(p, gradOutputData, input.AsFloat32(), gradWeight.AsFloat32(), cpu.parallel)
}

// conv2dInputBackwardFloat32 computes the input gradient in gather form.
//
// One work item is one input row (n, c, ih). For each input position the sum
// runs over exactly the (k, dr, ds) taps whose output coordinate
// oh = (ih+p-dr)/u, ow = (iw+q-ds)/v is integral and in range, so no two
// items write the same cell and no atomics are needed.
//
//nolint:gocognit // high complexity inherent to convolution backprop
func conv2dInputBackwardFloat32(p conv.Params, gradOutput, weight, gradInput []float32, cfg parallel.Config) {
	hw := p.H * p.W
	rs := p.R * p.S
	ohw := p.Oh * p.Ow
	kohw := p.K * ohw

	parallel.For(p.N*p.C*p.H, func(row int) {
		ih := row % p.H
		nc := row / p.H // n*C + c
		n, c := nc/p.C, nc%p.C

		gradBatch := gradOutput[n*kohw : (n+1)*kohw]
		dst := gradInput[nc*hw+ih*p.W : nc*hw+(ih+1)*p.W]

		// First kernel row aligned with the stride grid for this input row.
		dr0 := (ih + p.P) % p.U

		for iw := range dst {
			ds0 := (iw + p.Q) % p.V

			sum := float32(0.0)
			for k := 0; k < p.K; k++ {
				gradK := gradBatch[k*ohw : (k+1)*ohw]
				weightKC := weight[(k*p.C+c)*rs : (k*p.C+c+1)*rs]

				for dr := dr0; dr < p.R; dr += p.U {
					th := ih + p.P - dr
					if th < 0 {
						break // later dr only move further out
					}
					oh := th / p.U
					if oh >= p.Oh {
						continue
					}
					gradRow := gradK[oh*p.Ow : (oh+1)*p.Ow]
					weightRow := weightKC[dr*p.S : (dr+1)*p.S]

					for ds := ds0; ds < p.S; ds += p.V {
						tw := iw + p.Q - ds
						if tw < 0 {
							break
						}
						ow := tw / p.V
						if ow >= p.Ow {
							continue
						}
						sum += gradRow[ow] * weightRow[ds]
					}
				}
			}
			dst[iw] = sum
		}
	}, cfg)
}

// conv2dWeightBackwardFloat32 computes the weight gradient.
//
// One work item is one (k, c) filter plane; each item owns its R×S cells and
// reduces over n, oh, ow in that order.
//
//nolint:gocognit // high complexity inherent to convolution backprop
func conv2dWeightBackwardFloat32(p conv.Params, gradOutput, input, gradWeight []float32, cfg parallel.Config) {
	hw := p.H * p.W
	rs := p.R * p.S
	ohw := p.Oh * p.Ow

	parallel.ForBatch(p.K, p.C, func(k, c int) {
		kc := k*p.C + c
		dst := gradWeight[kc*rs : (kc+1)*rs]

		for dr := 0; dr < p.R; dr++ {
			for ds := 0; ds < p.S; ds++ {
				sum := float32(0.0)

				for n := 0; n < p.N; n++ {
					inputC := input[(n*p.C+c)*hw : (n*p.C+c+1)*hw]
					gradK := gradOutput[(n*p.K+k)*ohw : (n*p.K+k+1)*ohw]

					for oh := 0; oh < p.Oh; oh++ {
						ih := oh*p.U - p.P + dr
						if ih < 0 || ih >= p.H {
							continue
						}
						inputRow := inputC[ih*p.W : (ih+1)*p.W]
						gradRow := gradK[oh*p.Ow : (oh+1)*p.Ow]

						for ow, g := range gradRow {
							iw := ow*p.V - p.Q + ds
							if iw < 0 || iw >= p.W {
								continue
							}
							sum += g * inputRow[iw]
						}
					}
				}
				dst[dr*p.S+ds] = sum
			}
		}
	}, cfg)
}
