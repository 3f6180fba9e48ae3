package cpu

import (
	"fmt"
	"time"

	"github.com/born-ml/conv2d/internal/conv"
	"github.com/born-ml/conv2d/internal/logutil"
	"github.com/born-ml/conv2d/internal/parallel"
	"github.com/born-ml/conv2d/internal/tensor"
)

// Conv2D performs a direct 2D cross-correlation.
//
// Input shape:  [N, C, H, W]
// Weight shape: [K, C, R, S]
// Output shape: [N, K, Oh, Ow]
//
//	output[n,k,oh,ow] = Σ_c Σ_dr Σ_ds input[n, c, oh*u-p+dr, ow*v-q+ds] * weight[k, c, dr, ds]
//
// Input coordinates that fall into the zero-padded border contribute nothing.
// The output is freshly allocated; input and weight are never modified.
//
// Errors wrap conv.ErrPrecondition, conv.ErrInvalidConfig or conv.ErrShapeMismatch.
func (cpu *CPUBackend) Conv2D(input, weight *tensor.RawTensor, stride, padding [2]int) (*tensor.RawTensor, error) {
	p, err := cpu.forwardParams(input, weight, stride, padding)
	if err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(p.OutputShape(), tensor.Float32, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("conv2d forward: failed to create output tensor: %w", err)
	}

	defer logutil.TraceSince("conv2d forward", time.Now(), "params", p)
	conv2dForwardFloat32(p, input.AsFloat32(), weight.AsFloat32(), output.AsFloat32(), cpu.parallel)
	return output, nil
}

// Conv2DInto is Conv2D writing into a caller-allocated output of shape
// [N, K, Oh, Ow]. Every element of output is overwritten, so it needs no
// initialization.
func (cpu *CPUBackend) Conv2DInto(output, input, weight *tensor.RawTensor, stride, padding [2]int) error {
	p, err := cpu.forwardParams(input, weight, stride, padding)
	if err != nil {
		return err
	}
	if err := conv.ValidateBuffer("forward", "output", output, cpu.device); err != nil {
		return err
	}
	if err := conv.CheckShape("forward", "output", output, p.OutputShape()); err != nil {
		return err
	}

	defer logutil.TraceSince("conv2d forward", time.Now(), "params", p)
	conv2dForwardFloat32(p, input.AsFloat32(), weight.AsFloat32(), output.AsFloat32(), cpu.parallel)
	return nil
}

func (cpu *CPUBackend) forwardParams(input, weight *tensor.RawTensor, stride, padding [2]int) (conv.Params, error) {
	if err := conv.ValidateBuffer("forward", "input", input, cpu.device); err != nil {
		return conv.Params{}, err
	}
	if err := conv.ValidateBuffer("forward", "weight", weight, cpu.device); err != nil {
		return conv.Params{}, err
	}
	return conv.NewParams(input.Shape(), weight.Shape(), stride, padding)
}

// conv2dForwardFloat32 computes the forward convolution.
//
// One work item is one output row (n, k, oh); rows are disjoint so items never
// race. Within a cell the reduction order is c, dr, ds, which keeps results
// bit-identical regardless of how rows are scheduled.
//
//nolint:gocognit // high complexity inherent to convolution
func conv2dForwardFloat32(p conv.Params, input, weight, output []float32, cfg parallel.Config) {
	hw := p.H * p.W
	chw := p.C * hw
	rs := p.R * p.S
	crs := p.C * rs
	ohw := p.Oh * p.Ow

	parallel.For(p.N*p.K*p.Oh, func(row int) {
		oh := row % p.Oh
		nk := row / p.Oh // n*K + k
		n, k := nk/p.K, nk%p.K

		// Pre-slice planes so the inner loops index with a single bounds check.
		inputBatch := input[n*chw : (n+1)*chw]
		weightK := weight[k*crs : (k+1)*crs]
		outRow := output[nk*ohw+oh*p.Ow : nk*ohw+(oh+1)*p.Ow]

		hStart := oh*p.U - p.P
		for ow := range outRow {
			wStart := ow*p.V - p.Q

			sum := float32(0.0)
			for c := 0; c < p.C; c++ {
				inputC := inputBatch[c*hw : (c+1)*hw]
				weightC := weightK[c*rs : (c+1)*rs]

				for dr := 0; dr < p.R; dr++ {
					ih := hStart + dr
					if ih < 0 || ih >= p.H {
						continue // padded row
					}
					inputRow := inputC[ih*p.W : (ih+1)*p.W]
					weightRow := weightC[dr*p.S : (dr+1)*p.S]

					for ds, wv := range weightRow {
						iw := wStart + ds
						if iw < 0 || iw >= p.W {
							continue // padded column
						}
						sum += inputRow[iw] * wv
					}
				}
			}
			outRow[ow] = sum
		}
	}, cfg)
}
