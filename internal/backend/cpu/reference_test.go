package cpu

import (
	"math/rand"
	"testing"

	"github.com/born-ml/conv2d/internal/conv"
	"github.com/born-ml/conv2d/internal/parallel"
	"github.com/born-ml/conv2d/internal/tensor"
	"github.com/stretchr/testify/require"
)

// Brute-force references used to cross-check the kernels. They favour
// obviousness over speed: the forward pass materialises an explicitly
// zero-padded input, the input gradient is computed in scatter form.

func newTestBackend() *CPUBackend {
	return NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
}

func newSequentialBackend() *CPUBackend {
	return NewWithConfig(parallel.Config{Enabled: false})
}

func randomTensor(t *testing.T, shape tensor.Shape, seed int64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.Uniform(shape, 1.0, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return raw
}

func mustParams(t *testing.T, input, weight tensor.Shape, stride, padding [2]int) conv.Params {
	t.Helper()
	p, err := conv.NewParams(input, weight, stride, padding)
	require.NoError(t, err)
	return p
}

// zeroPad returns input embedded in a [N, C, H+2P, W+2Q] buffer of zeros.
func zeroPad(p conv.Params, input []float32) (padded []float32, ph, pw int) {
	ph, pw = p.H+2*p.P, p.W+2*p.Q
	padded = make([]float32, p.N*p.C*ph*pw)
	for n := 0; n < p.N; n++ {
		for c := 0; c < p.C; c++ {
			for h := 0; h < p.H; h++ {
				for w := 0; w < p.W; w++ {
					padded[((n*p.C+c)*ph+h+p.P)*pw+w+p.Q] = input[((n*p.C+c)*p.H+h)*p.W+w]
				}
			}
		}
	}
	return padded, ph, pw
}

// referenceConv2D is the direct-sum formula over an explicitly padded input.
// The reduction order (c, dr, ds) matches the kernel.
func referenceConv2D(p conv.Params, input, weight []float32) []float32 {
	padded, ph, pw := zeroPad(p, input)
	out := make([]float32, p.N*p.K*p.Oh*p.Ow)
	for n := 0; n < p.N; n++ {
		for k := 0; k < p.K; k++ {
			for oh := 0; oh < p.Oh; oh++ {
				for ow := 0; ow < p.Ow; ow++ {
					sum := float32(0)
					for c := 0; c < p.C; c++ {
						for dr := 0; dr < p.R; dr++ {
							for ds := 0; ds < p.S; ds++ {
								x := padded[((n*p.C+c)*ph+oh*p.U+dr)*pw+ow*p.V+ds]
								sum += x * weight[((k*p.C+c)*p.R+dr)*p.S+ds]
							}
						}
					}
					out[((n*p.K+k)*p.Oh+oh)*p.Ow+ow] = sum
				}
			}
		}
	}
	return out
}

// referenceBackward computes both gradients by scattering every output
// gradient back onto the padded input and the weight, accumulating in float64.
func referenceBackward(p conv.Params, input, gradOutput, weight []float32) (gradInput, gradWeight []float64) {
	padded, ph, pw := zeroPad(p, input)
	gradPadded := make([]float64, len(padded))
	gradWeight = make([]float64, p.K*p.C*p.R*p.S)

	for n := 0; n < p.N; n++ {
		for k := 0; k < p.K; k++ {
			for oh := 0; oh < p.Oh; oh++ {
				for ow := 0; ow < p.Ow; ow++ {
					g := float64(gradOutput[((n*p.K+k)*p.Oh+oh)*p.Ow+ow])
					for c := 0; c < p.C; c++ {
						for dr := 0; dr < p.R; dr++ {
							for ds := 0; ds < p.S; ds++ {
								pi := ((n*p.C+c)*ph+oh*p.U+dr)*pw + ow*p.V + ds
								wi := ((k*p.C+c)*p.R+dr)*p.S + ds
								gradPadded[pi] += g * float64(weight[wi])
								gradWeight[wi] += g * float64(padded[pi])
							}
						}
					}
				}
			}
		}
	}

	// Crop the padded border: gradients landing there belong to no input.
	gradInput = make([]float64, p.N*p.C*p.H*p.W)
	for n := 0; n < p.N; n++ {
		for c := 0; c < p.C; c++ {
			for h := 0; h < p.H; h++ {
				for w := 0; w < p.W; w++ {
					gradInput[((n*p.C+c)*p.H+h)*p.W+w] = gradPadded[((n*p.C+c)*ph+h+p.P)*pw+w+p.Q]
				}
			}
		}
	}
	return gradInput, gradWeight
}
