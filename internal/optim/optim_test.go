package optim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/conv2d/internal/backend/cpu"
	"github.com/born-ml/conv2d/internal/nn"
	"github.com/born-ml/conv2d/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParam(t *testing.T, values, grad []float32) *nn.Parameter {
	t.Helper()
	w, err := tensor.FromFloat32(values, tensor.Shape{len(values)})
	require.NoError(t, err)
	p := nn.NewParameter("w", w)
	if grad != nil {
		g, err := tensor.FromFloat32(grad, tensor.Shape{len(grad)})
		require.NoError(t, err)
		p.SetGrad(g)
	}
	return p
}

func TestSGD_Step(t *testing.T) {
	p := newParam(t, []float32{1, 2, 3}, []float32{1, -1, 0.5})
	sgd := NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 0.1})

	require.NoError(t, sgd.Step())
	assert.InDeltaSlice(t, []float32{0.9, 2.1, 2.95}, p.Tensor().AsFloat32(), 1e-6)

	sgd.ZeroGrad()
	assert.Nil(t, p.Grad())

	// Without a gradient the parameter is left alone.
	require.NoError(t, sgd.Step())
	assert.InDeltaSlice(t, []float32{0.9, 2.1, 2.95}, p.Tensor().AsFloat32(), 1e-6)
}

func TestSGD_Momentum(t *testing.T) {
	p := newParam(t, []float32{1}, []float32{1})
	sgd := NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 0.1, Momentum: 0.9})

	require.NoError(t, sgd.Step()) // v = 1, p = 0.9
	require.NoError(t, sgd.Step()) // v = 1.9, p = 0.71
	assert.InDelta(t, 0.71, p.Tensor().AsFloat32()[0], 1e-6)

	state, err := sgd.StateDict()
	require.NoError(t, err)
	require.Contains(t, state, "velocity.0")
	assert.InDelta(t, 1.9, state["velocity.0"].AsFloat32()[0], 1e-6)
}

func TestSGD_Defaults(t *testing.T) {
	sgd := NewSGD(nil, SGDConfig{})
	assert.Equal(t, float32(0.01), sgd.GetLR())

	sgd.SetLR(0.5)
	assert.Equal(t, float32(0.5), sgd.GetLR())

	state, err := sgd.StateDict()
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestSGD_GradientShapeMismatch(t *testing.T) {
	p := newParam(t, []float32{1, 2}, []float32{1, 2, 3})
	sgd := NewSGD([]*nn.Parameter{p}, SGDConfig{LR: 0.1})

	require.Error(t, sgd.Step())
	assert.Equal(t, []float32{1, 2}, p.Tensor().AsFloat32())
}

func TestAdam_FirstStep(t *testing.T) {
	p := newParam(t, []float32{1, 1}, []float32{4, -0.5})
	adam := NewAdam([]*nn.Parameter{p}, AdamConfig{LR: 0.01})

	// After bias correction the first update is lr * sign(grad).
	require.NoError(t, adam.Step())
	assert.InDeltaSlice(t, []float32{0.99, 1.01}, p.Tensor().AsFloat32(), 1e-5)
	assert.Equal(t, float32(0.01), adam.GetLR())

	adam.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestAdam_Defaults(t *testing.T) {
	adam := NewAdam(nil, AdamConfig{})
	assert.Equal(t, float32(0.001), adam.GetLR())
	assert.Equal(t, float32(0.9), adam.beta1)
	assert.Equal(t, float32(0.999), adam.beta2)
	assert.Equal(t, float32(1e-8), adam.eps)
}

// TestFitConv2D trains a layer towards a hidden kernel and checks the loss drops.
func TestFitConv2D(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(9))

	cfg := nn.Conv2DConfig{InChannels: 2, OutChannels: 2, KernelSize: [2]int{3, 3}, Padding: [2]int{1, 1}, Rand: rng}

	for _, tt := range []struct {
		name string
		opt  func(params []*nn.Parameter) Optimizer
	}{
		{"sgd", func(p []*nn.Parameter) Optimizer { return NewSGD(p, SGDConfig{LR: 0.1, Momentum: 0.5}) }},
		{"adam", func(p []*nn.Parameter) Optimizer { return NewAdam(p, AdamConfig{LR: 0.01}) }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			target, err := nn.NewConv2D(cfg, backend)
			require.NoError(t, err)
			layer, err := nn.NewConv2D(cfg, backend)
			require.NoError(t, err)

			input, err := tensor.Uniform(tensor.Shape{4, 2, 6, 6}, 1, rng)
			require.NoError(t, err)
			want, err := target.Forward(input)
			require.NoError(t, err)

			opt := tt.opt(layer.Parameters())
			first := math.Inf(1)
			var last float64
			for step := 0; step < 150; step++ {
				output, err := layer.Forward(input)
				require.NoError(t, err)
				loss, grad, err := nn.MSELoss(output, want)
				require.NoError(t, err)
				if step == 0 {
					first = loss
				}
				last = loss

				_, err = layer.Backward(grad)
				require.NoError(t, err)
				require.NoError(t, opt.Step())
				opt.ZeroGrad()
			}

			assert.Less(t, last, first*0.5, "loss %.4g -> %.4g", first, last)
		})
	}
}
