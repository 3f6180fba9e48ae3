package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/conv2d/internal/backend/cpu"
	"github.com/born-ml/conv2d/internal/nn"
	"github.com/born-ml/conv2d/internal/optim"
	"github.com/born-ml/conv2d/internal/tensor"
)

func FitHandler(cmd *cobra.Command, args []string) error {
	p, err := problemFromFlags(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	steps, _ := flags.GetInt("steps")
	lr, _ := flags.GetFloat32("lr")
	momentum, _ := flags.GetFloat32("momentum")
	optName, _ := flags.GetString("optimizer")
	logEvery, _ := flags.GetInt("log-every")
	if steps < 1 {
		return fmt.Errorf("--steps must be positive, got %d", steps)
	}
	if logEvery < 1 {
		logEvery = steps
	}

	backend := cpu.New()
	rng := p.rand()
	cfg := nn.Conv2DConfig{
		InChannels:  p.params.C,
		OutChannels: p.params.K,
		KernelSize:  [2]int{p.params.R, p.params.S},
		Stride:      [2]int{p.params.U, p.params.V},
		Padding:     [2]int{p.params.P, p.params.Q},
		Rand:        rng,
	}

	target, err := nn.NewConv2D(cfg, backend)
	if err != nil {
		return err
	}
	layer, err := nn.NewConv2D(cfg, backend)
	if err != nil {
		return err
	}

	input, err := tensor.Uniform(p.params.InputShape(), 1, rng)
	if err != nil {
		return err
	}
	want, err := target.Forward(input)
	if err != nil {
		return err
	}

	var opt optim.Optimizer
	switch optName {
	case "sgd":
		opt = optim.NewSGD(layer.Parameters(), optim.SGDConfig{LR: lr, Momentum: momentum})
	case "adam":
		opt = optim.NewAdam(layer.Parameters(), optim.AdamConfig{LR: lr})
	default:
		return fmt.Errorf("unknown optimizer %q, want sgd or adam", optName)
	}

	slog.Debug("fit", "layer", layer, "optimizer", optName, "lr", lr, "steps", steps)

	table := newTable(cmd.OutOrStdout())
	table.SetHeader([]string{"STEP", "LOSS"})

	for step := 1; step <= steps; step++ {
		output, err := layer.Forward(input)
		if err != nil {
			return err
		}
		loss, grad, err := nn.MSELoss(output, want)
		if err != nil {
			return err
		}
		if step == 1 || step%logEvery == 0 || step == steps {
			table.Append([]string{fmt.Sprint(step), fmt.Sprintf("%.6g", loss)})
		}

		if _, err := layer.Backward(grad); err != nil {
			return err
		}
		if err := opt.Step(); err != nil {
			return err
		}
		opt.ZeroGrad()
	}

	fmt.Fprintln(cmd.OutOrStdout(), layer)
	table.Render()
	return nil
}
