package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/conv2d/internal/backend/cpu"
	"github.com/born-ml/conv2d/internal/gradcheck"
	"github.com/born-ml/conv2d/internal/tensor"
)

var errGradientMismatch = errors.New("gradient check failed")

func CheckHandler(cmd *cobra.Command, args []string) error {
	p, err := problemFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := gradcheck.DefaultConfig()
	cfg.Eps, _ = cmd.Flags().GetFloat64("eps")
	cfg.AbsTol, _ = cmd.Flags().GetFloat64("tol")
	cfg.RelTol, _ = cmd.Flags().GetFloat64("rtol")

	input, weight, err := p.tensors()
	if err != nil {
		return err
	}

	backend := cpu.New()
	stride, padding := [2]int{p.params.U, p.params.V}, [2]int{p.params.P, p.params.Q}

	// loss = Σ output, so ∂loss/∂output is all ones.
	gradOutput, err := tensor.Full(p.params.OutputShape(), 1)
	if err != nil {
		return err
	}
	gradInput, gradWeight, err := backend.Conv2DBackward(input, gradOutput, weight, stride, padding)
	if err != nil {
		return err
	}

	loss := func() (float64, error) {
		out, err := backend.Conv2D(input, weight, stride, padding)
		if err != nil {
			return 0, err
		}
		return gradcheck.SumLoss(out.AsFloat32()), nil
	}

	table := newTable(cmd.OutOrStdout())
	table.SetHeader([]string{"GRADIENT", "SIZE", "MAX ABS", "MAX REL", "STATUS"})

	failed := 0
	for _, g := range []struct {
		name     string
		x        *tensor.RawTensor
		analytic *tensor.RawTensor
	}{
		{"grad_input", input, gradInput},
		{"grad_weight", weight, gradWeight},
	} {
		res, err := gradcheck.Check(g.name, g.x.AsFloat32(), g.analytic.AsFloat32(), loss, cfg)
		if err != nil {
			return err
		}
		status := "ok"
		if !res.Passed {
			status = "FAIL"
			failed++
		}
		table.Append([]string{
			res.Name,
			fmt.Sprint(res.Size),
			fmt.Sprintf("%.3g", res.MaxAbsErr),
			fmt.Sprintf("%.3g", res.MaxRelErr),
			status,
		})
	}
	table.Render()

	if failed > 0 {
		return fmt.Errorf("%w: %d of 2 gradients outside tolerance", errGradientMismatch, failed)
	}
	return nil
}
