package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/conv2d/internal/backend/cpu"
	"github.com/born-ml/conv2d/internal/gradcheck"
	"github.com/born-ml/conv2d/internal/tensor"
)

func ForwardHandler(cmd *cobra.Command, args []string) error {
	p, err := problemFromFlags(cmd)
	if err != nil {
		return err
	}
	withBackward, _ := cmd.Flags().GetBool("backward")
	repeat, _ := cmd.Flags().GetInt("repeat")
	if repeat < 1 {
		return fmt.Errorf("--repeat must be positive, got %d", repeat)
	}

	input, weight, err := p.tensors()
	if err != nil {
		return err
	}

	backend := cpu.New()
	slog.Debug("forward", "params", p.params, "repeat", repeat)

	var output *tensor.RawTensor
	start := time.Now()
	for i := 0; i < repeat; i++ {
		output, err = backend.Conv2D(input, weight, [2]int{p.params.U, p.params.V}, [2]int{p.params.P, p.params.Q})
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start) / time.Duration(repeat)

	table := newTable(cmd.OutOrStdout())
	table.AppendBulk([][]string{
		{"params", p.params.String()},
		{"output", fmt.Sprintf("%v", output.Shape())},
		{"forward", elapsed.String()},
		{"checksum", fmt.Sprintf("%.6f", gradcheck.SumLoss(output.AsFloat32()))},
	})

	if withBackward {
		gradOutput, err := tensor.Full(output.Shape(), 1)
		if err != nil {
			return err
		}

		var gradInput, gradWeight *tensor.RawTensor
		start := time.Now()
		for i := 0; i < repeat; i++ {
			gradInput, gradWeight, err = backend.Conv2DBackward(input, gradOutput, weight,
				[2]int{p.params.U, p.params.V}, [2]int{p.params.P, p.params.Q})
			if err != nil {
				return err
			}
		}
		elapsed := time.Since(start) / time.Duration(repeat)

		table.AppendBulk([][]string{
			{"backward", elapsed.String()},
			{"grad_input", fmt.Sprintf("%.6f", gradcheck.SumLoss(gradInput.AsFloat32()))},
			{"grad_weight", fmt.Sprintf("%.6f", gradcheck.SumLoss(gradWeight.AsFloat32()))},
		})
	}

	table.Render()
	return nil
}
