package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/conv2d/internal/conv"
	"github.com/born-ml/conv2d/internal/envconfig"
	"github.com/born-ml/conv2d/internal/logutil"
	"github.com/born-ml/conv2d/internal/tensor"
)

var version = "v0.1.0-dev"

// problem is the convolution described by the shared flags.
type problem struct {
	params conv.Params
	seed   int64
}

func (p problem) rand() *rand.Rand {
	return rand.New(rand.NewSource(p.seed)) //nolint:gosec // reproducible test data
}

// tensors draws an input and a weight from U(-1, 1).
func (p problem) tensors() (input, weight *tensor.RawTensor, err error) {
	rng := p.rand()
	input, err = tensor.Uniform(p.params.InputShape(), 1, rng)
	if err != nil {
		return nil, nil, err
	}
	weight, err = tensor.Uniform(p.params.WeightShape(), 1, rng)
	if err != nil {
		return nil, nil, err
	}
	return input, weight, nil
}

func pair(cmd *cobra.Command, name string) ([2]int, error) {
	vals, err := cmd.Flags().GetIntSlice(name)
	if err != nil {
		return [2]int{}, err
	}
	switch len(vals) {
	case 1:
		return [2]int{vals[0], vals[0]}, nil
	case 2:
		return [2]int{vals[0], vals[1]}, nil
	default:
		return [2]int{}, fmt.Errorf("--%s takes one or two values, got %d", name, len(vals))
	}
}

func problemFromFlags(cmd *cobra.Command) (problem, error) {
	flags := cmd.Flags()
	get := func(name string) int {
		v, _ := flags.GetInt(name)
		return v
	}

	kernel, err := pair(cmd, "kernel")
	if err != nil {
		return problem{}, err
	}
	stride, err := pair(cmd, "stride")
	if err != nil {
		return problem{}, err
	}
	padding, err := pair(cmd, "padding")
	if err != nil {
		return problem{}, err
	}
	seed, err := flags.GetInt64("seed")
	if err != nil {
		return problem{}, err
	}

	input := tensor.Shape{get("batch"), get("channels"), get("height"), get("width")}
	weight := tensor.Shape{get("out-channels"), get("channels"), kernel[0], kernel[1]}
	params, err := conv.NewParams(input, weight, stride, padding)
	if err != nil {
		return problem{}, err
	}
	return problem{params: params, seed: seed}, nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("\t")
	return table
}

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conv2d",
		Short: "Direct 2D convolution: forward, gradients and training",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true

			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Int("batch", 1, "Batch size N")
	flags.Int("channels", 2, "Input channels C")
	flags.Int("height", 5, "Input height H")
	flags.Int("width", 5, "Input width W")
	flags.Int("out-channels", 3, "Output channels K")
	flags.IntSlice("kernel", []int{3, 3}, "Kernel size R,S")
	flags.IntSlice("stride", []int{1, 1}, "Stride U,V")
	flags.IntSlice("padding", []int{1, 1}, "Zero padding P,Q")
	flags.Int64("seed", 1, "Random seed for generated tensors")

	cobra.EnableCommandSorting = false

	forwardCmd := &cobra.Command{
		Use:   "forward",
		Short: "Run the forward pass on random data",
		Args:  cobra.NoArgs,
		RunE:  ForwardHandler,
	}
	forwardCmd.Flags().Bool("backward", false, "Also run the backward pass")
	forwardCmd.Flags().Int("repeat", 1, "Number of timed runs")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Compare analytic gradients with finite differences",
		Args:  cobra.NoArgs,
		RunE:  CheckHandler,
	}
	checkCmd.Flags().Float64("eps", 1e-2, "Finite difference step")
	checkCmd.Flags().Float64("tol", 2e-3, "Absolute tolerance")
	checkCmd.Flags().Float64("rtol", 1e-3, "Relative tolerance")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "Train a Conv2D layer to match a hidden kernel",
		Args:  cobra.NoArgs,
		RunE:  FitHandler,
	}
	fitCmd.Flags().Int("steps", 200, "Number of optimizer steps")
	fitCmd.Flags().Float32("lr", 0.1, "Learning rate")
	fitCmd.Flags().Float32("momentum", 0.5, "SGD momentum")
	fitCmd.Flags().String("optimizer", "sgd", "Optimizer: sgd or adam")
	fitCmd.Flags().Int("log-every", 20, "Report the loss every N steps")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show configuration and host CPU features",
		Args:  cobra.NoArgs,
		RunE:  InfoHandler,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "conv2d version %s\n", version)
		},
	}

	rootCmd.AddCommand(
		forwardCmd,
		checkCmd,
		fitCmd,
		infoCmd,
		versionCmd,
	)

	return rootCmd
}
