package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/born-ml/conv2d/internal/envconfig"
	"github.com/born-ml/conv2d/internal/parallel"
)

func InfoHandler(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Version: %s\n", version)
	fmt.Fprintf(out, "Host:    %s\n\n", parallel.Describe())
	prettyPrintEnv(out)
	return nil
}

func prettyPrintEnv(out io.Writer) {
	env := envconfig.AsMap()
	vals := envconfig.Values()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	table := newTable(out)
	table.SetHeader([]string{"VARIABLE", "VALUE", "DESCRIPTION"})
	for _, k := range keys {
		v := env[k]
		table.Append([]string{v.Name, vals[k], v.Description})
	}
	table.Render()
}
