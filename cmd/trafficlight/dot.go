package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anggasct/trafficlight"
	"github.com/anggasct/trafficlight/visualization"
)

func newDotCommand(flags *lightFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Prints the light's phase cycle as a Graphviz graph",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			logger, err := flags.logger(c.ErrOrStderr())
			if err != nil {
				return err
			}

			light, err := trafficlight.New(flags.options(logger)...)
			if err != nil {
				return err
			}

			generator := visualization.NewDOTGenerator(light)
			if output != "" {
				return generator.GenerateToFile(output)
			}

			content, err := generator.Generate()
			if err != nil {
				return err
			}
			fmt.Fprint(c.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the graph to this file instead of stdout")

	return cmd
}
