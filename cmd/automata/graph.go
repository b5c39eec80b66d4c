package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/runner"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [machine]",
	Short: "Export the machine as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the machine's states and transitions.
With --input the states visited by that run are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runOpts := cli.RunOptions{Options: opts}
		if len(args) > 0 {
			runOpts.Machine = args[0]
		}
		runOpts.File, _ = cmd.Flags().GetString("file")

		logger, err := cli.NewLogger(opts)
		if err != nil {
			return err
		}
		eng, closer, err := cli.NewEngine(ctx, opts, logger)
		if err != nil {
			return err
		}
		defer closer.Close()

		table, err := cli.LoadTable(ctx, eng, runOpts)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			res, err := eng.Run(ctx, table, runner.Tokenize(input))
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromResult(res)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(table, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("file", "f", "", "Read the machine from a file instead of --dir")
	graphCmd.Flags().StringP("input", "i", "", "Highlight the states visited on this input")
}
