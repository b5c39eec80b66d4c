package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run [machine]",
	Short: "Simulate a machine",
	Long: `Loads a machine and simulates it. With --input the machine runs once;
otherwise input lines are read from stdin until EOF or 'exit'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runOpts := cli.RunOptions{Options: opts}
		if len(args) > 0 {
			runOpts.Machine = args[0]
		}
		runOpts.File, _ = cmd.Flags().GetString("file")
		runOpts.Input, _ = cmd.Flags().GetString("input")
		runOpts.HasInput = cmd.Flags().Changed("input")
		runOpts.JSON, _ = cmd.Flags().GetBool("json")
		runOpts.Format, _ = cmd.Flags().GetString("format")
		runOpts.Quiet, _ = cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		session := cli.StdSession()
		session.In = cmd.InOrStdin()
		session.Out = cmd.OutOrStdout()
		return cli.RunSession(ctx, runOpts, session)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("file", "f", "", "Read the machine from a file instead of --dir")
	runCmd.Flags().StringP("input", "i", "", "Space-separated input symbols; runs once")
	runCmd.Flags().Bool("json", false, "Read JSON lines and write one JSON result per run")
	runCmd.Flags().String("format", "text", "Report format: text, markdown, html, json, yaml or cbor")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
