package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the machines of the source",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := cli.NewLogger(opts)
		if err != nil {
			return err
		}
		eng, closer, err := cli.NewEngine(ctx, opts, logger)
		if err != nil {
			return err
		}
		defer closer.Close()

		names, err := eng.ListMachines(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
