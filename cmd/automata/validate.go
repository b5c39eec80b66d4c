package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machines...]",
	Short: "Check machines for consistency",
	Long: `Runs the structural checks (sections, state roles, rule arity and references,
entry rule) on the named machines, on every machine of the source when none is
named, or on the files given with --file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, _ := cmd.Flags().GetStringSlice("file")
		return runValidate(cmd, args, files)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringSliceP("file", "f", nil, "Validate description files instead of named machines")
}

func runValidate(cmd *cobra.Command, names, files []string) error {
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

	if len(names) == 0 && len(files) == 0 {
		if names, err = eng.ListMachines(ctx); err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no machines found")
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	check := func(label string, runOpts cli.RunOptions) {
		table, err := cli.LoadTable(ctx, eng, runOpts)
		if err == nil {
			err = eng.Validate(ctx, table)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: invalid: %v\n", label, err)
			return
		}
		fmt.Fprintf(out, "%s: valid %s (%d states, %d rules)\n", label, table.Kind().Title(), table.NumStates(), table.NumRules())
	}

	for _, name := range names {
		check(name, cli.RunOptions{Machine: name})
	}
	for _, path := range files {
		check(path, cli.RunOptions{File: path})
	}

	if failed > 0 {
		fmt.Fprintln(os.Stderr, "Validation failed.")
		return fmt.Errorf("%d of %d machines are invalid", failed, len(names)+len(files))
	}
	return nil
}
