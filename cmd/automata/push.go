package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/ports"
)

var pushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Upload a machine description to the Redis store",
	Long: `Validates a description file and stores it in Redis under --name
(default: the file name without extension). Requires --redis or AUTOMATA_REDIS.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if opts.Redis == "" {
			return fmt.Errorf("push needs a Redis store: set --redis or AUTOMATA_REDIS")
		}
		ctx := cmd.Context()
		path := args[0]

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			base := filepath.Base(path)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		logger, err := cli.NewLogger(opts)
		if err != nil {
			return err
		}
		eng, closer, err := cli.NewEngine(ctx, opts, logger)
		if err != nil {
			return err
		}
		defer closer.Close()

		table, err := cli.LoadTable(ctx, eng, cli.RunOptions{File: path})
		if err != nil {
			return err
		}
		if force, _ := cmd.Flags().GetBool("force"); !force {
			if err := eng.Validate(ctx, table); err != nil {
				return fmt.Errorf("refusing to push invalid machine: %w", err)
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		store, ok := eng.Loader().(ports.MachineStore)
		if !ok {
			return fmt.Errorf("the configured source does not accept uploads")
		}
		doc := &ports.Document{Name: name, Filename: filepath.Base(path), Data: data}
		if err := store.SaveMachine(ctx, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s machine %q (%d states, %d rules)\n",
			table.Kind().Title(), name, table.NumStates(), table.NumRules())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().String("name", "", "Name to store the machine under")
	pushCmd.Flags().Bool("force", false, "Store the machine even if it does not validate")
}
